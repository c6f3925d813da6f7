package service

import (
	"context"
	"testing"

	"github.com/Tanmay7310/Mental-Health-Wellbeing/internal/model"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/internal/testutil"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/pkg/apperr"
	"github.com/stretchr/testify/assert"
)

func TestMailAlerterNeedsEmail(t *testing.T) {
	m := NewMailAlerter(MailConfig{Host: "localhost", Port: 2525, Sender: "alerts@example.com"})

	err := m.SendEmergencyAlert(context.Background(), EmergencyAlert{
		UserID:  "user-1",
		Contact: model.EmergencyContact{ID: "c1", Name: "Mom", Phone: "+100"},
	})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestMailAlerterMessage(t *testing.T) {
	m := NewMailAlerter(MailConfig{Host: "localhost", Port: 2525, Sender: "alerts@example.com"})

	msg := m.buildMessage(EmergencyAlert{
		FullName: "Jane <Doe>",
		Contact:  model.EmergencyContact{Name: "Mom", Email: testutil.Ptr("mom@example.com")},
	})

	assert.Equal(t, []string{"alerts@example.com"}, msg.GetHeader("From"))
	assert.Equal(t, []string{"mom@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Emergency alert from Jane <Doe>"}, msg.GetHeader("Subject"))
}

func TestLogAlerterNeverFails(t *testing.T) {
	assert.NoError(t, LogAlerter{}.SendEmergencyAlert(context.Background(), EmergencyAlert{}))
}
