package service

import (
	"context"
	"fmt"
	"html"

	"github.com/Tanmay7310/Mental-Health-Wellbeing/internal/model"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/pkg/apperr"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type EmergencyAlert struct {
	UserID   string
	FullName string
	Contact  model.EmergencyContact
}

type Alerter interface {
	SendEmergencyAlert(ctx context.Context, a EmergencyAlert) error
}

// LogAlerter only records the alert. It's the default when mail alerts are
// off.
type LogAlerter struct{}

func (LogAlerter) SendEmergencyAlert(_ context.Context, a EmergencyAlert) error {
	zap.L().Warn("Emergency alert requested, no delivery channel configured",
		zap.String("userID", a.UserID),
		zap.String("contactID", a.Contact.ID),
	)
	return nil
}

type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
}

// MailAlerter emails the contact over SMTP. Contacts without an email
// address can't be reached this way.
type MailAlerter struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailAlerter(cfg MailConfig) *MailAlerter {
	username := cfg.Username
	if username == "" {
		username = cfg.Sender
	}

	return &MailAlerter{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, username, cfg.Password),
		from:   cfg.Sender,
	}
}

func (m *MailAlerter) SendEmergencyAlert(_ context.Context, a EmergencyAlert) error {
	if a.Contact.Email == nil || *a.Contact.Email == "" {
		return apperr.Validation("email", "Contact has no email address to alert")
	}

	msg := m.buildMessage(a)
	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send alert mail, %w", err)
	}

	return nil
}

func (m *MailAlerter) buildMessage(a EmergencyAlert) *gomail.Message {
	name := a.FullName
	if name == "" {
		name = "Someone"
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", *a.Contact.Email)
	msg.SetHeader("Subject", fmt.Sprintf("Emergency alert from %s", name))
	msg.SetBody("text/html", fmt.Sprintf(
		"<p>Hi %s,</p><p>%s listed you as an emergency contact and has asked for help. Please reach out to them as soon as possible.</p>",
		html.EscapeString(a.Contact.Name), html.EscapeString(name),
	))

	return msg
}
