package service

import (
	"context"
	"testing"

	"github.com/Tanmay7310/Mental-Health-Wellbeing/internal/model"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/internal/testutil"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileGetAndUpdate(t *testing.T) {
	db := testutil.NewDB(t)
	s := NewProfileService(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&model.Profile{ID: "user-1", FullName: "Jane", Email: "jane@example.com"}).Error)

	_, err := s.Get(ctx, "user-2")
	assert.ErrorIs(t, err, apperr.ErrProfileNotFound)

	p, err := s.Update(ctx, "user-1", ProfileUpdate{Phone: testutil.Ptr("+123"), Country: testutil.Ptr("IN")})
	require.NoError(t, err)
	assert.Equal(t, "+123", *p.Phone)
	assert.Equal(t, "IN", *p.Country)
	assert.Nil(t, p.Pincode)
	assert.Equal(t, "Jane", p.FullName)

	got, err := s.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "+123", *got.Phone)

	_, err = s.Update(ctx, "user-2", ProfileUpdate{})
	assert.ErrorIs(t, err, apperr.ErrProfileNotFound)
}

func TestCompleteScreening(t *testing.T) {
	db := testutil.NewDB(t)
	s := NewProfileService(db)
	ctx := context.Background()

	require.NoError(t, db.Create(&model.Profile{ID: "user-1", FullName: "Jane", Email: "jane@example.com"}).Error)

	out, err := s.CompleteScreening(ctx, "user-1", ScreeningInput{Responses: map[string]any{"1": 3.0, "4": 3.0, "6": 3.0, "2": 1.0}})
	require.NoError(t, err)
	assert.Equal(t, 10, out.Result.Score)
	assert.Equal(t, DiagnosisMDD, out.Result.Diagnosis)
	assert.True(t, out.Profile.InitialScreeningCompleted)

	var stored model.Assessment
	require.NoError(t, db.Where("user_id = ?", "user-1").First(&stored).Error)
	assert.Equal(t, model.AssessmentPHQ9, stored.Type)
	assert.Equal(t, 10, stored.Score)
	assert.Equal(t, SeverityMild, stored.Severity)
	assert.JSONEq(t, `{"1":3,"4":3,"6":3,"2":1}`, string(stored.Responses))

	p, err := s.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, p.InitialScreeningCompleted)
}

func TestCompleteScreeningWithoutProfile(t *testing.T) {
	db := testutil.NewDB(t)
	s := NewProfileService(db)

	_, err := s.CompleteScreening(context.Background(), "ghost", ScreeningInput{Responses: map[string]any{}})
	assert.ErrorIs(t, err, apperr.ErrProfileNotFound)

	var n int64
	db.Model(&model.Assessment{}).Count(&n)
	assert.Zero(t, n)
}
