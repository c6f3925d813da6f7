package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Tanmay7310/Mental-Health-Wellbeing/internal/model"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/pkg/apperr"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProfileUpdate struct {
	FullName    *string `json:"fullName" binding:"omitempty,min=1,max=255"`
	Phone       *string `json:"phone" binding:"omitempty,max=32"`
	HomeAddress *string `json:"homeAddress" binding:"omitempty,max=500"`
	Country     *string `json:"country" binding:"omitempty,max=100"`
	Pincode     *string `json:"pincode" binding:"omitempty,max=20"`
}

type ScreeningInput struct {
	Responses map[string]any `json:"responses" binding:"required"`
}

type ScreeningOutcome struct {
	Result  ScreeningResult `json:"result"`
	Profile *model.Profile  `json:"profile"`
}

type ProfileService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db, now: time.Now}
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*model.Profile, error) {
	var p model.Profile
	if err := loadProfile(s.db.WithContext(ctx), userID, &p); err != nil {
		return nil, err
	}

	return &p, nil
}

func (s *ProfileService) Update(ctx context.Context, userID string, in ProfileUpdate) (*model.Profile, error) {
	var p model.Profile

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := loadProfile(tx, userID, &p); err != nil {
			return err
		}

		if in.FullName != nil {
			p.FullName = *in.FullName
		}
		if in.Phone != nil {
			p.Phone = in.Phone
		}
		if in.HomeAddress != nil {
			p.HomeAddress = in.HomeAddress
		}
		if in.Country != nil {
			p.Country = in.Country
		}
		if in.Pincode != nil {
			p.Pincode = in.Pincode
		}
		p.UpdatedAt = s.now()

		if err := tx.Save(&p).Error; err != nil {
			return fmt.Errorf("failed to update profile, %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// CompleteScreening scores the initial questionnaire, stores it as a PHQ9
// assessment and marks the profile as screened, all in one transaction.
func (s *ProfileService) CompleteScreening(ctx context.Context, userID string, in ScreeningInput) (*ScreeningOutcome, error) {
	result := AnalyzeScreening(in.Responses)

	raw, err := json.Marshal(in.Responses)
	if err != nil {
		return nil, apperr.Validation("responses", "Responses must be a JSON object")
	}

	var p model.Profile
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := loadProfile(tx, userID, &p); err != nil {
			return err
		}

		now := s.now()
		err := tx.Create(&model.Assessment{
			ID:        uuid.NewString(),
			UserID:    userID,
			Type:      model.AssessmentPHQ9,
			Score:     result.Score,
			Severity:  result.Severity,
			Diagnosis: result.Diagnosis,
			Responses: datatypes.JSON(raw),
			CreatedAt: now,
		}).Error
		if err != nil {
			return fmt.Errorf("failed to store screening, %w", err)
		}

		p.InitialScreeningCompleted = true
		p.UpdatedAt = now
		if err := tx.Save(&p).Error; err != nil {
			return fmt.Errorf("failed to update profile, %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ScreeningOutcome{Result: result, Profile: &p}, nil
}

func loadProfile(db *gorm.DB, userID string, p *model.Profile) error {
	if err := db.Where("id = ?", userID).First(p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrProfileNotFound
		}
		return fmt.Errorf("failed to load profile, %w", err)
	}

	return nil
}
