package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Tanmay7310/Mental-Health-Wellbeing/internal/model"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/pkg/apperr"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ContactInput struct {
	Name         string  `json:"name" binding:"required,max=255"`
	Phone        string  `json:"phone" binding:"required,max=32"`
	Email        *string `json:"email" binding:"omitempty,email,max=254"`
	Relationship *string `json:"relationship" binding:"omitempty,max=100"`
	IsDefault    bool    `json:"isDefault"`
}

// ContactUpdate only touches the fields that are set
type ContactUpdate struct {
	Name         *string `json:"name" binding:"omitempty,min=1,max=255"`
	Phone        *string `json:"phone" binding:"omitempty,min=1,max=32"`
	Email        *string `json:"email" binding:"omitempty,email,max=254"`
	Relationship *string `json:"relationship" binding:"omitempty,max=100"`
	IsDefault    *bool   `json:"isDefault"`
}

// ContactService keeps at most one default contact per user. A new default
// clears the previous one in the same transaction.
type ContactService struct {
	db      *gorm.DB
	alerter Alerter
	now     func() time.Time
}

func NewContactService(db *gorm.DB, alerter Alerter) *ContactService {
	if alerter == nil {
		alerter = LogAlerter{}
	}

	return &ContactService{db: db, alerter: alerter, now: time.Now}
}

func (s *ContactService) List(ctx context.Context, userID string) ([]model.EmergencyContact, error) {
	contacts := []model.EmergencyContact{}

	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Find(&contacts).
		Error
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts, %w", err)
	}

	return contacts, nil
}

func (s *ContactService) Create(ctx context.Context, userID string, in ContactInput) (*model.EmergencyContact, error) {
	now := s.now()
	c := &model.EmergencyContact{
		ID:           uuid.NewString(),
		UserID:       userID,
		Name:         in.Name,
		Phone:        in.Phone,
		Email:        in.Email,
		Relationship: in.Relationship,
		IsDefault:    in.IsDefault,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if c.IsDefault {
			if err := clearDefault(tx, userID, c.ID); err != nil {
				return err
			}
		}

		if err := tx.Create(c).Error; err != nil {
			return fmt.Errorf("failed to create contact, %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return c, nil
}

func (s *ContactService) Update(ctx context.Context, userID, id string, in ContactUpdate) (*model.EmergencyContact, error) {
	var c model.EmergencyContact

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := findContact(tx, userID, id, &c); err != nil {
			return err
		}

		if in.Name != nil {
			c.Name = *in.Name
		}
		if in.Phone != nil {
			c.Phone = *in.Phone
		}
		if in.Email != nil {
			c.Email = in.Email
		}
		if in.Relationship != nil {
			c.Relationship = in.Relationship
		}
		if in.IsDefault != nil {
			if *in.IsDefault && !c.IsDefault {
				if err := clearDefault(tx, userID, c.ID); err != nil {
					return err
				}
			}
			c.IsDefault = *in.IsDefault
		}
		c.UpdatedAt = s.now()

		if err := tx.Save(&c).Error; err != nil {
			return fmt.Errorf("failed to update contact, %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &c, nil
}

func (s *ContactService) Delete(ctx context.Context, userID, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c model.EmergencyContact
		if err := findContact(tx, userID, id, &c); err != nil {
			return err
		}

		if c.IsDefault {
			return apperr.ErrDefaultContactDelete
		}

		if err := tx.Delete(&model.EmergencyContact{}, "id = ?", c.ID).Error; err != nil {
			return fmt.Errorf("failed to delete contact, %w", err)
		}

		return nil
	})
}

// SendAlert hands the contact to the configured alerter
func (s *ContactService) SendAlert(ctx context.Context, userID, id string) error {
	db := s.db.WithContext(ctx)

	var c model.EmergencyContact
	if err := findContact(db, userID, id, &c); err != nil {
		return err
	}

	var profile model.Profile
	if err := db.Where("id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrProfileNotFound
		}
		return fmt.Errorf("failed to load profile, %w", err)
	}

	zap.L().Info("Dispatching emergency alert",
		zap.String("userID", userID),
		zap.String("contactID", c.ID),
	)

	return s.alerter.SendEmergencyAlert(ctx, EmergencyAlert{
		UserID:   userID,
		FullName: profile.FullName,
		Contact:  c,
	})
}

func findContact(tx *gorm.DB, userID, id string, c *model.EmergencyContact) error {
	err := tx.Where("id = ? AND user_id = ?", id, userID).First(c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound.WithMessage("Contact not found")
		}
		return fmt.Errorf("failed to look up contact, %w", err)
	}

	return nil
}

func clearDefault(tx *gorm.DB, userID, exceptID string) error {
	err := tx.Model(&model.EmergencyContact{}).
		Where("user_id = ? AND is_default = ? AND id <> ?", userID, true, exceptID).
		Update("is_default", false).
		Error
	if err != nil {
		return fmt.Errorf("failed to clear default contact, %w", err)
	}

	return nil
}
