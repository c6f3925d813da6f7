package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Tanmay7310/Mental-Health-Wellbeing/internal/model"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/pkg/apperr"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	minHeartRate   = 50
	maxHeartRate   = 120
	maxSystolic    = 180
	maxDiastolic   = 120
	minOxygen      = 90.0
	minTemperature = 95.0 // °F
	maxTemperature = 104.0
)

type VitalInput struct {
	HeartRate              *int     `json:"heartRate" binding:"omitempty,gte=0,lte=400"`
	BloodPressureSystolic  *int     `json:"bloodPressureSystolic" binding:"omitempty,gte=0,lte=400"`
	BloodPressureDiastolic *int     `json:"bloodPressureDiastolic" binding:"omitempty,gte=0,lte=400"`
	OxygenSaturation       *float64 `json:"oxygenSaturation" binding:"omitempty,gte=0,lte=100"`
	Temperature            *float64 `json:"temperature" binding:"omitempty,gte=50,lte=130"`
}

// IsEmergency reports whether any present vital is outside its safe range.
// Absent values never trigger.
func IsEmergency(r *model.VitalReading) bool {
	if r.HeartRate != nil && (*r.HeartRate < minHeartRate || *r.HeartRate > maxHeartRate) {
		return true
	}
	if r.BloodPressureSystolic != nil && *r.BloodPressureSystolic > maxSystolic {
		return true
	}
	if r.BloodPressureDiastolic != nil && *r.BloodPressureDiastolic > maxDiastolic {
		return true
	}
	if r.OxygenSaturation != nil && *r.OxygenSaturation < minOxygen {
		return true
	}
	if r.Temperature != nil && (*r.Temperature < minTemperature || *r.Temperature > maxTemperature) {
		return true
	}

	return false
}

type VitalService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewVitalService(db *gorm.DB) *VitalService {
	return &VitalService{db: db, now: time.Now}
}

func (s *VitalService) Create(ctx context.Context, userID string, in VitalInput) (*model.VitalReading, error) {
	if in.HeartRate == nil && in.BloodPressureSystolic == nil && in.BloodPressureDiastolic == nil &&
		in.OxygenSaturation == nil && in.Temperature == nil {
		return nil, apperr.Validation("vitals", "At least one vital sign is required")
	}

	r := &model.VitalReading{
		ID:                     uuid.NewString(),
		UserID:                 userID,
		HeartRate:              in.HeartRate,
		BloodPressureSystolic:  in.BloodPressureSystolic,
		BloodPressureDiastolic: in.BloodPressureDiastolic,
		OxygenSaturation:       in.OxygenSaturation,
		Temperature:            in.Temperature,
		CreatedAt:              s.now(),
	}
	r.IsEmergency = IsEmergency(r)

	if err := s.db.WithContext(ctx).Create(r).Error; err != nil {
		return nil, fmt.Errorf("failed to store vital reading, %w", err)
	}

	return r, nil
}

// List returns the user's readings, newest first
func (s *VitalService) List(ctx context.Context, userID string, page, size int) (model.Page[model.VitalReading], error) {
	return paginate[model.VitalReading](s.db.WithContext(ctx).Where("user_id = ?", userID), "created_at desc, id desc", page, size)
}

func (s *VitalService) Get(ctx context.Context, userID, id string) (*model.VitalReading, error) {
	var r model.VitalReading
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&r).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound.WithMessage("Vital reading not found")
		}
		return nil, fmt.Errorf("failed to look up vital reading, %w", err)
	}

	if r.UserID != userID {
		return nil, apperr.ErrForbidden
	}

	return &r, nil
}
