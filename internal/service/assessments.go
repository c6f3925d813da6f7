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

type AssessmentInput struct {
	Type      model.AssessmentType `json:"type" binding:"required,oneof=PHQ9 GAD7 PCL5 ASRS"`
	Responses map[string]any       `json:"responses" binding:"required"`
	Score     *int                 `json:"score" binding:"required,gte=0"`
	Severity  string               `json:"severity" binding:"max=255"`
	Diagnosis string               `json:"diagnosis" binding:"max=2000"`
}

type AssessmentService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewAssessmentService(db *gorm.DB) *AssessmentService {
	return &AssessmentService{db: db, now: time.Now}
}

func (s *AssessmentService) Create(ctx context.Context, userID string, in AssessmentInput) (*model.Assessment, error) {
	if !in.Type.Valid() {
		return nil, apperr.Validation("type", "Unknown assessment type")
	}
	if in.Score == nil {
		return nil, apperr.Validation("score", "This field is required")
	}

	raw, err := json.Marshal(in.Responses)
	if err != nil {
		return nil, apperr.Validation("responses", "Responses must be a JSON object")
	}

	a := &model.Assessment{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      in.Type,
		Score:     *in.Score,
		Severity:  in.Severity,
		Diagnosis: in.Diagnosis,
		Responses: datatypes.JSON(raw),
		CreatedAt: s.now(),
	}

	if err := s.db.WithContext(ctx).Create(a).Error; err != nil {
		return nil, fmt.Errorf("failed to store assessment, %w", err)
	}

	return a, nil
}

// List returns the user's assessments, newest first. An empty typ means all types.
func (s *AssessmentService) List(ctx context.Context, userID string, typ model.AssessmentType, page, size int) (model.Page[model.Assessment], error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)

	if typ != "" {
		if !typ.Valid() {
			return model.Page[model.Assessment]{}, apperr.Validation("type", "Unknown assessment type")
		}
		q = q.Where("type = ?", typ)
	}

	return paginate[model.Assessment](q, "created_at desc, id desc", page, size)
}

func (s *AssessmentService) Get(ctx context.Context, userID, id string) (*model.Assessment, error) {
	var a model.Assessment
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound.WithMessage("Assessment not found")
		}
		return nil, fmt.Errorf("failed to look up assessment, %w", err)
	}

	if a.UserID != userID {
		return nil, apperr.ErrForbidden
	}

	return &a, nil
}
