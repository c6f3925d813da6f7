package model

import (
	"slices"
	"time"

	"gorm.io/datatypes"
)

type AssessmentType string

const (
	AssessmentPHQ9 AssessmentType = "PHQ9"
	AssessmentGAD7 AssessmentType = "GAD7"
	AssessmentPCL5 AssessmentType = "PCL5"
	AssessmentASRS AssessmentType = "ASRS"
)

var AssessmentTypes = []AssessmentType{AssessmentPHQ9, AssessmentGAD7, AssessmentPCL5, AssessmentASRS}

func (t AssessmentType) Valid() bool {
	return slices.Contains(AssessmentTypes, t)
}

// Assessment rows are never updated after creation
type Assessment struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	UserID    string         `gorm:"not null;index" json:"userId"`
	Type      AssessmentType `gorm:"not null;size:16;index" json:"type"`
	Score     int            `gorm:"not null" json:"score"`
	Severity  string         `json:"severity,omitempty"`
	Diagnosis string         `json:"diagnosis,omitempty"`
	Responses datatypes.JSON `gorm:"not null" json:"responses"`
	CreatedAt time.Time      `gorm:"index" json:"createdAt"`
}
