package internal

import (
	"github.com/Tanmay7310/Mental-Health-Wellbeing/internal/service"
	"github.com/Tanmay7310/Mental-Health-Wellbeing/pkg/security"

	"gorm.io/gorm"
)

type Deps struct {
	DB          *gorm.DB
	Argon       *security.ArgonHash
	Tokens      *security.TokenService
	Auth        *service.AuthService
	Profiles    *service.ProfileService
	Vitals      *service.VitalService
	Contacts    *service.ContactService
	Assessments *service.AssessmentService
	Doctors     *service.DoctorService
}

// NewDeps wires every service on top of db. A nil alerter falls back to
// service.LogAlerter.
func NewDeps(db *gorm.DB, argon *security.ArgonHash, tokens *security.TokenService, alerter service.Alerter) *Deps {
	return &Deps{
		DB:          db,
		Argon:       argon,
		Tokens:      tokens,
		Auth:        service.NewAuthService(db, argon, tokens),
		Profiles:    service.NewProfileService(db),
		Vitals:      service.NewVitalService(db),
		Contacts:    service.NewContactService(db, alerter),
		Assessments: service.NewAssessmentService(db),
		Doctors:     service.NewDoctorService(),
	}
}
