package service

import (
	"strings"

	"github.com/samber/lo"
)

// Specialties are served instead of a real directory lookup
var Specialties = []string{
	"Psychiatrist",
	"Psychologist",
	"Therapist",
	"Counselor",
	"Mental Health Clinic",
	"Crisis Center",
}

const (
	placeholderAddress = "Address not available - Use Google Maps search"
	placeholderPhone   = "Contact not available"
	placeholderRating  = 4.5
)

type Doctor struct {
	Name      string   `json:"name"`
	Specialty string   `json:"specialty"`
	Address   string   `json:"address"`
	Phone     string   `json:"phone"`
	Rating    float64  `json:"rating"`
	Distance  *float64 `json:"distance"` // km, unknown for placeholder entries
}

type DoctorService struct {
	specialties []string
}

func NewDoctorService() *DoctorService {
	return &DoctorService{specialties: Specialties}
}

// Search matches term against the known specialties, case insensitive.
// The coordinates are accepted for API compatibility but the placeholder
// directory has no locations to measure against.
func (s *DoctorService) Search(term string, lat, lng *float64) []Doctor {
	term = strings.ToLower(strings.TrimSpace(term))

	return lo.FilterMap(s.specialties, func(sp string, _ int) (Doctor, bool) {
		if term != "" && !strings.Contains(strings.ToLower(sp), term) {
			return Doctor{}, false
		}

		return Doctor{
			Name:      "Sample " + sp,
			Specialty: sp,
			Address:   placeholderAddress,
			Phone:     placeholderPhone,
			Rating:    placeholderRating,
		}, true
	})
}

func (s *DoctorService) Suggestions() []string {
	return append([]string(nil), s.specialties...)
}
