package model

import "time"

// VitalReading is immutable. IsEmergency is computed once when the row is created.
type VitalReading struct {
	ID                     string    `gorm:"primaryKey;size:36" json:"id"`
	UserID                 string    `gorm:"not null;index" json:"userId"`
	HeartRate              *int      `json:"heartRate"`
	BloodPressureSystolic  *int      `json:"bloodPressureSystolic"`
	BloodPressureDiastolic *int      `json:"bloodPressureDiastolic"`
	OxygenSaturation       *float64  `json:"oxygenSaturation"`
	Temperature            *float64  `json:"temperature"` // Fahrenheit
	IsEmergency            bool      `gorm:"not null" json:"isEmergency"`
	CreatedAt              time.Time `gorm:"index" json:"createdAt"`
}
