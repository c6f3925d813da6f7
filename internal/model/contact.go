package model

import "time"

type EmergencyContact struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	UserID       string    `gorm:"not null;index" json:"userId"`
	Name         string    `gorm:"not null" json:"name"`
	Phone        string    `gorm:"not null" json:"phone"`
	Email        *string   `json:"email"`
	Relationship *string   `json:"relationship"`
	IsDefault    bool      `gorm:"not null" json:"isDefault"`
	CreatedAt    time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
