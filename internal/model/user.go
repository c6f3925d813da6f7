// Package model defines database models
package model

import "time"

type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Enabled      bool      `gorm:"not null" json:"enabled"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Profile shares its primary key with the owning User
type Profile struct {
	ID                        string    `gorm:"primaryKey;size:36" json:"id"`
	FullName                  string    `gorm:"not null" json:"fullName"`
	Email                     string    `gorm:"not null" json:"email"`
	Phone                     *string   `json:"phone"`
	HomeAddress               *string   `json:"homeAddress"`
	Country                   *string   `json:"country"`
	Pincode                   *string   `json:"pincode"`
	InitialScreeningCompleted bool      `gorm:"not null" json:"initialScreeningCompleted"`
	CreatedAt                 time.Time `json:"createdAt"`
	UpdatedAt                 time.Time `json:"updatedAt"`
}
