package model

import "time"

// RefreshToken is the single live refresh credential of a user. Issuing a new
// one removes every previous row for the same user.
type RefreshToken struct {
	ID        string    `gorm:"primaryKey;size:36"`
	UserID    string    `gorm:"not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time
}
