package model

import "time"

// Session is the single durable row holding the credential pair.
// Written atomically: a row never exists with only one of the two tokens.
type Session struct {
	ID           uint   `gorm:"primaryKey"`
	AccessToken  string `gorm:"not null"`
	RefreshToken string `gorm:"not null"`
	UpdatedAt    time.Time
}
