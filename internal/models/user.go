package models

import "time"

// User is an account that can obtain bearer tokens.
type User struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	Email     string `gorm:"uniqueIndex;type:varchar(255);not null"`
	Password  string `gorm:"type:varchar(255);not null"` // bcrypt hash
	CreatedAt time.Time
}
