package models

import "time"

// Product represents a product in the catalogue.
//
// ManufactureEmail doubles as the owner identifier: it is set from the creator's email claim
// and never changes afterwards. ProduceDate holds a calendar date (UTC midnight) and, like
// ManufactureEmail, is unique across all products.
type Product struct {
	ID               int       `gorm:"primaryKey;autoIncrement"`
	Name             string    `gorm:"type:varchar(50);not null"`
	ProduceDate      time.Time `gorm:"uniqueIndex;not null"`
	ManufacturePhone string    `gorm:"type:varchar(10);not null"`
	ManufactureEmail string    `gorm:"uniqueIndex;type:varchar(255);not null"`
	IsAvailable      bool      `gorm:"not null"`
}

// Owner returns the email of the principal allowed to modify the product.
func (p *Product) Owner() string {
	return p.ManufactureEmail
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
