package models

import (
	"time"

	"gorm.io/datatypes"
)

type Stylist struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"index" json:"salon_id"`

	Name        string                      `gorm:"size:100;not null" json:"name"`
	Specialties datatypes.JSONSlice[string] `json:"specialties"`
	Available   bool                        `json:"available"`
	Phone       string                      `gorm:"size:20" json:"phone"`
	Email       string                      `gorm:"size:100" json:"email"`
	AvatarKey   string                      `gorm:"size:255" json:"avatar_key"`

	// Breaks are kept in insertion order through Position.
	Breaks []StylistBreak `gorm:"constraint:OnDelete:CASCADE;" json:"breaks"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type StylistBreak struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	StylistID uint `gorm:"index" json:"stylist_id"`
	Position  int  `json:"position"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Reason    string    `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}
