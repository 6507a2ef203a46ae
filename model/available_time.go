package model

import (
	"time"

	"gorm.io/gorm"
)

// Weekdays lists the weekday names used by the availability table, in
// calendar order. Names match time.Weekday.String().
var Weekdays = []string{
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
	"Sunday",
}

// AvailableTime declares how many hours a user can study on a given weekday.
// The same entry applies to every occurrence of that weekday in the planning
// range. One entry per weekday per user; a missing weekday counts as zero.
type AvailableTime struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	UserID    uint           `gorm:"not null;uniqueIndex:idx_user_weekday" json:"user_id"`
	Day       string         `gorm:"type:varchar(9);not null;uniqueIndex:idx_user_weekday" json:"day"`
	Hours     float64        `gorm:"not null;default:0" json:"hours"` // may be fractional, e.g. 0.5

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// IsValidWeekday reports whether day is one of the seven weekday names.
func IsValidWeekday(day string) bool {
	for _, d := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}
