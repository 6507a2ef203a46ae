package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// StudySession is one scheduled block of study time on one calendar date.
// Sessions are immutable once generated; only the Completed flag is toggled
// afterwards, by the user through the API.
type StudySession struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	UUID          string         `gorm:"type:varchar(36);uniqueIndex;not null" json:"uuid"`
	UserID        uint           `gorm:"index" json:"user_id"`
	StudyPlanID   uint           `gorm:"index" json:"study_plan_id"`
	SubjectID     uint           `gorm:"not null;index" json:"subject_id"`
	Title         string         `gorm:"not null" json:"title"` // chapter name copied at scheduling time
	ScheduledDate time.Time      `gorm:"type:date;not null;index" json:"scheduled_date"`
	ScheduledTime string         `gorm:"type:varchar(5);not null" json:"scheduled_time"` // fixed "09:00"
	Duration      float64        `gorm:"not null" json:"duration"`                       // hours, may be fractional
	Completed     bool           `gorm:"default:false" json:"completed"`

	// Relationships
	User    User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Subject Subject `gorm:"foreignKey:SubjectID;constraint:OnDelete:CASCADE" json:"-"`
}

// StudyPlan records one plan-generation run: its date range, the availability
// snapshot it was generated against, and the hour totals a caller can compare
// to detect under-scheduled plans (the generator itself never errors on them).
type StudyPlan struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	UserID         uint           `gorm:"not null;index" json:"user_id"`
	StartDate      time.Time      `gorm:"type:date;not null" json:"start_date"`
	EndDate        time.Time      `gorm:"type:date;not null" json:"end_date"`
	RequiredHours  float64        `json:"required_hours"`  // sum of estimated hours across all chapters
	ScheduledHours float64        `json:"scheduled_hours"` // sum of generated session durations
	Availability   datatypes.JSON `json:"availability"`    // weekly table snapshot at generation time

	// Relationships
	User     User           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Sessions []StudySession `gorm:"foreignKey:StudyPlanID;constraint:OnDelete:CASCADE" json:"sessions,omitempty"`
}

// TableName specifies the table name for StudyPlan
func (StudyPlan) TableName() string {
	return "study_plans"
}
