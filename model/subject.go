package model

import (
	"math/rand"
	"time"

	"gorm.io/gorm"
)

// Subject represents a course/topic a user is studying towards, optionally
// deadline-bound by an exam date. A subject owns its chapters; deleting a
// subject removes its chapters and any sessions derived from them.
type Subject struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
	UserID     uint           `gorm:"not null;index" json:"user_id"`
	Name       string         `gorm:"not null" json:"name"`
	Difficulty int            `gorm:"not null;default:3" json:"difficulty"` // 1-5
	ExamDate   *time.Time     `json:"exam_date"`
	Color      string         `gorm:"type:varchar(7)" json:"color"` // hex display color

	// Relationships
	User     User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Chapters []Chapter `gorm:"foreignKey:SubjectID;constraint:OnDelete:CASCADE" json:"chapters,omitempty"`
}

// Chapter is the smallest schedulable piece of learning content, bound to
// exactly one subject. The planner only reads chapters, it never mutates them.
type Chapter struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	SubjectID      uint           `gorm:"not null;index" json:"subject_id"`
	Name           string         `gorm:"not null" json:"name"`
	Difficulty     int            `gorm:"not null;default:3" json:"difficulty"` // 1-5
	EstimatedHours float64        `gorm:"not null" json:"estimated_hours"`
	Completed      bool           `gorm:"default:false" json:"completed"`

	// Relationships
	Subject Subject `gorm:"foreignKey:SubjectID;constraint:OnDelete:CASCADE" json:"-"`
}

// SubjectColorOptions is the default palette for subject display colors.
var SubjectColorOptions = []string{
	"#8B5CF6", // Purple
	"#3B82F6", // Blue
	"#10B981", // Green
	"#F59E0B", // Amber
	"#EF4444", // Red
	"#EC4899", // Pink
	"#6366F1", // Indigo
	"#14B8A6", // Teal
	"#F97316", // Orange
}

// RandomSubjectColor picks a color from the default palette.
func RandomSubjectColor() string {
	return SubjectColorOptions[rand.Intn(len(SubjectColorOptions))]
}
