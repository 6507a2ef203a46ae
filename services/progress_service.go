package services

import (
	"context"
	"fmt"

	"github.com/sahilchouksey/studysavvy-api/model"
	"gorm.io/gorm"
)

// ProgressService computes study progress statistics over generated sessions
type ProgressService struct {
	db *gorm.DB
}

// NewProgressService creates a new progress service
func NewProgressService(db *gorm.DB) *ProgressService {
	return &ProgressService{db: db}
}

// SubjectProgress is the per-subject breakdown of a progress summary
type SubjectProgress struct {
	SubjectID      uint    `json:"subject_id"`
	SubjectName    string  `json:"subject_name"`
	Color          string  `json:"color"`
	TotalSessions  int64   `json:"total_sessions"`
	DoneSessions   int64   `json:"done_sessions"`
	ScheduledHours float64 `json:"scheduled_hours"`
	CompletedHours float64 `json:"completed_hours"`
}

// ProgressSummary aggregates a user's progress across their current plan
type ProgressSummary struct {
	TotalSessions  int64             `json:"total_sessions"`
	DoneSessions   int64             `json:"done_sessions"`
	ScheduledHours float64           `json:"scheduled_hours"`
	CompletedHours float64           `json:"completed_hours"`
	Subjects       []SubjectProgress `json:"subjects"`
}

// Summary computes the user's overall and per-subject progress
func (s *ProgressService) Summary(ctx context.Context, userID uint) (*ProgressSummary, error) {
	summary := &ProgressSummary{Subjects: []SubjectProgress{}}

	type row struct {
		SubjectID      uint
		SubjectName    string
		Color          string
		TotalSessions  int64
		DoneSessions   int64
		ScheduledHours float64
		CompletedHours float64
	}

	var rows []row
	err := s.db.WithContext(ctx).
		Model(&model.StudySession{}).
		Select(`subjects.id AS subject_id,
			subjects.name AS subject_name,
			subjects.color AS color,
			COUNT(study_sessions.id) AS total_sessions,
			COALESCE(SUM(CASE WHEN study_sessions.completed THEN 1 ELSE 0 END), 0) AS done_sessions,
			COALESCE(SUM(study_sessions.duration), 0) AS scheduled_hours,
			COALESCE(SUM(CASE WHEN study_sessions.completed THEN study_sessions.duration ELSE 0 END), 0) AS completed_hours`).
		Joins("JOIN subjects ON subjects.id = study_sessions.subject_id").
		Where("study_sessions.user_id = ? AND study_sessions.deleted_at IS NULL", userID).
		Group("subjects.id, subjects.name, subjects.color").
		Order("subjects.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute progress: %w", err)
	}

	for _, r := range rows {
		summary.Subjects = append(summary.Subjects, SubjectProgress(r))
		summary.TotalSessions += r.TotalSessions
		summary.DoneSessions += r.DoneSessions
		summary.ScheduledHours += r.ScheduledHours
		summary.CompletedHours += r.CompletedHours
	}

	return summary, nil
}
