package services

import (
	"context"
	"fmt"

	"github.com/sahilchouksey/studysavvy-api/model"
	"gorm.io/gorm"
)

// SubjectService handles subject and chapter persistence
type SubjectService struct {
	db *gorm.DB
}

// NewSubjectService creates a new subject service
func NewSubjectService(db *gorm.DB) *SubjectService {
	return &SubjectService{db: db}
}

// ChapterInput describes one chapter of a subject being created
type ChapterInput struct {
	Name           string  `json:"name" validate:"required,min=1,max=255"`
	Difficulty     int     `json:"difficulty" validate:"required,min=1,max=5"`
	EstimatedHours float64 `json:"estimated_hours" validate:"required,gt=0"`
}

// CreateSubject creates a subject and its chapters in one transaction.
// Difficulty and hours ranges are validated at the handler boundary; the
// planner itself assumes well-formed inputs.
func (s *SubjectService) CreateSubject(ctx context.Context, subject *model.Subject, chapters []ChapterInput) error {
	if subject.Color == "" {
		subject.Color = model.RandomSubjectColor()
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(subject).Error; err != nil {
			return fmt.Errorf("failed to create subject: %w", err)
		}

		for _, ch := range chapters {
			chapter := model.Chapter{
				SubjectID:      subject.ID,
				Name:           ch.Name,
				Difficulty:     ch.Difficulty,
				EstimatedHours: ch.EstimatedHours,
			}
			if err := tx.Create(&chapter).Error; err != nil {
				return fmt.Errorf("failed to create chapter: %w", err)
			}
			subject.Chapters = append(subject.Chapters, chapter)
		}
		return nil
	})
}

// DeleteSubject removes a subject together with its chapters and any sessions
// derived from it (the subject owns both).
func (s *SubjectService) DeleteSubject(ctx context.Context, userID, subjectID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var subject model.Subject
		if err := tx.Where("user_id = ? AND id = ?", userID, subjectID).First(&subject).Error; err != nil {
			return err
		}

		if err := tx.Where("subject_id = ?", subjectID).Delete(&model.StudySession{}).Error; err != nil {
			return fmt.Errorf("failed to delete subject sessions: %w", err)
		}
		if err := tx.Where("subject_id = ?", subjectID).Delete(&model.Chapter{}).Error; err != nil {
			return fmt.Errorf("failed to delete subject chapters: %w", err)
		}
		if err := tx.Delete(&subject).Error; err != nil {
			return fmt.Errorf("failed to delete subject: %w", err)
		}
		return nil
	})
}
