package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/sahilchouksey/studysavvy-api/model"
	"github.com/sahilchouksey/studysavvy-api/planner"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PlannerService runs the plan generator against a user's persisted subjects
// and availability, and stores the resulting sessions. The generator itself
// is pure; this service owns all the I/O around it.
type PlannerService struct {
	db *gorm.DB
}

// NewPlannerService creates a new planner service
func NewPlannerService(db *gorm.DB) *PlannerService {
	return &PlannerService{db: db}
}

// PlanResult is what a generation run returns to the caller. RequiredHours
// and ScheduledHours let the caller detect an under-scheduled plan; the
// generator drops unplaceable hours silently.
type PlanResult struct {
	Plan           model.StudyPlan      `json:"plan"`
	Sessions       []model.StudySession `json:"sessions"`
	RequiredHours  float64              `json:"required_hours"`
	ScheduledHours float64              `json:"scheduled_hours"`
	FullyScheduled bool                 `json:"fully_scheduled"`
}

// GeneratePlan generates a fresh study plan for the user between startDate
// and endDate, replacing any previously generated plan and its sessions in a
// single transaction.
func (s *PlannerService) GeneratePlan(ctx context.Context, userID uint, startDate, endDate time.Time) (*PlanResult, error) {
	var subjects []model.Subject
	if err := s.db.WithContext(ctx).
		Preload("Chapters", func(db *gorm.DB) *gorm.DB { return db.Order("chapters.id ASC") }).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&subjects).Error; err != nil {
		return nil, fmt.Errorf("failed to load subjects: %w", err)
	}

	var availableTimes []model.AvailableTime
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&availableTimes).Error; err != nil {
		return nil, fmt.Errorf("failed to load available times: %w", err)
	}

	plan := planner.Generate(subjects, availableTimes, startDate, endDate)

	snapshot, err := json.Marshal(availableTimes)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot availability: %w", err)
	}

	required := planner.RequiredHours(subjects)
	scheduled := plan.ScheduledHours()

	planRecord := model.StudyPlan{
		UserID:         userID,
		StartDate:      plan.StartDate,
		EndDate:        plan.EndDate,
		RequiredHours:  required,
		ScheduledHours: scheduled,
		Availability:   datatypes.JSON(snapshot),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// A user has at most one active plan; regeneration replaces it.
		if err := tx.Where("user_id = ?", userID).Delete(&model.StudySession{}).Error; err != nil {
			return fmt.Errorf("failed to clear old sessions: %w", err)
		}
		if err := tx.Where("user_id = ?", userID).Delete(&model.StudyPlan{}).Error; err != nil {
			return fmt.Errorf("failed to clear old plan: %w", err)
		}

		if err := tx.Create(&planRecord).Error; err != nil {
			return fmt.Errorf("failed to save plan: %w", err)
		}

		for i := range plan.Sessions {
			plan.Sessions[i].UserID = userID
			plan.Sessions[i].StudyPlanID = planRecord.ID
		}
		if len(plan.Sessions) > 0 {
			if err := tx.CreateInBatches(plan.Sessions, 100).Error; err != nil {
				return fmt.Errorf("failed to save sessions: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if scheduled+1e-9 < required {
		log.Printf("Plan %d for user %d under-scheduled: %.2f of %.2f hours placed",
			planRecord.ID, userID, scheduled, required)
	}

	return &PlanResult{
		Plan:           planRecord,
		Sessions:       plan.Sessions,
		RequiredHours:  required,
		ScheduledHours: scheduled,
		FullyScheduled: scheduled+1e-9 >= required,
	}, nil
}

// CurrentPlan returns the user's latest generated plan with its sessions.
func (s *PlannerService) CurrentPlan(ctx context.Context, userID uint) (*model.StudyPlan, error) {
	var plan model.StudyPlan
	err := s.db.WithContext(ctx).
		Preload("Sessions", func(db *gorm.DB) *gorm.DB {
			return db.Order("scheduled_date ASC, id ASC")
		}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&plan).Error
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// SetSessionCompleted toggles the completed flag on one of the user's
// sessions. This is the only mutation sessions support after generation.
func (s *PlannerService) SetSessionCompleted(ctx context.Context, userID uint, sessionUUID string, completed bool) (*model.StudySession, error) {
	var session model.StudySession
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND uuid = ?", userID, sessionUUID).
		First(&session).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).
		Model(&session).
		Update("completed", completed).Error; err != nil {
		return nil, fmt.Errorf("failed to update session: %w", err)
	}

	session.Completed = completed
	return &session, nil
}
