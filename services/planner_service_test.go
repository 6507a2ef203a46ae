package services

import (
	"context"
	"testing"
	"time"

	"github.com/sahilchouksey/studysavvy-api/model"
)

var (
	planStart = time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC) // a Monday
	planEnd   = time.Date(2025, 1, 19, 0, 0, 0, 0, time.UTC)
)

func TestGeneratePlanPersistsSessions(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db, "planner@test.dev")
	seedFullWeek(t, db, userID, 2)
	seedSubject(t, db, userID, "Algebra", nil,
		model.Chapter{Name: "Linear Equations", Difficulty: 3, EstimatedHours: 4},
		model.Chapter{Name: "Matrices", Difficulty: 2, EstimatedHours: 2},
	)

	svc := NewPlannerService(db)
	result, err := svc.GeneratePlan(context.Background(), userID, planStart, planEnd)
	if err != nil {
		t.Fatalf("GeneratePlan failed: %v", err)
	}

	if result.RequiredHours != 6 {
		t.Errorf("expected 6 required hours, got %v", result.RequiredHours)
	}
	if result.ScheduledHours != 6 {
		t.Errorf("expected 6 scheduled hours, got %v", result.ScheduledHours)
	}
	if !result.FullyScheduled {
		t.Error("expected plan to be fully scheduled")
	}

	var count int64
	if err := db.Model(&model.StudySession{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		t.Fatalf("failed to count sessions: %v", err)
	}
	if count != int64(len(result.Sessions)) {
		t.Errorf("expected %d persisted sessions, got %d", len(result.Sessions), count)
	}

	for _, session := range result.Sessions {
		if session.UserID != userID {
			t.Errorf("session %s not stamped with user ID", session.UUID)
		}
		if session.StudyPlanID != result.Plan.ID {
			t.Errorf("session %s not linked to plan %d", session.UUID, result.Plan.ID)
		}
	}
}

func TestGeneratePlanSnapshotsAvailability(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db, "snapshot@test.dev")
	seedFullWeek(t, db, userID, 3)
	seedSubject(t, db, userID, "History", nil,
		model.Chapter{Name: "Revolutions", Difficulty: 2, EstimatedHours: 3},
	)

	svc := NewPlannerService(db)
	result, err := svc.GeneratePlan(context.Background(), userID, planStart, planEnd)
	if err != nil {
		t.Fatalf("GeneratePlan failed: %v", err)
	}

	var stored model.StudyPlan
	if err := db.First(&stored, result.Plan.ID).Error; err != nil {
		t.Fatalf("failed to load plan: %v", err)
	}
	if len(stored.Availability) == 0 {
		t.Error("expected availability snapshot to be stored with the plan")
	}
}

func TestGeneratePlanReplacesPreviousPlan(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db, "replace@test.dev")
	seedFullWeek(t, db, userID, 2)
	seedSubject(t, db, userID, "Physics", nil,
		model.Chapter{Name: "Kinematics", Difficulty: 4, EstimatedHours: 4},
	)

	svc := NewPlannerService(db)
	first, err := svc.GeneratePlan(context.Background(), userID, planStart, planEnd)
	if err != nil {
		t.Fatalf("first GeneratePlan failed: %v", err)
	}
	second, err := svc.GeneratePlan(context.Background(), userID, planStart, planEnd)
	if err != nil {
		t.Fatalf("second GeneratePlan failed: %v", err)
	}

	if first.Plan.ID == second.Plan.ID {
		t.Fatal("expected a new plan row on regeneration")
	}

	var planCount int64
	if err := db.Model(&model.StudyPlan{}).Where("user_id = ?", userID).Count(&planCount).Error; err != nil {
		t.Fatalf("failed to count plans: %v", err)
	}
	if planCount != 1 {
		t.Errorf("expected exactly 1 live plan after regeneration, got %d", planCount)
	}

	var sessionCount int64
	if err := db.Model(&model.StudySession{}).Where("user_id = ?", userID).Count(&sessionCount).Error; err != nil {
		t.Fatalf("failed to count sessions: %v", err)
	}
	if sessionCount != int64(len(second.Sessions)) {
		t.Errorf("expected only the new plan's sessions to remain, got %d", sessionCount)
	}
}

func TestGeneratePlanWithNoSubjects(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db, "empty@test.dev")
	seedFullWeek(t, db, userID, 2)

	svc := NewPlannerService(db)
	result, err := svc.GeneratePlan(context.Background(), userID, planStart, planEnd)
	if err != nil {
		t.Fatalf("GeneratePlan failed: %v", err)
	}

	if len(result.Sessions) != 0 {
		t.Errorf("expected no sessions without subjects, got %d", len(result.Sessions))
	}
	if result.RequiredHours != 0 {
		t.Errorf("expected 0 required hours, got %v", result.RequiredHours)
	}
	if !result.FullyScheduled {
		t.Error("an empty plan counts as fully scheduled")
	}
}

func TestGeneratePlanUnderScheduled(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db, "tight@test.dev")
	seedFullWeek(t, db, userID, 1)
	seedSubject(t, db, userID, "Chemistry", nil,
		model.Chapter{Name: "Organic", Difficulty: 5, EstimatedHours: 100},
	)

	svc := NewPlannerService(db)
	result, err := svc.GeneratePlan(context.Background(), userID, planStart, planEnd)
	if err != nil {
		t.Fatalf("GeneratePlan failed: %v", err)
	}

	if result.FullyScheduled {
		t.Error("expected plan to be under-scheduled")
	}
	if result.ScheduledHours >= result.RequiredHours {
		t.Errorf("scheduled %v should be less than required %v", result.ScheduledHours, result.RequiredHours)
	}
}

func TestCurrentPlanReturnsLatest(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db, "current@test.dev")
	seedFullWeek(t, db, userID, 2)
	seedSubject(t, db, userID, "Biology", nil,
		model.Chapter{Name: "Cells", Difficulty: 1, EstimatedHours: 2},
	)

	svc := NewPlannerService(db)
	generated, err := svc.GeneratePlan(context.Background(), userID, planStart, planEnd)
	if err != nil {
		t.Fatalf("GeneratePlan failed: %v", err)
	}

	current, err := svc.CurrentPlan(context.Background(), userID)
	if err != nil {
		t.Fatalf("CurrentPlan failed: %v", err)
	}
	if current.ID != generated.Plan.ID {
		t.Errorf("expected plan %d, got %d", generated.Plan.ID, current.ID)
	}
	if len(current.Sessions) != len(generated.Sessions) {
		t.Errorf("expected %d preloaded sessions, got %d", len(generated.Sessions), len(current.Sessions))
	}
}

func TestSetSessionCompleted(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db, "complete@test.dev")
	otherID := createTestUser(t, db, "other@test.dev")
	seedFullWeek(t, db, userID, 2)
	seedSubject(t, db, userID, "Geography", nil,
		model.Chapter{Name: "Maps", Difficulty: 2, EstimatedHours: 2},
	)

	svc := NewPlannerService(db)
	result, err := svc.GeneratePlan(context.Background(), userID, planStart, planEnd)
	if err != nil {
		t.Fatalf("GeneratePlan failed: %v", err)
	}
	if len(result.Sessions) == 0 {
		t.Fatal("expected at least one session")
	}
	target := result.Sessions[0]

	updated, err := svc.SetSessionCompleted(context.Background(), userID, target.UUID, true)
	if err != nil {
		t.Fatalf("SetSessionCompleted failed: %v", err)
	}
	if !updated.Completed {
		t.Error("expected session to be marked completed")
	}

	var stored model.StudySession
	if err := db.Where("uuid = ?", target.UUID).First(&stored).Error; err != nil {
		t.Fatalf("failed to reload session: %v", err)
	}
	if !stored.Completed {
		t.Error("completed flag not persisted")
	}

	// Another user cannot touch this session
	if _, err := svc.SetSessionCompleted(context.Background(), otherID, target.UUID, false); err == nil {
		t.Error("expected error when updating another user's session")
	}
}
