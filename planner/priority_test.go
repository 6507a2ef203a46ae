package planner

import (
	"math"
	"testing"
	"time"

	"github.com/sahilchouksey/studysavvy-api/model"
)

func TestPriorityScoreWithoutExamDate(t *testing.T) {
	now := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	subject := model.Subject{Name: "History"}
	chapter := model.Chapter{Name: "WW2", Difficulty: 4, EstimatedHours: 6}

	got := PriorityScore(chapter, subject, now)
	if got != 4 {
		t.Errorf("expected score to reduce to difficulty (4), got %v", got)
	}
}

func TestPriorityScoreWithExamDate(t *testing.T) {
	now := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	exam := time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC) // 10 days out
	subject := model.Subject{Name: "Math", ExamDate: &exam}
	chapter := model.Chapter{Name: "Calculus", Difficulty: 4, EstimatedHours: 3}

	// 100/10 + 2*4 + 3
	want := 21.0
	got := PriorityScore(chapter, subject, now)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("expected score %v, got %v", want, got)
	}
}

func TestPriorityScoreClampsDaysToOne(t *testing.T) {
	now := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	exam := time.Date(2025, 1, 4, 0, 0, 0, 0, time.UTC) // already past
	subject := model.Subject{Name: "Math", ExamDate: &exam}
	chapter := model.Chapter{Name: "Algebra", Difficulty: 2, EstimatedHours: 1}

	// 100/1 + 2*2 + 1
	want := 105.0
	got := PriorityScore(chapter, subject, now)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("expected past exam to clamp to 1 day (score %v), got %v", want, got)
	}
}

func TestPriorityScoreCloserExamScoresHigher(t *testing.T) {
	now := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	soon := now.AddDate(0, 0, 3)
	late := now.AddDate(0, 0, 30)
	chapter := model.Chapter{Difficulty: 3, EstimatedHours: 2}

	soonScore := PriorityScore(chapter, model.Subject{ExamDate: &soon}, now)
	lateScore := PriorityScore(chapter, model.Subject{ExamDate: &late}, now)
	if soonScore <= lateScore {
		t.Errorf("expected closer exam to score higher: %v <= %v", soonScore, lateScore)
	}
}

func TestPriorityScoreIsIdempotent(t *testing.T) {
	now := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	exam := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	subject := model.Subject{Name: "Physics", ExamDate: &exam}
	chapter := model.Chapter{Name: "Optics", Difficulty: 5, EstimatedHours: 7.5}

	first := PriorityScore(chapter, subject, now)
	second := PriorityScore(chapter, subject, now)
	if first != second {
		t.Errorf("expected identical scores for identical inputs, got %v and %v", first, second)
	}
}
