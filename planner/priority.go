package planner

import (
	"math"
	"time"

	"github.com/sahilchouksey/studysavvy-api/model"
)

// Heuristic weights for the priority score. Exam proximity dominates as the
// exam gets close, difficulty is double-weighted, chapter size breaks ties
// between similar chapters.
const (
	ExamProximityWeight = 100.0
	DifficultyWeight    = 2.0
)

// PriorityScore computes the urgency score for a chapter. Higher scores are
// scheduled earlier. Without an exam date the score reduces to the chapter's
// difficulty alone.
func PriorityScore(chapter model.Chapter, subject model.Subject, now time.Time) float64 {
	if subject.ExamDate == nil {
		return float64(chapter.Difficulty)
	}

	daysUntilExam := math.Ceil(subject.ExamDate.Sub(now).Hours() / 24)
	if daysUntilExam < 1 {
		daysUntilExam = 1
	}

	examProximityScore := ExamProximityWeight / daysUntilExam
	difficultyScore := DifficultyWeight * float64(chapter.Difficulty)
	timeScore := chapter.EstimatedHours

	return examProximityScore + difficultyScore + timeScore
}
