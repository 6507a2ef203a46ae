// Package planner generates day-by-day study plans. Given a user's subjects
// with their chapters, a weekly availability table and a date range, it packs
// chapters into calendar days greedily by priority: chapters are scored,
// sorted, and placed one after another onto the earliest days that still have
// capacity. It is a heuristic packer, not an optimal scheduler.
//
// Generation is a pure in-memory computation. All state (the date cursor and
// the per-day hours accumulator) lives inside a single Generate call, so
// concurrent calls are independent.
package planner

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sahilchouksey/studysavvy-api/model"
)

// SessionStartTime is the fixed time-of-day stamped on every session. The
// planner does no intraday scheduling.
const SessionStartTime = "09:00"

// Plan is the result of one generation run: the generated sessions plus the
// date range they were generated for. When total capacity runs out before
// every chapter fits, the unplaced remainder is dropped without error; compare
// scheduled against required hours to detect that.
type Plan struct {
	Sessions  []model.StudySession `json:"sessions"`
	StartDate time.Time            `json:"start_date"`
	EndDate   time.Time            `json:"end_date"`
}

type unit struct {
	chapter model.Chapter
	subject model.Subject
	score   float64
}

// Generate produces a study plan for the given subjects and weekly
// availability between startDate and endDate inclusive.
//
// Chapters are sorted by descending priority score; ties keep their original
// subject/chapter enumeration order (stable sort). A single date cursor is
// shared across all chapters and only ever moves forward, so higher-priority
// chapters claim the earliest days. A chapter larger than one day's capacity
// splits into sessions across consecutive study days; a day left with spare
// capacity is offered to the next chapter before the cursor advances.
//
// Empty subjects or an inverted date range yield an empty session list.
func Generate(subjects []model.Subject, available []model.AvailableTime, startDate, endDate time.Time) Plan {
	startDate = normalizeDate(startDate)
	endDate = normalizeDate(endDate)

	units := make([]unit, 0)
	for _, subject := range subjects {
		for _, chapter := range subject.Chapters {
			units = append(units, unit{
				chapter: chapter,
				subject: subject,
				score:   PriorityScore(chapter, subject, startDate),
			})
		}
	}
	sort.SliceStable(units, func(i, j int) bool {
		return units[i].score > units[j].score
	})

	sessions := []model.StudySession{}
	scheduled := make(map[string]float64)
	cursor := startDate

	for _, u := range units {
		remaining := u.chapter.EstimatedHours

		for remaining > 0 {
			day, free, ok := nextStudyDay(cursor, endDate, available, scheduled)
			cursor = day
			if !ok {
				// Planning range exhausted; the rest of this chapter
				// (and everything after it) is dropped.
				break
			}

			hours := math.Min(remaining, free)
			sessions = append(sessions, model.StudySession{
				UUID:          uuid.NewString(),
				SubjectID:     u.subject.ID,
				Title:         u.chapter.Name,
				ScheduledDate: day,
				ScheduledTime: SessionStartTime,
				Duration:      hours,
				Completed:     false,
			})

			remaining -= hours
			key := dateKey(day)
			scheduled[key] += hours

			// Day fully consumed: the next session starts scanning from
			// the following day, even for the same chapter.
			if scheduled[key] >= hoursForDay(available, day) {
				cursor = cursor.AddDate(0, 0, 1)
			}
		}

		if cursor.After(endDate) {
			break
		}
	}

	return Plan{Sessions: sessions, StartDate: startDate, EndDate: endDate}
}

// RequiredHours sums the estimated hours of every chapter across subjects.
func RequiredHours(subjects []model.Subject) float64 {
	var total float64
	for _, subject := range subjects {
		for _, chapter := range subject.Chapters {
			total += chapter.EstimatedHours
		}
	}
	return total
}

// ScheduledHours sums the durations of the generated sessions.
func (p Plan) ScheduledHours() float64 {
	var total float64
	for _, s := range p.Sessions {
		total += s.Duration
	}
	return total
}
