package planner

import (
	"math"
	"testing"
	"time"

	"github.com/sahilchouksey/studysavvy-api/model"
)

// 2025-01-06 is a Monday.
var (
	monday = time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	sunday = time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC)
)

func everyDay(hours float64) []model.AvailableTime {
	entries := make([]model.AvailableTime, 0, len(model.Weekdays))
	for _, day := range model.Weekdays {
		entries = append(entries, model.AvailableTime{Day: day, Hours: hours})
	}
	return entries
}

func oneSubject(chapters ...model.Chapter) []model.Subject {
	return []model.Subject{{ID: 1, Name: "Biology", Difficulty: 3, Chapters: chapters}}
}

func TestGenerateSplitsChapterAcrossDays(t *testing.T) {
	subjects := oneSubject(model.Chapter{ID: 1, Name: "Cells", Difficulty: 3, EstimatedHours: 4})

	plan := Generate(subjects, everyDay(2), monday, sunday)

	if len(plan.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(plan.Sessions))
	}
	for i, want := range []time.Time{monday, monday.AddDate(0, 0, 1)} {
		s := plan.Sessions[i]
		if !s.ScheduledDate.Equal(want) {
			t.Errorf("session %d: expected date %v, got %v", i, want, s.ScheduledDate)
		}
		if s.Duration != 2 {
			t.Errorf("session %d: expected 2h duration, got %v", i, s.Duration)
		}
		if s.Title != "Cells" || s.SubjectID != 1 {
			t.Errorf("session %d: unexpected title/subject: %q %d", i, s.Title, s.SubjectID)
		}
		if s.Completed {
			t.Errorf("session %d: expected completed=false at creation", i)
		}
		if s.ScheduledTime != SessionStartTime {
			t.Errorf("session %d: expected start time %q, got %q", i, SessionStartTime, s.ScheduledTime)
		}
	}
}

func TestGenerateSkipsZeroHourWeekday(t *testing.T) {
	available := everyDay(2)
	available[0].Hours = 0 // Monday

	subjects := oneSubject(model.Chapter{ID: 1, Name: "Cells", Difficulty: 3, EstimatedHours: 2})
	plan := Generate(subjects, available, monday, sunday)

	if len(plan.Sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(plan.Sessions))
	}
	tuesday := monday.AddDate(0, 0, 1)
	if !plan.Sessions[0].ScheduledDate.Equal(tuesday) {
		t.Errorf("expected session on Tuesday %v, got %v", tuesday, plan.Sessions[0].ScheduledDate)
	}
}

func TestGenerateZeroCapacitySingleDayRange(t *testing.T) {
	available := everyDay(2)
	available[0].Hours = 0 // Monday

	subjects := oneSubject(model.Chapter{ID: 1, Name: "Cells", Difficulty: 3, EstimatedHours: 2})
	plan := Generate(subjects, available, monday, monday)

	if len(plan.Sessions) != 0 {
		t.Fatalf("expected no sessions, got %d", len(plan.Sessions))
	}
}

func TestGenerateEmptySubjects(t *testing.T) {
	plan := Generate(nil, everyDay(2), monday, sunday)
	if len(plan.Sessions) != 0 {
		t.Fatalf("expected empty plan, got %d sessions", len(plan.Sessions))
	}
	if !plan.StartDate.Equal(monday) || !plan.EndDate.Equal(sunday) {
		t.Errorf("expected date range echoed back, got %v..%v", plan.StartDate, plan.EndDate)
	}
}

func TestGenerateInvertedDateRange(t *testing.T) {
	subjects := oneSubject(model.Chapter{ID: 1, Name: "Cells", Difficulty: 3, EstimatedHours: 2})
	plan := Generate(subjects, everyDay(2), sunday, monday)
	if len(plan.Sessions) != 0 {
		t.Fatalf("expected no sessions for inverted range, got %d", len(plan.Sessions))
	}
}

func TestGenerateCapacityInvariant(t *testing.T) {
	available := []model.AvailableTime{
		{Day: "Monday", Hours: 1.5},
		{Day: "Wednesday", Hours: 3},
		{Day: "Friday", Hours: 0.5},
		{Day: "Saturday", Hours: 4},
	}
	subjects := []model.Subject{
		{ID: 1, Difficulty: 4, Chapters: []model.Chapter{
			{ID: 1, Name: "A", Difficulty: 5, EstimatedHours: 3.5},
			{ID: 2, Name: "B", Difficulty: 2, EstimatedHours: 1.25},
		}},
		{ID: 2, Difficulty: 1, Chapters: []model.Chapter{
			{ID: 3, Name: "C", Difficulty: 1, EstimatedHours: 6},
		}},
	}

	plan := Generate(subjects, available, monday, monday.AddDate(0, 0, 27))

	perDay := make(map[string]float64)
	for _, s := range plan.Sessions {
		perDay[s.ScheduledDate.Format("2006-01-02")] += s.Duration
	}
	for day, hours := range perDay {
		date, _ := time.Parse("2006-01-02", day)
		declared := hoursForDay(available, date)
		if hours > declared+1e-9 {
			t.Errorf("day %s overbooked: %v scheduled vs %v declared", day, hours, declared)
		}
	}
}

func TestGenerateConservesChapterHours(t *testing.T) {
	subjects := oneSubject(
		model.Chapter{ID: 1, Name: "A", Difficulty: 3, EstimatedHours: 3.5},
		model.Chapter{ID: 2, Name: "B", Difficulty: 3, EstimatedHours: 1.25},
	)

	plan := Generate(subjects, everyDay(2), monday, sunday)

	perChapter := make(map[string]float64)
	for _, s := range plan.Sessions {
		perChapter[s.Title] += s.Duration
	}
	if math.Abs(perChapter["A"]-3.5) > 1e-9 {
		t.Errorf("chapter A: expected 3.5h total, got %v", perChapter["A"])
	}
	if math.Abs(perChapter["B"]-1.25) > 1e-9 {
		t.Errorf("chapter B: expected 1.25h total, got %v", perChapter["B"])
	}
}

func TestGenerateSharesDayBetweenChapters(t *testing.T) {
	subjects := oneSubject(
		model.Chapter{ID: 1, Name: "A", Difficulty: 3, EstimatedHours: 1},
		model.Chapter{ID: 2, Name: "B", Difficulty: 3, EstimatedHours: 1},
	)

	plan := Generate(subjects, everyDay(2), monday, sunday)

	if len(plan.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(plan.Sessions))
	}
	// Both chapters fit on Monday: the first leaves 1h spare, which the
	// second claims before the cursor advances.
	for i, s := range plan.Sessions {
		if !s.ScheduledDate.Equal(monday) {
			t.Errorf("session %d: expected Monday, got %v", i, s.ScheduledDate)
		}
	}
}

func TestGeneratePriorityOrderClaimsEarlierDays(t *testing.T) {
	urgent := monday.AddDate(0, 0, 2)
	relaxed := monday.AddDate(0, 0, 60)
	subjects := []model.Subject{
		{ID: 1, Name: "Relaxed", Difficulty: 3, ExamDate: &relaxed, Chapters: []model.Chapter{
			{ID: 1, Name: "Low", Difficulty: 3, EstimatedHours: 4},
		}},
		{ID: 2, Name: "Urgent", Difficulty: 3, ExamDate: &urgent, Chapters: []model.Chapter{
			{ID: 2, Name: "High", Difficulty: 3, EstimatedHours: 4},
		}},
	}

	plan := Generate(subjects, everyDay(2), monday, sunday)

	var firstHigh, firstLow time.Time
	for _, s := range plan.Sessions {
		switch s.Title {
		case "High":
			if firstHigh.IsZero() || s.ScheduledDate.Before(firstHigh) {
				firstHigh = s.ScheduledDate
			}
		case "Low":
			if firstLow.IsZero() || s.ScheduledDate.Before(firstLow) {
				firstLow = s.ScheduledDate
			}
		}
	}
	if firstHigh.IsZero() || firstLow.IsZero() {
		t.Fatal("expected sessions for both chapters")
	}
	if firstHigh.After(firstLow) {
		t.Errorf("higher-priority chapter starts %v, after lower-priority %v", firstHigh, firstLow)
	}
}

func TestGenerateStableOrderOnTiedScores(t *testing.T) {
	// Same difficulty, same hours, no exam dates: exact score ties must keep
	// the subject/chapter enumeration order.
	subjects := []model.Subject{
		{ID: 1, Name: "First", Difficulty: 3, Chapters: []model.Chapter{
			{ID: 1, Name: "Alpha", Difficulty: 3, EstimatedHours: 2},
		}},
		{ID: 2, Name: "Second", Difficulty: 3, Chapters: []model.Chapter{
			{ID: 2, Name: "Beta", Difficulty: 3, EstimatedHours: 2},
		}},
	}

	plan := Generate(subjects, everyDay(2), monday, sunday)

	if len(plan.Sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(plan.Sessions))
	}
	if plan.Sessions[0].Title != "Alpha" || plan.Sessions[1].Title != "Beta" {
		t.Errorf("expected stable input order on ties, got %q then %q",
			plan.Sessions[0].Title, plan.Sessions[1].Title)
	}
	if plan.Sessions[0].ScheduledDate.After(plan.Sessions[1].ScheduledDate) {
		t.Errorf("first enumerated chapter scheduled later than second")
	}
}

func TestGenerateDropsRemainderAtEndDate(t *testing.T) {
	// 100 required hours against 14 available: generation must terminate and
	// schedule exactly the capacity of the week.
	subjects := oneSubject(model.Chapter{ID: 1, Name: "Huge", Difficulty: 3, EstimatedHours: 100})

	done := make(chan Plan, 1)
	go func() { done <- Generate(subjects, everyDay(2), monday, sunday) }()

	var plan Plan
	select {
	case plan = <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Generate did not terminate")
	}

	if got := plan.ScheduledHours(); math.Abs(got-14) > 1e-9 {
		t.Errorf("expected 14 scheduled hours (7 days x 2h), got %v", got)
	}
	if len(plan.Sessions) != 7 {
		t.Errorf("expected 7 sessions, got %d", len(plan.Sessions))
	}
}

func TestGenerateTerminatesWithNoCapacityAtAll(t *testing.T) {
	subjects := oneSubject(model.Chapter{ID: 1, Name: "Cells", Difficulty: 3, EstimatedHours: 2})

	done := make(chan Plan, 1)
	go func() { done <- Generate(subjects, everyDay(0), monday, monday.AddDate(0, 0, 365)) }()

	select {
	case plan := <-done:
		if len(plan.Sessions) != 0 {
			t.Errorf("expected no sessions with zero capacity, got %d", len(plan.Sessions))
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Generate did not terminate with all-zero availability")
	}
}

func TestGenerateFirstWeekdayEntryWins(t *testing.T) {
	available := []model.AvailableTime{
		{Day: "Monday", Hours: 3},
		{Day: "Monday", Hours: 1}, // duplicate, must be ignored
	}
	subjects := oneSubject(model.Chapter{ID: 1, Name: "Cells", Difficulty: 3, EstimatedHours: 3})

	plan := Generate(subjects, available, monday, monday)

	if len(plan.Sessions) != 1 {
		t.Fatalf("expected 1 session, got %d", len(plan.Sessions))
	}
	if plan.Sessions[0].Duration != 3 {
		t.Errorf("expected first Monday entry (3h) to win, got %v", plan.Sessions[0].Duration)
	}
}

func TestGenerateAssignsUniqueSessionUUIDs(t *testing.T) {
	subjects := oneSubject(model.Chapter{ID: 1, Name: "Cells", Difficulty: 3, EstimatedHours: 6})

	plan := Generate(subjects, everyDay(2), monday, sunday)

	seen := make(map[string]bool)
	for _, s := range plan.Sessions {
		if s.UUID == "" {
			t.Fatal("session missing UUID")
		}
		if seen[s.UUID] {
			t.Fatalf("duplicate session UUID %s", s.UUID)
		}
		seen[s.UUID] = true
	}
}

func TestRequiredAndScheduledHours(t *testing.T) {
	subjects := []model.Subject{
		{ID: 1, Chapters: []model.Chapter{{Name: "A", Difficulty: 3, EstimatedHours: 2}}},
		{ID: 2, Chapters: []model.Chapter{{Name: "B", Difficulty: 3, EstimatedHours: 3}}},
	}
	if got := RequiredHours(subjects); got != 5 {
		t.Errorf("expected 5 required hours, got %v", got)
	}

	plan := Generate(subjects, everyDay(2), monday, sunday)
	if got := plan.ScheduledHours(); math.Abs(got-5) > 1e-9 {
		t.Errorf("expected 5 scheduled hours, got %v", got)
	}
}
