package services

import (
	"testing"
	"time"

	"github.com/sahilchouksey/studysavvy-api/database"
	"github.com/sahilchouksey/studysavvy-api/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a fresh in-memory SQLite database with all tables migrated
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(database.Models()...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// createTestUser inserts a user and returns its ID
func createTestUser(t *testing.T, db *gorm.DB, email string) uint {
	t.Helper()

	user := model.User{
		Email:        email,
		PasswordHash: "not-a-real-hash",
		Name:         "Test User",
		Role:         "student",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user.ID
}

// seedSubject inserts a subject with chapters for the given user
func seedSubject(t *testing.T, db *gorm.DB, userID uint, name string, examDate *time.Time, chapters ...model.Chapter) model.Subject {
	t.Helper()

	subject := model.Subject{
		UserID:     userID,
		Name:       name,
		Difficulty: 3,
		ExamDate:   examDate,
		Color:      "#6366F1",
	}
	if err := db.Create(&subject).Error; err != nil {
		t.Fatalf("failed to create subject: %v", err)
	}

	for i := range chapters {
		chapters[i].SubjectID = subject.ID
		if err := db.Create(&chapters[i]).Error; err != nil {
			t.Fatalf("failed to create chapter: %v", err)
		}
	}
	subject.Chapters = chapters
	return subject
}

// seedFullWeek gives the user the same number of hours every weekday
func seedFullWeek(t *testing.T, db *gorm.DB, userID uint, hours float64) {
	t.Helper()

	for _, day := range model.Weekdays {
		entry := model.AvailableTime{UserID: userID, Day: day, Hours: hours}
		if err := db.Create(&entry).Error; err != nil {
			t.Fatalf("failed to create availability: %v", err)
		}
	}
}
