package cron

import (
	"context"
	"testing"
	"time"

	"github.com/sahilchouksey/studysavvy-api/database"
	"github.com/sahilchouksey/studysavvy-api/model"
	"github.com/sahilchouksey/studysavvy-api/utils/auth"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

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

func TestCleanupExpiredTokens(t *testing.T) {
	db := setupTestDB(t)
	manager := NewCronManager(db)

	user := model.User{Email: "cron@test.dev", PasswordHash: "x", Name: "Cron", Role: "student"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	blacklist := auth.NewBlacklistService(db)
	ctx := context.Background()

	// One expired, one still valid
	if err := blacklist.RevokeToken(ctx, "expired-jti", user.ID, time.Now().Add(-time.Hour), "logout"); err != nil {
		t.Fatalf("failed to revoke token: %v", err)
	}
	if err := blacklist.RevokeToken(ctx, "valid-jti", user.ID, time.Now().Add(time.Hour), "logout"); err != nil {
		t.Fatalf("failed to revoke token: %v", err)
	}

	manager.logJobStart("cleanup_expired_tokens")
	manager.CleanupExpiredTokens()

	var count int64
	if err := db.Model(&model.JWTTokenBlacklist{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count blacklist rows: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 remaining blacklist row, got %d", count)
	}

	var jobLog model.CronJobLog
	if err := db.Where("job_name = ?", "cleanup_expired_tokens").First(&jobLog).Error; err != nil {
		t.Fatalf("failed to load job log: %v", err)
	}
	if jobLog.Status != "completed" {
		t.Errorf("expected job status completed, got %q", jobLog.Status)
	}
}

func TestCleanupOldData(t *testing.T) {
	db := setupTestDB(t)
	manager := NewCronManager(db)

	oldLog := model.CronJobLog{
		JobName:   "ancient_job",
		Status:    "completed",
		StartedAt: time.Now().AddDate(0, 0, -60),
	}
	freshLog := model.CronJobLog{
		JobName:   "recent_job",
		Status:    "completed",
		StartedAt: time.Now().AddDate(0, 0, -1),
	}
	if err := db.Create(&oldLog).Error; err != nil {
		t.Fatalf("failed to create old log: %v", err)
	}
	if err := db.Create(&freshLog).Error; err != nil {
		t.Fatalf("failed to create fresh log: %v", err)
	}

	manager.logJobStart("cleanup_old_data")
	manager.CleanupOldData()

	var names []string
	if err := db.Model(&model.CronJobLog{}).Pluck("job_name", &names).Error; err != nil {
		t.Fatalf("failed to list logs: %v", err)
	}
	for _, name := range names {
		if name == "ancient_job" {
			t.Error("old cron log should have been purged")
		}
	}
}
