package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/sahilchouksey/studysavvy-api/model"
	"github.com/sahilchouksey/studysavvy-api/utils/auth"
)

// CleanupExpiredTokens removes blacklisted JWT tokens that have already
// expired. An expired token fails validation on its own, so the blacklist
// row only takes up space once the expiry has passed.
// Runs every hour.
func (m *CronManager) CleanupExpiredTokens() {
	jobName := "cleanup_expired_tokens"

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	blacklist := auth.NewBlacklistService(m.db)
	removed, err := blacklist.CleanupExpiredTokens(ctx)
	if err != nil {
		m.logJobError(jobName, fmt.Errorf("failed to cleanup expired tokens: %w", err))
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("Removed %d expired tokens", removed))
}

// CleanupOldData removes stale operational data: cron job logs older than
// 30 days and soft-deleted rows older than 90 days.
// Runs daily at 2 AM.
func (m *CronManager) CleanupOldData() {
	jobName := "cleanup_old_data"

	logCutoff := time.Now().AddDate(0, 0, -30)
	purgeCutoff := time.Now().AddDate(0, 0, -90)

	logsResult := m.db.Unscoped().
		Where("started_at < ?", logCutoff).
		Delete(&model.CronJobLog{})
	if logsResult.Error != nil {
		m.logJobError(jobName, fmt.Errorf("failed to delete old cron logs: %w", logsResult.Error))
		return
	}

	purged := int64(0)
	for _, target := range []interface{}{
		&model.StudySession{},
		&model.StudyPlan{},
		&model.Chapter{},
		&model.Subject{},
		&model.Todo{},
		&model.Note{},
	} {
		result := m.db.Unscoped().
			Where("deleted_at IS NOT NULL AND deleted_at < ?", purgeCutoff).
			Delete(target)
		if result.Error != nil {
			m.logJobError(jobName, fmt.Errorf("failed to purge soft-deleted rows: %w", result.Error))
			return
		}
		purged += result.RowsAffected
	}

	m.logJobComplete(jobName, fmt.Sprintf("Removed %d old cron logs, purged %d soft-deleted rows",
		logsResult.RowsAffected, purged))
}
