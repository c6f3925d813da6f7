package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Tanmay7310/Mental-Health-Wellbeing/internal/model"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PurgeExpiredRefreshTokens deletes refresh tokens that expired before now
// and returns how many rows went away.
func PurgeExpiredRefreshTokens(ctx context.Context, db *gorm.DB, now time.Time) (int64, error) {
	res := db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&model.RefreshToken{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to purge expired refresh tokens, %w", res.Error)
	}

	return res.RowsAffected, nil
}

// StartTokenCleanup schedules PurgeExpiredRefreshTokens on a cron spec such
// as "@every 1h". The caller stops the returned scheduler on shutdown.
func StartTokenCleanup(spec string, db *gorm.DB) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc(spec, func() {
		n, err := PurgeExpiredRefreshTokens(context.Background(), db, time.Now())
		if err != nil {
			zap.L().Error("Failed to cleanup refresh tokens", zap.Error(err))
			return
		}

		if n > 0 {
			zap.L().Debug("Cleaned up expired refresh tokens", zap.Int64("count", n))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to schedule token cleanup, %w", err)
	}

	c.Start()
	zap.L().Debug("Token cleanup attached", zap.String("schedule", spec))

	return c, nil
}
