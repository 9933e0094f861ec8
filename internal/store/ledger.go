package store

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"greenpoints-backend/internal/model"
)

// applyPointsDelta adds delta to the user's total and, when the user belongs
// to a dorm, to the dorm's total. It must run inside the transaction that
// mutates the triggering action. Totals are not clamped and may go negative.
func applyPointsDelta(tx *gorm.DB, user *model.User, delta int64) error {
	if delta == 0 {
		return nil
	}

	if err := tx.Model(&model.User{}).
		Where("id = ?", user.ID).
		UpdateColumn("total_points", gorm.Expr("total_points + ?", delta)).Error; err != nil {
		return fmt.Errorf("failed to adjust points for user %d: %w", user.ID, err)
	}
	user.TotalPoints += delta

	if user.DormID == nil {
		return nil
	}
	if err := tx.Model(&model.Dorm{}).
		Where("id = ?", *user.DormID).
		UpdateColumn("total_points", gorm.Expr("total_points + ?", delta)).Error; err != nil {
		return fmt.Errorf("failed to adjust points for dorm %d: %w", *user.DormID, err)
	}
	if user.Dorm != nil {
		user.Dorm.TotalPoints += delta
	}
	return nil
}

// NextStreak returns the streak after an action logged at now.
// Days are compared in UTC.
func NextStreak(last *time.Time, current int, now time.Time) int {
	if last == nil || current <= 0 {
		return 1
	}
	days := int(utcDay(now).Sub(utcDay(*last)).Hours() / 24)
	switch {
	case days <= 0:
		return current
	case days == 1:
		return current + 1
	default:
		return 1
	}
}

func utcDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func recordStreak(tx *gorm.DB, user *model.User, now time.Time) error {
	streak := NextStreak(user.LastActionDate, user.CurrentStreak, now)
	at := now.UTC()
	if err := tx.Model(&model.User{}).
		Where("id = ?", user.ID).
		UpdateColumns(map[string]any{
			"current_streak":   streak,
			"last_action_date": at,
		}).Error; err != nil {
		return fmt.Errorf("failed to update streak for user %d: %w", user.ID, err)
	}
	user.CurrentStreak = streak
	user.LastActionDate = &at
	return nil
}
