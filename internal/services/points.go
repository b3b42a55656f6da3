package services

import (
	"time"

	"aiinasia/internal/db"
	"aiinasia/internal/models"

	"gorm.io/gorm"
)

// Point actions
const (
	ActionCommentCreate   = "Posted a comment"
	ActionCommentApproved = "Comment approved"
	ActionReactionGiven   = "Reacted to a comment"
)

// Point values
const (
	PointsCommentCreate   = 1
	PointsCommentApproved = 2
	PointsReactionGiven   = 1
)

// Daily caps
const (
	DailyCommentLimit  = 3 // First 3 comments per day earn points
	DailyReactionLimit = 10
)

// AddPoints records a ledger entry and updates the member balance in one
// transaction.
func AddPoints(userID uint, amount int, action string) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		entry := models.PointLog{
			UserID: userID,
			Amount: amount,
			Action: action,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.User{}).
			Where("id = ?", userID).
			UpdateColumn("points", gorm.Expr("points + ?", amount)).
			Error; err != nil {
			return err
		}

		return nil
	})
}

// AddPointsAsync awards points fire-and-forget. Used as a post-commit hook
// after a primary mutation succeeds; failures are silently dropped.
func AddPointsAsync(userID uint, amount int, action string) {
	go func() {
		_ = AddPoints(userID, amount, action)
	}()
}

func getTodayRange() (time.Time, time.Time) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return startOfDay, startOfDay.Add(24 * time.Hour)
}

func countTodayPointLogs(userID uint, action string) int64 {
	startOfDay, endOfDay := getTodayRange()
	var count int64
	db.DB.Model(&models.PointLog{}).
		Where("user_id = ? AND action = ? AND created_at >= ? AND created_at < ?", userID, action, startOfDay, endOfDay).
		Count(&count)
	return count
}

// CanEarnCommentPoints reports whether the member is still under today's
// comment point cap.
func CanEarnCommentPoints(userID uint) bool {
	return countTodayPointLogs(userID, ActionCommentCreate) < DailyCommentLimit
}

// CanEarnReactionPoints reports whether the member is still under today's
// reaction point cap.
func CanEarnReactionPoints(userID uint) bool {
	return countTodayPointLogs(userID, ActionReactionGiven) < DailyReactionLimit
}
