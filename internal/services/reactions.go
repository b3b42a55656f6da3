package services

import (
	"errors"

	"aiinasia/internal/db"
	"aiinasia/internal/models"

	"gorm.io/gorm"
)

// ReactionSummary is the aggregate reaction state of one comment: total count
// per kind plus the kinds the current viewer has personally applied.
type ReactionSummary struct {
	Counts map[string]int
	Mine   []string
}

// Count returns the total for one kind.
func (s ReactionSummary) Count(kind string) int {
	return s.Counts[kind]
}

// Reacted reports whether the viewer has applied the kind themselves.
func (s ReactionSummary) Reacted(kind string) bool {
	for _, k := range s.Mine {
		if k == kind {
			return true
		}
	}
	return false
}

// ReactionSummaries aggregates reactions for a set of comments in two
// queries. viewerID 0 means anonymous; Mine stays empty then.
func ReactionSummaries(commentIDs []uint, viewerID uint) (map[uint]ReactionSummary, error) {
	summaries := make(map[uint]ReactionSummary, len(commentIDs))
	for _, id := range commentIDs {
		summaries[id] = ReactionSummary{Counts: map[string]int{}}
	}
	if len(commentIDs) == 0 {
		return summaries, nil
	}

	type countRow struct {
		CommentID uint
		Kind      string
		Count     int
	}
	var rows []countRow
	if err := db.DB.Model(&models.Reaction{}).
		Select("comment_id, kind, COUNT(*) as count").
		Where("comment_id IN ?", commentIDs).
		Group("comment_id, kind").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		summaries[r.CommentID].Counts[r.Kind] = r.Count
	}

	if viewerID > 0 {
		var mine []models.Reaction
		if err := db.DB.
			Where("comment_id IN ? AND user_id = ?", commentIDs, viewerID).
			Find(&mine).Error; err != nil {
			return nil, err
		}
		for _, r := range mine {
			s := summaries[r.CommentID]
			s.Mine = append(s.Mine, r.Kind)
			summaries[r.CommentID] = s
		}
	}

	return summaries, nil
}

// ToggleReaction adds the reaction when the viewer has no identical one, or
// removes it when they do. Returns whether the toggle ended with the reaction
// applied. Point awards are the caller's post-commit concern, not handled
// here, so the toggle stays testable on its own.
func ToggleReaction(commentID, userID uint, kind string) (added bool, err error) {
	if !models.ValidReactionKind(kind) {
		return false, errors.New("unknown reaction kind: " + kind)
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Reaction
		findErr := tx.
			Where("comment_id = ? AND user_id = ? AND kind = ?", commentID, userID, kind).
			First(&existing).Error
		if findErr == nil {
			return tx.Delete(&existing).Error
		}
		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		added = true
		return tx.Create(&models.Reaction{
			CommentID: commentID,
			UserID:    userID,
			Kind:      kind,
		}).Error
	})
	if err != nil {
		return false, err
	}
	return added, nil
}
