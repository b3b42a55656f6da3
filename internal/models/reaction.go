package models

import (
	"time"
)

// Reaction kinds form a closed set; anything else is rejected at the handler.
const (
	ReactionApprove = "approve"
	ReactionHeart   = "heart"
	ReactionInsight = "insight"
)

var ReactionKinds = []string{ReactionApprove, ReactionHeart, ReactionInsight}

func ValidReactionKind(kind string) bool {
	for _, k := range ReactionKinds {
		if k == kind {
			return true
		}
	}
	return false
}

type Reaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CommentID uint      `gorm:"not null;index:idx_reaction_unique,unique" json:"comment_id"`
	UserID    uint      `gorm:"not null;index:idx_reaction_unique,unique" json:"user_id"`
	Kind      string    `gorm:"size:16;not null;index:idx_reaction_unique,unique" json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}
