package models

import (
	"time"
)

// Comment is a single comment row. Human comments go through the approval
// queue; AI comments bypass it and are shown or hidden via Published.
type Comment struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Cid          string     `gorm:"uniqueIndex;size:8;not null" json:"cid"`
	ArticleID    uint       `gorm:"not null;index" json:"article_id"`
	Article      Article    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"article"`
	UserID       *uint      `gorm:"index" json:"user_id"` // Nullable: AI and anonymous comments have no member
	User         *User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`
	ParentID     *uint      `gorm:"index" json:"parent_id"` // Nullable for top-level comments
	AuthorName   string     `gorm:"size:100" json:"author_name"`
	AuthorHandle string     `gorm:"size:100" json:"author_handle"`
	AvatarURL    string     `gorm:"size:500" json:"avatar_url"`
	Content      string     `gorm:"type:text;not null" json:"content"`
	Approved     bool       `gorm:"default:false" json:"approved"` // Human comments only
	IsAI         bool       `gorm:"default:false;index" json:"is_ai"`
	Published    bool       `gorm:"default:false" json:"published"` // AI comments only
	CommentDate  *time.Time `json:"comment_date"`                   // Operator-set display date, overrides CreatedAt for ordering
	CreatedAt    time.Time  `json:"created_at"`

	// Populated by the thread organizer, never persisted
	Replies []*Comment `gorm:"-" json:"replies,omitempty"`
}

// EffectiveDate is the timestamp a comment sorts and displays by.
func (c *Comment) EffectiveDate() time.Time {
	if c.CommentDate != nil {
		return *c.CommentDate
	}
	return c.CreatedAt
}

// Visible reports whether the comment may appear on the public thread.
func (c *Comment) Visible() bool {
	if c.IsAI {
		return c.Published
	}
	return c.Approved
}

// OwnedBy reports whether the comment belongs to the given member.
func (c *Comment) OwnedBy(userID uint) bool {
	return c.UserID != nil && *c.UserID == userID
}

// DisplayName falls back from the member name to the stored author name.
func (c *Comment) DisplayName() string {
	if c.User != nil && c.User.Username != "" {
		return c.User.Username
	}
	if c.AuthorName != "" {
		return c.AuthorName
	}
	return "Anonymous"
}
