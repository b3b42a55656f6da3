package models

import (
	"time"
)

type Article struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Aid            string    `gorm:"uniqueIndex;size:8;not null" json:"aid"`
	UserID         uint      `gorm:"not null;index" json:"user_id"`
	User           User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	CategoryID     uint      `gorm:"not null;index;default:1" json:"category_id"`
	Category       Category  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"category"`
	Title          string    `gorm:"not null" json:"title"`
	Summary        string    `gorm:"size:500" json:"summary"`
	Content        string    `gorm:"type:text" json:"content"`
	HeroImageURL   string    `gorm:"size:500" json:"hero_image_url"`
	SEOKeywords    string    `gorm:"size:500" json:"seo_keywords"`
	SEODescription string    `gorm:"size:500" json:"seo_description"`
	Views          int       `gorm:"default:0" json:"views"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Filled at query time, not a column
	CommentCount int `gorm:"-" json:"comment_count"`
}
