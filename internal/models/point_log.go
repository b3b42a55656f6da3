package models

import (
	"time"
)

type PointLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Amount    int       `gorm:"not null" json:"amount"`          // Positive awards, negative deductions
	Action    string    `gorm:"size:100;not null" json:"action"` // Action description
	CreatedAt time.Time `json:"created_at"`
}
