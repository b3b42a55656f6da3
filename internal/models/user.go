package models

import (
	"time"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"` // Hash
	Handle    string    `gorm:"size:100" json:"handle"`
	AvatarURL string    `gorm:"size:500" json:"avatar_url"`
	Bio       string    `gorm:"size:200" json:"bio"`
	Points    int       `gorm:"default:0" json:"points"`
	Role      string    `gorm:"size:20;default:'member';not null" json:"role"` // member, admin
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
