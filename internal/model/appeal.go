package model

import (
	"time"
)

type Appeal struct {
	ID         uint64     `gorm:"primaryKey"`
	UserID     uint64     `gorm:"not null;index:idx_user_id" json:"user_id"`
	TargetType string     `gorm:"type:varchar(16);not null" json:"target_type"`
	TargetID   uint64     `gorm:"not null" json:"target_id"`
	Reason     string     `gorm:"type:text;not null" json:"reason"`
	Status     string     `gorm:"type:varchar(16);not null;default:pending" json:"status"` // pending/accepted/rejected
	ReviewerID *uint64    `json:"reviewer_id"`
	ReviewedAt *time.Time `json:"reviewed_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (Appeal) TableName() string {
	return "appeals"
}
