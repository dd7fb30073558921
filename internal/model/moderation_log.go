package model

import (
	"time"
)

// ModerationLog AI审核流水，仅追加，不可修改
type ModerationLog struct {
	ID         uint64    `gorm:"primaryKey"`
	TargetType string    `gorm:"type:varchar(16);not null;index:idx_target" json:"target_type"`
	TargetID   uint64    `gorm:"not null;index:idx_target" json:"target_id"`
	UserID     uint64    `gorm:"index:idx_user_id" json:"user_id"`
	RiskScore  int       `gorm:"not null;default:0" json:"risk_score"` // 0-100
	Labels     []string  `gorm:"type:json;serializer:json" json:"labels"`
	Decision   string    `gorm:"type:varchar(16);not null" json:"decision"` // pass/review/reject
	Reason     string    `gorm:"type:text" json:"reason"`
	CreatedAt  time.Time `json:"created_at"`
}

func (ModerationLog) TableName() string {
	return "moderation_logs"
}
