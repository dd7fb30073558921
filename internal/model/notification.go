package model

import (
	"time"
)

// Notification 带 dedupe_key 的通知在 (user_id, type, dedupe_key) 上唯一，
// 依赖唯一索引保证并发下的"最多一条"
type Notification struct {
	ID        uint64                 `gorm:"primaryKey"`
	UserID    uint64                 `gorm:"not null;uniqueIndex:idx_dedupe;index:idx_user_id" json:"user_id"`
	Type      string                 `gorm:"type:varchar(64);not null;uniqueIndex:idx_dedupe" json:"type"`
	DedupeKey *string                `gorm:"type:varchar(64);uniqueIndex:idx_dedupe" json:"dedupe_key"`
	Payload   map[string]interface{} `gorm:"type:json;serializer:json" json:"payload"`
	ReadAt    *time.Time             `json:"read_at"`
	CreatedAt time.Time              `json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
