package model

import (
	"time"
)

// ModerationAction 人工处理流水，与AI审核流水分开记录
type ModerationAction struct {
	ID          uint64    `gorm:"primaryKey"`
	ModeratorID uint64    `gorm:"not null;index:idx_moderator_id" json:"moderator_id"`
	TargetType  string    `gorm:"type:varchar(16);not null;index:idx_target" json:"target_type"`
	TargetID    uint64    `gorm:"not null;index:idx_target" json:"target_id"`
	Action      string    `gorm:"type:varchar(32);not null" json:"action"` // approve/reject/hide/restore
	Reason      *string   `gorm:"type:text" json:"reason"`
	CreatedAt   time.Time `json:"created_at"`
}

func (ModerationAction) TableName() string {
	return "moderation_actions"
}
