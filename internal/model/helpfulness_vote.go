package model

import (
	"time"
)

// HelpfulnessVote (user_id, target_type, target_id) 唯一，重复投票由唯一索引拦截
type HelpfulnessVote struct {
	ID         uint64    `gorm:"primaryKey"`
	UserID     uint64    `gorm:"not null;uniqueIndex:idx_user_target" json:"user_id"`
	TargetType string    `gorm:"type:varchar(16);not null;uniqueIndex:idx_user_target" json:"target_type"` // post/reply
	TargetID   uint64    `gorm:"not null;uniqueIndex:idx_user_target;index:idx_target" json:"target_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (HelpfulnessVote) TableName() string {
	return "helpfulness_votes"
}
