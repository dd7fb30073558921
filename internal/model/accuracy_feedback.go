package model

import (
	"time"
)

// AccuracyFeedback (user_id, post_id) 唯一，每人对每帖仅一条评分
type AccuracyFeedback struct {
	ID        uint64    `gorm:"primaryKey"`
	UserID    uint64    `gorm:"not null;uniqueIndex:idx_user_post" json:"user_id"`
	PostID    uint64    `gorm:"not null;uniqueIndex:idx_user_post;index:idx_post_id" json:"post_id"`
	Rating    int       `gorm:"not null" json:"rating"` // 1-5
	Note      *string   `gorm:"type:text" json:"note"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AccuracyFeedback) TableName() string {
	return "accuracy_feedbacks"
}
