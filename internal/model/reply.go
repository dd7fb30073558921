package model

import (
	"time"
)

type Reply struct {
	ID           uint64    `gorm:"primaryKey"`
	PostID       uint64    `gorm:"not null;index:idx_post_id" json:"post_id"`
	AuthorID     uint64    `gorm:"not null;index:idx_author_id" json:"author_id"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	HelpfulCount int       `gorm:"not null;default:0" json:"helpful_count"`
	Status       string    `gorm:"type:varchar(32);not null;default:visible" json:"status"` // visible/hidden
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Reply) TableName() string {
	return "replies"
}
