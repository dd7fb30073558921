package model

import (
	"time"
)

// PostTranslation (post_id, language) 唯一，原文行 translated_by=user 且先于审核存在
type PostTranslation struct {
	ID           uint64    `gorm:"primaryKey"`
	PostID       uint64    `gorm:"not null;uniqueIndex:idx_post_lang" json:"post_id"`
	Language     string    `gorm:"type:varchar(8);not null;uniqueIndex:idx_post_lang" json:"language"`
	Title        string    `gorm:"type:varchar(255);not null" json:"title"`
	Content      string    `gorm:"type:text;not null" json:"content"`
	TranslatedBy string    `gorm:"type:varchar(32);not null;default:ai" json:"translated_by"` // user/ai
	Model        *string   `gorm:"type:varchar(64)" json:"model"`
	Status       string    `gorm:"type:varchar(32);not null;default:ready" json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (PostTranslation) TableName() string {
	return "post_translations"
}
