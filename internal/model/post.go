package model

import (
	"time"
)

type Post struct {
	ID               uint64     `gorm:"primaryKey"`
	AuthorID         uint64     `gorm:"not null;index:idx_author_id" json:"author_id"`
	CategoryID       *uint64    `gorm:"index:idx_category_id" json:"category_id"`
	OriginalLanguage string     `gorm:"type:varchar(8);not null;default:en" json:"original_language"`
	Status           string     `gorm:"type:varchar(32);not null;default:pending;index:idx_status" json:"status"` // draft/pending/published/hidden
	HelpfulCount     int        `gorm:"not null;default:0" json:"helpful_count"`
	AccuracyAvg      float64    `gorm:"not null;default:0" json:"accuracy_avg"`
	AccuracyCount    int        `gorm:"not null;default:0" json:"accuracy_count"`
	CreatedAt        time.Time  `json:"created_at"`
	PublishedAt      *time.Time `json:"published_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	// 关联关系
	Translations []PostTranslation `gorm:"foreignKey:PostID;references:ID"`
}

func (Post) TableName() string {
	return "posts"
}
