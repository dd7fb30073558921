package model

import (
	"time"
)

// Profile 用户档案，三个分数字段均为聚合派生值，不允许用户直接修改
type Profile struct {
	UserID             uint64    `gorm:"primaryKey" json:"user_id"`
	DisplayName        string    `gorm:"type:varchar(100);not null" json:"display_name"`
	Bio                *string   `gorm:"type:text" json:"bio"`
	LanguagePreference string    `gorm:"type:varchar(8);not null;default:en" json:"language_preference"`
	CredibilityScore   int       `gorm:"not null;default:0" json:"credibility_score"`
	HelpfulnessScore   int       `gorm:"not null;default:0" json:"helpfulness_score"`
	AccuracyScore      int       `gorm:"not null;default:0" json:"accuracy_score"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}
