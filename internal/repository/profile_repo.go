package repository

import (
	"BridgeUS/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type ProfileRepo interface {
	GetProfile(ctx context.Context, userID uint64) (*model.Profile, error)
	GetDisplayName(ctx context.Context, userID uint64) (string, error)
	UpdateHelpfulnessScore(ctx context.Context, userID uint64, score int) error
	UpdateAccuracyScore(ctx context.Context, userID uint64, score int) error
}

type ProfileRepoImpl struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) ProfileRepo {
	return &ProfileRepoImpl{db}
}

func (s *ProfileRepoImpl) GetProfile(ctx context.Context, userID uint64) (*model.Profile, error) {
	var profile model.Profile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (s *ProfileRepoImpl) GetDisplayName(ctx context.Context, userID uint64) (string, error) {
	var name string
	err := s.db.WithContext(ctx).
		Model(&model.Profile{}).
		Where("user_id = ?", userID).
		Pluck("display_name", &name).Error
	return name, err
}

func (s *ProfileRepoImpl) UpdateHelpfulnessScore(ctx context.Context, userID uint64, score int) error {
	return s.db.WithContext(ctx).
		Model(&model.Profile{}).
		Where("user_id = ?", userID).
		Update("helpfulness_score", score).Error
}

func (s *ProfileRepoImpl) UpdateAccuracyScore(ctx context.Context, userID uint64, score int) error {
	return s.db.WithContext(ctx).
		Model(&model.Profile{}).
		Where("user_id = ?", userID).
		Update("accuracy_score", score).Error
}
