package repository

import (
	"BridgeUS/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type TranslationRepo interface {
	CreateTranslation(ctx context.Context, translation *model.PostTranslation) error
	GetTranslation(ctx context.Context, postID uint64, language string) (*model.PostTranslation, error)
	GetTranslations(ctx context.Context, postID uint64) ([]*model.PostTranslation, error)
	GetLanguages(ctx context.Context, postID uint64) ([]string, error)
	UpdateOriginalText(ctx context.Context, postID uint64, language, title, content string) error
}

type TranslationRepoImpl struct {
	db *gorm.DB
}

func NewTranslationRepo(db *gorm.DB) TranslationRepo {
	return &TranslationRepoImpl{db}
}

func (s *TranslationRepoImpl) CreateTranslation(ctx context.Context, translation *model.PostTranslation) error {
	return s.db.WithContext(ctx).Create(translation).Error
}

func (s *TranslationRepoImpl) GetTranslation(ctx context.Context, postID uint64, language string) (*model.PostTranslation, error) {
	var translation model.PostTranslation
	err := s.db.WithContext(ctx).
		Where("post_id = ? AND language = ?", postID, language).
		First(&translation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &translation, nil
}

func (s *TranslationRepoImpl) GetTranslations(ctx context.Context, postID uint64) ([]*model.PostTranslation, error) {
	var translations []*model.PostTranslation
	err := s.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Find(&translations).Error
	return translations, err
}

func (s *TranslationRepoImpl) GetLanguages(ctx context.Context, postID uint64) ([]string, error) {
	var languages []string
	err := s.db.WithContext(ctx).Model(&model.PostTranslation{}).
		Where("post_id = ?", postID).
		Pluck("language", &languages).Error
	return languages, err
}

func (s *TranslationRepoImpl) UpdateOriginalText(ctx context.Context, postID uint64, language, title, content string) error {
	return s.db.WithContext(ctx).Model(&model.PostTranslation{}).
		Where("post_id = ? AND language = ?", postID, language).
		Updates(map[string]interface{}{
			"title":   title,
			"content": content,
		}).Error
}
