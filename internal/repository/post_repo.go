package repository

import (
	"BridgeUS/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type PostRepo interface {
	CreatePost(ctx context.Context, post *model.Post) error
	GetPost(ctx context.Context, postID uint64) (*model.Post, error)
	DeletePost(ctx context.Context, postID uint64) error
	UpdatePostStatus(ctx context.Context, postID uint64, status string) error
	MarkPublished(ctx context.Context, postID uint64, publishedAt time.Time) error
	GetPostsByStatus(ctx context.Context, status string, limit, offset int) ([]*model.Post, error)
	GetPostsByAuthor(ctx context.Context, authorID uint64, limit, offset int) ([]*model.Post, error)
	GetPublishedPostIDsMissingTranslations(ctx context.Context, languageCount int) ([]uint64, error)

	UpdateHelpfulCount(ctx context.Context, postID uint64, count int64) error
	UpdateAccuracy(ctx context.Context, postID uint64, avg float64, count int64) error
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) PostRepo {
	return &PostRepoImpl{db}
}

func (s *PostRepoImpl) CreatePost(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).Create(post).Error
}

func (s *PostRepoImpl) GetPost(ctx context.Context, postID uint64) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).Where("id = ?", postID).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (s *PostRepoImpl) DeletePost(ctx context.Context, postID uint64) error {
	return s.db.WithContext(ctx).Where("id = ?", postID).Delete(&model.Post{}).Error
}

func (s *PostRepoImpl) UpdatePostStatus(ctx context.Context, postID uint64, status string) error {
	return s.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", postID).
		Update("status", status).Error
}

// MarkPublished 置为 published；published_at 只在首次发布时写入，之后不再覆盖
func (s *PostRepoImpl) MarkPublished(ctx context.Context, postID uint64, publishedAt time.Time) error {
	err := s.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", postID).
		Update("status", "published").Error
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ? AND published_at IS NULL", postID).
		Update("published_at", publishedAt).Error
}

func (s *PostRepoImpl) GetPostsByStatus(ctx context.Context, status string, limit, offset int) ([]*model.Post, error) {
	var posts []*model.Post
	err := s.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (s *PostRepoImpl) GetPostsByAuthor(ctx context.Context, authorID uint64, limit, offset int) ([]*model.Post, error) {
	var posts []*model.Post
	err := s.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	return posts, err
}

func (s *PostRepoImpl) GetPublishedPostIDsMissingTranslations(ctx context.Context, languageCount int) ([]uint64, error) {
	var postIDs []uint64
	err := s.db.WithContext(ctx).Model(&model.Post{}).
		Where("status = ?", "published").
		Where("(SELECT COUNT(*) FROM post_translations t WHERE t.post_id = posts.id) < ?", languageCount).
		Pluck("id", &postIDs).Error
	return postIDs, err
}

func (s *PostRepoImpl) UpdateHelpfulCount(ctx context.Context, postID uint64, count int64) error {
	return s.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", postID).
		Update("helpful_count", count).Error
}

func (s *PostRepoImpl) UpdateAccuracy(ctx context.Context, postID uint64, avg float64, count int64) error {
	return s.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", postID).
		Updates(map[string]interface{}{
			"accuracy_avg":   avg,
			"accuracy_count": count,
		}).Error
}
