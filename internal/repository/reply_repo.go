package repository

import (
	"BridgeUS/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type ReplyRepo interface {
	CreateReply(ctx context.Context, reply *model.Reply) error
	GetReply(ctx context.Context, replyID uint64) (*model.Reply, error)
	DeleteReply(ctx context.Context, replyID uint64) error
	UpdateReplyStatus(ctx context.Context, replyID uint64, status string) error
	GetRepliesByPost(ctx context.Context, postID uint64, includeHidden bool, limit, offset int) ([]*model.Reply, error)
	GetRepliesByAuthor(ctx context.Context, authorID uint64, limit, offset int) ([]*model.Reply, error)
	UpdateHelpfulCount(ctx context.Context, replyID uint64, count int64) error
}

type ReplyRepoImpl struct {
	db *gorm.DB
}

func NewReplyRepo(db *gorm.DB) ReplyRepo {
	return &ReplyRepoImpl{db}
}

func (s *ReplyRepoImpl) CreateReply(ctx context.Context, reply *model.Reply) error {
	return s.db.WithContext(ctx).Create(reply).Error
}

func (s *ReplyRepoImpl) GetReply(ctx context.Context, replyID uint64) (*model.Reply, error) {
	var reply model.Reply
	err := s.db.WithContext(ctx).Where("id = ?", replyID).First(&reply).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reply, nil
}

func (s *ReplyRepoImpl) DeleteReply(ctx context.Context, replyID uint64) error {
	return s.db.WithContext(ctx).Where("id = ?", replyID).Delete(&model.Reply{}).Error
}

func (s *ReplyRepoImpl) UpdateReplyStatus(ctx context.Context, replyID uint64, status string) error {
	return s.db.WithContext(ctx).Model(&model.Reply{}).
		Where("id = ?", replyID).
		Update("status", status).Error
}

func (s *ReplyRepoImpl) GetRepliesByPost(ctx context.Context, postID uint64, includeHidden bool, limit, offset int) ([]*model.Reply, error) {
	query := s.db.WithContext(ctx).Where("post_id = ?", postID)
	if !includeHidden {
		query = query.Where("status = ?", "visible")
	}
	var replies []*model.Reply
	err := query.Order("created_at ASC").Limit(limit).Offset(offset).Find(&replies).Error
	return replies, err
}

func (s *ReplyRepoImpl) GetRepliesByAuthor(ctx context.Context, authorID uint64, limit, offset int) ([]*model.Reply, error) {
	var replies []*model.Reply
	err := s.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&replies).Error
	return replies, err
}

func (s *ReplyRepoImpl) UpdateHelpfulCount(ctx context.Context, replyID uint64, count int64) error {
	return s.db.WithContext(ctx).Model(&model.Reply{}).
		Where("id = ?", replyID).
		Update("helpful_count", count).Error
}
