package repository

import (
	"BridgeUS/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type InteractionRepo interface {
	CreateVote(ctx context.Context, vote *model.HelpfulnessVote) error
	DeleteVote(ctx context.Context, userID uint64, targetType string, targetID uint64) error
	CountVotesForTarget(ctx context.Context, targetType string, targetID uint64) (int64, error)
	CountVotesForAuthor(ctx context.Context, authorID uint64) (int64, error)

	CreateFeedback(ctx context.Context, feedback *model.AccuracyFeedback) error
	GetFeedback(ctx context.Context, userID, postID uint64) (*model.AccuracyFeedback, error)
	SaveFeedback(ctx context.Context, feedback *model.AccuracyFeedback) error
	DeleteFeedback(ctx context.Context, feedbackID uint64) error
	AggregateFeedbackForPost(ctx context.Context, postID uint64) (avg float64, count int64, err error)
	AvgFeedbackForAuthor(ctx context.Context, authorID uint64) (float64, error)
}

type InteractionRepoImpl struct {
	db *gorm.DB
}

func NewInteractionRepo(db *gorm.DB) InteractionRepo {
	return &InteractionRepoImpl{db}
}

func (s *InteractionRepoImpl) CreateVote(ctx context.Context, vote *model.HelpfulnessVote) error {
	return s.db.WithContext(ctx).Create(vote).Error
}

func (s *InteractionRepoImpl) DeleteVote(ctx context.Context, userID uint64, targetType string, targetID uint64) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).
		Delete(&model.HelpfulnessVote{}).Error
}

func (s *InteractionRepoImpl) CountVotesForTarget(ctx context.Context, targetType string, targetID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.HelpfulnessVote{}).
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Count(&count).Error
	return count, err
}

// CountVotesForAuthor 统计落在该作者全部帖子与回复上的投票总数
func (s *InteractionRepoImpl) CountVotesForAuthor(ctx context.Context, authorID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.HelpfulnessVote{}).
		Where(
			"(target_type = 'post' AND target_id IN (SELECT id FROM posts WHERE author_id = ?)) OR "+
				"(target_type = 'reply' AND target_id IN (SELECT id FROM replies WHERE author_id = ?))",
			authorID, authorID,
		).
		Count(&count).Error
	return count, err
}

func (s *InteractionRepoImpl) CreateFeedback(ctx context.Context, feedback *model.AccuracyFeedback) error {
	return s.db.WithContext(ctx).Create(feedback).Error
}

func (s *InteractionRepoImpl) GetFeedback(ctx context.Context, userID, postID uint64) (*model.AccuracyFeedback, error) {
	var feedback model.AccuracyFeedback
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		First(&feedback).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &feedback, nil
}

func (s *InteractionRepoImpl) SaveFeedback(ctx context.Context, feedback *model.AccuracyFeedback) error {
	return s.db.WithContext(ctx).Save(feedback).Error
}

func (s *InteractionRepoImpl) DeleteFeedback(ctx context.Context, feedbackID uint64) error {
	return s.db.WithContext(ctx).Where("id = ?", feedbackID).Delete(&model.AccuracyFeedback{}).Error
}

func (s *InteractionRepoImpl) AggregateFeedbackForPost(ctx context.Context, postID uint64) (float64, int64, error) {
	var result struct {
		Avg   float64
		Count int64
	}
	err := s.db.WithContext(ctx).Model(&model.AccuracyFeedback{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("post_id = ?", postID).
		Scan(&result).Error
	return result.Avg, result.Count, err
}

func (s *InteractionRepoImpl) AvgFeedbackForAuthor(ctx context.Context, authorID uint64) (float64, error) {
	var avg float64
	err := s.db.WithContext(ctx).Model(&model.AccuracyFeedback{}).
		Select("COALESCE(AVG(rating), 0)").
		Where("post_id IN (SELECT id FROM posts WHERE author_id = ?)", authorID).
		Scan(&avg).Error
	return avg, err
}
