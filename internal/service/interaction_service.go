package service

import (
	"BridgeUS/internal/api/dto"
	"BridgeUS/internal/model"
	"BridgeUS/internal/pkg/consts"
	"BridgeUS/internal/pkg/redis"
	"BridgeUS/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"math"
)

const excerptLimit = 120

type InteractionService interface {
	VotePost(ctx context.Context, userID, postID uint64) error
	UnvotePost(ctx context.Context, userID, postID uint64) error
	VoteReply(ctx context.Context, userID, replyID uint64) error
	UnvoteReply(ctx context.Context, userID, replyID uint64) error

	RatePost(ctx context.Context, userID, postID uint64, req *dto.FeedbackDTO) error
	UpdateRating(ctx context.Context, userID, postID uint64, req *dto.FeedbackDTO) error
	DeleteRating(ctx context.Context, userID, postID uint64) error

	// RecomputePostScores 全量重算帖子的互动计数，供定时任务对账使用
	RecomputePostScores(ctx context.Context, postID uint64) error
	// RecomputeUserScores 全量重算用户档案上的派生分
	RecomputeUserScores(ctx context.Context, userID uint64) error
}

type interactionServiceImpl struct {
	interactionRepo repository.InteractionRepo
	postRepo        repository.PostRepo
	replyRepo       repository.ReplyRepo
	profileRepo     repository.ProfileRepo
	translationRepo repository.TranslationRepo
	notificationSvc NotificationService
}

func NewInteractionService(
	interactionRepo repository.InteractionRepo,
	postRepo repository.PostRepo,
	replyRepo repository.ReplyRepo,
	profileRepo repository.ProfileRepo,
	translationRepo repository.TranslationRepo,
	notificationSvc NotificationService,
) InteractionService {
	return &interactionServiceImpl{
		interactionRepo: interactionRepo,
		postRepo:        postRepo,
		replyRepo:       replyRepo,
		profileRepo:     profileRepo,
		translationRepo: translationRepo,
		notificationSvc: notificationSvc,
	}
}

func (s *interactionServiceImpl) VotePost(ctx context.Context, userID, postID uint64) error {
	post, err := s.getPublishedPost(ctx, postID)
	if err != nil {
		return err
	}

	err = s.interactionRepo.CreateVote(ctx, &model.HelpfulnessVote{
		UserID:     userID,
		TargetType: consts.TargetTypePost,
		TargetID:   postID,
	})
	if err != nil {
		if isDuplicateError(err) {
			return ErrAlreadyVoted
		}
		return err
	}

	s.refreshPostHelpful(ctx, post)
	if post.AuthorID != userID {
		dedupe := fmt.Sprintf("post_helpful:%d:%d", postID, userID)
		_ = s.notificationSvc.Notify(ctx, post.AuthorID, consts.NotifyPostHelpful, &dedupe, map[string]interface{}{
			"post_id": postID,
			"user_id": userID,
			"excerpt": s.postExcerpt(ctx, post),
		})
	}
	return nil
}

func (s *interactionServiceImpl) UnvotePost(ctx context.Context, userID, postID uint64) error {
	post, err := s.getPublishedPost(ctx, postID)
	if err != nil {
		return err
	}
	if err := s.interactionRepo.DeleteVote(ctx, userID, consts.TargetTypePost, postID); err != nil {
		return err
	}
	s.refreshPostHelpful(ctx, post)
	return nil
}

func (s *interactionServiceImpl) VoteReply(ctx context.Context, userID, replyID uint64) error {
	reply, err := s.getVisibleReply(ctx, replyID)
	if err != nil {
		return err
	}

	err = s.interactionRepo.CreateVote(ctx, &model.HelpfulnessVote{
		UserID:     userID,
		TargetType: consts.TargetTypeReply,
		TargetID:   replyID,
	})
	if err != nil {
		if isDuplicateError(err) {
			return ErrAlreadyVoted
		}
		return err
	}

	s.refreshReplyHelpful(ctx, reply)
	if reply.AuthorID != userID {
		dedupe := fmt.Sprintf("reply_helpful:%d:%d", replyID, userID)
		_ = s.notificationSvc.Notify(ctx, reply.AuthorID, consts.NotifyReplyHelpful, &dedupe, map[string]interface{}{
			"reply_id": replyID,
			"post_id":  reply.PostID,
			"user_id":  userID,
			"excerpt":  excerpt(reply.Content),
		})
	}
	return nil
}

func (s *interactionServiceImpl) UnvoteReply(ctx context.Context, userID, replyID uint64) error {
	reply, err := s.getVisibleReply(ctx, replyID)
	if err != nil {
		return err
	}
	if err := s.interactionRepo.DeleteVote(ctx, userID, consts.TargetTypeReply, replyID); err != nil {
		return err
	}
	s.refreshReplyHelpful(ctx, reply)
	return nil
}

func (s *interactionServiceImpl) RatePost(ctx context.Context, userID, postID uint64, req *dto.FeedbackDTO) error {
	post, err := s.getPublishedPost(ctx, postID)
	if err != nil {
		return err
	}

	err = s.interactionRepo.CreateFeedback(ctx, &model.AccuracyFeedback{
		UserID: userID,
		PostID: postID,
		Rating: req.Rating,
		Note:   req.Note,
	})
	if err != nil {
		if isDuplicateError(err) {
			return ErrAlreadyRated
		}
		return err
	}

	s.refreshPostAccuracy(ctx, post)
	if post.AuthorID != userID {
		dedupe := fmt.Sprintf("post_rated:%d:%d", postID, userID)
		_ = s.notificationSvc.Notify(ctx, post.AuthorID, consts.NotifyPostRated, &dedupe, map[string]interface{}{
			"post_id": postID,
			"user_id": userID,
			"rating":  req.Rating,
			"excerpt": s.postExcerpt(ctx, post),
		})
	}
	return nil
}

func (s *interactionServiceImpl) UpdateRating(ctx context.Context, userID, postID uint64, req *dto.FeedbackDTO) error {
	post, err := s.getPublishedPost(ctx, postID)
	if err != nil {
		return err
	}
	feedback, err := s.interactionRepo.GetFeedback(ctx, userID, postID)
	if err != nil {
		return err
	}
	if feedback == nil {
		return ErrFeedbackNotFound
	}

	feedback.Rating = req.Rating
	feedback.Note = req.Note
	if err := s.interactionRepo.SaveFeedback(ctx, feedback); err != nil {
		return err
	}

	s.refreshPostAccuracy(ctx, post)
	return nil
}

func (s *interactionServiceImpl) DeleteRating(ctx context.Context, userID, postID uint64) error {
	post, err := s.getPublishedPost(ctx, postID)
	if err != nil {
		return err
	}
	feedback, err := s.interactionRepo.GetFeedback(ctx, userID, postID)
	if err != nil {
		return err
	}
	if feedback == nil {
		return ErrFeedbackNotFound
	}

	if err := s.interactionRepo.DeleteFeedback(ctx, feedback.ID); err != nil {
		return err
	}
	s.refreshPostAccuracy(ctx, post)
	return nil
}

func (s *interactionServiceImpl) RecomputePostScores(ctx context.Context, postID uint64) error {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}

	count, err := s.interactionRepo.CountVotesForTarget(ctx, consts.TargetTypePost, postID)
	if err != nil {
		return err
	}
	if err := s.postRepo.UpdateHelpfulCount(ctx, postID, count); err != nil {
		return err
	}

	avg, feedbackCount, err := s.interactionRepo.AggregateFeedbackForPost(ctx, postID)
	if err != nil {
		return err
	}
	return s.postRepo.UpdateAccuracy(ctx, postID, avg, feedbackCount)
}

func (s *interactionServiceImpl) RecomputeUserScores(ctx context.Context, userID uint64) error {
	votes, err := s.interactionRepo.CountVotesForAuthor(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.profileRepo.UpdateHelpfulnessScore(ctx, userID, int(votes)); err != nil {
		return err
	}

	avg, err := s.interactionRepo.AvgFeedbackForAuthor(ctx, userID)
	if err != nil {
		return err
	}
	// 档案上的准确度就是 1-5 星均分的四舍五入
	return s.profileRepo.UpdateAccuracyScore(ctx, userID, int(math.Round(avg)))
}

func (s *interactionServiceImpl) getPublishedPost(ctx context.Context, postID uint64) (*model.Post, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil || post.Status != consts.PostStatusPublished {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (s *interactionServiceImpl) getVisibleReply(ctx context.Context, replyID uint64) (*model.Reply, error) {
	reply, err := s.replyRepo.GetReply(ctx, replyID)
	if err != nil {
		return nil, err
	}
	if reply == nil || reply.Status != consts.ReplyStatusVisible {
		return nil, ErrReplyNotFound
	}
	return reply, nil
}

// refreshPostHelpful 投票变化后全量重算计数，并把作者标进脏集等对账
func (s *interactionServiceImpl) refreshPostHelpful(ctx context.Context, post *model.Post) {
	count, err := s.interactionRepo.CountVotesForTarget(ctx, consts.TargetTypePost, post.ID)
	if err != nil {
		log.WarnContext(ctx, "failed to recount post votes", "post_id", post.ID, "error", err)
		return
	}
	if err := s.postRepo.UpdateHelpfulCount(ctx, post.ID, count); err != nil {
		log.WarnContext(ctx, "failed to update post helpful count", "post_id", post.ID, "error", err)
	}
	s.refreshAuthorScores(ctx, post.ID, post.AuthorID)
}

func (s *interactionServiceImpl) refreshReplyHelpful(ctx context.Context, reply *model.Reply) {
	count, err := s.interactionRepo.CountVotesForTarget(ctx, consts.TargetTypeReply, reply.ID)
	if err != nil {
		log.WarnContext(ctx, "failed to recount reply votes", "reply_id", reply.ID, "error", err)
		return
	}
	if err := s.replyRepo.UpdateHelpfulCount(ctx, reply.ID, count); err != nil {
		log.WarnContext(ctx, "failed to update reply helpful count", "reply_id", reply.ID, "error", err)
	}
	s.refreshAuthorScores(ctx, reply.PostID, reply.AuthorID)
}

func (s *interactionServiceImpl) refreshPostAccuracy(ctx context.Context, post *model.Post) {
	avg, count, err := s.interactionRepo.AggregateFeedbackForPost(ctx, post.ID)
	if err != nil {
		log.WarnContext(ctx, "failed to aggregate post feedback", "post_id", post.ID, "error", err)
		return
	}
	if err := s.postRepo.UpdateAccuracy(ctx, post.ID, avg, count); err != nil {
		log.WarnContext(ctx, "failed to update post accuracy", "post_id", post.ID, "error", err)
	}
	s.refreshAuthorScores(ctx, post.ID, post.AuthorID)
}

// refreshAuthorScores 每次互动变更都同步重算作者档案分，
// 脏集和定时任务只是失败后的对账兜底
func (s *interactionServiceImpl) refreshAuthorScores(ctx context.Context, postID, authorID uint64) {
	if err := s.RecomputeUserScores(ctx, authorID); err != nil {
		log.WarnContext(ctx, "failed to recompute author scores", "user_id", authorID, "error", err)
	}
	s.markDirty(ctx, postID, authorID)
}

func (s *interactionServiceImpl) markDirty(ctx context.Context, postID, userID uint64) {
	if err := redis.SAdd(ctx, consts.PostScoreDirtyKey, postID); err != nil {
		log.WarnContext(ctx, "failed to mark post dirty", "post_id", postID, "error", err)
	}
	if err := redis.SAdd(ctx, consts.UserScoreDirtyKey, userID); err != nil {
		log.WarnContext(ctx, "failed to mark user dirty", "user_id", userID, "error", err)
	}
}

func (s *interactionServiceImpl) postExcerpt(ctx context.Context, post *model.Post) string {
	translation, err := s.translationRepo.GetTranslation(ctx, post.ID, post.OriginalLanguage)
	if err != nil || translation == nil {
		return ""
	}
	return excerpt(translation.Title)
}

// excerpt 通知里带的内容摘要，按字符截断避免把多字节字符劈开
func excerpt(s string) string {
	runes := []rune(s)
	if len(runes) <= excerptLimit {
		return s
	}
	return string(runes[:excerptLimit]) + "..."
}
