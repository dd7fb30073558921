package service

import (
	"BridgeUS/internal/api/config"
	"BridgeUS/internal/api/dto"
	"BridgeUS/internal/model"
	"BridgeUS/internal/pkg/consts"
	"BridgeUS/internal/pkg/llm"
	"BridgeUS/internal/pkg/worker"
	"BridgeUS/internal/repository"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"time"

	"github.com/jinzhu/copier"
)

type ModerationService interface {
	// ScreenPost 对帖子原文跑一次AI安全分类并落地决定，返回最终决定。
	// AI不可用时放行，AI出错时进人工复核，绝不让异常阻断提交管线
	ScreenPost(ctx context.Context, post *model.Post, title, flatText string) (string, error)

	GetReviewQueue(ctx context.Context, page, pageSize int) ([]*model.Post, error)
	ResolvePostReview(ctx context.Context, moderatorID, postID uint64, action string, reason *string) error

	HidePost(ctx context.Context, moderatorID, postID uint64, reason *string) error
	RestorePost(ctx context.Context, moderatorID, postID uint64, reason *string) error
	HideReply(ctx context.Context, moderatorID, replyID uint64, reason *string) error
	RestoreReply(ctx context.Context, moderatorID, replyID uint64, reason *string) error

	GetLogs(ctx context.Context, page, pageSize int) ([]*dto.ModerationLogDTO, error)
	GetLogsByUser(ctx context.Context, userID uint64, page, pageSize int) ([]*dto.ModerationLogDTO, error)

	CreateAppeal(ctx context.Context, userID uint64, req *dto.AppealCreateDTO) (*model.Appeal, error)
	GetAppeals(ctx context.Context, page, pageSize int) ([]*model.Appeal, error)
	GetAppealsByUser(ctx context.Context, userID uint64, page, pageSize int) ([]*model.Appeal, error)
	ResolveAppeal(ctx context.Context, moderatorID, appealID uint64, accept bool, note *string) error
}

type moderationServiceImpl struct {
	moderationRepo  repository.ModerationRepo
	postRepo        repository.PostRepo
	replyRepo       repository.ReplyRepo
	llmClient       llm.Client
	translationSvc  TranslationService
	notificationSvc NotificationService
	pool            *worker.Pool
	cfg             config.ModerationConfig
}

func NewModerationService(
	moderationRepo repository.ModerationRepo,
	postRepo repository.PostRepo,
	replyRepo repository.ReplyRepo,
	llmClient llm.Client,
	translationSvc TranslationService,
	notificationSvc NotificationService,
	pool *worker.Pool,
	cfg config.ModerationConfig,
) ModerationService {
	return &moderationServiceImpl{
		moderationRepo:  moderationRepo,
		postRepo:        postRepo,
		replyRepo:       replyRepo,
		llmClient:       llmClient,
		translationSvc:  translationSvc,
		notificationSvc: notificationSvc,
		pool:            pool,
		cfg:             cfg,
	}
}

func (s *moderationServiceImpl) ScreenPost(ctx context.Context, post *model.Post, title, flatText string) (string, error) {
	reviewThreshold := s.cfg.ReviewThreshold
	rejectThreshold := s.cfg.RejectThreshold

	moderationLog := &model.ModerationLog{
		TargetType: consts.TargetTypePost,
		TargetID:   post.ID,
		UserID:     post.AuthorID,
	}

	result, err := s.llmClient.Moderate(ctx, title, flatText)
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		// AI未启用：放行，留下可追溯的流水
		moderationLog.RiskScore = 0
		moderationLog.Labels = []string{consts.LabelAIDisabled}
		moderationLog.Decision = consts.DecisionPass
		moderationLog.Reason = "AI审核未启用，默认放行"
	case err != nil:
		// AI出错：不放行也不拒绝，钉在复核阈值上转人工
		log.WarnContext(ctx, "moderation call failed, falling back to review", "post_id", post.ID, "error", err)
		moderationLog.RiskScore = reviewThreshold
		moderationLog.Labels = []string{consts.LabelAIError}
		moderationLog.Decision = consts.DecisionReview
		moderationLog.Reason = err.Error()
	default:
		moderationLog.RiskScore = result.RiskScore
		moderationLog.Labels = result.Labels
		moderationLog.Reason = result.Reason
		// 决定以本地阈值重算为准，分类器给出的 decision 仅作参考
		moderationLog.Decision = decisionForRisk(result.RiskScore, reviewThreshold, rejectThreshold)
	}

	if err := s.moderationRepo.CreateLog(ctx, moderationLog); err != nil {
		return "", err
	}

	switch moderationLog.Decision {
	case consts.DecisionPass:
		if err := s.postRepo.MarkPublished(ctx, post.ID, time.Now()); err != nil {
			return "", err
		}
	default:
		// review 和 reject 都停在 pending，下架和作者通知只由人工复核触发
		if err := s.postRepo.UpdatePostStatus(ctx, post.ID, consts.PostStatusPending); err != nil {
			return "", err
		}
	}

	return moderationLog.Decision, nil
}

func decisionForRisk(risk, reviewThreshold, rejectThreshold int) string {
	switch {
	case risk >= rejectThreshold:
		return consts.DecisionReject
	case risk >= reviewThreshold:
		return consts.DecisionReview
	default:
		return consts.DecisionPass
	}
}

func (s *moderationServiceImpl) GetReviewQueue(ctx context.Context, page, pageSize int) ([]*model.Post, error) {
	return s.postRepo.GetPostsByStatus(ctx, consts.PostStatusPending, pageSize, (page-1)*pageSize)
}

func (s *moderationServiceImpl) ResolvePostReview(ctx context.Context, moderatorID, postID uint64, action string, reason *string) error {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}

	switch action {
	case consts.ActionApprove:
		if err := s.postRepo.MarkPublished(ctx, postID, time.Now()); err != nil {
			return err
		}
		s.enqueueFanout(postID)
		dedupe := fmt.Sprintf("post_published:%d", postID)
		_ = s.notificationSvc.Notify(ctx, post.AuthorID, consts.NotifyPostPublished, &dedupe, map[string]interface{}{
			"post_id": postID,
		})
	case consts.ActionReject:
		if err := s.postRepo.UpdatePostStatus(ctx, postID, consts.PostStatusHidden); err != nil {
			return err
		}
	default:
		return ErrInvalidAction
	}

	if err := s.recordAction(ctx, moderatorID, consts.TargetTypePost, postID, action, reason); err != nil {
		return err
	}

	s.notifyReview(ctx, post.AuthorID, postID, action, derefOrEmpty(reason))
	return nil
}

func (s *moderationServiceImpl) HidePost(ctx context.Context, moderatorID, postID uint64, reason *string) error {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if err := s.postRepo.UpdatePostStatus(ctx, postID, consts.PostStatusHidden); err != nil {
		return err
	}
	return s.recordAction(ctx, moderatorID, consts.TargetTypePost, postID, consts.ActionHide, reason)
}

// RestorePost 恢复被隐藏的帖子；published_at 非空说明曾发布过，直接回到 published
func (s *moderationServiceImpl) RestorePost(ctx context.Context, moderatorID, postID uint64, reason *string) error {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}

	status := consts.PostStatusPending
	if post.PublishedAt != nil {
		status = consts.PostStatusPublished
	}
	if err := s.postRepo.UpdatePostStatus(ctx, postID, status); err != nil {
		return err
	}
	return s.recordAction(ctx, moderatorID, consts.TargetTypePost, postID, consts.ActionRestore, reason)
}

func (s *moderationServiceImpl) HideReply(ctx context.Context, moderatorID, replyID uint64, reason *string) error {
	reply, err := s.replyRepo.GetReply(ctx, replyID)
	if err != nil {
		return err
	}
	if reply == nil {
		return ErrReplyNotFound
	}
	if err := s.replyRepo.UpdateReplyStatus(ctx, replyID, consts.ReplyStatusHidden); err != nil {
		return err
	}
	return s.recordAction(ctx, moderatorID, consts.TargetTypeReply, replyID, consts.ActionHide, reason)
}

func (s *moderationServiceImpl) RestoreReply(ctx context.Context, moderatorID, replyID uint64, reason *string) error {
	reply, err := s.replyRepo.GetReply(ctx, replyID)
	if err != nil {
		return err
	}
	if reply == nil {
		return ErrReplyNotFound
	}
	if err := s.replyRepo.UpdateReplyStatus(ctx, replyID, consts.ReplyStatusVisible); err != nil {
		return err
	}
	return s.recordAction(ctx, moderatorID, consts.TargetTypeReply, replyID, consts.ActionRestore, reason)
}

func (s *moderationServiceImpl) GetLogs(ctx context.Context, page, pageSize int) ([]*dto.ModerationLogDTO, error) {
	logs, err := s.moderationRepo.GetLogs(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	return toLogDTOs(logs), nil
}

func (s *moderationServiceImpl) GetLogsByUser(ctx context.Context, userID uint64, page, pageSize int) ([]*dto.ModerationLogDTO, error) {
	logs, err := s.moderationRepo.GetLogsByUser(ctx, userID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	return toLogDTOs(logs), nil
}

func (s *moderationServiceImpl) CreateAppeal(ctx context.Context, userID uint64, req *dto.AppealCreateDTO) (*model.Appeal, error) {
	switch req.TargetType {
	case consts.TargetTypePost:
		post, err := s.postRepo.GetPost(ctx, req.TargetID)
		if err != nil {
			return nil, err
		}
		if post == nil {
			return nil, ErrPostNotFound
		}
		if post.AuthorID != userID {
			return nil, ForbiddenError
		}
	case consts.TargetTypeReply:
		reply, err := s.replyRepo.GetReply(ctx, req.TargetID)
		if err != nil {
			return nil, err
		}
		if reply == nil {
			return nil, ErrReplyNotFound
		}
		if reply.AuthorID != userID {
			return nil, ForbiddenError
		}
	default:
		return nil, ErrParamInvalid
	}

	appeal := &model.Appeal{
		UserID:     userID,
		TargetType: req.TargetType,
		TargetID:   req.TargetID,
		Reason:     req.Reason,
		Status:     "pending",
	}
	if err := s.moderationRepo.CreateAppeal(ctx, appeal); err != nil {
		return nil, err
	}
	return appeal, nil
}

func (s *moderationServiceImpl) GetAppeals(ctx context.Context, page, pageSize int) ([]*model.Appeal, error) {
	return s.moderationRepo.GetAppeals(ctx, pageSize, (page-1)*pageSize)
}

func (s *moderationServiceImpl) GetAppealsByUser(ctx context.Context, userID uint64, page, pageSize int) ([]*model.Appeal, error) {
	return s.moderationRepo.GetAppealsByUser(ctx, userID, pageSize, (page-1)*pageSize)
}

func (s *moderationServiceImpl) ResolveAppeal(ctx context.Context, moderatorID, appealID uint64, accept bool, note *string) error {
	appeal, err := s.moderationRepo.GetAppeal(ctx, appealID)
	if err != nil {
		return err
	}
	if appeal == nil {
		return ErrAppealNotFound
	}
	if appeal.Status != "pending" {
		return ErrInvalidAction
	}

	if accept {
		appeal.Status = "accepted"
		if err := s.restoreAppealTarget(ctx, moderatorID, appeal, note); err != nil {
			return err
		}
	} else {
		appeal.Status = "rejected"
	}

	now := time.Now()
	appeal.ReviewerID = &moderatorID
	appeal.ReviewedAt = &now
	if err := s.moderationRepo.SaveAppeal(ctx, appeal); err != nil {
		return err
	}

	dedupe := fmt.Sprintf("appeal:%d", appealID)
	_ = s.notificationSvc.Notify(ctx, appeal.UserID, consts.NotifyAppealResolved, &dedupe, map[string]interface{}{
		"appeal_id":   appealID,
		"target_type": appeal.TargetType,
		"target_id":   appeal.TargetID,
		"status":      appeal.Status,
		"note":        derefOrEmpty(note),
	})
	return nil
}

func (s *moderationServiceImpl) restoreAppealTarget(ctx context.Context, moderatorID uint64, appeal *model.Appeal, note *string) error {
	switch appeal.TargetType {
	case consts.TargetTypePost:
		return s.RestorePost(ctx, moderatorID, appeal.TargetID, note)
	case consts.TargetTypeReply:
		return s.RestoreReply(ctx, moderatorID, appeal.TargetID, note)
	default:
		return ErrParamInvalid
	}
}

func (s *moderationServiceImpl) recordAction(ctx context.Context, moderatorID uint64, targetType string, targetID uint64, action string, reason *string) error {
	return s.moderationRepo.CreateAction(ctx, &model.ModerationAction{
		ModeratorID: moderatorID,
		TargetType:  targetType,
		TargetID:    targetID,
		Action:      action,
		Reason:      reason,
	})
}

// notifyReview 审核结果通知，同一帖子同一动作只通知一次
func (s *moderationServiceImpl) notifyReview(ctx context.Context, authorID, postID uint64, action, reason string) {
	dedupe := fmt.Sprintf("post_review:%d:%s", postID, action)
	err := s.notificationSvc.Notify(ctx, authorID, consts.NotifyPostReviewed, &dedupe, map[string]interface{}{
		"post_id": postID,
		"action":  action,
		"reason":  reason,
	})
	if err != nil {
		log.WarnContext(ctx, "failed to send review notification", "post_id", postID, "error", err)
	}
}

func (s *moderationServiceImpl) enqueueFanout(postID uint64) {
	s.pool.Submit(func(ctx context.Context) {
		if err := s.translationSvc.EnsureTranslations(ctx, postID); err != nil {
			log.ErrorContext(ctx, "translation fanout failed", "post_id", postID, "error", err)
		}
	})
}

func toLogDTOs(logs []*model.ModerationLog) []*dto.ModerationLogDTO {
	list := make([]*dto.ModerationLogDTO, 0, len(logs))
	for _, l := range logs {
		item := &dto.ModerationLogDTO{}
		_ = copier.Copy(item, l)
		item.CreatedAt = l.CreatedAt.Format("2006-01-02 15:04:05")
		list = append(list, item)
	}
	return list
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
