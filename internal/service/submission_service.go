package service

import (
	"BridgeUS/internal/pkg/consts"
	"BridgeUS/internal/pkg/flatten"
	"BridgeUS/internal/pkg/redis"
	"BridgeUS/internal/pkg/worker"
	"BridgeUS/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

const submissionLockExpiration = 5 * time.Minute

// SubmissionService 提交管线的编排者：审核、扇出、发布通知按序执行。
// 整条管线在请求之外跑，失败只留日志，帖子停在 pending 等人工兜底
type SubmissionService interface {
	Run(ctx context.Context, postID uint64) error
	Enqueue(postID uint64) bool
}

type submissionServiceImpl struct {
	postRepo        repository.PostRepo
	translationRepo repository.TranslationRepo
	moderationSvc   ModerationService
	translationSvc  TranslationService
	notificationSvc NotificationService
	pool            *worker.Pool
}

func NewSubmissionService(
	postRepo repository.PostRepo,
	translationRepo repository.TranslationRepo,
	moderationSvc ModerationService,
	translationSvc TranslationService,
	notificationSvc NotificationService,
	pool *worker.Pool,
) SubmissionService {
	return &submissionServiceImpl{
		postRepo:        postRepo,
		translationRepo: translationRepo,
		moderationSvc:   moderationSvc,
		translationSvc:  translationSvc,
		notificationSvc: notificationSvc,
		pool:            pool,
	}
}

func (s *submissionServiceImpl) Run(ctx context.Context, postID uint64) error {
	lockKey := fmt.Sprintf("%s%d", consts.SubmissionLock, postID)
	lockValue := uuid.NewString()
	acquired, err := redis.TryLock(ctx, lockKey, lockValue, submissionLockExpiration, 1)
	if err != nil {
		return err
	}
	if !acquired {
		log.InfoContext(ctx, "submission already in flight, skipping", "post_id", postID)
		return nil
	}
	defer redis.UnLock(ctx, lockKey, lockValue)

	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.Status != consts.PostStatusPending {
		log.InfoContext(ctx, "post not pending, skipping pipeline", "post_id", postID, "status", post.Status)
		return nil
	}

	original, err := s.translationRepo.GetTranslation(ctx, postID, post.OriginalLanguage)
	if err != nil {
		return err
	}
	if original == nil {
		return ErrOriginalMissing
	}

	flatText := flatten.Flatten(original.Content)
	decision, err := s.moderationSvc.ScreenPost(ctx, post, original.Title, flatText)
	if err != nil {
		return err
	}
	if decision != consts.DecisionPass {
		return nil
	}

	if err := s.translationSvc.EnsureTranslations(ctx, postID); err != nil {
		log.WarnContext(ctx, "translation fanout incomplete", "post_id", postID, "error", err)
	}

	dedupe := fmt.Sprintf("post_published:%d", postID)
	err = s.notificationSvc.Notify(ctx, post.AuthorID, consts.NotifyPostPublished, &dedupe, map[string]interface{}{
		"post_id": postID,
		"title":   original.Title,
	})
	if err != nil {
		log.WarnContext(ctx, "failed to send publish notification", "post_id", postID, "error", err)
	}
	return nil
}

func (s *submissionServiceImpl) Enqueue(postID uint64) bool {
	return s.pool.Submit(func(ctx context.Context) {
		if err := s.Run(ctx, postID); err != nil {
			log.ErrorContext(ctx, "submission pipeline failed", "post_id", postID, "error", err)
		}
	})
}
