package service

import (
	"BridgeUS/internal/api/config"
	"BridgeUS/internal/model"
	"BridgeUS/internal/pkg/consts"
	"BridgeUS/internal/pkg/llm"
	"BridgeUS/internal/pkg/redis"
	"BridgeUS/internal/repository"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

const translateLockExpiration = 2 * time.Minute

type TranslationService interface {
	// EnsureTranslations 把帖子扇出到所有受支持语言。
	// 已有的语言行跳过，单个语言失败只记录并继续，不影响其余语言
	EnsureTranslations(ctx context.Context, postID uint64) error

	// EnsureLanguage 按需补一个语言的翻译行，带分布式锁防止并发重复翻译
	EnsureLanguage(ctx context.Context, postID uint64, language string) (*model.PostTranslation, error)

	// Resolve 按请求语言解析翻译行：精确命中，其次原文，最后任意一行
	Resolve(ctx context.Context, postID uint64, language string) (*model.PostTranslation, error)

	GetTranslations(ctx context.Context, postID uint64) ([]*model.PostTranslation, error)
}

type translationServiceImpl struct {
	translationRepo repository.TranslationRepo
	postRepo        repository.PostRepo
	llmClient       llm.Client
	i18n            config.I18nConfig
}

func NewTranslationService(
	translationRepo repository.TranslationRepo,
	postRepo repository.PostRepo,
	llmClient llm.Client,
	i18n config.I18nConfig,
) TranslationService {
	return &translationServiceImpl{
		translationRepo: translationRepo,
		postRepo:        postRepo,
		llmClient:       llmClient,
		i18n:            i18n,
	}
}

func (s *translationServiceImpl) EnsureTranslations(ctx context.Context, postID uint64) error {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}

	original, err := s.translationRepo.GetTranslation(ctx, postID, post.OriginalLanguage)
	if err != nil {
		return err
	}
	if original == nil {
		return ErrOriginalMissing
	}

	for _, language := range s.i18n.SupportedLanguages {
		if language == post.OriginalLanguage {
			continue
		}
		existing, err := s.translationRepo.GetTranslation(ctx, postID, language)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		if err := s.translateInto(ctx, original, language); err != nil {
			log.WarnContext(ctx, "translation skipped", "post_id", postID, "language", language, "error", err)
		}
	}
	return nil
}

func (s *translationServiceImpl) EnsureLanguage(ctx context.Context, postID uint64, language string) (*model.PostTranslation, error) {
	existing, err := s.translationRepo.GetTranslation(ctx, postID, language)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	original, err := s.translationRepo.GetTranslation(ctx, postID, post.OriginalLanguage)
	if err != nil {
		return nil, err
	}
	if original == nil {
		return nil, ErrOriginalMissing
	}

	lockKey := fmt.Sprintf("%s%d:%s", consts.TranslateLock, postID, language)
	lockValue := uuid.NewString()
	acquired, err := redis.TryLock(ctx, lockKey, lockValue, translateLockExpiration, 3)
	if err != nil {
		return nil, err
	}
	if !acquired {
		// 其他实例正在翻译，直接降级读原文
		return original, nil
	}
	defer redis.UnLock(ctx, lockKey, lockValue)

	// 拿锁期间别人可能已经写入
	existing, err = s.translationRepo.GetTranslation(ctx, postID, language)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	if err := s.translateInto(ctx, original, language); err != nil {
		return nil, err
	}
	return s.translationRepo.GetTranslation(ctx, postID, language)
}

func (s *translationServiceImpl) Resolve(ctx context.Context, postID uint64, language string) (*model.PostTranslation, error) {
	if language != "" {
		translation, err := s.translationRepo.GetTranslation(ctx, postID, language)
		if err != nil {
			return nil, err
		}
		if translation != nil {
			return translation, nil
		}
	}

	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	translation, err := s.translationRepo.GetTranslation(ctx, postID, post.OriginalLanguage)
	if err != nil {
		return nil, err
	}
	if translation != nil {
		return translation, nil
	}

	translations, err := s.translationRepo.GetTranslations(ctx, postID)
	if err != nil {
		return nil, err
	}
	if len(translations) == 0 {
		return nil, ErrOriginalMissing
	}
	return translations[0], nil
}

func (s *translationServiceImpl) GetTranslations(ctx context.Context, postID uint64) ([]*model.PostTranslation, error) {
	return s.translationRepo.GetTranslations(ctx, postID)
}

// translateInto 标题与正文各走一次翻译调用，任一为空视为失败
func (s *translationServiceImpl) translateInto(ctx context.Context, original *model.PostTranslation, language string) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return ctx.Err()
	}

	title, err := s.llmClient.Translate(ctx, original.Title, original.Language, language)
	if err != nil {
		return err
	}
	content, err := s.llmClient.Translate(ctx, original.Content, original.Language, language)
	if err != nil {
		return err
	}

	modelName := s.llmClient.Model()
	translation := &model.PostTranslation{
		PostID:       original.PostID,
		Language:     language,
		Title:        title,
		Content:      content,
		TranslatedBy: consts.TranslatedByAI,
		Model:        &modelName,
		Status:       "ready",
	}
	if err := s.translationRepo.CreateTranslation(ctx, translation); err != nil {
		// 并发写入撞唯一索引说明已有，不算失败
		if isDuplicateError(err) {
			return nil
		}
		return err
	}
	return nil
}
