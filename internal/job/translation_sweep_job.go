package job

import (
	"BridgeUS/internal/api/config"
	"BridgeUS/internal/pkg/logger"
	"BridgeUS/internal/repository"
	"BridgeUS/internal/service"
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

// TranslationSweepJob 把扇出时漏掉的翻译补齐。
// 扇出阶段单语言失败只跳过，这里是唯一的重试入口
type TranslationSweepJob struct {
	postRepo       repository.PostRepo
	translationSvc service.TranslationService
	i18n           config.I18nConfig
}

func NewTranslationSweepJob(postRepo repository.PostRepo, translationSvc service.TranslationService, i18n config.I18nConfig) *TranslationSweepJob {
	return &TranslationSweepJob{
		postRepo:       postRepo,
		translationSvc: translationSvc,
		i18n:           i18n,
	}
}

func (s *TranslationSweepJob) Run() {
	traceID := "job-translation-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	languageCount := len(s.i18n.SupportedLanguages)
	postIDs, err := s.postRepo.GetPublishedPostIDsMissingTranslations(ctx, languageCount)
	if err != nil {
		log.ErrorContext(ctx, "list posts missing translations error", "err", err)
		return
	}
	if len(postIDs) == 0 {
		return
	}

	for _, pid := range postIDs {
		if err := s.translationSvc.EnsureTranslations(ctx, pid); err != nil {
			log.ErrorContext(ctx, "translation sweep error", "pid", pid, "err", err)
		}
	}

	log.InfoContext(ctx, "translation sweep finished", "post_count", len(postIDs))
}
