package wire

import (
	"BridgeUS/internal/api"
	"BridgeUS/internal/api/config"
	"BridgeUS/internal/api/handler"
	"BridgeUS/internal/job"
	"BridgeUS/internal/pkg/cron"
	"BridgeUS/internal/pkg/llm"
	"BridgeUS/internal/pkg/worker"
	"BridgeUS/internal/repository"
	"BridgeUS/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router     *gin.Engine
	DB         *gorm.DB
	WorkerPool *worker.Pool
	CronMgr    *cron.Manager
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	postRepo := repository.NewPostRepo(db)
	translationRepo := repository.NewTranslationRepo(db)
	replyRepo := repository.NewReplyRepo(db)
	interactionRepo := repository.NewInteractionRepo(db)
	moderationRepo := repository.NewModerationRepo(db)
	notificationRepo := repository.NewNotificationRepo(db)
	profileRepo := repository.NewProfileRepo(db)
	userRepo := repository.NewUserRepo(db)

	llmClient, err := llm.NewClient(cfg.LLM)
	if err != nil {
		return nil, err
	}
	pool := worker.NewPool(cfg.Worker.QueueSize, cfg.Worker.Workers)

	notificationService := service.NewNotificationService(notificationRepo, userRepo)
	translationService := service.NewTranslationService(translationRepo, postRepo, llmClient, cfg.I18n)
	moderationService := service.NewModerationService(
		moderationRepo, postRepo, replyRepo, llmClient,
		translationService, notificationService, pool, cfg.Moderation,
	)
	submissionService := service.NewSubmissionService(
		postRepo, translationRepo,
		moderationService, translationService, notificationService, pool,
	)
	postService := service.NewPostService(postRepo, translationRepo, profileRepo, translationService, submissionService, cfg.I18n)
	replyService := service.NewReplyService(replyRepo, postRepo, profileRepo, notificationService)
	interactionService := service.NewInteractionService(
		interactionRepo, postRepo, replyRepo, profileRepo, translationRepo,
		notificationService,
	)

	handlers := &api.HandlersGroup{
		PostHandler:         handler.NewPostHandler(postService),
		ReplyHandler:        handler.NewReplyHandler(replyService),
		InteractionHandler:  handler.NewInteractionHandler(interactionService),
		NotificationHandler: handler.NewNotificationHandler(notificationService),
		ModerationHandler:   handler.NewModerationHandler(moderationService),
	}

	router := api.SetupRouter(handlers)

	scoreSyncJob := job.NewScoreSyncJob(interactionService)
	translationSweepJob := job.NewTranslationSweepJob(postRepo, translationService, cfg.I18n)
	cronMgr := cron.NewCronManager(scoreSyncJob, translationSweepJob)

	return &ApplicationContainer{
		Router:     router,
		DB:         db,
		WorkerPool: pool,
		CronMgr:    cronMgr,
	}, nil
}
