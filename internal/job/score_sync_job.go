package job

import (
	"BridgeUS/internal/pkg/consts"
	"BridgeUS/internal/pkg/logger"
	"BridgeUS/internal/pkg/redis"
	"BridgeUS/internal/pkg/util"
	"BridgeUS/internal/service"
	"context"
	log "log/slog"

	"github.com/google/uuid"
)

// ScoreSyncJob 对账任务：把脏集里的帖子与用户全量重算一遍派生分。
// 请求路径上的重算失败不重试，靠这里兜底收敛
type ScoreSyncJob struct {
	interactionSvc service.InteractionService
}

func NewScoreSyncJob(interactionSvc service.InteractionService) *ScoreSyncJob {
	return &ScoreSyncJob{interactionSvc: interactionSvc}
}

func (s *ScoreSyncJob) Run() {
	traceID := "job-score-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	postCount := s.drainPosts(ctx)
	userCount := s.drainUsers(ctx)

	if postCount > 0 || userCount > 0 {
		log.InfoContext(ctx, "score sync finished", "post_count", postCount, "user_count", userCount)
	}
}

func (s *ScoreSyncJob) drainPosts(ctx context.Context) int {
	processingKey := consts.PostScoreDirtyKey + ":processing"
	if err := redis.Rename(ctx, consts.PostScoreDirtyKey, processingKey); err != nil {
		return 0
	}

	members, err := redis.GetSet(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "get post dirty set error", "err", err)
		return 0
	}

	postIDs, err := util.StrSliceToUInt64Slice(members)
	if err != nil {
		log.ErrorContext(ctx, "convert post dirty set error", "err", err)
		return 0
	}

	for _, pid := range postIDs {
		if err := s.interactionSvc.RecomputePostScores(ctx, pid); err != nil {
			log.ErrorContext(ctx, "recompute post scores error", "pid", pid, "err", err)
		}
	}

	if err := redis.DeleteKey(ctx, processingKey); err != nil {
		log.ErrorContext(ctx, "delete post processing set error", "err", err)
	}
	return len(postIDs)
}

func (s *ScoreSyncJob) drainUsers(ctx context.Context) int {
	processingKey := consts.UserScoreDirtyKey + ":processing"
	if err := redis.Rename(ctx, consts.UserScoreDirtyKey, processingKey); err != nil {
		return 0
	}

	members, err := redis.GetSet(ctx, processingKey)
	if err != nil {
		log.ErrorContext(ctx, "get user dirty set error", "err", err)
		return 0
	}

	userIDs, err := util.StrSliceToUInt64Slice(members)
	if err != nil {
		log.ErrorContext(ctx, "convert user dirty set error", "err", err)
		return 0
	}

	for _, uid := range userIDs {
		if err := s.interactionSvc.RecomputeUserScores(ctx, uid); err != nil {
			log.ErrorContext(ctx, "recompute user scores error", "uid", uid, "err", err)
		}
	}

	if err := redis.DeleteKey(ctx, processingKey); err != nil {
		log.ErrorContext(ctx, "delete user processing set error", "err", err)
	}
	return len(userIDs)
}
