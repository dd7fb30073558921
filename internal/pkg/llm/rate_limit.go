package llm

import (
	"BridgeUS/internal/pkg/consts"
	"BridgeUS/internal/pkg/redis"
	"context"
	"errors"
	log "log/slog"
	"time"

	"golang.org/x/sync/semaphore"
)

var (
	TextWeight = int64(5)
	TextSem    = semaphore.NewWeighted(TextWeight)
)

// ErrDailyLimitExceeded 当日AI调用量达到上限
var ErrDailyLimitExceeded = errors.New("AI调用达到当日上限")

// acquireDailyQuota 基于 Redis 计数的每日用量闸门。
// limit <= 0 表示不限量；Redis 不可用时只告警不拦截
func acquireDailyQuota(ctx context.Context, limit int64) error {
	if limit <= 0 {
		return nil
	}

	key := consts.LLMDailyUsage + time.Now().Format("20060102")
	count, err := redis.Incr(ctx, key)
	if err != nil {
		log.WarnContext(ctx, "llm usage counter unavailable, skipping quota check", "error", err)
		return nil
	}
	if count == 1 {
		_ = redis.Expire(ctx, key, 48*time.Hour)
	}
	if count > limit {
		return ErrDailyLimitExceeded
	}
	return nil
}
