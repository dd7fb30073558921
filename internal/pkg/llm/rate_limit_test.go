package llm

import (
	redispkg "BridgeUS/internal/pkg/redis"
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupQuotaTest(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	redispkg.Rdb = goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
}

func TestDailyQuotaBlocksAfterLimit(t *testing.T) {
	setupQuotaTest(t)
	ctx := context.Background()

	require.NoError(t, acquireDailyQuota(ctx, 2))
	require.NoError(t, acquireDailyQuota(ctx, 2))
	assert.ErrorIs(t, acquireDailyQuota(ctx, 2), ErrDailyLimitExceeded)
}

func TestDailyQuotaUnlimitedWhenZero(t *testing.T) {
	setupQuotaTest(t)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		require.NoError(t, acquireDailyQuota(ctx, 0))
	}
}

func TestDailyQuotaSkipsWhenRedisDown(t *testing.T) {
	setupQuotaTest(t)
	redispkg.Rdb = goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1"})

	// 计数器不可用时不拦截调用
	assert.NoError(t, acquireDailyQuota(context.Background(), 1))
}
