package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"campus-events/internal/global/response"

	goredis "github.com/redis/go-redis/v9"
)

// counterStore 登录失败计数所需的 redis 命令，*goredis.Client 满足该接口
type counterStore interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Incr(ctx context.Context, key string) *goredis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *goredis.BoolCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
}

// Guard 按账号统计连续登录失败次数，达到上限后锁定一段时间。
// store 为 nil 时不做限制；redis 出错时放行。
type Guard struct {
	store       counterStore
	maxAttempts int64
	lock        time.Duration
}

func NewGuard(store counterStore, maxAttempts, lockMinutes int) *Guard {
	return &Guard{
		store:       store,
		maxAttempts: int64(maxAttempts),
		lock:        time.Duration(lockMinutes) * time.Minute,
	}
}

func guardKey(kind, email string) string {
	return "campus:login:fail:" + kind + ":" + strings.ToLower(email)
}

// Check 已锁定时返回 ErrTooManyRequests
func (g *Guard) Check(ctx context.Context, kind, email string) error {
	if g.store == nil || g.maxAttempts <= 0 {
		return nil
	}
	n, err := g.store.Get(ctx, guardKey(kind, email)).Int64()
	if err != nil {
		if !errors.Is(err, goredis.Nil) {
			log.Warn("读取登录失败次数出错", "error", err)
		}
		return nil
	}
	if n >= g.maxAttempts {
		return response.ErrTooManyRequests
	}
	return nil
}

// Fail 记录一次失败，首次失败时开始计时
func (g *Guard) Fail(ctx context.Context, kind, email string) {
	if g.store == nil || g.maxAttempts <= 0 {
		return
	}
	key := guardKey(kind, email)
	n, err := g.store.Incr(ctx, key).Result()
	if err != nil {
		log.Warn("记录登录失败次数出错", "error", err)
		return
	}
	if n == 1 {
		if err := g.store.Expire(ctx, key, g.lock).Err(); err != nil {
			log.Warn("设置登录锁定时间出错", "error", err)
		}
	}
}

func (g *Guard) Reset(ctx context.Context, kind, email string) {
	if g.store == nil {
		return
	}
	if err := g.store.Del(ctx, guardKey(kind, email)).Err(); err != nil {
		log.Warn("清除登录失败次数出错", "error", err)
	}
}
