package redis

import (
	"context"
	"net"
	"time"

	"campus-events/config"
	"campus-events/internal/global/sentry/tracing"

	goredis "github.com/redis/go-redis/v9"
)

// Client 未配置 Host 时为 nil，依赖方需自行降级
var Client *goredis.Client

func Init() error {
	cfg := config.Get().Redis
	if cfg.Host == "" {
		return nil
	}
	c := goredis.NewClient(&goredis.Options{
		Addr:     net.JoinHostPort(cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if tracing.IsEnabled() {
		c.AddHook(tracing.NewRedisSentryHook())
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		return err
	}
	Client = c
	return nil
}
