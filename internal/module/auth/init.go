package auth

import (
	"log/slog"

	"campus-events/config"
	"campus-events/internal/global/logger"
	"campus-events/internal/global/redis"
)

var (
	log   = slog.Default()
	guard = NewGuard(nil, 0, 0)
)

type ModuleAuth struct{}

func (*ModuleAuth) GetName() string {
	return "Auth"
}

func (*ModuleAuth) Init() {
	log = logger.New("Auth")
	cfg := config.Get().Login
	if redis.Client != nil {
		guard = NewGuard(redis.Client, cfg.MaxAttempts, cfg.LockMinutes)
	} else {
		log.Warn("未配置 Redis，登录失败限流已关闭")
	}
}
