package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"campus-events/config"
	"campus-events/internal/global/database"
	"campus-events/internal/global/logger"
	"campus-events/internal/global/middleware"
	"campus-events/internal/global/redis"
	"campus-events/internal/global/sentry"
	"campus-events/internal/global/storage"
	"campus-events/internal/module"
	"campus-events/internal/module/superadmin"
	"campus-events/tools"

	"github.com/gin-gonic/gin"
)

var log *slog.Logger

func Init() {
	config.Init()
	log = logger.New("Server")

	if err := sentry.Init(); err != nil {
		log.Error("Sentry 初始化失败", "error", err)
	}

	database.Init()

	if err := redis.Init(); err != nil {
		log.Error("Redis 连接失败，登录限流已关闭", "error", err)
	}
	if err := storage.Init(context.Background()); err != nil {
		log.Error("对象存储初始化失败，报表改为直接下载", "error", err)
	}

	if b := config.Get().Bootstrap; b.SuperAdminEmail != "" {
		created, err := superadmin.EnsureSuperAdmin(database.DB, b.SuperAdminEmail, b.SuperAdminPassword)
		tools.PanicOnErr(err)
		if created {
			log.Info("已创建超级管理员", "email", b.SuperAdminEmail)
		}
	}

	for _, m := range module.Modules {
		log.Info(fmt.Sprintf("Init Module: %s", m.GetName()))
		m.Init()
	}
}

func Run() {
	gin.SetMode(string(config.Get().Mode))
	r := gin.New()

	r.Use(sentry.Middleware())
	r.Use(middleware.SentryEnrichIP())
	switch config.Get().Mode {
	case config.ModeRelease:
		r.Use(middleware.Logger(logger.Get()))
	case config.ModeDebug:
		r.Use(gin.Logger())
	}
	r.Use(middleware.Cors())
	r.Use(middleware.Recovery(logger.New("Recovery")))

	for _, m := range module.Modules {
		log.Info(fmt.Sprintf("Init Router: %s", m.GetName()))
		m.InitRouter(r.Group("/" + config.Get().Prefix))
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort(config.Get().Host, config.Get().Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			tools.PanicOnErr(err)
		}
	}()

	<-ctx.Done()
	log.Info("Server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", "error", err)
	}
	if redis.Client != nil {
		_ = redis.Client.Close()
	}
	sentry.Flush(2 * time.Second)
}
