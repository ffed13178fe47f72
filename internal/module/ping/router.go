package ping

import (
	"campus-events/internal/global/database"
	"campus-events/internal/global/redis"
	"campus-events/internal/global/response"

	"github.com/gin-gonic/gin"
)

const version = "1.0.0"

func (p *ModulePing) InitRouter(r *gin.RouterGroup) {
	r.GET("/ping", Ping)
}

// Ping 健康检查，数据库不可用时返回 500；redis 未配置时不检查
func Ping(c *gin.Context) {
	ctx := c.Request.Context()
	result := gin.H{
		"message": "pong",
		"version": version,
	}

	sqlDB, err := database.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		log.Error("数据库不可用", "error", err)
		response.Fail(c, response.ErrDatabase.WithOrigin(err))
		return
	}
	if redis.Client != nil {
		if err := redis.Client.Ping(ctx).Err(); err != nil {
			log.Warn("redis 不可用", "error", err)
			result["redis"] = "unavailable"
		} else {
			result["redis"] = "ok"
		}
	}
	response.Success(c, result)
}
