package middleware

import (
	"bytes"
	"log/slog"
	"strings"
	"time"

	"campus-events/internal/global/response"
	"campus-events/internal/global/scope"

	sentrylib "github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
)

// maxResponseLogSize 日志中记录的响应体最大大小（10KB）
const maxResponseLogSize = 10 * 1024

// bodyRecorder 只缓存响应体的前 maxResponseLogSize 字节
type bodyRecorder struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	if remaining := maxResponseLogSize - w.body.Len(); remaining > 0 {
		w.body.Write(b[:min(len(b), remaining)])
	}
	return w.ResponseWriter.Write(b)
}

// identityAttrs 把身份展开为日志字段
func identityAttrs(c *gin.Context) []any {
	id, ok := scope.Get(c)
	if !ok {
		return nil
	}
	switch v := id.(type) {
	case scope.SuperAdmin:
		return []any{"role", "super_admin", "admin_id", v.AdminID}
	case scope.CollegeAdmin:
		return []any{"role", "college_admin", "admin_id", v.AdminID, "college_id", v.CollegeID}
	case scope.StudentUser:
		return []any{"role", "student", "student_id", v.StudentID, "college_id", v.CollegeID}
	}
	return nil
}

// Logger 访问日志；xlsx 等非 JSON 响应不记录响应体
func Logger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		rec := &bodyRecorder{ResponseWriter: c.Writer}
		c.Writer = rec

		c.Next()

		body := "(omitted)"
		if strings.HasPrefix(c.Writer.Header().Get("Content-Type"), "application/json") {
			body = rec.body.String()
			if rec.body.Len() >= maxResponseLogSize {
				body += "...(truncated)"
			}
		}

		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"client_ip", c.ClientIP(),
			"response_body", body,
		}
		attrs = append(attrs, identityAttrs(c)...)
		if v, ok := c.Get(response.ErrorContextKey); ok {
			if e, ok := v.(*response.Error); ok {
				attrs = append(attrs, "error_kind", e.Kind())
			}
		}

		// 5xx 用 Error 级别，会作为 Sentry Event 上报
		if c.Writer.Status() >= 500 {
			log.Error("HTTP Request", attrs...)
			return
		}
		log.Info("HTTP Request", attrs...)
	}
}

// SentryEnrichIP 放在 sentry.Middleware() 之后，后续上报都携带客户端 IP
func SentryEnrichIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		if hub := sentrygin.GetHubFromContext(c); hub != nil {
			hub.ConfigureScope(func(s *sentrylib.Scope) {
				ip := c.ClientIP()
				s.SetUser(sentrylib.User{IPAddress: ip})
				s.SetTag("client_ip", ip)
				if v := c.GetHeader("X-Forwarded-For"); v != "" {
					s.SetTag("x_forwarded_for", v)
				}
				if v := c.GetHeader("X-Real-IP"); v != "" {
					s.SetTag("x_real_ip", v)
				}
			})
		}
		c.Next()
	}
}
