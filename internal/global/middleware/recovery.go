package middleware

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	"campus-events/internal/global/response"

	"github.com/gin-gonic/gin"
)

// Recovery 记录 panic 堆栈后返回 500
func Recovery(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			log.Error("panic recovered", "panic", r, "path", c.Request.URL.Path, "stack", string(debug.Stack()))
			err, ok := r.(error)
			if !ok {
				err = fmt.Errorf("panic: %v", r)
			}
			response.Fail(c, response.ErrServerInternal.WithOrigin(err))
		}()
		c.Next()
	}
}
