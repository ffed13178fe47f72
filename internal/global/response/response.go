package response

import (
	"errors"
	"net/http"

	"campus-events/config"
	"campus-events/internal/global/sentry"

	"github.com/gin-gonic/gin"
)

// ResponseBody 统一响应体
type ResponseBody struct {
	Code   int32  `json:"code"`
	Msg    string `json:"msg"`
	Origin string `json:"origin,omitempty"`
	Data   any    `json:"data,omitempty"`
}

var (
	ErrInvalidRequest  = newError(400, "invalid request")
	ErrTokenInvalid    = newError(401, "invalid or expired token")
	ErrUnauthorized    = newError(401, "authentication required")
	ErrInvalidPassword = newError(401, "invalid email or password")
	ErrForbidden       = newError(403, "access denied")
	ErrNotFound        = newError(404, "not found")
	ErrAlreadyExists   = newError(409, "already exists")
	ErrNotAttended     = newError(422, "you must have attended the event to provide feedback")
	ErrTooManyRequests = newError(429, "too many failed attempts, try again later")
	ErrDatabase        = newError(500, "database error")
	ErrServerInternal  = newError(500, "server error")
)

func Success(c *gin.Context, data ...any) {
	body := ResponseBody{
		Code: http.StatusOK,
		Msg:  "success",
	}
	if len(data) > 0 {
		body.Data = data[0]
	}
	c.Set(ResponseContextKey, body)
	c.JSON(http.StatusOK, body)
}

// Fail 写入错误响应，非 *Error 的错误统一视为服务器内部错误
func Fail(c *gin.Context, err error) {
	var e *Error
	if !errors.As(err, &e) {
		e = ErrServerInternal.WithOrigin(err)
	}

	body := ResponseBody{
		Code: e.Code,
		Msg:  e.Message,
	}
	if config.Get().Mode == config.ModeDebug {
		body.Origin = e.Origin
	}

	c.Set(ErrorContextKey, e)
	c.Set(ResponseContextKey, body)
	if e.Code >= 500 {
		sentry.CaptureException(c, e)
	}
	c.AbortWithStatusJSON(httpStatus(e.Code), body)
}

func httpStatus(code int32) int {
	if code >= 100 && code < 600 {
		return int(code)
	}
	return http.StatusInternalServerError
}
