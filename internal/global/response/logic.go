package response

import (
	"errors"
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// ErrorContextKey gin.Context 中保存 *Error 的键
const ErrorContextKey = "error"

// ResponseContextKey gin.Context 中保存响应体的键，供 Sentry 上报使用
const ResponseContextKey = "response_body"

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// Error 带错误码的业务错误，Origin 仅在 debug 模式返回给前端
type Error struct {
	Code    int32  `json:"code"`
	Message string `json:"msg"`
	Origin  string `json:"origin"`
	cause   error
	stack   pkgerrors.StackTrace
}

func newError(code int32, msg string) *Error {
	return &Error{
		Code:    code,
		Message: msg,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("code:%d, msg:%s", e.Code, e.Message)
}

// GetCode 实现 sentry.CodedError
func (e *Error) GetCode() int32 {
	return e.Code
}

// Kind 错误码所属的类别，写入访问日志
func (e *Error) Kind() string {
	switch {
	case e.Code == 400:
		return "validation"
	case e.Code == 401:
		return "authentication_required"
	case e.Code == 403:
		return "authorization"
	case e.Code == 404:
		return "not_found"
	case e.Code == 409:
		return "duplicate"
	case e.Code == 422:
		return "precondition"
	case e.Code == 429:
		return "throttled"
	case e.Code >= 500:
		return "server"
	}
	return "unknown"
}

func (e *Error) Unwrap() error {
	return e.cause
}

// StackTrace 供 Sentry 提取堆栈
func (e *Error) StackTrace() pkgerrors.StackTrace {
	if e.stack != nil {
		return e.stack
	}
	if st, ok := e.cause.(stackTracer); ok {
		return st.StackTrace()
	}
	return nil
}

// Is 只比较错误码，WithTips 派生出的错误与原错误相等
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// WithOrigin 附带原始错误并记录堆栈
func (e *Error) WithOrigin(err error) *Error {
	if err == nil {
		return e
	}
	if _, ok := err.(stackTracer); !ok {
		err = pkgerrors.WithStack(err)
	}
	return &Error{
		Code:    e.Code,
		Message: e.Message,
		Origin:  fmt.Sprintf("%+v", err),
		cause:   err,
		stack:   err.(stackTracer).StackTrace(),
	}
}

// WithTips 用更具体的提示替换默认消息（release 模式也可见）
func (e *Error) WithTips(details ...string) *Error {
	msg := e.Message
	if len(details) > 0 {
		msg = strings.Join(details, "; ")
	}
	return &Error{
		Code:    e.Code,
		Message: msg,
		Origin:  e.Origin,
		cause:   e.cause,
		stack:   e.stack,
	}
}
