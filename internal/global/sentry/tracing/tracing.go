// Package tracing 提供 Sentry 性能追踪：GORM 回调、Redis hook 以及业务 span
package tracing

import (
	"context"

	"campus-events/config"

	"github.com/getsentry/sentry-go"
)

// IsEnabled 检查 Sentry 追踪是否已启用
func IsEnabled() bool {
	return config.Get().Sentry.Dsn != ""
}

// StartSpan 在 ctx 中的 transaction 下开一个子 span，没有父 span 时返回 nil
// 调用方用 Finish 结束：defer tracing.Finish(span)
func StartSpan(ctx context.Context, operation, description string) *sentry.Span {
	parent := sentry.SpanFromContext(ctx)
	if parent == nil {
		return nil
	}
	span := parent.StartChild(operation)
	span.Description = description
	return span
}

// Finish 结束 span，允许 nil
func Finish(span *sentry.Span) {
	if span != nil {
		span.Finish()
	}
}
