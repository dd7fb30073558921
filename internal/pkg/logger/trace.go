package logger

import (
	"context"
	log "log/slog"
)

// TraceIDKey 定义 Context 中的 Key。
// 请求链路由 TraceMiddleware 注入，后台任务由 worker 池注入。
const TraceIDKey = "trace_id"

// ContextHandler 包装器，把 ctx 中的 trace_id 补到日志属性里
type ContextHandler struct {
	log.Handler
}

func (h *ContextHandler) Handle(ctx context.Context, r log.Record) error {
	if ctx != nil {
		if traceID, ok := ctx.Value(TraceIDKey).(string); ok && traceID != "" {
			r.AddAttrs(log.String(TraceIDKey, traceID))
		}
	}
	return h.Handler.Handle(ctx, r)
}
