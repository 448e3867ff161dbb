package logctx

import (
	"context"
	"log/slog"
)

// NewTracingHandler wraps h so every record logged with a context
// carries that context's active trace id, under the trace's own key
// (like "submit_trace_id").
func NewTracingHandler(h slog.Handler) slog.Handler {
	return &TracingHandler{
		h: h,
		GetTraceId: func(ctx context.Context) (string, any) {
			k, t := ActiveTraceId(ctx)
			if k == MissingTraceIdKey {
				return "", nil
			}
			return string(k), t
		},
	}
}

type TracingHandler struct {
	h          slog.Handler
	GetTraceId func(context.Context) (string, any)
}

func (t *TracingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return t.h.Enabled(ctx, level)
}

func (t *TracingHandler) Handle(ctx context.Context, record slog.Record) error {
	if key, tid := t.GetTraceId(ctx); tid != nil {
		record.Add(key, tid)
	}
	return t.h.Handle(ctx, record)
}

func (t *TracingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TracingHandler{h: t.h.WithAttrs(attrs), GetTraceId: t.GetTraceId}
}

func (t *TracingHandler) WithGroup(name string) slog.Handler {
	return &TracingHandler{h: t.h.WithGroup(name), GetTraceId: t.GetTraceId}
}

var _ slog.Handler = &TracingHandler{}
