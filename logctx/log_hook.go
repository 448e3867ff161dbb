package logctx

import (
	"context"
	"log/slog"
	"sync"
)

// HookRecord is a record captured by a Hook,
// with the attributes its logger carried when it was written.
type HookRecord struct {
	Record slog.Record
	Attrs  []slog.Attr
}

// AttrMap returns the logger's attributes merged with the record's own,
// the record's winning on conflicts.
func (r HookRecord) AttrMap() map[string]any {
	result := make(map[string]any, len(r.Attrs)+r.Record.NumAttrs())
	for _, a := range r.Attrs {
		result[a.Key] = a.Value.Any()
	}
	r.Record.Attrs(func(a slog.Attr) bool {
		result[a.Key] = a.Value.Any()
		return true
	})
	return result
}

// Hook is a handler that remembers every record, for asserting on logs in specs.
// Loggers derived with With or WithGroup share the same records.
// Groups are flattened into dotted keys.
type Hook struct {
	log    *recorder
	attrs  []slog.Attr
	prefix string
}

type recorder struct {
	mux     sync.Mutex
	records []HookRecord
}

var _ slog.Handler = &Hook{}

func NewHook() *Hook {
	return &Hook{log: &recorder{}}
}

func (t *Hook) Enabled(context.Context, slog.Level) bool {
	return true
}

func (t *Hook) Handle(_ context.Context, r slog.Record) error {
	if t.prefix != "" {
		flat := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
		r.Attrs(func(a slog.Attr) bool {
			flat.AddAttrs(slog.Attr{Key: t.prefix + a.Key, Value: a.Value})
			return true
		})
		r = flat
	}
	t.log.mux.Lock()
	defer t.log.mux.Unlock()
	t.log.records = append(t.log.records, HookRecord{Record: r, Attrs: t.attrs})
	return nil
}

func (t *Hook) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(t.attrs)+len(attrs))
	merged = append(merged, t.attrs...)
	for _, a := range attrs {
		merged = append(merged, slog.Attr{Key: t.prefix + a.Key, Value: a.Value})
	}
	return &Hook{log: t.log, attrs: merged, prefix: t.prefix}
}

func (t *Hook) WithGroup(group string) slog.Handler {
	if group == "" {
		return t
	}
	return &Hook{log: t.log, attrs: t.attrs, prefix: t.prefix + group + "."}
}

func (t *Hook) Records() []HookRecord {
	t.log.mux.Lock()
	defer t.log.mux.Unlock()
	return append([]HookRecord(nil), t.log.records...)
}

// LastRecord returns the last record that was logged or nil.
func (t *Hook) LastRecord() *HookRecord {
	recs := t.Records()
	if len(recs) == 0 {
		return nil
	}
	return &recs[len(recs)-1]
}

// Messages returns the message of every record, in order.
func (t *Hook) Messages() []string {
	recs := t.Records()
	msgs := make([]string, len(recs))
	for i, r := range recs {
		msgs[i] = r.Record.Message
	}
	return msgs
}
