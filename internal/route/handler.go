package route

import (
	"bytes"
	"context"
	"log/slog"
	"slices"
	"sync"

	"pkt.systems/pslog"
)

// Sink receives routing decisions. ingest.Queue satisfies it.
type Sink interface {
	AppendLine(name string, text []byte)
	Drop()
}

// formatter renders records through pslog into a reusable buffer. It is
// shared by every handler derived from the same root.
type formatter struct {
	mu     sync.Mutex
	buf    bytes.Buffer
	logger pslog.Logger
}

func newFormatter(color bool) *formatter {
	f := &formatter{}
	f.logger = pslog.NewWithOptions(&f.buf, pslog.Options{
		Mode:     pslog.ModeConsole,
		NoColor:  !color,
		MinLevel: pslog.TraceLevel,
	})
	return f
}

func (f *formatter) format(level slog.Level, msg string, keyvals []any) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.buf.Reset()
	switch {
	case level < slog.LevelDebug:
		f.logger.Trace(msg, keyvals...)
	case level < slog.LevelInfo:
		f.logger.Debug(msg, keyvals...)
	case level < slog.LevelWarn:
		f.logger.Info(msg, keyvals...)
	case level < slog.LevelError:
		f.logger.Warn(msg, keyvals...)
	default:
		f.logger.Error(msg, keyvals...)
	}
	return bytes.Clone(f.buf.Bytes())
}

// Handler routes slog records to channels.
type Handler struct {
	opts   Options
	sink   Sink
	format *formatter

	// attrs are flattened with their group prefixes already applied.
	attrs  []slog.Attr
	groups []string
	// route is the routing value fixed by WithAttrs, if any.
	route    string
	hasRoute bool
}

// NewHandler returns a Handler that reports to sink.
func NewHandler(sink Sink, opts Options) *Handler {
	opts = opts.withDefaults()
	return &Handler{
		opts:   opts,
		sink:   sink,
		format: newFormatter(opts.Color),
	}
}

// Enabled reports whether level reaches the configured minimum.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

// Handle decides the record's channel and either formats it for that
// channel or records a drop.
func (h *Handler) Handle(_ context.Context, record slog.Record) error {
	value, ok := h.route, h.hasRoute
	keyvals := make([]any, 0, 2*(len(h.attrs)+record.NumAttrs()))
	for _, a := range h.attrs {
		keyvals = append(keyvals, a.Key, a.Value.Any())
	}

	prefix := groupPrefix(h.groups)
	record.Attrs(func(a slog.Attr) bool {
		if len(h.groups) == 0 && a.Key == h.opts.Key {
			value, ok = a.Value.Resolve().String(), true
		}
		keyvals = appendAttr(keyvals, prefix, a)
		return true
	})

	name := Undefined
	switch h.opts.SplitBy {
	case SplitByGroup:
		if len(h.groups) > 0 {
			name = h.groups[0]
		}
	default:
		if ok {
			name = h.opts.channelName(value)
		}
	}

	if !h.opts.Filter.Permits(name) {
		h.sink.Drop()
		return nil
	}
	h.sink.AppendLine(name, h.format.format(record.Level, record.Message, keyvals))
	return nil
}

// WithAttrs returns a handler carrying attrs on every record. A top-level
// attribute named by Options.Key fixes the routing value.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	next := h.clone()
	prefix := groupPrefix(h.groups)
	for _, a := range attrs {
		if len(h.groups) == 0 && a.Key == h.opts.Key {
			next.route, next.hasRoute = a.Value.Resolve().String(), true
		}
		next.attrs = flatten(next.attrs, prefix, a)
	}
	return next
}

// WithGroup returns a handler that nests later attributes under name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := h.clone()
	next.groups = append(next.groups, name)
	return next
}

func (h *Handler) clone() *Handler {
	next := *h
	next.attrs = slices.Clone(h.attrs)
	next.groups = slices.Clone(h.groups)
	return &next
}

func groupPrefix(groups []string) string {
	var prefix string
	for _, g := range groups {
		prefix += g + "."
	}
	return prefix
}

// flatten appends a with group members expanded into dotted keys.
func flatten(dst []slog.Attr, prefix string, a slog.Attr) []slog.Attr {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return dst
	}
	if a.Value.Kind() != slog.KindGroup {
		return append(dst, slog.Attr{Key: prefix + a.Key, Value: a.Value})
	}
	inner := prefix
	if a.Key != "" {
		inner = prefix + a.Key + "."
	}
	for _, member := range a.Value.Group() {
		dst = flatten(dst, inner, member)
	}
	return dst
}

func appendAttr(keyvals []any, prefix string, a slog.Attr) []any {
	for _, flat := range flatten(nil, prefix, a) {
		keyvals = append(keyvals, flat.Key, flat.Value.Any())
	}
	return keyvals
}
