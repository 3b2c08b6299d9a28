// Package logging renders log records as "<timestamp> - <LEVEL> - <message>"
// lines and fans them out to the console and a log file.
package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"
)

const TimeFormat = "2006-01-02 15:04:05,000"

// LineHandler is a slog.Handler producing one dash-separated line per record.
// Attributes follow the message as space separated key=value pairs.
type LineHandler struct {
	opts   slog.HandlerOptions
	prefix string // pre-rendered attrs from WithAttrs
	groups []string

	mu *sync.Mutex
	w  io.Writer
}

var _ slog.Handler = (*LineHandler)(nil)

func NewLineHandler(w io.Writer, opts *slog.HandlerOptions) *LineHandler {
	h := &LineHandler{w: w, mu: &sync.Mutex{}}
	if opts != nil {
		h.opts = *opts
	}
	return h
}

func (h *LineHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

func (h *LineHandler) Handle(_ context.Context, r slog.Record) error {
	buf := &bytes.Buffer{}

	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	buf.WriteString(ts.Format(TimeFormat))
	buf.WriteString(" - ")
	buf.WriteString(levelName(r.Level))
	buf.WriteString(" - ")
	buf.WriteString(r.Message)
	buf.WriteString(h.prefix)

	r.Attrs(func(a slog.Attr) bool {
		appendAttr(buf, h.groups, a)
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf.Bytes())
	return err
}

func (h *LineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	buf := &bytes.Buffer{}
	buf.WriteString(h.prefix)
	for _, a := range attrs {
		appendAttr(buf, h.groups, a)
	}
	h2 := *h
	h2.prefix = buf.String()
	return &h2
}

func (h *LineHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.groups = append(append([]string{}, h.groups...), name)
	return &h2
}

// levelName spells out WARNING where slog would print WARN.
func levelName(level slog.Level) string {
	switch {
	case level < slog.LevelInfo:
		return "DEBUG"
	case level < slog.LevelWarn:
		return "INFO"
	case level < slog.LevelError:
		return "WARNING"
	default:
		return "ERROR"
	}
}

func appendAttr(buf *bytes.Buffer, groups []string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		if len(attrs) == 0 {
			return
		}
		nested := groups
		if a.Key != "" {
			nested = append(append([]string{}, groups...), a.Key)
		}
		for _, ga := range attrs {
			appendAttr(buf, nested, ga)
		}
		return
	}

	key := a.Key
	if len(groups) > 0 {
		key = strings.Join(groups, ".") + "." + key
	}

	value := a.Value.String()
	if a.Value.Kind() == slog.KindTime {
		value = a.Value.Time().Format(TimeFormat)
	}
	if value == "" || strings.ContainsAny(value, " \t\"=") {
		value = fmt.Sprintf("%q", value)
	}

	buf.WriteByte(' ')
	buf.WriteString(key)
	buf.WriteByte('=')
	buf.WriteString(value)
}
