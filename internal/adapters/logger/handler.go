package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/keel/internal/ui/output"
	"go.trai.ch/keel/internal/ui/style"
)

// PrettyHandler is a slog.Handler writing one colored line per record.
// Attributes are rendered as key=value pairs, qualified by the groups that
// were open when they were added.
type PrettyHandler struct {
	out    *termenv.Output
	level  slog.Level
	fields []string
	prefix string
}

// NewPrettyHandler returns a PrettyHandler writing to w, or to stderr when w is nil.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}
	h := &PrettyHandler{out: output.New(w), level: slog.LevelInfo}
	if opts != nil && opts.Level != nil {
		h.level = opts.Level.Level()
	}
	return h
}

// Enabled implements slog.Handler.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle implements slog.Handler.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	icon, color := decoration(r.Level)

	var line strings.Builder
	if icon != "" {
		line.WriteString(icon + " ")
	}
	line.WriteString(r.Message)
	for _, f := range h.fields {
		line.WriteString(" " + f)
	}
	r.Attrs(func(attr slog.Attr) bool {
		line.WriteString(" " + h.field(attr))
		return true
	})

	_, err := h.out.WriteString(h.out.String(line.String()).Foreground(color).String() + "\n")
	return err
}

// WithAttrs implements slog.Handler.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := h.clone()
	for _, attr := range attrs {
		next.fields = append(next.fields, h.field(attr))
	}
	return next
}

// WithGroup implements slog.Handler. Nested groups are joined with dots.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := h.clone()
	next.prefix = h.prefix + name + "."
	return next
}

func (h *PrettyHandler) clone() *PrettyHandler {
	return &PrettyHandler{
		out:    h.out,
		level:  h.level,
		fields: append([]string(nil), h.fields...),
		prefix: h.prefix,
	}
}

func (h *PrettyHandler) field(attr slog.Attr) string {
	return h.prefix + attr.Key + "=" + attr.Value.String()
}

func decoration(level slog.Level) (string, termenv.Color) {
	switch {
	case level >= slog.LevelError:
		return style.Cross, termenv.RGBColor(string(style.Red))
	case level >= slog.LevelWarn:
		return style.Warning, termenv.RGBColor(string(style.Yellow))
	default:
		return "", termenv.RGBColor(string(style.Slate))
	}
}
