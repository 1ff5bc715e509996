package logger

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// PrettyHandler renders records for a terminal. Board attributes such as
// card_id or kind get their own notation, anything else is key=value.
type PrettyHandler struct {
	opts   *slog.HandlerOptions
	w      io.Writer
	mu     *sync.Mutex
	attrs  []string
	groups []string
}

func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &PrettyHandler{
		opts: opts,
		w:    w,
		mu:   &sync.Mutex{},
	}
}

func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	parts := []string{levelBadge(r.Level), colorMessage(r.Level, r.Message)}
	parts = append(parts, h.attrs...)
	r.Attrs(func(a slog.Attr) bool {
		if s := h.formatAttr(a); s != "" {
			parts = append(parts, s)
		}
		return true
	})

	if h.opts.AddSource {
		if src := r.Source(); src != nil && src.File != "" {
			parts = append(parts, color.HiBlackString("(%s:%d)", filepath.Base(src.File), src.Line))
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, strings.Join(parts, " ")+"\n")
	return err
}

func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]string, 0, len(h.attrs)+len(attrs))
	newAttrs = append(newAttrs, h.attrs...)
	for _, a := range attrs {
		if s := h.formatAttr(a); s != "" {
			newAttrs = append(newAttrs, s)
		}
	}

	return &PrettyHandler{
		opts:   h.opts,
		w:      h.w,
		mu:     h.mu,
		attrs:  newAttrs,
		groups: h.groups,
	}
}

func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	newGroups := make([]string, len(h.groups)+1)
	copy(newGroups, h.groups)
	newGroups[len(h.groups)] = name

	return &PrettyHandler{
		opts:   h.opts,
		w:      h.w,
		mu:     h.mu,
		attrs:  h.attrs,
		groups: newGroups,
	}
}

func levelBadge(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return color.RedString("[ERROR]")
	case level >= slog.LevelWarn:
		return color.YellowString("[WARN] ")
	case level >= slog.LevelInfo:
		return color.CyanString("[INFO] ")
	default:
		return color.HiBlackString("[DEBUG]")
	}
}

func colorMessage(level slog.Level, msg string) string {
	switch {
	case level >= slog.LevelError:
		return color.RedString("%s", msg)
	case level >= slog.LevelWarn:
		return color.YellowString("%s", msg)
	default:
		return msg
	}
}

// formatAttr returns "" for attributes with nothing to show, like a zero
// card_id or truncated=false.
func (h *PrettyHandler) formatAttr(a slog.Attr) string {
	if a.Equal(slog.Attr{}) {
		return ""
	}
	v := a.Value.Resolve()

	if len(h.groups) > 0 {
		return color.HiBlackString("%s.%s=%s", strings.Join(h.groups, "."), a.Key, v.String())
	}

	switch a.Key {
	case "card_id":
		if v.String() == "0" {
			return ""
		}
		return color.CyanString("card #%s", v.String())
	case "database_id":
		return color.CyanString("id %s", v.String())
	case "kind":
		return color.MagentaString("[%s]", v.String())
	case "truncated":
		if v.Kind() == slog.KindBool && v.Bool() {
			return color.YellowString("(first page only)")
		}
		return ""
	case "duration_ms":
		return color.MagentaString("in %sms", v.String())
	case "error":
		return color.RedString("error=%s", v.String())
	default:
		return color.HiBlackString("%s=%s", a.Key, v.String())
	}
}
