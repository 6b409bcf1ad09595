// Package logging renders slog records as the styled, one-line messages the
// CLI prints for every other status update.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/EvaisaDev/UnityNetcodeWeaver/pkg/ui"
)

// Options configures a Handler
type Options struct {
	Level slog.Leveler

	// Verbose appends record attributes as key=value pairs
	Verbose bool
}

// Handler is a slog.Handler that writes ui-formatted lines
type Handler struct {
	mu     *sync.Mutex
	w      io.Writer
	opts   Options
	attrs  []slog.Attr
	groups []string
}

// NewHandler creates a handler writing to w
func NewHandler(w io.Writer, opts *Options) *Handler {
	h := &Handler{mu: &sync.Mutex{}, w: w}
	if opts != nil {
		h.opts = *opts
	}
	if h.opts.Level == nil {
		h.opts.Level = slog.LevelInfo
	}
	return h
}

// New returns a logger writing to w at level
func New(w io.Writer, level slog.Level, verbose bool) *slog.Logger {
	return slog.New(NewHandler(w, &Options{Level: level, Verbose: verbose}))
}

// ParseLevel maps a config value to a slog level. Unknown values map to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	msg := r.Message

	if h.opts.Verbose {
		var fields []string
		for _, a := range h.attrs {
			fields = append(fields, h.field(a))
		}
		r.Attrs(func(a slog.Attr) bool {
			fields = append(fields, h.field(a))
			return true
		})
		if len(fields) > 0 {
			msg += " " + ui.FormatMuted(strings.Join(fields, " "))
		}
	}

	var line string
	switch {
	case r.Level >= slog.LevelError:
		line = ui.FormatError(msg)
	case r.Level >= slog.LevelWarn:
		line = ui.FormatWarning(msg)
	case r.Level >= slog.LevelInfo:
		line = ui.FormatInfo(msg)
	default:
		line = ui.FormatDebug(msg)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprintln(h.w, line)
	return err
}

func (h *Handler) field(a slog.Attr) string {
	key := a.Key
	if len(h.groups) > 0 {
		key = strings.Join(h.groups, ".") + "." + key
	}
	return fmt.Sprintf("%s=%v", key, a.Value.Any())
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &next
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.groups = append(append([]string{}, h.groups...), name)
	return &next
}
