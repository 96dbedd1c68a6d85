package slogobs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// NewHandler returns the slog.Handler for format. JSON output is delegated to
// slog.NewJSONHandler; compact output uses [CompactHandler].
func NewHandler(format Format, level slog.Leveler, output io.Writer) slog.Handler {
	if format == FormatJSON {
		return slog.NewJSONHandler(output, &slog.HandlerOptions{Level: level})
	}
	return &CompactHandler{
		level:  level,
		output: output,
		mu:     &sync.Mutex{},
	}
}

// CompactHandler writes one line per record:
// "2006-01-02 15:04:05 LEVEL message {"key":"value"}".
type CompactHandler struct {
	level  slog.Leveler
	output io.Writer
	mu     *sync.Mutex // shared by derived handlers writing to the same output
	attrs  []slog.Attr
	group  string
}

// Enabled reports whether the handler handles records at the given level.
func (h *CompactHandler) Enabled(_ context.Context, level slog.Level) bool {
	threshold := slog.LevelInfo
	if h.level != nil {
		threshold = h.level.Level()
	}
	return level >= threshold
}

// Handle formats and writes a log record.
func (h *CompactHandler) Handle(_ context.Context, r slog.Record) error {
	buf := make([]byte, 0, 256)
	buf = append(buf, r.Time.Format("2006-01-02 15:04:05")...)
	buf = append(buf, ' ')
	buf = append(buf, fmt.Sprintf("%5s", levelString(r.Level))...)
	buf = append(buf, ' ')
	buf = append(buf, r.Message...)

	fields := make(map[string]any, len(h.attrs)+r.NumAttrs())
	for _, attr := range h.attrs {
		fields[attr.Key] = attr.Value.Any()
	}
	r.Attrs(func(attr slog.Attr) bool {
		fields[h.qualify(attr.Key)] = attr.Value.Any()
		return true
	})
	if len(fields) > 0 {
		encoded, err := json.Marshal(stringifyErrors(fields))
		if err != nil {
			buf = append(buf, " [unencodable attributes]"...)
		} else {
			buf = append(buf, ' ')
			buf = append(buf, encoded...)
		}
	}
	buf = append(buf, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.output.Write(buf)
	return err
}

// WithAttrs returns a new handler with additional attributes.
func (h *CompactHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	clone.attrs = append(clone.attrs, h.attrs...)
	for _, attr := range attrs {
		clone.attrs = append(clone.attrs, slog.Attr{Key: h.qualify(attr.Key), Value: attr.Value})
	}
	return &clone
}

// WithGroup returns a new handler that prefixes later keys with name.
func (h *CompactHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.group = h.qualify(name)
	return &clone
}

func (h *CompactHandler) qualify(key string) string {
	if h.group == "" {
		return key
	}
	return h.group + "." + key
}

// stringifyErrors replaces error values, which encode as {}, with their text.
func stringifyErrors(fields map[string]any) map[string]any {
	for k, v := range fields {
		if err, ok := v.(error); ok {
			fields[k] = err.Error()
		}
	}
	return fields
}

func levelString(level slog.Level) string {
	switch {
	case level < slog.LevelInfo:
		return "DEBUG"
	case level < slog.LevelWarn:
		return "INFO"
	case level < slog.LevelError:
		return "WARN"
	default:
		return "ERROR"
	}
}
