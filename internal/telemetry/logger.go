package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	clog "github.com/charmbracelet/log"
)

type Options struct {
	// Path is the JSON log file. Empty discards all output, since the
	// terminal belongs to the presenter.
	Path      string
	Level     string
	Prefix    string
	SessionID string
}

// Logger is a structured logger bound to its output file.
type Logger struct {
	*clog.Logger
	w io.WriteCloser
}

func New(opts Options) (*Logger, error) {
	level := clog.InfoLevel
	if strings.TrimSpace(opts.Level) != "" {
		parsed, err := clog.ParseLevel(strings.ToLower(strings.TrimSpace(opts.Level)))
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q", opts.Level)
		}
		level = parsed
	}

	var w io.WriteCloser = nopCloser{Writer: io.Discard}
	if opts.Path != "" {
		if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(opts.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		w = f
	}

	base := clog.NewWithOptions(w, clog.Options{
		Prefix:          opts.Prefix,
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339Nano,
		Formatter:       clog.JSONFormatter,
	})
	if opts.SessionID != "" {
		base = base.With("session", opts.SessionID)
	}
	return &Logger{Logger: base, w: w}, nil
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return &Logger{Logger: clog.New(io.Discard), w: nopCloser{Writer: io.Discard}}
}

func (l *Logger) Close() error {
	if l == nil || l.w == nil {
		return nil
	}
	return l.w.Close()
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
