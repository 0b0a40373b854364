package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// TimeLayout is the timestamp format of every log record.
const TimeLayout = "2006-01-02 15:04:05"

type Config struct {
	// Path of the log file, truncated on Setup. Empty logs to Fallback.
	Path string
	// Fallback receives records when Path is empty; nil means stderr.
	Fallback io.Writer
	Debug    bool
}

var (
	mu      sync.RWMutex
	global  = slog.New(slog.NewTextHandler(io.Discard, nil))
	logFile *os.File
)

// Setup installs the process-wide logger. The returned cleanup closes the
// log file and restores a discarding logger.
func Setup(cfg Config) (func() error, error) {
	var w io.Writer = os.Stderr
	if cfg.Fallback != nil {
		w = cfg.Fallback
	}

	var f *os.File
	if cfg.Path != "" {
		path := filepath.Clean(cfg.Path)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			setDiscard()
			return nil, err
		}
		var err error
		f, err = os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			setDiscard()
			return nil, err
		}
		w = f
	}

	l := slog.New(NewHandler(w, cfg.Debug))

	mu.Lock()
	global = l
	logFile = f
	mu.Unlock()

	l.Debug("logger initialized", "path", cfg.Path, "debug", cfg.Debug)

	cleanup := func() error {
		mu.Lock()
		defer mu.Unlock()

		var cerr error
		if logFile != nil {
			cerr = logFile.Close()
		}
		logFile = nil
		global = slog.New(slog.NewTextHandler(io.Discard, nil))
		return cerr
	}

	return cleanup, nil
}

// NewHandler returns the text handler used for every fobs log: local time
// in TimeLayout, level, message, then attributes.
func NewHandler(w io.Writer, debug bool) slog.Handler {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
				a.Value = slog.StringValue(a.Value.Time().Format(TimeLayout))
			}
			return a
		},
	})
}

func L() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return global
}

func setDiscard() {
	mu.Lock()
	defer mu.Unlock()
	global = slog.New(slog.NewTextHandler(io.Discard, nil))
	logFile = nil
}
