package applog

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	DefaultPrefix  = "termconfirm"
	DefaultMaxDays = 7
)

// DailyRotator is an io.Writer that appends to <prefix>-YYYY-MM-DD.log in
// dir, switching files when the calendar day changes. Only the newest
// maxDays files are kept.
type DailyRotator struct {
	mu      sync.Mutex
	dir     string
	prefix  string
	date    string
	file    *os.File
	maxDays int
	now     func() time.Time
}

func NewDailyRotator(dir, prefix string, maxDays int) *DailyRotator {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if maxDays < 1 {
		maxDays = DefaultMaxDays
	}
	return &DailyRotator{
		dir:     dir,
		prefix:  prefix,
		maxDays: maxDays,
		now:     time.Now,
	}
}

// SetNow replaces the time source. Used in tests only.
func (r *DailyRotator) SetNow(fn func() time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.now = fn
}

// FileFor returns the log file path used on day t.
func (r *DailyRotator) FileFor(t time.Time) string {
	return filepath.Join(r.dir, r.prefix+"-"+t.Format("2006-01-02")+".log")
}

func (r *DailyRotator) Write(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if today := now.Format("2006-01-02"); today != r.date {
		if err := r.rotate(now); err != nil {
			return 0, err
		}
	}
	return r.file.Write(p)
}

func (r *DailyRotator) rotate(now time.Time) error {
	if r.file != nil {
		r.file.Close()
		r.file = nil
	}
	f, err := os.OpenFile(r.FileFor(now), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	r.file = f
	r.date = now.Format("2006-01-02")
	r.prune()
	return nil
}

func (r *DailyRotator) prune() {
	matches, err := filepath.Glob(filepath.Join(r.dir, r.prefix+"-*.log"))
	if err != nil || len(matches) <= r.maxDays {
		return
	}
	sort.Strings(matches)
	for _, f := range matches[:len(matches)-r.maxDays] {
		os.Remove(f)
	}
}

// Close closes the current log file.
func (r *DailyRotator) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	r.date = ""
	return err
}

type InitConfig struct {
	LogDir   string
	LogLevel string
	Prefix   string
	MaxDays  int
}

// Init installs a text slog handler writing to a DailyRotator in cfg.LogDir
// as slog.Default, and points the stdlib log package at the same file.
// The caller must Close the returned io.Closer.
func Init(cfg InitConfig) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(cfg.LogDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	rotator := NewDailyRotator(cfg.LogDir, cfg.Prefix, cfg.MaxDays)
	handler := slog.NewTextHandler(rotator, &slog.HandlerOptions{Level: ParseLevel(cfg.LogLevel)})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	log.SetOutput(rotator)
	log.SetFlags(0)
	return logger, rotator, nil
}

// Discard returns a logger that drops everything. The dialog owns the
// terminal, so there is no stderr fallback once it is drawn.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel converts a level string to slog.Level. Defaults to LevelInfo.
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
