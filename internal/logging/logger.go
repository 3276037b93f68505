// Package logging provides config-driven categorized logging for NotaSmart.
// Every category is a named child of one zap root logger. Logging is
// controlled by debug_mode in the config file: when false, nothing is written.
package logging

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot   Category = "boot"   // Startup, flags, logger init
	CategoryConfig Category = "config" // Config load/save/watch
	CategoryLedger Category = "ledger" // Ledger mutations and rejections
	CategoryUI     Category = "ui"     // Interactive calculator events
	CategoryReport Category = "report" // Report building and rendering
	CategorySheet  Category = "sheet"  // Grade sheet parsing
)

// AllCategories lists every known category.
var AllCategories = []Category{
	CategoryBoot, CategoryConfig, CategoryLedger, CategoryUI, CategoryReport, CategorySheet,
}

// Options mirrors the relevant parts of config.LoggingConfig
// to avoid circular imports
type Options struct {
	Level      string          // debug, info, warn, error
	Format     string          // console, json
	File       string          // empty = stderr
	DebugMode  bool            // master toggle
	Categories map[string]bool // per-category toggles, missing = enabled
}

var (
	mu      sync.RWMutex
	root    = zap.NewNop()
	opts    Options
	loggers = make(map[Category]*zap.Logger)
)

// Initialize builds the root logger from o and resets the category cache.
// With DebugMode off the root stays a no-op logger.
func Initialize(o Options) error {
	l, err := New(o)
	if err != nil {
		return err
	}
	SetRoot(l, o)
	Get(CategoryBoot).Debug("logging initialized",
		zap.String("level", o.Level),
		zap.String("format", o.Format),
		zap.String("file", o.File))
	return nil
}

// New builds a zap logger for o without touching package state.
func New(o Options) (*zap.Logger, error) {
	if !o.DebugMode {
		return zap.NewNop(), nil
	}
	level, err := ParseLevel(o.Level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewProductionConfig()
	cfg.Sampling = nil
	cfg.Level = zap.NewAtomicLevelAt(level)
	switch strings.ToLower(o.Format) {
	case "", "console", "text":
		cfg.Encoding = "console"
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	case "json":
		cfg.Encoding = "json"
	default:
		return nil, fmt.Errorf("unknown log format %q", o.Format)
	}
	out := "stderr"
	if o.File != "" {
		out = o.File
	}
	cfg.OutputPaths = []string{out}
	cfg.ErrorOutputPaths = []string{"stderr"}

	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return l, nil
}

// ParseLevel maps a config level name to a zap level. Empty means info.
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
}

// SetRoot installs l as the root logger. Tests use it with zaptest/observer.
func SetRoot(l *zap.Logger, o Options) {
	if l == nil {
		l = zap.NewNop()
	}
	mu.Lock()
	defer mu.Unlock()
	root = l
	opts = o
	loggers = make(map[Category]*zap.Logger)
}

// IsCategoryEnabled returns whether a specific category is enabled
func IsCategoryEnabled(category Category) bool {
	mu.RLock()
	defer mu.RUnlock()
	return categoryEnabled(category)
}

func categoryEnabled(category Category) bool {
	if !opts.DebugMode {
		return false
	}
	if opts.Categories == nil {
		return true
	}
	enabled, exists := opts.Categories[string(category)]
	if !exists {
		return true
	}
	return enabled
}

// Get returns (or creates) a logger for the given category.
// Returns a no-op logger if debug mode is disabled or category is disabled.
func Get(category Category) *zap.Logger {
	mu.RLock()
	if l, ok := loggers[category]; ok {
		mu.RUnlock()
		return l
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[category]; ok {
		return l
	}
	l := zap.NewNop()
	if categoryEnabled(category) {
		l = root.Named(string(category))
	}
	loggers[category] = l
	return l
}

// Sync flushes the root logger.
func Sync() error {
	mu.RLock()
	l := root
	mu.RUnlock()
	return l.Sync()
}

// Boot logs an info message to the boot category.
func Boot(msg string, fields ...zap.Field) {
	Get(CategoryBoot).Info(msg, fields...)
}
