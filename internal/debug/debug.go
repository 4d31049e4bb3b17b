// Package debug provides a centralized, categorized logging system on top of
// logrus. Categories can be switched on and off at runtime or through the
// ROULETTE_DEBUG environment variable.
package debug

import (
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// Category represents a debug logging category
type Category string

const (
	APP     Category = "APP"     // Command wiring, shell loop
	SESSION Category = "SESSION" // Selection state, configuration changes
	FS      Category = "FS"      // Directory walks, subdirectory listing
	FS_WALK Category = "FS_WALK" // Individual walk entries (very verbose)
	STORE   Category = "STORE"   // Config persistence
	LAUNCH  Category = "LAUNCH"  // Open / reveal with the platform handler
	TRASH   Category = "TRASH"   // Trash operations
)

var (
	enabledCategories = map[Category]bool{
		APP:     true,
		SESSION: true,
		FS:      true,
		STORE:   true,
		LAUNCH:  true,
		TRASH:   true,
		FS_WALK: false,
	}
	categoryMu sync.RWMutex

	logger = newLogger(os.Stderr)
)

func newLogger(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(textFormatter(out))
	l.SetLevel(logrus.InfoLevel)
	return l
}

func textFormatter(out io.Writer) logrus.Formatter {
	colors := false
	if f, ok := out.(*os.File); ok {
		colors = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &logrus.TextFormatter{
		ForceColors:      colors,
		DisableColors:    !colors,
		FullTimestamp:    true,
		TimestampFormat:  "15:04:05.000",
		DisableSorting:   false,
		QuoteEmptyFields: true,
	}
}

func init() {
	ApplyEnv()
}

// ApplyEnv reads ROULETTE_LOG_LEVEL and ROULETTE_DEBUG. It runs at init and
// again once a .env file has been loaded.
// Format: ROULETTE_DEBUG=SESSION,FS or ROULETTE_DEBUG=all or ROULETTE_DEBUG=none
func ApplyEnv() {
	if env := os.Getenv("ROULETTE_LOG_LEVEL"); env != "" {
		if level, err := logrus.ParseLevel(env); err == nil {
			logger.SetLevel(level)
		}
	}
	if env := os.Getenv("ROULETTE_DEBUG"); env != "" {
		applyEnv(env)
	}
}

func applyEnv(env string) {
	categoryMu.Lock()
	defer categoryMu.Unlock()

	env = strings.ToUpper(strings.TrimSpace(env))
	switch env {
	case "ALL":
		for cat := range enabledCategories {
			enabledCategories[cat] = true
		}
	case "NONE":
		for cat := range enabledCategories {
			enabledCategories[cat] = false
		}
	default:
		for cat := range enabledCategories {
			enabledCategories[cat] = false
		}
		for _, cat := range strings.Split(env, ",") {
			cat = strings.TrimSpace(cat)
			if cat != "" {
				enabledCategories[Category(cat)] = true
			}
		}
	}
}

// Logger returns the underlying logrus logger.
func Logger() *logrus.Logger {
	return logger
}

// SetOutput redirects all log output, keeping the formatter in line with the
// new destination.
func SetOutput(out io.Writer) {
	logger.SetOutput(out)
	if _, ok := logger.Formatter.(*logrus.TextFormatter); ok {
		logger.SetFormatter(textFormatter(out))
	}
}

// SetVerbose switches between Info and Debug levels.
func SetVerbose(verbose bool) {
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
		return
	}
	logger.SetLevel(logrus.InfoLevel)
}

// SetJSON switches to the JSON formatter.
func SetJSON(on bool) {
	if on {
		logger.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	logger.SetFormatter(textFormatter(logger.Out))
}

func entry(cat Category) *logrus.Entry {
	return logger.WithField("cat", string(cat))
}

// Log logs a debug message for the specified category
func Log(cat Category, format string, args ...interface{}) {
	if !IsEnabled(cat) {
		return
	}
	entry(cat).Debugf(format, args...)
}

// Info logs at info level regardless of the category switch.
func Info(cat Category, format string, args ...interface{}) {
	entry(cat).Infof(format, args...)
}

// Warn logs a non-fatal condition regardless of the category switch.
func Warn(cat Category, format string, args ...interface{}) {
	entry(cat).Warnf(format, args...)
}

// Error logs a failure regardless of the category switch.
func Error(cat Category, format string, args ...interface{}) {
	entry(cat).Errorf(format, args...)
}

// Enable enables a debug category
func Enable(cat Category) {
	categoryMu.Lock()
	enabledCategories[cat] = true
	categoryMu.Unlock()
}

// Disable disables a debug category
func Disable(cat Category) {
	categoryMu.Lock()
	enabledCategories[cat] = false
	categoryMu.Unlock()
}

// IsEnabled returns whether a category is enabled
func IsEnabled(cat Category) bool {
	categoryMu.RLock()
	defer categoryMu.RUnlock()
	return enabledCategories[cat]
}

// ListEnabled returns the currently enabled categories, sorted.
func ListEnabled() []Category {
	categoryMu.RLock()
	defer categoryMu.RUnlock()

	var enabled []Category
	for cat, on := range enabledCategories {
		if on {
			enabled = append(enabled, cat)
		}
	}
	sort.Slice(enabled, func(i, j int) bool { return enabled[i] < enabled[j] })
	return enabled
}
