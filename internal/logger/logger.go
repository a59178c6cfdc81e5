// Package logger provides the toolkit-wide structured logger and a few
// domain-specific debug helpers.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// Logger is the global logger instance used throughout the toolkit.
var Logger = newLogger(os.Stderr, log.InfoLevel)

var levelNames = map[string]log.Level{
	"debug": log.DebugLevel,
	"info":  log.InfoLevel,
	"warn":  log.WarnLevel,
	"error": log.ErrorLevel,
	"fatal": log.FatalLevel,
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	l := log.New(w)
	l.SetTimeFormat("")
	l.SetLevel(level)
	return l
}

// Configure rebuilds the global logger from CLI flags. An empty level falls
// back to LURCH_LOG_LEVEL, then to info. Test mode pins the level to info so
// recorded output stays stable.
func Configure(logLevel string, logFile string, testMode bool) error {
	var output io.Writer = os.Stderr
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return err
		}
		output = file
	}

	Logger = newLogger(output, resolveLevel(logLevel))
	if testMode {
		Logger.SetLevel(log.InfoLevel)
	}
	return nil
}

func resolveLevel(flagValue string) log.Level {
	name := strings.ToLower(flagValue)
	if name == "" {
		name = strings.ToLower(os.Getenv("LURCH_LOG_LEVEL"))
	}
	if level, ok := levelNames[name]; ok {
		return level
	}
	return log.InfoLevel
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg interface{}, keyvals ...interface{}) {
	Logger.Debug(msg, keyvals...)
}

// Info logs an info message with optional key-value pairs.
func Info(msg interface{}, keyvals ...interface{}) {
	Logger.Info(msg, keyvals...)
}

// Warn logs a warning message with optional key-value pairs.
func Warn(msg interface{}, keyvals ...interface{}) {
	Logger.Warn(msg, keyvals...)
}

// Error logs an error message with optional key-value pairs.
func Error(msg interface{}, keyvals ...interface{}) {
	Logger.Error(msg, keyvals...)
}

// Fatal logs a fatal message with optional key-value pairs and exits.
func Fatal(msg interface{}, keyvals ...interface{}) {
	Logger.Fatal(msg, keyvals...)
}

// ServiceOperation logs service operation details for debugging.
func ServiceOperation(service string, operation string, details ...interface{}) {
	Debug("Service operation", "service", service, "operation", operation, "details", details)
}

// SettingOperation logs setting read/write details for debugging.
func SettingOperation(operation string, key string, value string) {
	Debug("Setting operation", "operation", operation, "key", key, "value", value)
}

// TemplateMatch logs declaration template matching steps for debugging.
func TemplateMatch(template string, input string, symbol string, matched bool) {
	Debug("Template match", "template", template, "input", input, "symbol", symbol, "matched", matched)
}

var levelBadges = map[log.Level]struct {
	label string
	color string
}{
	log.DebugLevel: {"DEBUG", "240"},
	log.InfoLevel:  {"INFO", "33"},
	log.WarnLevel:  {"WARN", "214"},
	log.ErrorLevel: {"ERROR", "196"},
	log.FatalLevel: {"FATAL", "88"},
}

// NewStyledLogger creates a component logger with badge-styled levels and
// colored keys for the fields the toolkit logs most. The prefix names the
// component (e.g. "Declaration" or "Settings").
func NewStyledLogger(prefix string) *log.Logger {
	styles := log.DefaultStyles()
	for level, badge := range levelBadges {
		styles.Levels[level] = lipgloss.NewStyle().
			SetString(badge.label).
			Padding(0, 1, 0, 1).
			Background(lipgloss.Color(badge.color)).
			Foreground(lipgloss.Color("15"))
	}

	keyColors := map[string]string{
		"template": "99",
		"input":    "39",
		"symbol":   "214",
		"error":    "196",
		"command":  "46",
		"service":  "51",
	}
	for key, color := range keyColors {
		styles.Keys[key] = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	}
	styles.Values["template"] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	styles.Values["error"] = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))

	componentLogger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: prefix + " ",
	})
	componentLogger.SetStyles(styles)
	componentLogger.SetLevel(Logger.GetLevel())
	return componentLogger
}
