// Package logger provides the leveled, colored console logger used by
// the CLI and the scenarios.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Level represents the severity of a log message.
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel
)

var levelColors = map[Level]*color.Color{
	DebugLevel: color.New(color.FgHiBlack),
	InfoLevel:  color.New(color.FgGreen),
	WarnLevel:  color.New(color.FgYellow),
	ErrorLevel: color.New(color.FgRed),
	FatalLevel: color.New(color.FgRed, color.Bold),
}

var levelNames = map[Level]string{
	DebugLevel: "DEBUG",
	InfoLevel:  "INFO ",
	WarnLevel:  "WARN ",
	ErrorLevel: "ERROR",
	FatalLevel: "FATAL",
}

// Logger writes timestamped, level-tagged lines to a single writer.
type Logger struct {
	mu     sync.Mutex
	level  Level
	writer io.Writer
	prefix string
}

// New creates a logger writing to stdout at Info level.
func New() *Logger {
	return &Logger{level: InfoLevel, writer: os.Stdout}
}

var defaultLogger = New()

// SetLevel sets the default logger's level.
func SetLevel(level Level) {
	defaultLogger.mu.Lock()
	defaultLogger.level = level
	defaultLogger.mu.Unlock()
}

// SetNoColor disables colored output globally.
func SetNoColor(noColor bool) {
	color.NoColor = noColor
}

// WithPrefix returns a logger that tags every line with the given prefix.
func WithPrefix(prefix string) *Logger {
	return &Logger{
		level:  defaultLogger.level,
		writer: defaultLogger.writer,
		prefix: prefix,
	}
}

func (l *Logger) log(level Level, message string) {
	if level < l.level {
		return
	}

	l.mu.Lock()
	timestamp := time.Now().Format("15:04:05")
	tag := levelColors[level].Sprint(levelNames[level])
	if l.prefix != "" {
		fmt.Fprintf(l.writer, "%s %s [%s] %s\n", timestamp, tag, l.prefix, message)
	} else {
		fmt.Fprintf(l.writer, "%s %s %s\n", timestamp, tag, message)
	}
	l.mu.Unlock()

	if level == FatalLevel {
		os.Exit(1)
	}
}

// Debugf logs a formatted debug message.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.log(DebugLevel, fmt.Sprintf(format, args...))
}

// Infof logs a formatted info message.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.log(InfoLevel, fmt.Sprintf(format, args...))
}

// Warnf logs a formatted warning message.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.log(WarnLevel, fmt.Sprintf(format, args...))
}

// Errorf logs a formatted error message.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.log(ErrorLevel, fmt.Sprintf(format, args...))
}

// Fatalf logs a formatted fatal message and exits.
func (l *Logger) Fatalf(format string, args ...interface{}) {
	l.log(FatalLevel, fmt.Sprintf(format, args...))
}

// Package-level helpers for the default logger.

func Debug(args ...interface{})                 { defaultLogger.log(DebugLevel, fmt.Sprint(args...)) }
func Debugf(format string, args ...interface{}) { defaultLogger.Debugf(format, args...) }
func Info(args ...interface{})                  { defaultLogger.log(InfoLevel, fmt.Sprint(args...)) }
func Infof(format string, args ...interface{})  { defaultLogger.Infof(format, args...) }
func Warn(args ...interface{})                  { defaultLogger.log(WarnLevel, fmt.Sprint(args...)) }
func Warnf(format string, args ...interface{})  { defaultLogger.Warnf(format, args...) }
func Error(args ...interface{})                 { defaultLogger.log(ErrorLevel, fmt.Sprint(args...)) }
func Errorf(format string, args ...interface{}) { defaultLogger.Errorf(format, args...) }
func Fatal(args ...interface{})                 { defaultLogger.log(FatalLevel, fmt.Sprint(args...)) }
func Fatalf(format string, args ...interface{}) { defaultLogger.Fatalf(format, args...) }

// ParseLevel parses a string log level, defaulting to Info.
func ParseLevel(level string) Level {
	switch strings.ToLower(level) {
	case "debug":
		return DebugLevel
	case "info":
		return InfoLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	case "fatal":
		return FatalLevel
	default:
		return InfoLevel
	}
}
