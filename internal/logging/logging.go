// Package logging provides leveled, component-tagged logging with
// optional file output and size-based rotation.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Level represents a logging level.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a string to a Level, defaulting to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Field is a key-value pair attached to a log line.
type Field struct {
	Key   string
	Value interface{}
}

// F is shorthand for building a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Config holds logger configuration.
type Config struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	File       string `mapstructure:"file"`        // log file path (empty = stdout only)
	MaxSizeMB  int    `mapstructure:"max_size_mb"` // max size before rotation
	MaxBackups int    `mapstructure:"max_backups"` // rotated files to keep
}

// DefaultConfig returns the default logging configuration.
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		File:       "",
		MaxSizeMB:  10,
		MaxBackups: 3,
	}
}

// Logger writes timestamped, component-tagged lines to stderr and,
// when configured, a rotating log file.
type Logger struct {
	mu         sync.Mutex
	level      Level
	file       *os.File
	filePath   string
	maxSize    int64
	maxBackups int
	writers    []io.Writer
}

// New creates a Logger from cfg. An empty cfg.File keeps output on
// stderr only.
func New(cfg Config) (*Logger, error) {
	l := &Logger{
		level:      ParseLevel(cfg.Level),
		maxSize:    int64(cfg.MaxSizeMB) * 1024 * 1024,
		maxBackups: cfg.MaxBackups,
		writers:    []io.Writer{os.Stderr},
	}
	if l.maxSize <= 0 {
		l.maxSize = 10 * 1024 * 1024
	}
	if l.maxBackups <= 0 {
		l.maxBackups = 3
	}

	if cfg.File == "" {
		return l, nil
	}

	if strings.HasPrefix(cfg.File, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("unable to get home dir: %w", err)
		}
		cfg.File = filepath.Join(home, cfg.File[1:])
	}
	l.filePath = cfg.File

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err != nil {
		return nil, fmt.Errorf("unable to create log directory: %w", err)
	}
	if err := l.openFile(); err != nil {
		return nil, err
	}

	return l, nil
}

// Nop returns a logger that discards everything. Used in tests.
func Nop() *Logger {
	return &Logger{level: LevelError + 1}
}

func (l *Logger) openFile() error {
	f, err := os.OpenFile(l.filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("unable to open log file: %w", err)
	}
	l.file = f
	l.writers = []io.Writer{os.Stderr, f}
	return nil
}

func (l *Logger) maybeRotate() error {
	if l.file == nil {
		return nil
	}
	info, err := l.file.Stat()
	if err != nil {
		return err
	}
	if info.Size() < l.maxSize {
		return nil
	}
	l.file.Close()
	if err := rotateFiles(l.filePath, l.maxBackups); err != nil {
		return err
	}
	return l.openFile()
}

func (l *Logger) log(level Level, component, msg string, err error, fields ...Field) {
	if level < l.level {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if rotErr := l.maybeRotate(); rotErr != nil {
		fmt.Fprintf(os.Stderr, "log rotation error: %v\n", rotErr)
	}

	var sb strings.Builder
	sb.WriteString(time.Now().Format(time.RFC3339))
	sb.WriteString(" [")
	sb.WriteString(level.String())
	sb.WriteString("] [")
	sb.WriteString(component)
	sb.WriteString("] ")
	sb.WriteString(msg)

	if err != nil {
		sb.WriteString(" | error=")
		sb.WriteString(err.Error())
	}
	for _, f := range fields {
		sb.WriteString(" | ")
		sb.WriteString(f.Key)
		sb.WriteString("=")
		fmt.Fprintf(&sb, "%v", f.Value)
	}
	sb.WriteString("\n")

	line := []byte(sb.String())
	for _, w := range l.writers {
		w.Write(line)
	}
}

// Debug logs a debug message.
func (l *Logger) Debug(component, msg string, fields ...Field) {
	l.log(LevelDebug, component, msg, nil, fields...)
}

// Info logs an info message.
func (l *Logger) Info(component, msg string, fields ...Field) {
	l.log(LevelInfo, component, msg, nil, fields...)
}

// Warn logs a warning message.
func (l *Logger) Warn(component, msg string, fields ...Field) {
	l.log(LevelWarn, component, msg, nil, fields...)
}

// Error logs an error message with its cause.
func (l *Logger) Error(component, msg string, err error, fields ...Field) {
	l.log(LevelError, component, msg, err, fields...)
}

// SetLevel changes the minimum level at runtime.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
