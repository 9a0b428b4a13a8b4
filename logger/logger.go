package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
)

type logger struct {
	mu     sync.Mutex
	out    io.Writer
	closer io.Closer
	level  slog.Level
}

type logMessage struct {
	Timestamp string         `json:"timestamp"`
	Level     string         `json:"level"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"additional_info,omitempty"`
}

// Config selects where records go. Channel "file" writes daily files under
// Path, "stderr" writes to the process stderr.
type Config struct {
	Channel string
	Level   string
	Path    string
	MaxAge  time.Duration
}

// Records logged before Init are dropped.
var logInstance = &logger{level: slog.LevelInfo}

// Init configures the package logger.
func Init(cfg Config) error {
	level, err := ParseLogLevel(cfg.Level)
	if err != nil && cfg.Level != "" {
		return err
	}
	logInstance.SetLevel(level)

	switch strings.ToLower(cfg.Channel) {
	case "stderr":
		logInstance.setOutput(os.Stderr, nil)
		return nil
	case "", "file":
		return SetDir(cfg.Path, cfg.MaxAge)
	default:
		return fmt.Errorf("unknown log channel %q", cfg.Channel)
	}
}

// SetDir sends records to app.YYYY-MM-DD.log files inside dir, rotated daily,
// with app.log linking to the current file.
func SetDir(dir string, maxAge time.Duration) error {
	if dir == "" {
		dir = "storage/logs"
	}
	if maxAge <= 0 {
		maxAge = 7 * 24 * time.Hour
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve logs directory: %w", err)
	}
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	rl, err := rotatelogs.New(
		filepath.Join(absDir, "app.%Y-%m-%d.log"),
		rotatelogs.WithLinkName(filepath.Join(absDir, "app.log")),
		rotatelogs.WithMaxAge(maxAge),
		rotatelogs.WithRotationTime(24*time.Hour),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize rotatelogs: %w", err)
	}

	logInstance.setOutput(rl, rl)
	return nil
}

// SetOutput sends records to w. Passing nil drops them.
func SetOutput(w io.Writer) {
	logInstance.setOutput(w, nil)
}

func (l *logger) setOutput(w io.Writer, closer io.Closer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closer != nil {
		l.closer.Close()
	}
	l.out = w
	l.closer = closer
}

func (l *logger) log(level slog.Level, msg string, data map[string]any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level || l.out == nil {
		return
	}

	logData, err := json.Marshal(logMessage{
		Timestamp: time.Now().Format(time.RFC3339),
		Level:     level.String(),
		Message:   msg,
		Data:      data,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error marshaling log message:", err)
		return
	}

	l.out.Write(append(logData, '\n'))
}

func (l *logger) SetLevel(level slog.Level) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.level = level
}

func SetLevel(level slog.Level) {
	logInstance.SetLevel(level)
}

// Close releases the current output when the logger owns it.
func Close() {
	logInstance.setOutput(nil, nil)
}

func firstData(data []map[string]any) map[string]any {
	if len(data) > 0 {
		return data[0]
	}
	return nil
}

func Debug(msg string, data ...map[string]any) {
	logInstance.log(slog.LevelDebug, msg, firstData(data))
}

func Info(msg string, data ...map[string]any) {
	logInstance.log(slog.LevelInfo, msg, firstData(data))
}

func Warn(msg string, data ...map[string]any) {
	logInstance.log(slog.LevelWarn, msg, firstData(data))
}

func Error(msg string, data ...map[string]any) {
	logInstance.log(slog.LevelError, msg, firstData(data))
}

func Fatal(msg string, data ...map[string]any) {
	logData := firstData(data)
	logInstance.log(slog.LevelError, msg, logData)

	fmt.Fprintf(os.Stderr, "FATAL ERROR: %s\n", msg)
	if len(logData) > 0 {
		fmt.Fprintf(os.Stderr, "📋 Details:\n")
		for key, value := range logData {
			fmt.Fprintf(os.Stderr, "   %s: %v\n", key, value)
		}
	}

	os.Exit(1)
}

func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}
