package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Logger printf-логгер поверх slog. Пишет JSON в stdout и, если указан, в файл.
type Logger struct {
	slog *slog.Logger
	file *os.File
}

// New создает логгер. filePath может быть пустым - тогда только stdout.
// level: debug | info | warn | error
func New(filePath, level string) (*Logger, error) {
	var (
		writer io.Writer = os.Stdout
		file   *os.File
	)

	if filePath != "" {
		if dir := filepath.Dir(filePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("logger: create log dir: %w", err)
			}
		}
		f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("logger: open log file: %w", err)
		}
		file = f
		writer = io.MultiWriter(os.Stdout, f)
	}

	return NewWithWriter(writer, level, file), nil
}

// NewWithWriter создает логгер поверх произвольного io.Writer.
// closer закрывается в Close и может быть nil.
func NewWithWriter(w io.Writer, level string, closer *os.File) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})
	return &Logger{
		slog: slog.New(handler),
		file: closer,
	}
}

// Nop логгер, который ничего не пишет
func Nop() *Logger {
	return NewWithWriter(io.Discard, "error", nil)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

func (l *Logger) Debug(format string, v ...interface{}) {
	l.log(slog.LevelDebug, format, v...)
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.log(slog.LevelInfo, format, v...)
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.log(slog.LevelWarn, format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.log(slog.LevelError, format, v...)
}

// Fatal пишет ошибку и завершает процесс
func (l *Logger) Fatal(format string, v ...interface{}) {
	l.log(slog.LevelError, format, v...)
	l.Close()
	os.Exit(1)
}

// Slog отдаёт нижележащий *slog.Logger для библиотек, которые принимают slog
func (l *Logger) Slog() *slog.Logger {
	return l.slog
}

// Close закрывает файл лога
func (l *Logger) Close() {
	if l.file != nil {
		_ = l.file.Close()
		l.file = nil
	}
}

func (l *Logger) log(level slog.Level, format string, v ...interface{}) {
	ctx := context.Background()
	if !l.slog.Enabled(ctx, level) {
		return
	}
	l.slog.Log(ctx, level, fmt.Sprintf(format, v...))
}
