package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var defaultLogger *zap.SugaredLogger

// Options configures the global logger.
type Options struct {
	Level      string // "debug", "info", "warn", "error"
	Format     string // "json" or "text"
	File       string // optional rotated log file, in addition to stdout
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Initialize sets up the global logger with the specified level and format
func Initialize(level, format string) {
	InitializeWithOptions(Options{Level: level, Format: format})
}

// InitializeWithOptions sets up the global logger, optionally writing to a rotated file
func InitializeWithOptions(opts Options) {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if strings.ToLower(opts.Format) == "json" {
		encoder = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	sink := zapcore.AddSync(os.Stdout)
	if opts.File != "" {
		sink = zapcore.NewMultiWriteSyncer(sink, zapcore.AddSync(&lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   true,
		}))
	}

	core := zapcore.NewCore(encoder, sink, parseLevel(opts.Level))
	Set(zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)))
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Set replaces the global logger
func Set(l *zap.Logger) {
	defaultLogger = l.Sugar()
}

// Get returns the default logger
func Get() *zap.SugaredLogger {
	if defaultLogger == nil {
		// Initialize with default settings if not yet initialized
		Initialize("info", "text")
	}
	return defaultLogger
}

// Sync flushes buffered log entries
func Sync() {
	if defaultLogger != nil {
		_ = defaultLogger.Sync()
	}
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	Get().Debugw(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	Get().Infow(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	Get().Warnw(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	Get().Errorw(msg, args...)
}

// WithMethod returns a logger with method name attached
func WithMethod(methodName string) *zap.SugaredLogger {
	return Get().With("method", methodName)
}

// WithService returns a logger with service name attached
func WithService(serviceName string) *zap.SugaredLogger {
	return Get().Named(serviceName)
}

// EnterMethod logs method entry (process tracking)
func EnterMethod(methodName string, args ...any) {
	allArgs := append([]any{"method", methodName, "event", "enter"}, args...)
	Get().Debugw("→ Method entered", allArgs...)
}

// ExitMethod logs method exit (process tracking)
func ExitMethod(methodName string, args ...any) {
	allArgs := append([]any{"method", methodName, "event", "exit"}, args...)
	Get().Debugw("← Method exited", allArgs...)
}

// ExitMethodWithError logs method exit with error (process tracking)
func ExitMethodWithError(methodName string, err error, args ...any) {
	allArgs := append([]any{"method", methodName, "event", "exit", "error", err}, args...)
	Get().Errorw("← Method exited with error", allArgs...)
}

// DatabaseCall logs database operation (debug log for external resources)
func DatabaseCall(operation, table string, args ...any) {
	allArgs := append([]any{"operation", operation, "table", table}, args...)
	Get().Debugw("→ Database call", allArgs...)
}

// DatabaseResult logs database operation result (debug log for external resources)
func DatabaseResult(operation string, rowsAffected int64, err error, args ...any) {
	allArgs := append([]any{"operation", operation, "rows_affected", rowsAffected}, args...)
	if err != nil {
		allArgs = append(allArgs, "error", err)
		Get().Errorw("← Database call failed", allArgs...)
	} else {
		Get().Debugw("← Database call succeeded", allArgs...)
	}
}
