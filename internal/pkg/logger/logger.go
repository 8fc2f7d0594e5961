// Package logger builds the application zap logger: JSON logs to stdout plus a
// size-rotated file under the configured log directory.
package logger

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultLogDirPerm = 0o755
	logFileName       = "review-monitor.log"
)

// Options controls the log destination and rotation policy.
type Options struct {
	Dir        string // log directory; empty disables the file sink
	MaxSizeMB  int    // rotate after this many megabytes (default 50)
	MaxBackups int    // rotated files to keep (default 3)
	Level      string // "debug" | "info" | "warn" | "error"
}

// New creates the process logger. When the log directory cannot be created the
// file sink is skipped and logs go to stdout only.
func New(opts Options) (*zap.Logger, error) {
	level := parseLevel(opts.Level)

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encCfg)

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level),
	}

	if dir := strings.TrimSpace(opts.Dir); dir != "" {
		if err := os.MkdirAll(dir, defaultLogDirPerm); err == nil {
			maxSize := opts.MaxSizeMB
			if maxSize <= 0 {
				maxSize = 50
			}
			maxBackups := opts.MaxBackups
			if maxBackups <= 0 {
				maxBackups = 3
			}
			rotator := &lumberjack.Logger{
				Filename:   filepath.Join(dir, logFileName),
				MaxSize:    maxSize,
				MaxBackups: maxBackups,
				Compress:   true,
			}
			cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(rotator), level))
		}
	}

	return zap.New(zapcore.NewTee(cores...)), nil
}

func parseLevel(raw string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
