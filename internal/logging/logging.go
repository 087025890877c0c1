// internal/logging/logging.go
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/tamzrod/pemf-controller/internal/config"
)

// EnvLogLevel overrides the configured level when set.
const EnvLogLevel = "PEMF_LOG_LEVEL"

// File rotation limits for the optional log file.
const (
	fileMaxSizeMB  = 5
	fileMaxBackups = 3
	fileMaxAgeDays = 14
)

// New builds the process logger from config.
// Console output is human readable; otherwise JSON lines go to stdout.
// A log file, when configured, always receives JSON and is rotated.
func New(app string, cfg config.LogConfig) (zerolog.Logger, error) {
	level, err := resolveLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), err
	}

	var out io.Writer = os.Stdout
	if cfg.Console {
		out = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
	}

	if cfg.File != "" {
		out = zerolog.MultiLevelWriter(out, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    fileMaxSizeMB,
			MaxBackups: fileMaxBackups,
			MaxAge:     fileMaxAgeDays,
		})
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("app", app).
		Logger(), nil
}

func resolveLevel(configured string) (zerolog.Level, error) {
	if env := strings.TrimSpace(os.Getenv(EnvLogLevel)); env != "" {
		if lvl, err := zerolog.ParseLevel(strings.ToLower(env)); err == nil {
			return lvl, nil
		}
	}
	if configured == "" {
		return zerolog.InfoLevel, nil
	}
	return zerolog.ParseLevel(strings.ToLower(configured))
}
