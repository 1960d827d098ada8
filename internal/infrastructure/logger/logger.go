package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Options struct {
	Service string
	Level   string
	// Format is "json" or "console".
	Format string
	// Dir, when set, adds a timestamped log file next to stderr output.
	Dir string
}

func DefaultOptions(service string) Options {
	return Options{
		Service: service,
		Level:   "info",
		Format:  "json",
	}
}

// New builds the process logger.
func New(opts Options) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	var config zap.Config
	switch strings.ToLower(opts.Format) {
	case "", "json":
		config = zap.NewProductionConfig()
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	case "console":
		config = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}
	config.Level = zap.NewAtomicLevelAt(level)

	if opts.Dir != "" {
		path, err := logFilePath(opts.Dir, opts.Service, time.Now())
		if err != nil {
			return nil, err
		}
		config.OutputPaths = append(config.OutputPaths, path)
	}

	base, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	if opts.Service != "" {
		base = base.With(zap.String("service", opts.Service))
	}
	return base, nil
}

func logFilePath(dir, service string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create log dir: %w", err)
	}
	filename := fmt.Sprintf("%s_%s.log", now.Format("2006-01-02_15-04-05"), sanitize(service))
	return filepath.Join(dir, filename), nil
}

// sanitize makes a name safe for the file system.
func sanitize(s string) string {
	s = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '_'
	}, s)
	s = strings.Trim(s, "_")
	if s == "" {
		return "service"
	}
	if len(s) > 60 {
		s = s[:60]
	}
	return s
}
