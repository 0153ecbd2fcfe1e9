// Package logging builds the zap logger used across proctop.
package logging

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the logger. An empty Filename logs to stderr.
type Options struct {
	Filename   string `yaml:"filename"`
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`      // console or json
	MaxSize    int    `yaml:"max_size"`    // megabytes
	MaxBackups int    `yaml:"max_backups"` // rotated files kept
	MaxAge     int    `yaml:"max_age"`     // days
}

var levels = map[string]zapcore.Level{
	"debug": zapcore.DebugLevel,
	"info":  zapcore.InfoLevel,
	"warn":  zapcore.WarnLevel,
	"error": zapcore.ErrorLevel,
}

// ParseLevel maps a level name to its zap level.
func ParseLevel(name string) (zapcore.Level, error) {
	if name == "" {
		return zapcore.InfoLevel, nil
	}
	level, ok := levels[strings.ToLower(name)]
	if !ok {
		return zapcore.InfoLevel, errors.Errorf("unknown log level %q", name)
	}
	return level, nil
}

// New returns a logger writing to opt.Filename through a rolling writer, or to
// stderr when no file is set.
func New(opt Options) (*zap.Logger, error) {
	level, err := ParseLevel(opt.Level)
	if err != nil {
		return nil, err
	}

	w, err := writer(opt)
	if err != nil {
		return nil, err
	}

	core := zapcore.NewCore(encoder(opt.Format), w, level)
	return zap.New(core, zap.AddCaller()), nil
}

func encoder(format string) zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Local().Format("2006-01-02 15:04:05.000"))
	}
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder

	if format == "json" {
		return zapcore.NewJSONEncoder(cfg)
	}
	return zapcore.NewConsoleEncoder(cfg)
}

func writer(opt Options) (zapcore.WriteSyncer, error) {
	if opt.Filename == "" {
		return zapcore.Lock(os.Stderr), nil
	}
	if err := os.MkdirAll(filepath.Dir(opt.Filename), 0o755); err != nil {
		return nil, errors.Wrap(err, "create log directory")
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   opt.Filename,
		MaxSize:    opt.MaxSize,
		MaxBackups: opt.MaxBackups,
		MaxAge:     opt.MaxAge,
		LocalTime:  true,
	}), nil
}
