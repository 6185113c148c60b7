package container

import (
	"fmt"
	"os"

	"github.com/samber/do"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LoggerPackage provides the application *zap.Logger.
func LoggerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*zap.Logger, error) {
		opts := do.MustInvoke[*Options](i)

		return NewLogger(opts)
	})
}

// NewLogger builds a console or JSON logger at the configured level. With a
// log file set, JSON entries are also written to a rotating file.
func NewLogger(opts *Options) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(opts.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	jsonCfg := zap.NewProductionEncoderConfig()
	jsonCfg.TimeKey = "timestamp"
	jsonCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder

	switch opts.LogFormat {
	case "json":
		encoder = zapcore.NewJSONEncoder(jsonCfg)
	case "console", "":
		consoleCfg := zap.NewDevelopmentEncoderConfig()
		consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(consoleCfg)
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.LogFormat)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level)

	if opts.LogFile != "" {
		file := zapcore.AddSync(&lumberjack.Logger{
			Filename:   opts.LogFile,
			MaxSize:    5, // megabytes
			MaxBackups: 10,
			MaxAge:     14, // days
			Compress:   true,
		})

		core = zapcore.NewTee(core, zapcore.NewCore(zapcore.NewJSONEncoder(jsonCfg), file, level))
	}

	return zap.New(core), nil
}
