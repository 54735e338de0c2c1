package logger

import (
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	cfgpkg "github.com/fatflowers/hms-payment/pkg/config"
)

func New(cfg *cfgpkg.Config) (*zap.SugaredLogger, error) {
	level, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.EncoderConfig.TimeKey = "time"
	l, err := zcfg.Build(zap.WithCaller(true))
	if err != nil {
		return nil, err
	}

	if cfg.Log.File != "" {
		l = l.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, fileCore(cfg.Log.File, zcfg.EncoderConfig, level))
		}))
	}
	// added after the tee so the file sink carries it too
	return l.With(zap.String("service", cfgpkg.ServiceName)).Sugar(), nil
}

// fileCore writes JSON lines into a size-rotated file.
func fileCore(path string, enc zapcore.EncoderConfig, level zapcore.Level) zapcore.Core {
	rotator := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}
	return zapcore.NewCore(zapcore.NewJSONEncoder(enc), zapcore.AddSync(rotator), level)
}

func registerSync(lc fx.Lifecycle, l *zap.SugaredLogger) {
	lc.Append(fx.StopHook(func() {
		// Sync on a console fd returns EINVAL on linux; nothing to do about it.
		_ = l.Sync()
	}))
}

var Module = fx.Options(
	fx.Provide(New),
	fx.Invoke(registerSync),
)
