package xzap

import (
	"context"
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config controls the process-wide zap logger.
type Config struct {
	ServiceName string `toml:"service_name" mapstructure:"service_name"`
	Mode        string `toml:"mode" mapstructure:"mode"`   // console or file
	Path        string `toml:"path" mapstructure:"path"`   // file mode only
	Level       string `toml:"level" mapstructure:"level"` // debug/info/warn/error
	Compress    bool   `toml:"compress" mapstructure:"compress"`
	KeepDays    int    `toml:"keep_days" mapstructure:"keep_days"`
	MaxSize     int    `toml:"max_size" mapstructure:"max_size"` // megabytes
	MaxBackups  int    `toml:"max_backups" mapstructure:"max_backups"`
}

type ctxKey struct{}

var global atomic.Value // *zap.Logger

func init() {
	global.Store(zap.NewNop())
}

// SetUp builds the global logger from config. Safe to call once at startup.
func SetUp(c Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if c.Level != "" {
		if err := level.UnmarshalText([]byte(c.Level)); err != nil {
			return nil, err
		}
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var ws zapcore.WriteSyncer
	if c.Mode == "file" && c.Path != "" {
		ws = zapcore.AddSync(&lumberjack.Logger{
			Filename:   c.Path,
			MaxSize:    c.MaxSize,
			MaxAge:     c.KeepDays,
			MaxBackups: c.MaxBackups,
			Compress:   c.Compress,
		})
	} else {
		ws = zapcore.AddSync(os.Stdout)
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), ws, level)
	logger := zap.New(core, zap.AddCaller())
	if c.ServiceName != "" {
		logger = logger.With(zap.String("service", c.ServiceName))
	}

	global.Store(logger)
	return logger, nil
}

// NewContext returns a child context carrying extra fields that WithContext
// attaches to every log line, e.g. a request id.
func NewContext(ctx context.Context, fields ...zap.Field) context.Context {
	return context.WithValue(ctx, ctxKey{}, fields)
}

// WithContext returns the global logger enriched with any fields stored in ctx.
func WithContext(ctx context.Context) *zap.Logger {
	logger := global.Load().(*zap.Logger)
	if ctx == nil {
		return logger
	}
	if fields, ok := ctx.Value(ctxKey{}).([]zap.Field); ok {
		return logger.With(fields...)
	}
	return logger
}
