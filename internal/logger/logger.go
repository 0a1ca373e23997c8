package logger

import (
	"os"

	"alltagslabor/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.Logger

// Initialize sets up the logger with the given configuration
func Initialize(loggerCfg config.LoggerConfig) error {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	logLevel := zapcore.InfoLevel
	if loggerCfg.Level != "" {
		if err := logLevel.Set(loggerCfg.Level); err != nil {
			return err
		}
	}

	var encoder zapcore.Encoder
	if loggerCfg.Env == "production" {
		// Production: JSON format
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		// Development: Console format
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	// Logs go to stderr so the CLI can keep stdout for its own output.
	core := zapcore.NewCore(encoder, zapcore.AddSync(os.Stderr), logLevel)

	log = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	return nil
}

// Get returns the global logger instance. Before Initialize it returns a
// no-op logger.
func Get() *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}

// Sync flushes any buffered log entries
func Sync() error {
	if log == nil {
		return nil
	}
	return log.Sync()
}
