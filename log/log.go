// Package log builds the process logger. Components never use a global logger: they accept
// *zap.Logger through options and default to zap.NewNop().
package log

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	ConsoleEncoder = "console"
	JSONEncoder    = "json"
)

// where logs go by default.
var logWriter io.Writer = os.Stdout

// Config of the process logger.
type Config struct {
	Level   string `mapstructure:"level"`
	Encoder string `mapstructure:"encoder"`
	// Levels overwrites level for named loggers, e.g. {"daemon": "debug"}.
	Levels map[string]string `mapstructure:"levels"`
}

// DefaultConfig returns info level console logger config.
func DefaultConfig() Config {
	return Config{
		Level:   "info",
		Encoder: ConsoleEncoder,
	}
}

func encoder(name string) (zapcore.Encoder, error) {
	switch name {
	case ConsoleEncoder, "":
		return zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), nil
	case JSONEncoder:
		return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), nil
	}
	return nil, fmt.Errorf("unknown log encoder %q", name)
}

// New creates the process logger that writes to stdout.
func New(conf Config) (*zap.Logger, error) {
	return NewWithWriter(conf, logWriter)
}

// NewWithWriter creates the process logger that writes to w.
func NewWithWriter(conf Config, w io.Writer) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.Set(conf.Level); err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", conf.Level, err)
	}
	enc, err := encoder(conf.Encoder)
	if err != nil {
		return nil, err
	}
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), zap.NewAtomicLevelAt(level))), nil
}

// Named returns a child logger with the name and the level configured for it in Levels.
func (conf Config) Named(logger *zap.Logger, name string) (*zap.Logger, error) {
	logger = logger.Named(name)
	lvl, ok := conf.Levels[name]
	if !ok {
		return logger, nil
	}
	var level zapcore.Level
	if err := level.Set(lvl); err != nil {
		return nil, fmt.Errorf("parse level %q for logger %s: %w", lvl, name, err)
	}
	return logger.WithOptions(zap.IncreaseLevel(level)), nil
}
