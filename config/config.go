// Package config contains the configuration of the verifier process.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/hexmobile/mobile-verifier/follower"
	"github.com/hexmobile/mobile-verifier/log"
	"github.com/hexmobile/mobile-verifier/metrics"
	"github.com/hexmobile/mobile-verifier/verifier"
)

const (
	EnvPrefix = "VERIFIER"

	dbFile   = "state.sql"
	lockFile = "LOCK"
)

// Config is the configuration of the verifier process.
type Config struct {
	// Preset selects a named set of defaults that the config file overrides.
	Preset  string `mapstructure:"preset"`
	DataDir string `mapstructure:"data-dir"`

	Log      log.Config      `mapstructure:"log"`
	Verifier verifier.Config `mapstructure:"verifier"`
	Follower follower.Config `mapstructure:"follower"`
	Ingest   IngestConfig    `mapstructure:"ingest"`
	Output   OutputConfig    `mapstructure:"output"`
	Oracle   OracleConfig    `mapstructure:"oracle"`
	Database DatabaseConfig  `mapstructure:"database"`
	Metrics  MetricsConfig   `mapstructure:"metrics"`
	Profiler ProfilerConfig  `mapstructure:"profiler"`
}

type IngestConfig struct {
	// Dir is scanned for heartbeat report files.
	Dir string `mapstructure:"dir"`
}

type OutputConfig struct {
	Dir string `mapstructure:"dir"`
	// Upload is an optional gs://bucket/prefix uri that receives a copy of every output file.
	Upload    string `mapstructure:"upload"`
	QueueSize int    `mapstructure:"queue-size"`
}

type OracleConfig struct {
	// File is imported on start and on SIGHUP when set.
	File      string `mapstructure:"file"`
	CacheSize int    `mapstructure:"cache-size"`
}

type DatabaseConfig struct {
	Connections     int  `mapstructure:"connections"`
	LatencyMetering bool `mapstructure:"latency-metering"`
}

type MetricsConfig struct {
	// Address of the prometheus endpoint. Disabled when empty.
	Address string `mapstructure:"address"`
	// Instance identifies the process in pushed metrics, random when empty.
	Instance string             `mapstructure:"instance"`
	Push     metrics.PushConfig `mapstructure:"push"`
}

type ProfilerConfig struct {
	// URL of the pyroscope server. Disabled when empty.
	URL  string `mapstructure:"url"`
	Name string `mapstructure:"name"`
}

func DefaultConfig() Config {
	return Config{
		DataDir:  "./data",
		Log:      log.DefaultConfig(),
		Verifier: verifier.DefaultConfig(),
		Follower: follower.DefaultConfig(),
		Ingest:   IngestConfig{Dir: "./data/ingest"},
		Output:   OutputConfig{Dir: "./data/output", QueueSize: 16},
		Oracle:   OracleConfig{CacheSize: 100_000},
		Database: DatabaseConfig{Connections: 4},
		Metrics: MetricsConfig{
			Push: metrics.PushConfig{Period: time.Minute},
		},
		Profiler: ProfilerConfig{Name: "mobile-verifier"},
	}
}

func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, dbFile)
}

func (c *Config) LockPath() string {
	return filepath.Join(c.DataDir, lockFile)
}

func (c *Config) Validate() error {
	if c.DataDir == "" {
		return errors.New("data dir is required")
	}
	if c.Ingest.Dir == "" {
		return errors.New("ingest dir is required")
	}
	if c.Output.Dir == "" {
		return errors.New("output dir is required")
	}
	if c.Output.QueueSize <= 0 {
		return fmt.Errorf("output queue size must be positive: %d", c.Output.QueueSize)
	}
	if c.Database.Connections <= 0 {
		return fmt.Errorf("database connections must be positive: %d", c.Database.Connections)
	}
	if c.Metrics.Push.URL != "" && c.Metrics.Push.Period <= 0 {
		return fmt.Errorf("metrics push period must be positive: %v", c.Metrics.Push.Period)
	}
	if err := c.Verifier.Validate(); err != nil {
		return fmt.Errorf("verifier: %w", err)
	}
	return nil
}

// Load overrides cfg with values from the config file at path (if not empty)
// and from VERIFIER_ prefixed environment variables.
func Load(cfg *Config, path string) error {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config file %s: %w", path, err)
		}
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	for _, key := range keys(reflect.TypeOf(Config{}), "") {
		if err := v.BindEnv(key); err != nil {
			return fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	hook := mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToTimeHookFunc(time.RFC3339),
		mapstructure.StringToSliceHookFunc(","),
		mapstructure.TextUnmarshallerHookFunc(),
	)
	if err := v.Unmarshal(cfg,
		viper.DecodeHook(hook),
		withIgnoreUntagged(),
		withErrorUnused(),
	); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	return nil
}

var timeType = reflect.TypeOf(time.Time{})

// keys lists dotted keys of all leaf fields.
func keys(t reflect.Type, prefix string) []string {
	var rst []string
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" || tag == "-" {
			continue
		}
		if field.Type.Kind() == reflect.Struct && field.Type != timeType {
			rst = append(rst, keys(field.Type, prefix+tag+".")...)
			continue
		}
		rst = append(rst, prefix+tag)
	}
	return rst
}

func withIgnoreUntagged() viper.DecoderConfigOption {
	return func(cfg *mapstructure.DecoderConfig) {
		cfg.IgnoreUntaggedFields = true
	}
}

func withErrorUnused() viper.DecoderConfigOption {
	return func(cfg *mapstructure.DecoderConfig) {
		cfg.ErrorUnused = true
	}
}
