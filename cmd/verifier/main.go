// verifier validates heartbeats of mobile radios and distributes coverage rewards.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/hexmobile/mobile-verifier/config"
	"github.com/hexmobile/mobile-verifier/config/presets"
	"github.com/hexmobile/mobile-verifier/log"
	"github.com/hexmobile/mobile-verifier/sql"
)

// Version is designed to be overwritten by make.
var Version = "dev"

type rootFlags struct {
	config     string
	preset     string
	dataDir    string
	logLevel   string
	logEncoder string
}

func (f *rootFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.config, "config", "c", "", "load configuration from file")
	fs.StringVarP(&f.preset, "preset", "p", "",
		fmt.Sprintf("preset overwrites default values of the config. options %+s", presets.Options()))
	fs.StringVarP(&f.dataDir, "data-dir", "d", "", "directory with the verifier state")
	fs.StringVar(&f.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	fs.StringVar(&f.logEncoder, "log-encoder", "", "log encoder (console, json)")
}

// load builds the config from a preset, the config file, the environment and flags, in this order.
func (f *rootFlags) load(fs *pflag.FlagSet) (config.Config, error) {
	conf := config.DefaultConfig()
	if err := config.Load(&conf, f.config); err != nil {
		return conf, log.ErrMalformedConfig(err)
	}
	preset := f.preset
	if preset == "" {
		preset = conf.Preset
	}
	if preset != "" {
		p, err := presets.Get(preset)
		if err != nil {
			return conf, log.ErrBadFlags(err)
		}
		conf = p
		if err := config.Load(&conf, f.config); err != nil {
			return conf, log.ErrMalformedConfig(err)
		}
	}
	if fs.Changed("data-dir") {
		conf.DataDir = f.dataDir
	}
	if fs.Changed("log-level") {
		conf.Log.Level = f.logLevel
	}
	if fs.Changed("log-encoder") {
		conf.Log.Encoder = f.logEncoder
	}
	if err := conf.Validate(); err != nil {
		return conf, log.ErrMalformedConfig(err)
	}
	return conf, nil
}

// env is the state shared by commands that need the data dir.
type env struct {
	conf   config.Config
	logger *zap.Logger
	lock   *flock.Flock
	db     *sql.Database
}

// setup opens the database. Exclusive commands also take the data dir lock,
// the rest only read and may run next to the server.
func setup(c *cobra.Command, flags *rootFlags, exclusive bool) (*env, error) {
	conf, err := flags.load(c.Flags())
	if err != nil {
		return nil, err
	}
	logger, err := log.New(conf.Log)
	if err != nil {
		return nil, log.ErrMalformedConfig(err)
	}
	c.SilenceUsage = true

	if err := os.MkdirAll(conf.DataDir, 0o700); err != nil {
		return nil, log.ErrEnsureDataDir(conf.DataDir, err)
	}
	e := &env{conf: conf, logger: logger}
	if exclusive {
		e.lock = flock.New(conf.LockPath())
		locked, err := e.lock.TryLock()
		if err != nil {
			return nil, fmt.Errorf("flock %s: %w", conf.LockPath(), err)
		}
		if !locked {
			return nil, log.ErrDataDirLocked(conf.DataDir)
		}
	}
	dblog, err := conf.Log.Named(logger, "db")
	if err != nil {
		e.unlock()
		return nil, log.ErrMalformedConfig(err)
	}
	e.db, err = sql.Open("file:"+conf.DatabasePath(),
		sql.WithLogger(dblog),
		sql.WithConnections(conf.Database.Connections),
		sql.WithLatencyMetering(conf.Database.LatencyMetering),
	)
	if err != nil {
		e.unlock()
		return nil, log.ErrOpenDatabase(err)
	}
	return e, nil
}

func (e *env) unlock() error {
	if e.lock == nil {
		return nil
	}
	if err := e.lock.Unlock(); err != nil {
		return fmt.Errorf("unlock %s: %w", e.lock.Path(), err)
	}
	return nil
}

func (e *env) Close() error {
	err := errors.Join(e.db.Close(), e.unlock())
	e.logger.Sync()
	return err
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:     "verifier",
		Short:   "verify mobile radio heartbeats and distribute coverage rewards",
		Version: Version,
	}
	flags.register(root.PersistentFlags())
	root.AddCommand(
		serverCmd(flags),
		importHexesCmd(flags),
		checkpointsCmd(flags),
	)
	return root
}

func main() {
	// os.Interrupt for all systems, syscall.SIGTERM is mainly for docker.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
