package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/grafana/pyroscope-go"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hexmobile/mobile-verifier/filesink"
	"github.com/hexmobile/mobile-verifier/follower"
	"github.com/hexmobile/mobile-verifier/hexoracle"
	"github.com/hexmobile/mobile-verifier/log"
	"github.com/hexmobile/mobile-verifier/metrics"
	"github.com/hexmobile/mobile-verifier/rewards"
	"github.com/hexmobile/mobile-verifier/shares"
	"github.com/hexmobile/mobile-verifier/verifier"
)

const (
	validSharesPrefix   = "valid_heartbeat"
	invalidSharesPrefix = "invalid_heartbeat"
	rewardSharesPrefix  = "radio_reward_share"

	drainTimeout = 30 * time.Second
)

func serverCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "run the verifier daemon",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			e, err := setup(c, flags, true)
			if err != nil {
				return err
			}
			defer e.Close()
			if err := runServer(c.Context(), e, afero.NewOsFs()); err != nil {
				e.logger.Error("verifier failed", zap.Error(err))
				return err
			}
			return nil
		},
	}
}

func named(e *env, name string) *zap.Logger {
	logger, err := e.conf.Log.Named(e.logger, name)
	if err != nil {
		e.logger.Warn("invalid log level", zap.String("logger", name), zap.Error(err))
		return e.logger.Named(name)
	}
	return logger
}

// runServer runs the daemon until ctx is canceled. Output sinks are closed after the daemon stops,
// so that files of the last pass are persisted before returning.
func runServer(ctx context.Context, e *env, fs afero.Fs) error {
	conf := e.conf
	for _, dir := range []string{conf.Ingest.Dir, conf.Output.Dir} {
		if err := fs.MkdirAll(dir, 0o700); err != nil {
			return log.ErrEnsureDataDir(dir, err)
		}
	}
	if conf.Profiler.URL != "" {
		profiler, err := pyroscope.Start(pyroscope.Config{
			ApplicationName: conf.Profiler.Name,
			ServerAddress:   conf.Profiler.URL,
		})
		if err != nil {
			return fmt.Errorf("start profiler: %w", err)
		}
		defer profiler.Stop()
	}

	oracle, err := hexoracle.New(e.db,
		hexoracle.WithLogger(named(e, "oracle")),
		hexoracle.WithCacheSize(conf.Oracle.CacheSize),
	)
	if err != nil {
		return err
	}
	if conf.Oracle.File != "" {
		if err := importOracle(ctx, e, fs, oracle); err != nil {
			return err
		}
	}
	chain, err := follower.NewClient(conf.Follower, follower.WithLogger(named(e, "follower")))
	if err != nil {
		return err
	}
	source, err := shares.NewFileSource(fs, conf.Ingest.Dir, shares.WithLogger(named(e, "ingest")))
	if err != nil {
		return err
	}
	calculator := rewards.NewCalculator(chain, oracle, rewards.WithLogger(named(e, "rewards")))

	sinkOpts := []filesink.Opt{
		filesink.WithLogger(named(e, "sink")),
		filesink.WithQueueSize(conf.Output.QueueSize),
	}
	if conf.Output.Upload != "" {
		uploader, err := filesink.NewGCSUploader(ctx, conf.Output.Upload)
		if err != nil {
			return err
		}
		defer uploader.Close()
		sinkOpts = append(sinkOpts, filesink.WithUploader(uploader))
	}
	sinks := []*filesink.Sink{
		filesink.New(fs, conf.Output.Dir, validSharesPrefix, sinkOpts...),
		filesink.New(fs, conf.Output.Dir, invalidSharesPrefix, sinkOpts...),
		filesink.New(fs, conf.Output.Dir, rewardSharesPrefix, sinkOpts...),
	}
	daemon, err := verifier.NewDaemon(ctx, e.db, conf.Verifier,
		verifier.NewVerifier(source, calculator),
		verifier.Sinks{ValidShares: sinks[0], InvalidShares: sinks[1], Rewards: sinks[2]},
		verifier.WithLogger(named(e, "verifier")),
	)
	if err != nil {
		for _, s := range sinks {
			s.Close()
		}
		return err
	}

	// sinks outlive ctx to persist records of a pass that completed during shutdown
	sinkCtx, cancelSinks := context.WithCancel(context.WithoutCancel(ctx))
	defer cancelSinks()
	var sinkGroup errgroup.Group
	for _, s := range sinks {
		s := s
		sinkGroup.Go(func() error {
			return s.Run(sinkCtx)
		})
	}

	eg, ctx := errgroup.WithContext(ctx)
	if conf.Metrics.Address != "" {
		server, err := metrics.NewServer(conf.Metrics.Address, named(e, "metrics"))
		if err != nil {
			return errors.Join(err, closeSinks(e.logger, sinks, &sinkGroup, cancelSinks))
		}
		eg.Go(func() error {
			return server.Run(ctx)
		})
	}
	if conf.Metrics.Push.URL != "" {
		instance := conf.Metrics.Instance
		if instance == "" {
			instance = uuid.NewString()
		}
		eg.Go(func() error {
			metrics.RunPusher(ctx, conf.Metrics.Push, instance, named(e, "metrics"))
			return nil
		})
	}
	if conf.Oracle.File != "" {
		eg.Go(func() error {
			reloadOracle(ctx, e, fs, oracle)
			return nil
		})
	}
	eg.Go(func() error {
		if err := daemon.Run(ctx); err != nil {
			return err
		}
		// stop the rest of the group
		return context.Canceled
	})
	err = eg.Wait()
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	return errors.Join(err, closeSinks(e.logger, sinks, &sinkGroup, cancelSinks))
}

func closeSinks(logger *zap.Logger, sinks []*filesink.Sink, group *errgroup.Group, cancel context.CancelFunc) error {
	for _, s := range sinks {
		s.Close()
	}
	done := make(chan error, 1)
	go func() {
		done <- group.Wait()
	}()
	select {
	case err := <-done:
		return err
	case <-time.After(drainTimeout):
		logger.Error("output sinks failed to drain in time")
		cancel()
		return <-done
	}
}

func importOracle(ctx context.Context, e *env, fs afero.Fs, oracle *hexoracle.Oracle) error {
	doc, err := hexoracle.Import(ctx, e.db, fs, e.conf.Oracle.File)
	if err != nil {
		return err
	}
	oracle.Purge()
	e.logger.Info("imported hex oracle data",
		zap.String("path", e.conf.Oracle.File),
		zap.Int("assignments", len(doc.Assignments)),
		zap.Int("boosts", len(doc.Boosts)),
		zap.Int("verified_radios", len(doc.VerifiedRadios)),
	)
	return nil
}

// reloadOracle imports the oracle file on SIGHUP.
func reloadOracle(ctx context.Context, e *env, fs afero.Fs, oracle *hexoracle.Oracle) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			if err := importOracle(ctx, e, fs, oracle); err != nil {
				e.logger.Error("failed to reload hex oracle data", zap.Error(err))
			}
		}
	}
}
