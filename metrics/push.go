package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"go.uber.org/zap"
)

// PushConfig configures pushing metrics to a prometheus push gateway.
type PushConfig struct {
	URL      string            `mapstructure:"url"`
	Username string            `mapstructure:"username"`
	Password string            `mapstructure:"password"`
	Headers  map[string]string `mapstructure:"headers"`
	Period   time.Duration     `mapstructure:"period"`
}

// RunPusher pushes metrics of the default registry to the gateway every period until ctx is cancelled.
func RunPusher(ctx context.Context, conf PushConfig, instance string, logger *zap.Logger) {
	header := http.Header{}
	for k, v := range conf.Headers {
		header.Add(k, v)
	}
	pusher := push.New(conf.URL, Namespace).
		Gatherer(prometheus.DefaultGatherer).
		Grouping("instance", instance).
		Header(header)
	if conf.Username != "" && conf.Password != "" {
		pusher = pusher.BasicAuth(conf.Username, conf.Password)
	}
	ticker := time.NewTicker(conf.Period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := pusher.PushContext(ctx); err != nil {
				logger.Warn("failed to push metrics", zap.Error(err))
			}
		}
	}
}
