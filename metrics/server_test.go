package metrics

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var testCounter = NewCounter("test_total", "metrics", "counter used in tests", []string{"kind"})

func TestServer(t *testing.T) {
	testCounter.WithLabelValues("served").Inc()

	srv, err := NewServer("127.0.0.1:0", zaptest.NewLogger(t))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- srv.Run(ctx) }()

	resp, err := http.Get(fmt.Sprintf("http://%s/metrics", srv.Addr()))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, string(body), `verifier_metrics_test_total{kind="served"}`)

	cancel()
	select {
	case err := <-errc:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		require.Fail(t, "metrics server didn't stop")
	}
}

func TestPusher(t *testing.T) {
	pushed := make(chan string, 10)
	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case pushed <- r.URL.Path:
		default:
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer gateway.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		RunPusher(ctx, PushConfig{URL: gateway.URL, Period: 10 * time.Millisecond}, "test", zaptest.NewLogger(t))
		close(done)
	}()

	select {
	case path := <-pushed:
		require.Equal(t, "/metrics/job/verifier/instance/test", path)
	case <-time.After(5 * time.Second):
		require.Fail(t, "metrics were not pushed")
	}
	cancel()
	<-done
}

func TestSetTimestamp(t *testing.T) {
	gauge := NewGauge("test_timestamp", "metrics", "gauge used in tests", []string{})
	ts := time.Unix(1_700_000_000, 0)
	SetTimestamp(gauge.WithLabelValues(), ts)
	require.Equal(t, float64(1_700_000_000), testutil.ToFloat64(gauge.WithLabelValues()))
}
