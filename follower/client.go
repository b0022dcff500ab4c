// Package follower queries the chain follower for the state used to denominate rewards.
package follower

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/hexmobile/mobile-verifier/common/types"
)

const chainStatePath = "/v1/chain_state"

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrNotReady       = errors.New("chain state is not available yet")
)

// Config of the follower client.
type Config struct {
	URL               string        `mapstructure:"url"`
	RequestTimeout    time.Duration `mapstructure:"request-timeout"`
	RequestRetryDelay time.Duration `mapstructure:"request-retry-delay"`
	MaxRequestRetries int           `mapstructure:"max-request-retries"`
	// RequestsPerSecond caps calls to the follower, zero means unlimited.
	RequestsPerSecond float64 `mapstructure:"requests-per-second"`
}

func DefaultConfig() Config {
	return Config{
		URL:               "http://127.0.0.1:8080",
		RequestTimeout:    10 * time.Second,
		RequestRetryDelay: time.Second,
		MaxRequestRetries: 10,
	}
}

// ChainState is the state of the chain at the end of a reward epoch.
type ChainState struct {
	Height uint64 `json:"height"`
	// Emission is the number of tokens, in the smallest unit, issued for the epoch.
	Emission uint64 `json:"emission"`
}

// leveledLogger adapts zap to retryablehttp.LeveledLogger.
type leveledLogger struct {
	*zap.SugaredLogger
}

func (l leveledLogger) Error(msg string, kv ...any) { l.Errorw(msg, kv...) }
func (l leveledLogger) Info(msg string, kv ...any)  { l.Infow(msg, kv...) }
func (l leveledLogger) Warn(msg string, kv ...any)  { l.Warnw(msg, kv...) }
func (l leveledLogger) Debug(msg string, kv ...any) { l.Debugw(msg, kv...) }

// the follower responds with 404 until it observed the end of the epoch.
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if resp != nil && resp.StatusCode == http.StatusNotFound {
		return true, nil
	}
	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

type Opt func(*Client)

func WithLogger(logger *zap.Logger) Opt {
	return func(c *Client) {
		c.logger = logger
		c.client.Logger = leveledLogger{logger.Sugar()}
		c.client.ResponseLogHook = func(_ retryablehttp.Logger, resp *http.Response) {
			c.logger.Debug(
				"response received",
				zap.Stringer("url", resp.Request.URL),
				zap.Int("status", resp.StatusCode),
			)
		}
	}
}

func withCustomHttpClient(client *http.Client) Opt {
	return func(c *Client) {
		c.client.HTTPClient = client
	}
}

// Client of the chain follower http api.
type Client struct {
	baseURL *url.URL
	client  *retryablehttp.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

func NewClient(cfg Config, opts ...Opt) (*Client, error) {
	baseURL, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing address: %w", err)
	}
	if baseURL.Scheme == "" {
		baseURL.Scheme = "http"
	}
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	c := &Client{
		baseURL: baseURL,
		limiter: rate.NewLimiter(limit, 1),
		client: &retryablehttp.Client{
			HTTPClient:   &http.Client{Timeout: cfg.RequestTimeout},
			RetryMax:     cfg.MaxRequestRetries,
			RetryWaitMin: cfg.RequestRetryDelay,
			RetryWaitMax: 2 * cfg.RequestRetryDelay,
			Backoff:      retryablehttp.LinearJitterBackoff,
			CheckRetry:   checkRetry,
			ErrorHandler: retryablehttp.PassthroughErrorHandler,
		},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ChainState returns the height and the emission of the reward epoch.
func (c *Client) ChainState(ctx context.Context, epoch types.Epoch) (*ChainState, error) {
	query := url.Values{}
	query.Set("start", strconv.FormatInt(epoch.Start.Unix(), 10))
	query.Set("end", strconv.FormatInt(epoch.End.Unix(), 10))
	var state ChainState
	if err := c.req(ctx, chainStatePath, query, &state); err != nil {
		return nil, fmt.Errorf("chain state for %s: %w", epoch, err)
	}
	return &state, nil
}

func (c *Client) req(ctx context.Context, path string, query url.Values, resBody any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for rate limiter: %w", err)
	}
	endpoint := c.baseURL.JoinPath(path)
	endpoint.RawQuery = query.Encode()
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if res.StatusCode != http.StatusOK {
		c.logger.Debug("follower request failed", zap.String("status", res.Status), zap.String("body", string(data)))
	}

	switch res.StatusCode {
	case http.StatusOK:
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s: %s", ErrInvalidRequest, res.Status, data)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotReady, res.Status)
	default:
		return fmt.Errorf("unexpected status %s: %s", res.Status, data)
	}

	if err := json.Unmarshal(data, resBody); err != nil {
		return fmt.Errorf("decoding response body: %w", err)
	}
	return nil
}
