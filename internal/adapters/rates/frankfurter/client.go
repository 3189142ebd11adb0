// Package frankfurter is a client for Frankfurter-compatible exchange-rate APIs.
package frankfurter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/SscSPs/subscription_tracker/internal/apperrors"
	"github.com/SscSPs/subscription_tracker/internal/core/domain"
	"github.com/SscSPs/subscription_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/subscription_tracker/internal/platform/metrics"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// ProviderName identifies this provider in errors, logs and metrics.
const ProviderName = "frankfurter"

// DefaultBaseURL is the public Frankfurter endpoint.
const DefaultBaseURL = "https://api.frankfurter.app"

// Config holds client settings. Zero values fall back to defaults.
type Config struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	BreakerFailures   uint32
	BreakerCooldown   time.Duration
}

func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.Timeout <= 0 {
		c.Timeout = 5 * time.Second
	}
	if c.RequestsPerSecond <= 0 {
		c.RequestsPerSecond = 5
	}
	if c.Burst <= 0 {
		c.Burst = 1
	}
	if c.BreakerFailures == 0 {
		c.BreakerFailures = 3
	}
	if c.BreakerCooldown <= 0 {
		c.BreakerCooldown = 30 * time.Second
	}
	return c
}

// Client fetches rates over HTTP. Every call is bounded by Config.Timeout,
// throttled by a token bucket and guarded by a circuit breaker.
type Client struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
	metrics *metrics.Registry
	now     func() time.Time
}

var _ repositories.RateProvider = (*Client)(nil)

// NewClient creates a Client. httpClient and m may be nil.
func NewClient(cfg Config, httpClient *http.Client, m *metrics.Registry) *Client {
	cfg = cfg.withDefaults()
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	c := &Client{
		cfg:     cfg,
		http:    httpClient,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		metrics: m,
		now:     time.Now,
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    ProviderName,
		Timeout: cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			m.SetBreakerState(name, float64(to))
		},
	})
	return c
}

// Name implements repositories.RateProvider.
func (c *Client) Name() string {
	return ProviderName
}

// BreakerState reports the circuit breaker state.
func (c *Client) BreakerState() gobreaker.State {
	return c.breaker.State()
}

type latestResponse struct {
	Amount decimal.Decimal            `json:"amount"`
	Base   string                     `json:"base"`
	Date   string                     `json:"date"`
	Rates  map[string]decimal.Decimal `json:"rates"`
}

// Latest fetches every rate published for base.
func (c *Client) Latest(ctx context.Context, base domain.CurrencyCode) (domain.RateSnapshot, error) {
	q := url.Values{}
	q.Set("from", base.String())

	resp, err := c.fetch(ctx, "latest", q)
	if err != nil {
		return domain.RateSnapshot{}, err
	}

	rates := make(map[domain.CurrencyCode]decimal.Decimal, len(resp.Rates))
	for code, r := range resp.Rates {
		rates[domain.CurrencyCode(strings.ToUpper(code))] = r
	}
	return domain.NewRateSnapshot(base, rates, c.now(), domain.RateSourceLive), nil
}

// Convert asks the provider for amount expressed in to.
// A response without a rate for to is an error.
func (c *Client) Convert(ctx context.Context, amount decimal.Decimal, from, to domain.CurrencyCode) (decimal.Decimal, error) {
	q := url.Values{}
	q.Set("amount", amount.String())
	q.Set("from", from.String())
	q.Set("to", to.String())

	resp, err := c.fetch(ctx, "convert", q)
	if err != nil {
		return decimal.Zero, err
	}
	converted, ok := resp.Rates[to.String()]
	if !ok {
		return decimal.Zero, &apperrors.ExternalFetchError{
			Provider: ProviderName,
			Op:       "convert",
			Err:      fmt.Errorf("response has no rate for %s", to),
		}
	}
	return converted, nil
}

func (c *Client) fetch(ctx context.Context, op string, q url.Values) (*latestResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	started := time.Now()
	res, err := c.breaker.Execute(func() (interface{}, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
		return c.get(ctx, q)
	})
	c.metrics.RecordProviderRequest(ProviderName, op, started, err)
	if err != nil {
		var fetchErr *apperrors.ExternalFetchError
		if errors.As(err, &fetchErr) {
			fetchErr.Op = op
			return nil, fetchErr
		}
		return nil, &apperrors.ExternalFetchError{Provider: ProviderName, Op: op, Err: err}
	}
	return res.(*latestResponse), nil
}

func (c *Client) get(ctx context.Context, q url.Values) (*latestResponse, error) {
	endpoint := c.cfg.BaseURL + "/latest?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &apperrors.ExternalFetchError{Provider: ProviderName, StatusCode: resp.StatusCode}
	}

	var body latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &body, nil
}
