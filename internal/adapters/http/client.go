package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const (
	// HTTP client retry configuration.
	defaultRetryCount       = 3
	defaultRetryMaxWaitTime = 5 * time.Second

	// Rate limiting configuration. Notifications are rare; the limit only
	// guards against a misconfigured interval hammering the endpoint.
	rateLimitRequestsPerSecond = 1
	rateLimitBurst             = 5
)

const (
	// Standard HTTP content types.
	contentTypeJSON = "application/json"
)

// Adapter is an HTTP client adapter using resty with rate limiting.
type Adapter struct {
	client  *resty.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewAdapter creates a new HTTP adapter with rate limiting and retry capabilities.
func NewAdapter(timeout time.Duration, logger *slog.Logger) *Adapter {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(defaultRetryCount).
		SetRetryWaitTime(time.Second).
		SetRetryMaxWaitTime(defaultRetryMaxWaitTime).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			return err != nil || resp.StatusCode() >= http.StatusInternalServerError
		})

	limiter := rate.NewLimiter(rate.Limit(rateLimitRequestsPerSecond), rateLimitBurst)

	adapter := &Adapter{
		client:  client,
		limiter: limiter,
		logger:  logger,
	}

	// Add rate limiting middleware
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return adapter.limiter.Wait(req.Context())
	})

	// Add logging middleware
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		logger.DebugContext(req.Context(), "HTTP request",
			"method", req.Method,
			"url", req.URL,
		)
		return nil
	})

	client.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		logger.DebugContext(resp.Request.Context(), "HTTP response",
			"method", resp.Request.Method,
			"url", resp.Request.URL,
			"status", resp.StatusCode(),
			"duration", resp.Time(),
		)
		return nil
	})

	return adapter
}

// Post performs a POST request with optional JSON payload.
func (a *Adapter) Post(
	ctx context.Context,
	url string,
	payload any,
) (*http.Response, error) {
	request := a.client.R().SetContext(ctx).SetDoNotParseResponse(true)

	if payload != nil {
		request.SetHeader("Content-Type", contentTypeJSON).SetBody(payload)
	}

	resp, err := request.Post(url)
	if err != nil {
		// Handle resty marshaling errors
		if strings.Contains(err.Error(), "unsupported 'Body' type/value") {
			return nil, fmt.Errorf("failed to prepare POST payload: %w", err)
		}
		return nil, fmt.Errorf("failed to execute POST request: %w", err)
	}
	return resp.RawResponse, nil
}

// SetRateLimit allows configuring the rate limiter after creation.
func (a *Adapter) SetRateLimit(requestsPerSecond float64, burst int) {
	a.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
}
