package checker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	customerrors "github.com/axellelanca/refcheck/internal/errors"
	"github.com/axellelanca/refcheck/internal/logger"
	"github.com/axellelanca/refcheck/internal/metrics"
	"github.com/axellelanca/refcheck/internal/models"
)

// maxBodyBytes bounds how much of a status response is read.
const maxBodyBytes = 1 << 20

// HTTPChecker asks the status authority directly, retrying server and transport faults.
type HTTPChecker struct {
	httpClient *http.Client
	endpoint   string
	cookie     string
	maxRetries int           // total attempts, at least 1
	delay      time.Duration // backoff unit: attempt n waits n*delay before attempt n+1
	log        logger.Logger
	metrics    *metrics.Metrics
}

// HTTPOptions configures NewHTTPChecker.
type HTTPOptions struct {
	Endpoint   string
	Cookie     string
	MaxRetries int
	Delay      time.Duration
	Timeout    time.Duration
	Client     *http.Client // optional; overrides Timeout
}

// NewHTTPChecker creates and returns a new HTTPChecker.
func NewHTTPChecker(opts HTTPOptions, log logger.Logger, m *metrics.Metrics) *HTTPChecker {
	client := opts.Client
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	retries := opts.MaxRetries
	if retries < 1 {
		retries = 1
	}
	return &HTTPChecker{
		httpClient: client,
		endpoint:   opts.Endpoint,
		cookie:     opts.Cookie,
		maxRetries: retries,
		delay:      opts.Delay,
		log:        log,
		metrics:    m,
	}
}

type statusRequest struct {
	ReferralCode string `json:"referralCode"`
}

// Check resolves ref.Code. Server faults (5xx), transport faults and malformed
// bodies are retried up to maxRetries attempts; any other non-2xx status is final.
func (c *HTTPChecker) Check(ctx context.Context, ref models.Referral) models.Status {
	log := c.log.With(logger.String("code", ref.Code))

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		status, err := c.attempt(ctx, ref.Code)
		if err == nil {
			c.metrics.RecordAttempt(string(ModeHTTP), "ok")
			return status
		}

		var failed customerrors.ErrStatusCheckFailed
		retryable := errors.As(err, &failed) && failed.Retryable()
		c.metrics.RecordAttempt(string(ModeHTTP), outcomeOf(err))

		if !retryable {
			log.Warn("Status check rejected", logger.Err(err))
			return models.StatusUnknown
		}
		if attempt == c.maxRetries {
			log.Warn("Status check failed, giving up",
				logger.Int("attempts", attempt), logger.Err(err))
			break
		}

		backoff := time.Duration(attempt) * c.delay
		log.Warn("Status check failed, retrying",
			logger.Int("attempt", attempt), logger.Duration("backoff", backoff), logger.Err(err))
		if !sleep(ctx, backoff) {
			break
		}
	}
	return models.StatusUnknown
}

// attempt performs one exchange. A nil error means the response was classified.
func (c *HTTPChecker) attempt(ctx context.Context, code string) (models.Status, error) {
	payload, err := json.Marshal(statusRequest{ReferralCode: code})
	if err != nil {
		return models.StatusUnknown, customerrors.ErrStatusCheckFailed{Code: code, Reason: err.Error()}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		// A bad endpoint will not fix itself on retry.
		return models.StatusUnknown, customerrors.ErrStatusCheckFailed{Code: code, StatusCode: -1, Reason: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.StatusUnknown, customerrors.ErrStatusCheckFailed{Code: code, Reason: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return models.StatusUnknown, customerrors.ErrStatusCheckFailed{Code: code, Reason: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return models.StatusUnknown, customerrors.ErrStatusCheckFailed{
			Code:       code,
			StatusCode: resp.StatusCode,
			Reason:     http.StatusText(resp.StatusCode),
		}
	}

	status, err := ParseVerdict(body)
	if err != nil {
		return models.StatusUnknown, customerrors.ErrStatusCheckFailed{Code: code, Reason: err.Error(), Err: err}
	}
	return status, nil
}

func outcomeOf(err error) string {
	var failed customerrors.ErrStatusCheckFailed
	if !errors.As(err, &failed) {
		return "transport_fault"
	}
	switch {
	case failed.StatusCode >= 500:
		return "server_fault"
	case failed.StatusCode != 0:
		return "client_fault"
	case errors.Is(err, customerrors.ErrMalformedResponse):
		return "malformed"
	default:
		return "transport_fault"
	}
}

// sleep waits for d or until ctx is done, reporting whether the full wait elapsed.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}

var _ Checker = (*HTTPChecker)(nil)
