package notify

import (
	"context"
	"sync"
	"time"
)

// RetryConfig holds retry settings for webhook delivery.
type RetryConfig struct {
	MaxRetries int           // retries after the first attempt (default 3)
	Initial    time.Duration // first backoff delay (default 1s)
	Max        time.Duration // backoff cap (default 30s)
}

// DefaultRetryConfig returns the default retry schedule: 3 retries starting
// at 1 second, doubling, capped at 30 seconds.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 3,
		Initial:    time.Second,
		Max:        30 * time.Second,
	}
}

// RetryingSender wraps a Sender with exponential-backoff retries. Safe for
// concurrent use.
type RetryingSender struct {
	sender *Sender
	config RetryConfig
}

// NewRetryingSender wraps the given sender with the retry configuration.
func NewRetryingSender(sender *Sender, config RetryConfig) *RetryingSender {
	if config.MaxRetries <= 0 {
		config.MaxRetries = 3
	}
	if config.Initial <= 0 {
		config.Initial = time.Second
	}
	if config.Max <= 0 {
		config.Max = 30 * time.Second
	}
	return &RetryingSender{sender: sender, config: config}
}

// Send delivers with retries. Retryable failures are 5xx, 408, 429 and
// connection errors; other 4xx responses stop immediately.
func (r *RetryingSender) Send(ctx context.Context, target Target, payload []byte) DeliveryResult {
	var result DeliveryResult
	retries := 0

	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				result.ErrorMessage = "context cancelled during backoff"
				result.Success = false
				result.Retries = retries
				return result
			case <-time.After(backoff(attempt-1, r.config.Initial, r.config.Max)):
			}
			retries++
		}

		result = r.sender.Send(ctx, target, payload)
		result.Retries = retries

		if result.Success || !isRetryable(result) {
			return result
		}
	}

	return result
}

// SendAll delivers to all targets concurrently, each with its own retry
// chain. Results are returned in target order.
func (r *RetryingSender) SendAll(ctx context.Context, targets []Target, payload []byte) []DeliveryResult {
	results := make([]DeliveryResult, len(targets))

	var wg sync.WaitGroup
	for i, target := range targets {
		wg.Add(1)
		go func(index int, t Target) {
			defer wg.Done()
			results[index] = r.Send(ctx, t, payload)
		}(i, target)
	}
	wg.Wait()

	return results
}

// backoff returns initial * 2^attempt, capped at max.
func backoff(attempt int, initial, max time.Duration) time.Duration {
	d := initial
	for i := 0; i < attempt; i++ {
		d *= 2
		if d >= max {
			return max
		}
	}
	return d
}

// isRetryable reports whether a failed result is worth another attempt.
func isRetryable(result DeliveryResult) bool {
	if result.Success {
		return false
	}
	// Connection errors carry no status code.
	if result.StatusCode == 0 && result.ErrorMessage != "" {
		return true
	}
	if result.StatusCode == 408 || result.StatusCode == 429 {
		return true
	}
	return result.StatusCode >= 500 && result.StatusCode < 600
}
