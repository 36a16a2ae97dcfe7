package notify

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// DeliveryResult records the outcome of a single delivery attempt chain.
type DeliveryResult struct {
	URL          string        // target URL
	StatusCode   int           // HTTP status (0 if the request never completed)
	Success      bool          // true on a 2xx response
	ErrorMessage string        // error description on failure
	ResponseTime time.Duration // duration of the last attempt
	Retries      int           // number of retries performed after the first attempt
}

// Sender posts signed JSON payloads to webhook targets. It is safe for
// concurrent use.
type Sender struct {
	client *http.Client
}

// SenderOption configures the Sender.
type SenderOption func(*http.Client)

// WithTimeout sets the per-request timeout. Default is 10 seconds.
func WithTimeout(d time.Duration) SenderOption {
	return func(c *http.Client) {
		c.Timeout = d
	}
}

// NewSender creates a webhook sender.
func NewSender(opts ...SenderOption) *Sender {
	client := &http.Client{Timeout: 10 * time.Second}
	for _, opt := range opts {
		opt(client)
	}
	return &Sender{client: client}
}

// Send posts the payload to a single target. The request carries an
// HMAC-SHA256 signature in X-Signature-256 for receiver-side verification.
// Success is a 2xx response.
func (s *Sender) Send(ctx context.Context, target Target, payload []byte) DeliveryResult {
	start := time.Now()
	result := DeliveryResult{URL: target.URL}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.URL, bytes.NewReader(payload))
	if err != nil {
		result.ErrorMessage = fmt.Sprintf("failed to create request: %v", err)
		result.ResponseTime = time.Since(start)
		return result
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Signature-256", Sign(target.Secret, payload))
	req.Header.Set("User-Agent", "forno/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		result.ErrorMessage = fmt.Sprintf("request failed: %v", err)
		result.ResponseTime = time.Since(start)
		return result
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode
	result.Success = resp.StatusCode >= 200 && resp.StatusCode < 300
	result.ResponseTime = time.Since(start)

	if !result.Success {
		result.ErrorMessage = fmt.Sprintf("unexpected status: %d", resp.StatusCode)
	}

	return result
}

// SendAll posts the payload to all targets concurrently. Results are
// returned in target order.
func (s *Sender) SendAll(ctx context.Context, targets []Target, payload []byte) []DeliveryResult {
	results := make([]DeliveryResult, len(targets))

	var wg sync.WaitGroup
	for i, target := range targets {
		wg.Add(1)
		go func(index int, t Target) {
			defer wg.Done()
			results[index] = s.Send(ctx, t, payload)
		}(i, target)
	}
	wg.Wait()

	return results
}
