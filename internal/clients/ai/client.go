// Package ai adapts the external text-generation and voice-synthesis vendors.
// Both calls are plain request/response HTTP with bounded
// exponential-backoff-plus-jitter retries; callers fall back to static
// content when all attempts fail.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// GenerateRequest is the input to the text-generation vendor.
type GenerateRequest struct {
	Emotion  string `json:"emotion"`
	Context  string `json:"context,omitempty"`
	Language string `json:"language"`
}

// GenerateResponse is the text-generation vendor output.
type GenerateResponse struct {
	Reference       string `json:"reference"`
	Text            string `json:"text"`
	Version         string `json:"version"`
	MeditationGuide string `json:"meditationGuide"`
}

// SynthesizeRequest is the input to the voice-synthesis vendor.
type SynthesizeRequest struct {
	Text    string `json:"text"`
	VoiceID string `json:"voiceId"`
}

// SynthesizeResponse is the voice-synthesis vendor output.
type SynthesizeResponse struct {
	AudioURL        string `json:"audioUrl"`
	DurationSeconds int    `json:"durationSeconds"`
}

// Client calls both AI vendors. The zero value is unusable; use NewClient.
type Client struct {
	httpClient *http.Client
	textURL    string
	textKey    string
	voiceURL   string
	voiceKey   string
	maxRetries int
	log        *slog.Logger
}

const (
	initialBackoff = 500 * time.Millisecond
	maxBackoff     = 8 * time.Second
)

// NewClient builds a vendor client. maxRetries bounds the retry count per
// call (attempts = maxRetries + 1).
func NewClient(textURL, textKey, voiceURL, voiceKey string, maxRetries int, requestTimeout time.Duration, log *slog.Logger) *Client {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		textURL:    textURL,
		textKey:    textKey,
		voiceURL:   voiceURL,
		voiceKey:   voiceKey,
		maxRetries: maxRetries,
		log:        log,
	}
}

// Generate requests a guided meditation for an emotion.
func (c *Client) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, error) {
	out := GenerateResponse{}
	if c.textURL == "" {
		return out, &VendorError{Category: CategoryAPI, Err: fmt.Errorf("text vendor not configured")}
	}
	err := c.doWithRetry(ctx, c.textURL, c.textKey, req, &out)
	if err != nil {
		return GenerateResponse{}, err
	}
	if out.Text == "" || out.Reference == "" {
		// The vendor answered but the payload is unusable.
		return GenerateResponse{}, &VendorError{Category: CategoryGeneration, Err: fmt.Errorf("vendor returned empty meditation content")}
	}
	return out, nil
}

// Synthesize requests audio for previously generated meditation text.
func (c *Client) Synthesize(ctx context.Context, req SynthesizeRequest) (SynthesizeResponse, error) {
	out := SynthesizeResponse{}
	if c.voiceURL == "" {
		return out, &VendorError{Category: CategoryAPI, Err: fmt.Errorf("voice vendor not configured")}
	}
	err := c.doWithRetry(ctx, c.voiceURL, c.voiceKey, req, &out)
	if err != nil {
		return SynthesizeResponse{}, err
	}
	if out.AudioURL == "" {
		return SynthesizeResponse{}, &VendorError{Category: CategoryGeneration, Err: fmt.Errorf("vendor returned no audio URL")}
	}
	return out, nil
}

// doWithRetry posts the request, retrying transient failures with
// exponential backoff and jitter up to maxRetries additional attempts.
func (c *Client) doWithRetry(ctx context.Context, url, apiKey string, payload any, out any) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = initialBackoff
	policy.MaxInterval = maxBackoff

	attempt := 0
	operation := func() error {
		attempt++
		err := c.doOnce(ctx, url, apiKey, payload, out)
		if err == nil {
			return nil
		}
		vendorErr := classify(err)
		if !vendorErr.Retryable() {
			return backoff.Permanent(vendorErr)
		}
		if c.log != nil {
			c.log.Warn("AI vendor call failed, will retry",
				slog.Int("attempt", attempt),
				slog.String("category", string(vendorErr.Category)),
				slog.String("error", vendorErr.Error()))
		}
		return vendorErr
	}

	err := backoff.Retry(operation,
		backoff.WithContext(backoff.WithMaxRetries(policy, uint64(c.maxRetries)), ctx))
	if err != nil {
		return classify(err)
	}
	return nil
}

func (c *Client) doOnce(ctx context.Context, url, apiKey string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return &VendorError{Category: CategoryUnknown, Err: fmt.Errorf("marshal request: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return &VendorError{Category: CategoryUnknown, Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return classify(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return classifyStatus(resp.StatusCode, fmt.Errorf("vendor responded %d: %s", resp.StatusCode, snippet))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &VendorError{Category: CategoryGeneration, Err: fmt.Errorf("decode vendor response: %w", err)}
	}
	return nil
}
