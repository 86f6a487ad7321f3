// Package similarity is the HTTP client for the product recommendation model
// service. Prediction reads retry with exponential backoff because the model
// service scales to zero and cold starts; training writes do not retry — the
// feed is best effort and the next order trains again anyway.
package similarity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jcmexdev/storefront/internal/core/domain/vo"
	"github.com/jcmexdev/storefront/internal/core/ports"
)

var _ ports.SimilarityGateway = (*Client)(nil)

// RetryConfig tunes the backoff applied to Predict calls.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Multiplier  float64
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   100 * time.Millisecond,
		MaxDelay:    5 * time.Second,
		Multiplier:  2.0,
	}
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	retry      RetryConfig
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		retry:      DefaultRetryConfig(),
	}
}

type predictResponse struct {
	ProductIDs []string `json:"product_ids"`
}

// Predict returns the ids of products similar to productID.
func (c *Client) Predict(ctx context.Context, productID vo.ID) ([]vo.ID, error) {
	url := fmt.Sprintf("%s/similarity/%s", c.baseURL, productID)

	resp, err := retryWithBackoff(ctx, c.retry, func() (predictResponse, error) {
		return c.getPrediction(ctx, url)
	})
	if err != nil {
		return nil, err
	}

	ids := make([]vo.ID, 0, len(resp.ProductIDs))
	for _, raw := range resp.ProductIDs {
		ids = append(ids, vo.ID(raw))
	}
	return ids, nil
}

func (c *Client) getPrediction(ctx context.Context, url string) (predictResponse, error) {
	var out predictResponse

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return out, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return out, fmt.Errorf("similarity: predict returned %d: %s", resp.StatusCode, snippet)
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, fmt.Errorf("similarity: decode prediction: %w", err)
	}
	return out, nil
}

// Train posts sold line items to the model's training endpoint.
func (c *Client) Train(ctx context.Context, samples []ports.TrainingSample) error {
	if len(samples) == 0 {
		return nil
	}
	body, err := json.Marshal(map[string]any{"samples": samples})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/similarity/train", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("similarity: train: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("similarity: train returned %d: %s", resp.StatusCode, snippet)
	}
	return nil
}

// retryWithBackoff runs fn with exponential backoff. Retrying stops early
// when the context is cancelled.
func retryWithBackoff[T any](ctx context.Context, cfg RetryConfig, fn func() (T, error)) (T, error) {
	var (
		lastErr error
		zero    T
	)
	backoff := cfg.BaseDelay

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return zero, ctx.Err()
		}
		if attempt < cfg.MaxAttempts-1 {
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(backoff):
				backoff = time.Duration(float64(backoff) * cfg.Multiplier)
				if backoff > cfg.MaxDelay {
					backoff = cfg.MaxDelay
				}
			}
		}
	}
	return zero, lastErr
}
