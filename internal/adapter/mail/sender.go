// Package mail implements the e-mail gateway. The production sender talks to
// a JSON-over-HTTP transactional mail provider; LogSender is the dev/test
// stand-in that only logs.
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/jcmexdev/storefront/internal/core/ports"
)

var (
	_ ports.EmailSender = (*ProviderClient)(nil)
	_ ports.EmailSender = (*LogSender)(nil)
)

// ProviderClient posts messages to the provider's /messages endpoint.
type ProviderClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewProviderClient(baseURL, apiKey string) *ProviderClient {
	return &ProviderClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type sendRequest struct {
	To        string         `json:"to"`
	Subject   string         `json:"subject"`
	Template  string         `json:"template"`
	Variables map[string]any `json:"variables,omitempty"`
}

func (c *ProviderClient) Send(ctx context.Context, to, subject, template string, content map[string]any) (ports.SendReceipt, error) {
	body, err := json.Marshal(sendRequest{To: to, Subject: subject, Template: template, Variables: content})
	if err != nil {
		return ports.SendReceipt{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/messages", bytes.NewReader(body))
	if err != nil {
		return ports.SendReceipt{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.SendReceipt{}, fmt.Errorf("mail: send to %s: %w", to, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return ports.SendReceipt{}, fmt.Errorf("mail: provider returned %d: %s", resp.StatusCode, snippet)
	}

	var receipt ports.SendReceipt
	if err := json.NewDecoder(resp.Body).Decode(&receipt); err != nil {
		return ports.SendReceipt{}, fmt.Errorf("mail: decode provider response: %w", err)
	}
	return receipt, nil
}

// LogSender records the message instead of delivering it.
type LogSender struct {
	log *slog.Logger
}

func NewLogSender(log *slog.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(ctx context.Context, to, subject, template string, content map[string]any) (ports.SendReceipt, error) {
	s.log.InfoContext(ctx, "e-mail (log only)", "to", to, "subject", subject, "template", template, "content", content)
	return ports.SendReceipt{MessageID: uuid.NewString(), Status: "logged"}, nil
}
