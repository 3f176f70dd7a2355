package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/staffdesk/backend/internal/events"
	"go.uber.org/zap"
)

// WebhookClient posts domain events to an external chat webhook
// (Discord-compatible JSON). It is always used as a best-effort
// observer: the fan-out logs and swallows its failures.
type WebhookClient struct {
	url        string
	httpClient *http.Client
	log        *zap.Logger
}

func NewWebhookClient(url string, timeout time.Duration, log *zap.Logger) *WebhookClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &WebhookClient{
		url:        strings.TrimRight(url, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

func (c *WebhookClient) Name() string { return "webhook" }

func (c *WebhookClient) Notify(ctx context.Context, event events.Event) error {
	if c.url == "" {
		return nil // not configured, nothing to do
	}

	body, err := json.Marshal(map[string]any{
		"content": fmt.Sprintf("event: %s", event.Type),
		"embeds": []map[string]any{
			{"title": event.Type, "fields": embedFields(event.Payload)},
		},
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, strings.NewReader(string(body)))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook unavailable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("webhook returned %d: %s", resp.StatusCode, string(b))
	}
	return nil
}

func embedFields(payload map[string]any) []map[string]any {
	fields := make([]map[string]any, 0, len(payload))
	for k, v := range payload {
		fields = append(fields, map[string]any{
			"name":   k,
			"value":  fmt.Sprintf("%v", v),
			"inline": true,
		})
	}
	return fields
}
