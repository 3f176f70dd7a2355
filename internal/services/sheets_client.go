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

// SheetsClient mirrors domain events to a spreadsheet bridge service
// that appends one row per event. Best-effort observer like the webhook.
type SheetsClient struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

func NewSheetsClient(baseURL string, timeout time.Duration, log *zap.Logger) *SheetsClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &SheetsClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

func (c *SheetsClient) Name() string { return "sheets-mirror" }

func (c *SheetsClient) Notify(ctx context.Context, event events.Event) error {
	if c.baseURL == "" {
		return nil // not configured, nothing to do
	}

	body, err := json.Marshal(map[string]any{
		"sheet":     event.Type,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"row":       event.Payload,
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/internal/rows", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(string(body)))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sheets bridge unavailable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("sheets bridge returned %d: %s", resp.StatusCode, string(b))
	}
	return nil
}
