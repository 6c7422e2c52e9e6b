// Package webhook posts new quotes to an external receiver such as a CRM
// automation.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/tgiagency/quote-funnel/internal/entity"
)

const EventQuoteSubmitted = "quote_submitted"

type Payload struct {
	Event     string                  `json:"event"`
	Timestamp time.Time               `json:"timestamp"`
	Data      *entity.QuoteSubmission `json:"data"`
}

type Client struct {
	url  string
	http *http.Client
	now  func() time.Time
}

func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		url:  url,
		http: &http.Client{Timeout: timeout},
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// NotifyQuote delivers one quote_submitted event. Any non-2xx answer is an
// error; there are no retries.
func (c *Client) NotifyQuote(ctx context.Context, q *entity.QuoteSubmission) error {
	body, err := json.Marshal(Payload{Event: EventQuoteSubmitted, Timestamp: c.now(), Data: q})
	if err != nil {
		return fmt.Errorf("encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Delivery-ID", ulid.Make().String())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook answered %d", resp.StatusCode)
	}
	return nil
}
