package wizard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/tgiagency/quote-funnel/internal/entity"
	"github.com/tgiagency/quote-funnel/internal/schema"
)

const defaultSubmitError = "Failed to submit quote request. Please try again."

// SubmitError is a rejected submission as the gateway described it.
type SubmitError struct {
	Status     int
	Message    string
	Details    schema.Errors
	RetryAfter time.Duration
}

func (e *SubmitError) Error() string {
	if e.Message == "" {
		return defaultSubmitError
	}
	return e.Message
}

// Client posts drafts to the submission gateway.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type gatewayResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Error   string        `json:"error"`
	Details schema.Errors `json:"details"`
	Data    struct {
		ID string `json:"id"`
	} `json:"data"`
}

// SubmitQuote returns the id the gateway assigned. Any non-2xx answer comes
// back as *SubmitError; transport failures are wrapped as they are.
func (c *Client) SubmitQuote(ctx context.Context, d entity.QuoteDraft) (string, error) {
	body, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("encode quote: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/quotes", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("submit quote: %w", err)
	}
	defer resp.Body.Close()

	var out gatewayResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&out)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		se := &SubmitError{Status: resp.StatusCode, Message: out.Error, Details: out.Details}
		if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil {
			se.RetryAfter = time.Duration(secs) * time.Second
		}
		return "", se
	}
	if decodeErr != nil {
		return "", fmt.Errorf("decode response: %w", decodeErr)
	}
	return out.Data.ID, nil
}
