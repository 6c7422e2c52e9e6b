// Package crm files submissions as leads in a Kommo pipeline.
package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tgiagency/quote-funnel/internal/entity"
)

var errNoContact = errors.New("crm: contact not found")

type Config struct {
	BaseURL  string
	Token    string
	StatusID int
	Timeout  time.Duration
}

// Client creates one lead per submission, attached to a contact found by
// phone number or created on the spot.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *zap.Logger
}

func NewClient(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{cfg: cfg, http: &http.Client{Timeout: cfg.Timeout}, logger: logger}
}

type lead struct {
	Name  string
	Tag   string
	Phone string
	Email string
	Who   string
}

func (c *Client) NotifyQuote(ctx context.Context, q *entity.QuoteSubmission) error {
	product := q.InsuranceType
	if p, ok := entity.LookupProduct(q.InsuranceType); ok {
		product = p.Label
	}
	return c.createLead(ctx, lead{
		Name:  fmt.Sprintf("%s - %s", q.FullName(), product),
		Tag:   "quote_" + q.InsuranceType,
		Phone: q.Phone,
		Email: q.Email,
		Who:   q.FullName(),
	})
}

func (c *Client) NotifyContact(ctx context.Context, m *entity.ContactMessage) error {
	return c.createLead(ctx, lead{
		Name:  fmt.Sprintf("%s - Contact Form", m.Name),
		Tag:   "contact_form",
		Phone: m.Phone,
		Email: m.Email,
		Who:   m.Name,
	})
}

func (c *Client) createLead(ctx context.Context, l lead) error {
	contactID, err := c.findContact(ctx, l.Phone)
	if errors.Is(err, errNoContact) {
		contactID, err = c.createContact(ctx, l)
	}
	if err != nil {
		return err
	}

	body := []map[string]any{{
		"name":      l.Name,
		"status_id": c.cfg.StatusID,
		"_embedded": map[string]any{
			"tags":     []map[string]any{{"name": l.Tag}},
			"contacts": []map[string]any{{"id": contactID}},
		},
	}}
	var out embedded
	if err := c.do(ctx, http.MethodPost, "/leads", body, &out); err != nil {
		return fmt.Errorf("crm: create lead: %w", err)
	}
	if len(out.Embedded.Leads) == 0 {
		return errors.New("crm: create lead: empty response")
	}
	c.logger.Info("crm lead created", zap.Int("lead_id", out.Embedded.Leads[0].ID), zap.Int("contact_id", contactID))
	return nil
}

func (c *Client) findContact(ctx context.Context, phone string) (int, error) {
	var out embedded
	if err := c.do(ctx, http.MethodGet, "/contacts?query="+url.QueryEscape(phone), nil, &out); err != nil {
		return 0, fmt.Errorf("crm: find contact: %w", err)
	}
	if len(out.Embedded.Contacts) == 0 {
		return 0, errNoContact
	}
	return out.Embedded.Contacts[0].ID, nil
}

func (c *Client) createContact(ctx context.Context, l lead) (int, error) {
	body := []map[string]any{{
		"name": l.Who,
		"custom_fields_values": []map[string]any{
			{"field_code": "PHONE", "values": []map[string]any{{"value": l.Phone, "enum_code": "WORK"}}},
			{"field_code": "EMAIL", "values": []map[string]any{{"value": l.Email, "enum_code": "WORK"}}},
		},
	}}
	var out embedded
	if err := c.do(ctx, http.MethodPost, "/contacts", body, &out); err != nil {
		return 0, fmt.Errorf("crm: create contact: %w", err)
	}
	if len(out.Embedded.Contacts) == 0 {
		return 0, errors.New("crm: create contact: empty response")
	}
	return out.Embedded.Contacts[0].ID, nil
}

type embedded struct {
	Embedded struct {
		Leads []struct {
			ID int `json:"id"`
		} `json:"leads"`
		Contacts []struct {
			ID int `json:"id"`
		} `json:"contacts"`
	} `json:"_embedded"`
}

// do sends body as JSON and decodes the answer into out. Kommo answers an
// empty search with 204.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		r = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, r)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
