// Package mail emails staff about new quotes and contact messages.
package mail

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html"
	"strings"
	"text/template"
	"time"
	_ "time/tzdata"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/tgiagency/quote-funnel/internal/entity"
)

//go:embed templates/*.txt
var templateFS embed.FS

const submittedLayout = "1/2/2006, 3:04:05 PM"

type dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailSender struct {
	cfg      Config
	dialer   dialer
	location *time.Location
	tmpl     *template.Template
	logger   *zap.Logger
}

// NewEmailSender builds a sender for cfg. With no SMTP host configured every
// send is skipped with a warning.
func NewEmailSender(cfg Config, logger *zap.Logger) (*EmailSender, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	loc, err := time.LoadLocation("America/Chicago")
	if err != nil {
		loc = time.UTC
	}
	s := &EmailSender{cfg: cfg, location: loc, logger: logger}
	if cfg.Host != "" {
		s.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
	}

	s.tmpl, err = template.New("mail").Funcs(template.FuncMap{
		"submitted": func(t time.Time) string { return t.In(s.location).Format(submittedLayout) },
	}).ParseFS(templateFS, "templates/*.txt")
	if err != nil {
		return nil, fmt.Errorf("parse email templates: %w", err)
	}
	return s, nil
}

func (s *EmailSender) Enabled() bool {
	return s.dialer != nil
}

func (s *EmailSender) NotifyQuote(ctx context.Context, q *entity.QuoteSubmission) error {
	subject := fmt.Sprintf("New %s Quote Request - %s %s", q.InsuranceType, q.FirstName, q.LastName)
	return s.send(ctx, "quote.txt", q, q.Email, subject)
}

func (s *EmailSender) NotifyContact(ctx context.Context, m *entity.ContactMessage) error {
	subject := fmt.Sprintf("New Contact Form Submission - %s", m.Name)
	return s.send(ctx, "contact.txt", m, m.Email, subject)
}

func (s *EmailSender) send(ctx context.Context, tmpl string, data any, replyTo, subject string) error {
	if !s.Enabled() {
		s.logger.Warn("SMTP not configured, skipping email notification", zap.String("subject", subject))
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var body bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&body, tmpl, data); err != nil {
		return fmt.Errorf("render %s: %w", tmpl, err)
	}
	text := strings.TrimSpace(body.String())

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.cfg.From, s.cfg.FromName)
	m.SetHeader("To", s.cfg.To)
	m.SetHeader("Reply-To", replyTo)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", text)
	m.AddAlternative("text/html", strings.ReplaceAll(html.EscapeString(text), "\n", "<br>"))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send email via SMTP: %w", err)
	}
	s.logger.Info("notification email sent", zap.String("to", s.cfg.To), zap.String("subject", subject))
	return nil
}
