package mail

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/tgiagency/quote-funnel/internal/entity"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (f *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	f.sent = append(f.sent, m...)
	return f.err
}

func newTestSender(t *testing.T, d *fakeDialer) *EmailSender {
	t.Helper()
	s, err := NewEmailSender(Config{
		Host:     "smtp.example.com",
		Port:     587,
		From:     "noreply@tgiagency.com",
		FromName: "TGI Agency Website",
		To:       "quotes@tgiagency.com",
	}, nil)
	require.NoError(t, err)
	s.dialer = d
	return s
}

func rendered(t *testing.T, m *gomail.Message) string {
	t.Helper()
	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)
	return buf.String()
}

func TestNotifyQuote(t *testing.T) {
	d := &fakeDialer{}
	s := newTestSender(t, d)

	q := &entity.QuoteSubmission{
		ID:             "q-1",
		ReceivedAt:     time.Date(2026, 3, 1, 18, 30, 0, 0, time.UTC),
		InsuranceType:  "auto",
		FirstName:      "Ana",
		LastName:       "Bell",
		Email:          "ana@example.com",
		Phone:          "5551234567",
		Address:        "123 Main St",
		City:           "Austin",
		State:          "TX",
		ZipCode:        "78701",
		VehicleYear:    "2019",
		VehicleMake:    "Honda",
		VehicleModel:   "Civic",
		CoverageAmount: "100k",
	}
	require.NoError(t, s.NotifyQuote(context.Background(), q))
	require.Len(t, d.sent, 1)

	m := d.sent[0]
	assert.Equal(t, []string{"New auto Quote Request - Ana Bell"}, m.GetHeader("Subject"))
	assert.Equal(t, []string{"ana@example.com"}, m.GetHeader("Reply-To"))
	assert.Equal(t, []string{"quotes@tgiagency.com"}, m.GetHeader("To"))

	raw := rendered(t, m)
	assert.Contains(t, raw, "Vehicle: 2019 Honda Civic")
	assert.Contains(t, raw, "Coverage Amount: 100k")
	assert.NotContains(t, raw, "Deductible:")
	assert.Contains(t, raw, "Submitted: 3/1/2026, 12:30:00 PM")
}

func TestNotifyContact(t *testing.T) {
	d := &fakeDialer{}
	s := newTestSender(t, d)

	m := &entity.ContactMessage{ID: "c-1", Name: "Jo", Email: "jo@example.com", Phone: "5551234567", Message: "Please <call> me", ReceivedAt: time.Now()}
	require.NoError(t, s.NotifyContact(context.Background(), m))
	require.Len(t, d.sent, 1)
	assert.Equal(t, []string{"New Contact Form Submission - Jo"}, d.sent[0].GetHeader("Subject"))
	assert.Contains(t, rendered(t, d.sent[0]), "&lt;call&gt;")
}

func TestSendErrorIsReturned(t *testing.T) {
	s := newTestSender(t, &fakeDialer{err: errors.New("535 auth failed")})

	err := s.NotifyContact(context.Background(), &entity.ContactMessage{Name: "Jo", Email: "jo@example.com"})
	assert.ErrorContains(t, err, "535 auth failed")
}

func TestUnconfiguredSenderSkips(t *testing.T) {
	s, err := NewEmailSender(Config{To: "quotes@tgiagency.com"}, nil)
	require.NoError(t, err)

	assert.False(t, s.Enabled())
	assert.NoError(t, s.NotifyQuote(context.Background(), &entity.QuoteSubmission{}))
}
