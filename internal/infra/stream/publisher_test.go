package stream

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tgiagency/quote-funnel/internal/entity"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.msgs = append(f.msgs, msgs...)
	return f.err
}

func (f *fakeWriter) Close() error { return nil }

func TestPublishQuote(t *testing.T) {
	w := &fakeWriter{}
	p := &Publisher{writer: w}
	at := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, p.NotifyQuote(context.Background(), &entity.QuoteSubmission{ID: "q-1", ReceivedAt: at, InsuranceType: "life"}))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "q-1", string(w.msgs[0].Key))

	var ev struct {
		Event string                 `json:"event"`
		Data  entity.QuoteSubmission `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &ev))
	assert.Equal(t, EventQuoteSubmitted, ev.Event)
	assert.Equal(t, "life", ev.Data.InsuranceType)
}

func TestPublishContactError(t *testing.T) {
	p := &Publisher{writer: &fakeWriter{err: errors.New("leader not available")}}
	err := p.NotifyContact(context.Background(), &entity.ContactMessage{ID: "c-1"})
	assert.ErrorContains(t, err, "leader not available")
}
