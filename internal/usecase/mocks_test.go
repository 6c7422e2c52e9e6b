package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/tgiagency/quote-funnel/internal/entity"
)

// MockQuoteRepository
type MockQuoteRepository struct {
	mock.Mock
}

func (m *MockQuoteRepository) Create(ctx context.Context, q *entity.QuoteSubmission) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

// MockContactRepository
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) Create(ctx context.Context, c *entity.ContactMessage) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

// MockNotifier implements both notifier ports.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyQuote(ctx context.Context, q *entity.QuoteSubmission) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockNotifier) NotifyContact(ctx context.Context, c *entity.ContactMessage) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type fixedID string

func (f fixedID) NewID() string { return string(f) }
