// Package wizard holds the client side of the quote funnel: the draft state
// store, its persistence, the step flow and the gateway client.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/tgiagency/quote-funnel/internal/entity"
	"github.com/tgiagency/quote-funnel/internal/schema"
)

var ErrStepOutOfRange = errors.New("wizard: step out of range")

// State is a snapshot of the wizard. Only Draft survives a restart.
type State struct {
	CurrentStep int
	IsModalOpen bool
	Draft       entity.QuoteDraft
}

// Persister keeps the draft between sessions.
type Persister interface {
	Load(ctx context.Context) (entity.QuoteDraft, bool, error)
	Save(ctx context.Context, d entity.QuoteDraft) error
}

// Store is the single writer of wizard state. Every draft mutation is saved
// before the call returns.
type Store struct {
	mu        sync.Mutex
	state     State
	persister Persister
	logger    *zap.Logger
}

func NewStore(p Persister, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if p == nil {
		p = NewMemoryPersister()
	}
	return &Store{
		state:     State{CurrentStep: schema.StepProduct},
		persister: p,
		logger:    logger,
	}
}

// Load restores the persisted draft. Step and modal visibility start over.
func (s *Store) Load(ctx context.Context) error {
	d, ok, err := s.persister.Load(ctx)
	if err != nil {
		return fmt.Errorf("load draft: %w", err)
	}
	if !ok {
		return nil
	}
	s.mu.Lock()
	s.state.Draft = d
	s.mu.Unlock()
	return nil
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Store) OpenModal() {
	s.mu.Lock()
	s.state.IsModalOpen = true
	s.mu.Unlock()
}

// CloseModal hides the wizard and keeps the draft.
func (s *Store) CloseModal() {
	s.mu.Lock()
	s.state.IsModalOpen = false
	s.mu.Unlock()
}

func (s *Store) SetCurrentStep(n int) error {
	if n < schema.StepProduct || n > schema.StepCount {
		return fmt.Errorf("%w: %d", ErrStepOutOfRange, n)
	}
	s.mu.Lock()
	s.state.CurrentStep = n
	s.mu.Unlock()
	return nil
}

func (s *Store) NextStep() {
	s.mu.Lock()
	s.state.CurrentStep = min(s.state.CurrentStep+1, schema.StepCount)
	s.mu.Unlock()
}

func (s *Store) PrevStep() {
	s.mu.Lock()
	s.state.CurrentStep = max(s.state.CurrentStep-1, schema.StepProduct)
	s.mu.Unlock()
}

// UpdateFormData merges p into the draft. Fields p leaves nil keep their
// value. A failed save is returned but not rolled back: the in-memory draft
// keeps the change and the next successful save catches the disk up.
func (s *Store) UpdateFormData(ctx context.Context, p Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Draft = p.Apply(s.state.Draft)
	return s.save(ctx)
}

// ResetForm goes back to step 1 with an empty draft. Like UpdateFormData,
// the reset stands in memory even when the save fails.
func (s *Store) ResetForm(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.CurrentStep = schema.StepProduct
	s.state.Draft = entity.QuoteDraft{}
	return s.save(ctx)
}

func (s *Store) save(ctx context.Context) error {
	if err := s.persister.Save(ctx, s.state.Draft); err != nil {
		s.logger.Error("draft not persisted", zap.Error(err))
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}
