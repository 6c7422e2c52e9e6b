package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v3"

	"github.com/tgiagency/quote-funnel/internal/entity"
)

// StorageKey is where the draft lives in the key/value store.
const StorageKey = "quote-storage"

type persisted struct {
	FormData entity.QuoteDraft `json:"formData"`
}

// BadgerPersister keeps the draft in a local Badger database.
type BadgerPersister struct {
	db *badger.DB
}

// OpenBadger opens (or creates) the database in dir.
func OpenBadger(dir string) (*BadgerPersister, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open draft store: %w", err)
	}
	return &BadgerPersister{db: db}, nil
}

// OpenBadgerInMemory is for tests and throwaway sessions.
func OpenBadgerInMemory() (*BadgerPersister, error) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("open draft store: %w", err)
	}
	return &BadgerPersister{db: db}, nil
}

func (b *BadgerPersister) Load(_ context.Context) (entity.QuoteDraft, bool, error) {
	var raw []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(StorageKey))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return entity.QuoteDraft{}, false, nil
	}
	if err != nil {
		return entity.QuoteDraft{}, false, err
	}

	var p persisted
	if err := json.Unmarshal(raw, &p); err != nil {
		return entity.QuoteDraft{}, false, fmt.Errorf("decode draft: %w", err)
	}
	return p.FormData, true, nil
}

func (b *BadgerPersister) Save(_ context.Context, d entity.QuoteDraft) error {
	raw, err := json.Marshal(persisted{FormData: d})
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(StorageKey), raw)
	})
}

func (b *BadgerPersister) Close() error {
	return b.db.Close()
}

// MemoryPersister keeps the draft for the life of the process.
type MemoryPersister struct {
	mu    sync.Mutex
	draft *entity.QuoteDraft
}

func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{}
}

func (m *MemoryPersister) Load(context.Context) (entity.QuoteDraft, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.draft == nil {
		return entity.QuoteDraft{}, false, nil
	}
	return *m.draft, true, nil
}

func (m *MemoryPersister) Save(_ context.Context, d entity.QuoteDraft) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.draft = &d
	return nil
}
