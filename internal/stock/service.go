package stock

import (
	"sync"

	"github.com/susu3304/stockbot/internal/metrics"
)

// LedgerStore is the persistence contract the service needs. Implemented by
// the file store.
type LedgerStore interface {
	Load(Category) (*Ledger, error)
	Save(Category, *Ledger) error
}

// Service applies movements against persisted ledgers. Writes for the same
// category are serialized through a per-category mutex so two concurrent
// submissions cannot lose an update between load and save.
type Service struct {
	store LedgerStore
	locks map[Category]*sync.Mutex
}

func NewService(store LedgerStore) *Service {
	locks := make(map[Category]*sync.Mutex, len(Categories()))
	for _, c := range Categories() {
		locks[c] = &sync.Mutex{}
	}
	return &Service{store: store, locks: locks}
}

// Register loads the category ledger, applies the movement and saves the
// result. The returned ledger reflects the persisted state. If the save
// fails the mutation is discarded with it: nothing was persisted and the
// caller must not republish summaries.
func (s *Service) Register(m Movement) (*Ledger, error) {
	mu := s.locks[m.Category]
	mu.Lock()
	defer mu.Unlock()

	ledger, err := s.store.Load(m.Category)
	if err != nil {
		return nil, err
	}
	ledger.Apply(m)
	if err := s.store.Save(m.Category, ledger); err != nil {
		return nil, err
	}
	metrics.MovementsApplied.WithLabelValues(string(m.Category), string(m.Direction)).Inc()
	return ledger, nil
}
