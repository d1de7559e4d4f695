// Package memory contains in-process implementations of the persistence
// layer. The memory record repository is both the default local backend
// and the test fake: the provenance store contract is a per-identity
// last-write-wins map, which is exactly what this is.
package memory

import (
	"context"
	"sync"

	"truetrace/internal/domain/entity"
	"truetrace/internal/domain/repository"
)

type recordRepository struct {
	mu      sync.RWMutex
	records map[string]entity.ProvenanceRecord
}

// NewRecordRepository creates an empty in-memory provenance store.
func NewRecordRepository() repository.RecordRepository {
	return &recordRepository{
		records: make(map[string]entity.ProvenanceRecord),
	}
}

// Save upserts the record for its product identity. Last write wins.
func (repo *recordRepository) Save(_ context.Context, record *entity.ProvenanceRecord) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	repo.records[record.ProductID] = *record

	return nil
}

// FindByProduct retrieves the latest record for a product identity. A get
// racing a concurrent save for the same identity resolves to
// ErrRecordNotFound, never blocks: "no record yet" is a normal outcome.
func (repo *recordRepository) FindByProduct(_ context.Context, productID string) (*entity.ProvenanceRecord, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	record, ok := repo.records[productID]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}

	return &record, nil
}
