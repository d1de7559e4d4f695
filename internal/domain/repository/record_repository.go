// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"truetrace/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrRecordNotFound is returned when no provenance record exists for a
// product identity. Expected absence, distinct from I/O failure: a retailer
// acting before the manufacturer is a normal outcome, not an error in the
// store.
var ErrRecordNotFound = errors.New("provenance record not found")

// RecordRepository is the provenance store: the latest custody record per
// product identity, kept so the next step in the chain can build on it.
// Full commitment history is the registry's job, not this store's.
type RecordRepository interface {
	// Save upserts the record for its product identity. Last write wins;
	// prior records for the identity are not retained here.
	Save(ctx context.Context, record *entity.ProvenanceRecord) error

	// FindByProduct retrieves the latest record for a product identity,
	// or ErrRecordNotFound.
	FindByProduct(ctx context.Context, productID string) (*entity.ProvenanceRecord, error)
}
