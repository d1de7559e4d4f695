// Package registry contains the commitment registry backends. Both keep
// the same contract: append-only writes, read resolves to the latest
// commitment for a slot, and a successful Register is durable and visible
// before it returns.
package registry

import (
	"context"
	"sync"
	"time"

	"truetrace/internal/domain/entity"
	"truetrace/internal/domain/service"

	"github.com/google/uuid"
)

// memoryRegistry is the in-process ledger. Single writer by construction
// (one mutex guards the whole ledger), which is the storage-boundary
// assumption the protocol makes anyway.
type memoryRegistry struct {
	mu       sync.Mutex
	entries  map[entity.Slot][]entity.RegistryEntry
	sequence uint64
}

// NewMemoryRegistry creates an empty in-memory commitment registry.
func NewMemoryRegistry() service.CommitmentRegistry {
	return &memoryRegistry{
		entries: make(map[entity.Slot][]entity.RegistryEntry),
	}
}

// Register appends a commitment for a slot. Re-registering the same
// commitment is harmless but still produces a fresh receipt and sequence
// number; callers needing request-level deduplication track receipts
// themselves.
func (r *memoryRegistry) Register(_ context.Context, slot entity.Slot, commitment string, writer string) (*entity.WriteReceipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sequence++
	entry := entity.RegistryEntry{
		Slot:       slot,
		Commitment: commitment,
		Writer:     writer,
		Sequence:   r.sequence,
		RecordedAt: time.Now().UTC(),
	}
	r.entries[slot] = append(r.entries[slot], entry)

	return &entity.WriteReceipt{
		ReceiptID:  uuid.New(),
		Slot:       slot,
		Commitment: commitment,
		Writer:     writer,
		Sequence:   entry.Sequence,
		RecordedAt: entry.RecordedAt,
	}, nil
}

// Read returns the latest commitment for a slot.
func (r *memoryRegistry) Read(_ context.Context, slot entity.Slot) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	history := r.entries[slot]
	if len(history) == 0 {
		return "", service.ErrSlotEmpty
	}

	return history[len(history)-1].Commitment, nil
}
