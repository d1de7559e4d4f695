// Package service defines interfaces for infrastructure services consumed
// by the use case layer.
package service

import (
	"context"

	"truetrace/internal/domain/entity"

	"github.com/pkg/errors"
)

var (
	// ErrSlotEmpty is returned by Read when no commitment has ever been
	// written for a slot. Distinct from "commitment exists but differs".
	ErrSlotEmpty = errors.New("no commitment registered for slot")

	// ErrRegistryUnavailable is returned when the backing ledger rejected
	// the operation or was unreachable. Retryable; absent a receipt the
	// caller must not assume the write happened.
	ErrRegistryUnavailable = errors.New("commitment registry unavailable")
)

// CommitmentRegistry is the append-only ledger binding a slot to its latest
// commitment. Register must not return until the write is durable and
// visible to every subsequent Read; partial completion is never reported
// as success.
type CommitmentRegistry interface {
	// Register appends a commitment for a slot and returns a distinct
	// receipt, even when re-registering an unchanged commitment.
	Register(ctx context.Context, slot entity.Slot, commitment string, writer string) (*entity.WriteReceipt, error)

	// Read returns the latest commitment for a slot, or ErrSlotEmpty.
	Read(ctx context.Context, slot entity.Slot) (string, error)
}
