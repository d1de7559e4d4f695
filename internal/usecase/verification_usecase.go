package usecase

import (
	"context"

	"truetrace/internal/domain/entity"
)

// VerificationUsecase defines the interface for checking payload text
// against the commitment registry.
type VerificationUsecase interface {
	// Verify recomputes the commitment of payloadText and compares it with
	// the commitment registered at slot.
	Verify(ctx context.Context, slot entity.Slot, payloadText string) (*entity.VerificationResult, error)

	// VerifyProduct derives the slot from the product identity and verifies
	// against it.
	VerifyProduct(ctx context.Context, productID string, payloadText string) (*entity.VerificationResult, error)

	// ReadRegistry returns the latest commitment at slot. registered is
	// false when the slot has never been written; that is not an error.
	ReadRegistry(ctx context.Context, slot entity.Slot) (commitment string, registered bool, err error)
}
