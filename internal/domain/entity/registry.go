package entity

import (
	"time"

	"github.com/google/uuid"
)

// RegistryEntry is one append-only ledger row: the commitment registered
// for a slot, who wrote it, and where it sits in the write sequence. A read
// for a slot always resolves to the entry with the highest sequence.
type RegistryEntry struct {
	Slot       Slot      `json:"slot"`
	Commitment string    `json:"commitment"`
	Writer     string    `json:"writer"` // audit attribution, not access control
	Sequence   uint64    `json:"sequence"`
	RecordedAt time.Time `json:"recorded_at"`
}

// WriteReceipt is the opaque proof-of-write returned by a successful
// registration. Every Register call produces a distinct receipt, even when
// the commitment value is unchanged; callers needing deduplication track
// receipts themselves.
type WriteReceipt struct {
	ReceiptID  uuid.UUID `json:"receipt_id"`
	Slot       Slot      `json:"slot"`
	Commitment string    `json:"commitment"`
	Writer     string    `json:"writer"`
	Sequence   uint64    `json:"sequence"`
	RecordedAt time.Time `json:"recorded_at"`
}

// VerificationResult is the authenticity verdict for a candidate payload,
// with both commitments included for audit.
type VerificationResult struct {
	Matches            bool   `json:"matches"`
	LocalCommitment    string `json:"local_commitment"`
	RegistryCommitment string `json:"registry_commitment"`
}
