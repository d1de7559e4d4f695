package model

import (
	"time"

	"github.com/google/uuid"
)

// RegistryEntryModel is the GORM model for the commitment registry's
// append-only ledger. Rows are only ever inserted; a slot read resolves to
// the row with the highest sequence. Slot values are masked to 63 bits by
// the allocator, so BIGINT holds them without wraparound.
type RegistryEntryModel struct {
	Sequence   uint64    `gorm:"column:sequence;primaryKey;autoIncrement"`
	Slot       int64     `gorm:"column:slot;index;not null"`
	Commitment string    `gorm:"column:commitment;type:text;not null"`
	Writer     string    `gorm:"column:writer;type:text;not null"`
	ReceiptID  uuid.UUID `gorm:"column:receipt_id;type:uuid;uniqueIndex;not null"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

// TableName specifies the table name for RegistryEntryModel.
func (RegistryEntryModel) TableName() string {
	return "registry_entries"
}
