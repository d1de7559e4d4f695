package registry

import (
	"context"

	"truetrace/internal/domain/entity"
	"truetrace/internal/domain/service"
	"truetrace/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// postgresRegistry persists the ledger as append-only registry_entries
// rows. The insert's sequence comes from the database, so write order is
// total even across restarts; read-after-write visibility is the
// database's transaction guarantee.
type postgresRegistry struct {
	db *gorm.DB
}

// NewPostgresRegistry creates a commitment registry backed by PostgreSQL.
func NewPostgresRegistry(db *gorm.DB) service.CommitmentRegistry {
	return &postgresRegistry{
		db: db,
	}
}

// Register appends a commitment for a slot. Any backend failure surfaces
// as ErrRegistryUnavailable: the caller learns the write may or may not
// have landed and must not treat it as committed without a receipt.
func (r *postgresRegistry) Register(ctx context.Context, slot entity.Slot, commitment string, writer string) (*entity.WriteReceipt, error) {
	entryM := &model.RegistryEntryModel{
		Slot:       int64(slot),
		Commitment: commitment,
		Writer:     writer,
		ReceiptID:  uuid.New(),
	}

	if err := r.db.WithContext(ctx).Create(entryM).Error; err != nil {
		return nil, errors.Wrapf(service.ErrRegistryUnavailable, "register slot %d: %v", slot, err)
	}

	return &entity.WriteReceipt{
		ReceiptID:  entryM.ReceiptID,
		Slot:       slot,
		Commitment: commitment,
		Writer:     writer,
		Sequence:   entryM.Sequence,
		RecordedAt: entryM.CreatedAt,
	}, nil
}

// Read returns the latest commitment for a slot.
func (r *postgresRegistry) Read(ctx context.Context, slot entity.Slot) (string, error) {
	var entryM model.RegistryEntryModel

	if err := r.db.WithContext(ctx).
		Where("slot = ?", int64(slot)).
		Order("sequence DESC").
		First(&entryM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", service.ErrSlotEmpty
		}

		return "", errors.Wrapf(service.ErrRegistryUnavailable, "read slot %d: %v", slot, err)
	}

	return entryM.Commitment, nil
}
