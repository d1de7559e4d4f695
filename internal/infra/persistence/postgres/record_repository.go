package postgres

import (
	"context"

	"truetrace/internal/domain/entity"
	domainerrors "truetrace/internal/domain/errors"
	"truetrace/internal/domain/repository"
	"truetrace/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// recordRepository implements the repository.RecordRepository interface.
type recordRepository struct {
	db *gorm.DB
}

// NewRecordRepository is the constructor for recordRepository.
func NewRecordRepository(db *gorm.DB) repository.RecordRepository {
	return &recordRepository{
		db: db,
	}
}

// Save upserts the latest provenance record for a product identity.
// Last write wins: the store keeps only the record the next custody step
// builds on.
func (repo *recordRepository) Save(ctx context.Context, record *entity.ProvenanceRecord) error {
	recordM := fromRecordDomain(record)

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"kind", "canonical_text", "recorded_at", "updated_at"}),
		}).
		Create(recordM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required record field")
		}

		return errors.Wrap(err, "failed to save provenance record")
	}

	return nil
}

// FindByProduct retrieves the latest record for a product identity.
func (repo *recordRepository) FindByProduct(ctx context.Context, productID string) (*entity.ProvenanceRecord, error) {
	var recordM model.ProvenanceRecordModel

	if err := repo.db.WithContext(ctx).
		Where("product_id = ?", productID).
		First(&recordM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRecordNotFound
		}

		return nil, errors.Wrap(err, "failed to find provenance record by product")
	}

	return toRecordDomain(&recordM), nil
}

// --- Mapper Functions ---

// toRecordDomain converts a GORM ProvenanceRecordModel to a domain ProvenanceRecord entity.
func toRecordDomain(data *model.ProvenanceRecordModel) *entity.ProvenanceRecord {
	if data == nil {
		return nil
	}

	return &entity.ProvenanceRecord{
		Kind:          entity.RecordKind(data.Kind),
		ProductID:     data.ProductID,
		CanonicalText: data.CanonicalText,
		RecordedAt:    data.RecordedAt,
	}
}

// fromRecordDomain converts a domain ProvenanceRecord entity to a GORM ProvenanceRecordModel.
func fromRecordDomain(data *entity.ProvenanceRecord) *model.ProvenanceRecordModel {
	if data == nil {
		return nil
	}

	return &model.ProvenanceRecordModel{
		ProductID:     data.ProductID,
		Kind:          string(data.Kind),
		CanonicalText: data.CanonicalText,
		RecordedAt:    data.RecordedAt,
	}
}
