package memory

import (
	"context"
	"testing"
	"time"

	"truetrace/internal/domain/entity"
	"truetrace/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRepository_SaveAndFind(t *testing.T) {
	repo := NewRecordRepository()
	ctx := context.Background()

	record := &entity.ProvenanceRecord{
		Kind:          entity.KindManufacturer,
		ProductID:     "P1",
		CanonicalText: "Company Name: Acme",
		RecordedAt:    time.Now().UTC(),
	}

	require.NoError(t, repo.Save(ctx, record))

	found, err := repo.FindByProduct(ctx, "P1")
	require.NoError(t, err)
	assert.Equal(t, record.CanonicalText, found.CanonicalText)
	assert.Equal(t, entity.KindManufacturer, found.Kind)
}

func TestRecordRepository_FindMissing(t *testing.T) {
	repo := NewRecordRepository()

	_, err := repo.FindByProduct(context.Background(), "never-registered")
	assert.ErrorIs(t, err, repository.ErrRecordNotFound)
}

func TestRecordRepository_LastWriteWins(t *testing.T) {
	repo := NewRecordRepository()
	ctx := context.Background()

	first := &entity.ProvenanceRecord{
		Kind:          entity.KindManufacturer,
		ProductID:     "P1",
		CanonicalText: "first",
	}
	second := &entity.ProvenanceRecord{
		Kind:          entity.KindRetailerBatch,
		ProductID:     "P1",
		CanonicalText: "second",
	}

	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))

	found, err := repo.FindByProduct(ctx, "P1")
	require.NoError(t, err)
	assert.Equal(t, "second", found.CanonicalText)
	assert.Equal(t, entity.KindRetailerBatch, found.Kind)
}

func TestRecordRepository_ReturnedRecordIsACopy(t *testing.T) {
	repo := NewRecordRepository()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &entity.ProvenanceRecord{ProductID: "P1", CanonicalText: "original"}))

	found, err := repo.FindByProduct(ctx, "P1")
	require.NoError(t, err)
	found.CanonicalText = "mutated"

	again, err := repo.FindByProduct(ctx, "P1")
	require.NoError(t, err)
	assert.Equal(t, "original", again.CanonicalText)
}
