package registry

import (
	"context"
	"testing"

	"truetrace/internal/domain/entity"
	"truetrace/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRegistry_RegisterAndRead(t *testing.T) {
	reg := NewMemoryRegistry()
	ctx := context.Background()

	receipt, err := reg.Register(ctx, entity.Slot(7), "abc123", "truetrace")
	require.NoError(t, err)
	assert.Equal(t, entity.Slot(7), receipt.Slot)
	assert.Equal(t, "abc123", receipt.Commitment)
	assert.Equal(t, "truetrace", receipt.Writer)
	assert.NotZero(t, receipt.ReceiptID)

	commitment, err := reg.Read(ctx, entity.Slot(7))
	require.NoError(t, err)
	assert.Equal(t, "abc123", commitment)
}

func TestMemoryRegistry_ReadEmptySlot(t *testing.T) {
	reg := NewMemoryRegistry()

	_, err := reg.Read(context.Background(), entity.Slot(42))
	assert.ErrorIs(t, err, service.ErrSlotEmpty)
}

func TestMemoryRegistry_OverwriteKeepsLatest(t *testing.T) {
	reg := NewMemoryRegistry()
	ctx := context.Background()

	_, err := reg.Register(ctx, entity.Slot(0), "c1", "w")
	require.NoError(t, err)
	_, err = reg.Register(ctx, entity.Slot(0), "c2", "w")
	require.NoError(t, err)

	commitment, err := reg.Read(ctx, entity.Slot(0))
	require.NoError(t, err)
	assert.Equal(t, "c2", commitment)
}

func TestMemoryRegistry_RepeatedRegisterYieldsDistinctReceipts(t *testing.T) {
	reg := NewMemoryRegistry()
	ctx := context.Background()

	first, err := reg.Register(ctx, entity.Slot(1), "same", "w")
	require.NoError(t, err)
	second, err := reg.Register(ctx, entity.Slot(1), "same", "w")
	require.NoError(t, err)

	assert.NotEqual(t, first.ReceiptID, second.ReceiptID)
	assert.Greater(t, second.Sequence, first.Sequence)
}

func TestMemoryRegistry_SlotsAreIndependent(t *testing.T) {
	reg := NewMemoryRegistry()
	ctx := context.Background()

	_, err := reg.Register(ctx, entity.Slot(1), "one", "w")
	require.NoError(t, err)
	_, err = reg.Register(ctx, entity.Slot(2), "two", "w")
	require.NoError(t, err)

	one, err := reg.Read(ctx, entity.Slot(1))
	require.NoError(t, err)
	two, err := reg.Read(ctx, entity.Slot(2))
	require.NoError(t, err)

	assert.Equal(t, "one", one)
	assert.Equal(t, "two", two)
}
