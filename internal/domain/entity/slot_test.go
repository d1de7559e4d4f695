package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlotAllocator_Deterministic(t *testing.T) {
	allocator := NewSlotAllocator(false)

	assert.Equal(t, allocator.SlotFor("SKU-1001"), allocator.SlotFor("SKU-1001"))
}

func TestSlotAllocator_DistinctProducts(t *testing.T) {
	allocator := NewSlotAllocator(false)

	assert.NotEqual(t, allocator.SlotFor("SKU-1001"), allocator.SlotFor("SKU-1002"))
}

func TestSlotAllocator_HighBitCleared(t *testing.T) {
	allocator := NewSlotAllocator(false)

	for _, id := range []string{"SKU-1001", "SKU-1002", "a", "", "Widget/2026"} {
		slot := allocator.SlotFor(id)
		assert.Zero(t, uint64(slot)&(1<<63), "slot for %q must fit a signed column", id)
	}
}

func TestSlotAllocator_LegacyFixedSlot(t *testing.T) {
	allocator := NewSlotAllocator(true)

	assert.Equal(t, LegacySlot, allocator.SlotFor("SKU-1001"))
	assert.Equal(t, LegacySlot, allocator.SlotFor("SKU-1002"))
}
