package entity

import "hash/fnv"

// Slot is the registry's addressing unit: "latest commitment for X".
type Slot uint64

// LegacySlot is the single shared slot of early deployments, where every
// custody step overwrote the previous commitment.
const LegacySlot Slot = 0

// SlotAllocator maps a product identity to its registry slot. The default
// allocation gives every product its own slot so each custody chain stays
// independently verifiable; legacy mode pins everything to LegacySlot and
// must be opted into explicitly.
type SlotAllocator struct {
	legacyFixedSlot bool
}

// NewSlotAllocator creates a slot allocator. Pass legacyFixedSlot=true only
// for backward compatibility with single-slot deployments.
func NewSlotAllocator(legacyFixedSlot bool) SlotAllocator {
	return SlotAllocator{legacyFixedSlot: legacyFixedSlot}
}

// SlotFor returns the registry slot for a product identity. Allocation is
// FNV-1a 64 of the identity, masked to 63 bits so the value round-trips
// through signed integer columns.
func (a SlotAllocator) SlotFor(productID string) Slot {
	if a.legacyFixedSlot {
		return LegacySlot
	}

	h := fnv.New64a()
	h.Write([]byte(productID))

	return Slot(h.Sum64() &^ (1 << 63))
}
