package ecs

// Entity encodes both the entity index (upper 32 bits) and its generation
// (lower 32 bits). The generation is bumped when the index is recycled, so a
// stale handle held across a Despawn never resolves to the new occupant.
type Entity uint64

// NewEntity creates an Entity from an index and a generation counter.
func NewEntity(index uint32, generation uint32) Entity {
	return Entity(uint64(index)<<32 | uint64(generation))
}

// Index extracts the entity index from the handle.
func (e Entity) Index() uint32 {
	return uint32(e >> 32)
}

// Generation extracts the generation counter from the handle.
func (e Entity) Generation() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// IsZero reports whether the handle is the zero value. The zero Entity never
// names a live entity (live generations start at 1).
func (e Entity) IsZero() bool {
	return e == 0
}
