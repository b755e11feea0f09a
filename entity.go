package ecstore

// EntityId is a packed (id, generation) handle: the low 24 bits hold a
// dense numeric id, the high 8 bits hold a generation counter. Recycling
// a freed id bumps its generation (mod MaxGeneration+1) so stale handles
// that still name the id fail validation instead of aliasing a reused
// slot.
type EntityId uint32

const (
	idBits  = 24
	idMask  = 1<<idBits - 1
	// MaxID is the largest dense numeric id the 24-bit field can hold.
	MaxID = idMask
	// MaxGeneration is the largest value the 8-bit generation field can hold.
	MaxGeneration = 0xFF
)

func packEntityId(id uint32, gen uint8) EntityId {
	return EntityId(id&idMask) | EntityId(gen)<<idBits
}

// ID returns the dense numeric id packed into the handle.
func (e EntityId) ID() uint32 {
	return uint32(e) & idMask
}

// Generation returns the generation counter packed into the handle.
func (e EntityId) Generation() uint8 {
	return uint8(uint32(e) >> idBits)
}

// EntityAllocator issues and recycles entity ids with a generation counter
// for use-after-free detection. Ids below the allocator's high-water mark
// come from the free list; everything else allocates sequentially. Id 0 is
// never issued — it is reserved as the zero-value "unassigned" sentinel.
type EntityAllocator struct {
	nextID      uint32
	generations []uint8
	alive       []bool
	freeList    []uint32
}

// NewEntityAllocator returns an allocator with no entities issued.
func NewEntityAllocator() *EntityAllocator {
	return &EntityAllocator{nextID: 1}
}

// Allocate issues a fresh or recycled EntityId. It fails with MemoryError
// once the 24-bit id space is exhausted and no id can be recycled.
func (a *EntityAllocator) Allocate() (EntityId, error) {
	if n := len(a.freeList); n > 0 {
		id := a.freeList[n-1]
		a.freeList = a.freeList[:n-1]
		slot := id - 1
		a.generations[slot] = uint8((uint32(a.generations[slot]) + 1) % (MaxGeneration + 1))
		a.alive[slot] = true
		return packEntityId(id, a.generations[slot]), nil
	}
	if a.nextID > MaxID {
		return 0, newError(MemoryError, "entity id space exhausted at %d ids", MaxID)
	}
	id := a.nextID
	a.nextID++
	a.generations = append(a.generations, 0)
	a.alive = append(a.alive, true)
	return packEntityId(id, 0), nil
}

// Validate extracts the dense id from h, failing with InvalidEntity if the
// id is unknown or its generation no longer matches the live generation.
func (a *EntityAllocator) Validate(h EntityId) (uint32, error) {
	id := h.ID()
	if id == 0 || int(id) > len(a.generations) {
		return 0, newError(InvalidEntity, "unknown entity id %d", id)
	}
	slot := id - 1
	if !a.alive[slot] || a.generations[slot] != h.Generation() {
		return 0, newError(InvalidEntity, "stale entity handle %d (generation %d, current %d)", id, h.Generation(), a.generations[slot])
	}
	return id, nil
}

// Release retires h: the id returns to the free list. The generation is
// bumped on the next Allocate that recycles this id, not here, so one
// despawn+reallocate cycle advances the generation by exactly one
// (spec.md §4.2, §8 scenario 4). Releasing an already-dead handle is a
// no-op error (InvalidEntity), so double-despawn of the same handle never
// double-frees an id.
func (a *EntityAllocator) Release(h EntityId) error {
	id, err := a.Validate(h)
	if err != nil {
		return err
	}
	slot := id - 1
	a.alive[slot] = false
	a.freeList = append(a.freeList, id)
	return nil
}

// Exhausted reports whether the id space is used up with nothing free.
func (a *EntityAllocator) Exhausted() bool {
	return a.nextID > MaxID && len(a.freeList) == 0
}
