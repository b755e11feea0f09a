package ecstore

// DirtyFlags is a bit field over {Addition, Removal, Update}, set whenever
// an archetype's contents change. The query cache does not read them: its
// validity is keyed on the archetype index version.
type DirtyFlags uint8

const (
	DirtyAddition DirtyFlags = 1 << iota
	DirtyRemoval
	DirtyUpdate
)

func (d DirtyFlags) Has(f DirtyFlags) bool { return d&f != 0 }

// Archetype is a columnar store for every entity sharing one exact
// component set. Rows are dense: swap_remove moves the last row into a
// vacated one so entities and columns always occupy [0, len) with no gaps.
type Archetype struct {
	key        Bitmask
	components []ComponentId // ascending, the archetype's bitmask bits in natural order

	entities  []EntityId
	entityRow map[EntityId]int
	columns   map[ComponentId][]any

	dirty          DirtyFlags
	pendingCleanup bool

	addEdges    map[ComponentId]*Edge
	removeEdges map[ComponentId]*Edge
	edgeRefs    *Edge // head of the doubly-linked list of edges terminating here
}

func newArchetype(key Bitmask) *Archetype {
	components := make([]ComponentId, 0, MaxComponentID)
	for c := ComponentId(1); c <= MaxComponentID; c++ {
		if key.Has(c) {
			components = append(components, c)
		}
	}
	return &Archetype{
		key:         key,
		components:  components,
		entityRow:   make(map[EntityId]int),
		columns:     make(map[ComponentId][]any, len(components)),
		addEdges:    make(map[ComponentId]*Edge),
		removeEdges: make(map[ComponentId]*Edge),
	}
}

// Key returns the archetype's bitmask identity.
func (a *Archetype) Key() Bitmask { return a.key }

// EntityCount returns the number of live rows.
func (a *Archetype) EntityCount() int { return len(a.entities) }

// Entities returns the archetype's entities in row order. Callers must not
// mutate the returned slice.
func (a *Archetype) Entities() []EntityId { return a.entities }

// RowOf returns the row for a resident entity.
func (a *Archetype) RowOf(e EntityId) (int, bool) {
	row, ok := a.entityRow[e]
	return row, ok
}

func (a *Archetype) ensureColumn(c ComponentId, minLen int) []any {
	col := a.columns[c]
	for len(col) < minLen {
		col = append(col, nil)
	}
	a.columns[c] = col
	return col
}

// Append adds a new row for entity e, writing values[c] into column c for
// every component in the archetype's bitmask (nil if values omits it). It
// returns the new row index.
func (a *Archetype) Append(e EntityId, values map[ComponentId]any) int {
	row := len(a.entities)
	for _, c := range a.components {
		col := a.ensureColumn(c, row+1)
		col[row] = values[c]
	}
	a.entities = append(a.entities, e)
	a.entityRow[e] = row
	a.dirty |= DirtyAddition
	a.pendingCleanup = false
	return row
}

// SwapRemove evicts entity e: the last row is moved into e's row (unless e
// already was the last row) and the vacated last row is cleared to nil in
// every column. If the archetype becomes empty it is marked pending
// cleanup, but is not removed from the index until Cleanup runs.
func (a *Archetype) SwapRemove(e EntityId) bool {
	row, ok := a.entityRow[e]
	if !ok {
		return false
	}
	last := len(a.entities) - 1
	if row != last {
		moved := a.entities[last]
		for _, c := range a.components {
			col := a.columns[c]
			col[row] = col[last]
		}
		a.entities[row] = moved
		a.entityRow[moved] = row
	}
	for _, c := range a.components {
		a.columns[c][last] = nil
	}
	a.entities = a.entities[:last]
	delete(a.entityRow, e)
	a.dirty |= DirtyRemoval
	if len(a.entities) == 0 {
		a.pendingCleanup = true
	}
	return true
}

// Update overwrites the value of component c for entity e. c must already
// be set in the archetype's bitmask.
func (a *Archetype) Update(e EntityId, c ComponentId, v any) error {
	row, ok := a.entityRow[e]
	if !ok {
		return newError(ArchetypeError, "entity not resident in archetype")
	}
	if !a.key.Has(c) {
		return newError(ArchetypeError, "component %d not in archetype bitmask", c)
	}
	col := a.ensureColumn(c, row+1)
	col[row] = v
	a.dirty |= DirtyUpdate
	return nil
}

// Has returns the value stored for (e, c) and whether c is a member of the
// archetype's bitmask. A member bit whose column has not yet been
// allocated yields (nil, true) per the spec's defensive "missing column"
// case.
func (a *Archetype) Has(e EntityId, c ComponentId) (any, bool) {
	row, ok := a.entityRow[e]
	if !ok || !a.key.Has(c) {
		return nil, false
	}
	col := a.columns[c]
	if row >= len(col) {
		return nil, true
	}
	return col[row], true
}

// ValueAt returns the value at (c, row) without an entity lookup, used by
// the transition engine and query iterators on the hot path.
func (a *Archetype) ValueAt(c ComponentId, row int) any {
	col := a.columns[c]
	if row >= len(col) {
		return nil
	}
	return col[row]
}
