package ecstore

import "iter"

// Cursor walks a QueryView's matched archetypes in archetype-major order:
// every row of one archetype is exhausted before the cursor advances to
// the next. Get1..Get5 are hand-specialised fast paths that avoid
// allocating a []any per row; Values is the generic k-ary fallback they
// must stay behaviorally identical to (spec.md §4.7, §9 "Iterator generic
// dispatch").
type Cursor struct {
	ecs        *ECS
	archetypes []*Archetype
	components []ComponentId

	archIdx int
	row     int

	current  *Archetype
	released bool
}

// NewCursor returns a cursor over v's currently matched archetypes, holding
// the reentrancy lock for the cursor's lifetime so a mutation attempted
// mid-iteration is rejected (spec.md §5/§7, SPEC_FULL.md §6.2). The lock is
// released once Next reports exhaustion; callers that abandon a cursor
// before exhausting it must call Release themselves. Later mutation of v
// (With/Without/Any) does not affect an already-created cursor.
func (v *QueryView) NewCursor() *Cursor {
	v.ecs.lockIteration()
	return &Cursor{
		ecs:        v.ecs,
		archetypes: v.archetypes,
		components: v.components,
		archIdx:    0,
		row:        -1,
	}
}

// Release drops the cursor's hold on the reentrancy lock. Safe to call more
// than once, and a no-op once Next has already released it on exhaustion.
func (c *Cursor) Release() {
	if c.released {
		return
	}
	c.released = true
	c.ecs.unlockIteration()
}

// Next advances the cursor to the next matching row, skipping exhausted or
// empty archetypes. It returns false once no rows remain, releasing the
// reentrancy lock at that point.
func (c *Cursor) Next() bool {
	for {
		if c.current != nil && c.row+1 < c.current.EntityCount() {
			c.row++
			return true
		}
		if c.archIdx >= len(c.archetypes) {
			c.Release()
			return false
		}
		c.current = c.archetypes[c.archIdx]
		c.archIdx++
		c.row = -1
	}
}

// Entity returns the entity at the cursor's current position.
func (c *Cursor) Entity() EntityId {
	return c.current.entities[c.row]
}

// Values returns the projected component values for the current row in
// declared order. Generic k-ary path; prefer Get1..Get5 for k <= 5.
func (c *Cursor) Values() []any {
	out := make([]any, len(c.components))
	for i, comp := range c.components {
		out[i] = c.current.ValueAt(comp, c.row)
	}
	return out
}

// Get1 returns the current row's first projected component. Valid when
// the view declared exactly one component.
func (c *Cursor) Get1() any {
	return c.current.ValueAt(c.components[0], c.row)
}

// Get2 returns the current row's first two projected components.
func (c *Cursor) Get2() (any, any) {
	return c.current.ValueAt(c.components[0], c.row),
		c.current.ValueAt(c.components[1], c.row)
}

// Get3 returns the current row's first three projected components.
func (c *Cursor) Get3() (any, any, any) {
	return c.current.ValueAt(c.components[0], c.row),
		c.current.ValueAt(c.components[1], c.row),
		c.current.ValueAt(c.components[2], c.row)
}

// Get4 returns the current row's first four projected components.
func (c *Cursor) Get4() (any, any, any, any) {
	return c.current.ValueAt(c.components[0], c.row),
		c.current.ValueAt(c.components[1], c.row),
		c.current.ValueAt(c.components[2], c.row),
		c.current.ValueAt(c.components[3], c.row)
}

// Get5 returns the current row's first five projected components.
func (c *Cursor) Get5() (any, any, any, any, any) {
	return c.current.ValueAt(c.components[0], c.row),
		c.current.ValueAt(c.components[1], c.row),
		c.current.ValueAt(c.components[2], c.row),
		c.current.ValueAt(c.components[3], c.row),
		c.current.ValueAt(c.components[4], c.row)
}

// View returns an archetype-major iterator of (entity, values...) tuples
// over the view's currently matched archetypes. The generic k-ary path;
// callers on a known-small k should prefer NewCursor with Get1..Get5 for
// the allocation-free fast path.
func (v *QueryView) View() iter.Seq2[EntityId, []any] {
	return func(yield func(EntityId, []any) bool) {
		c := v.NewCursor()
		for c.Next() {
			if !yield(c.Entity(), c.Values()) {
				c.Release()
				return
			}
		}
	}
}
