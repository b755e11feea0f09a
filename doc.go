/*
Package ecstore provides the core of an archetype-based Entity-Component-System
(ECS) runtime for games and simulations.

ecstore keeps entities with an identical component set together in a single
archetype, a columnar store optimized for cache-friendly iteration. Moving an
entity between archetypes (adding or removing a component) is the hot path:
a cached edge graph remembers which archetype a (source, component) pair
transitions to, so repeated structural changes reuse the edge and its
transition metadata instead of computing them again.

Core Concepts:

  - EntityId: a packed (id, generation) handle identifying an entity.
  - ComponentId: a caller-assigned small integer identifying a component kind.
  - Archetype: a columnar store holding every entity with one exact component set.
  - Edge: a cached transition from one archetype to its neighbour, keyed by
    the single component whose presence distinguishes them.
  - Query: an include/exclude/any bitmask filter over archetypes, with a
    first-level result cache invalidated when new archetypes appear.

Basic Usage:

	e := ecstore.Factory.NewECS()
	entity, _ := e.Entity()
	e.Set(entity, 1, "hello")

	view, _ := e.Query(1)
	for id, values := range view.View() {
		fmt.Println(id, values[0])
	}

ecstore is single-threaded: every public operation completes synchronously
with no yield points, and mutation is not safe to interleave with active
iteration on the same instance: such a mutation is always rejected with
InvalidOperation (see ECS.Locked), and Config.DebugMode decides whether that
rejection panics or is returned as an error.
*/
package ecstore
