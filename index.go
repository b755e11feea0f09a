package ecstore

// ArchetypeIndex maps archetype bitmask keys to their unique Archetype, and
// tracks which archetype each live entity currently resides in. Version is
// bumped every time a new archetype is created; QueryPlanner uses it to
// invalidate cached query results (see the Open Question decision in
// DESIGN.md — a version counter rather than the spec's first-archetype
// UPDATE-flag heuristic).
type ArchetypeIndex struct {
	byKey   map[ArchetypeKey]*Archetype
	all     []*Archetype // insertion order, matches the spec's query scan order
	entity  map[EntityId]*Archetype
	version uint64

	edgeCache Cache[TransitionKey, *TransitionInfo]
}

// maxCachedTransitions bounds the number of distinct packed transition
// keys the edge cache retains; a full cache degrades gracefully by
// skipping the cache write, not by failing the transition itself.
const maxCachedTransitions = 1 << 16

func newArchetypeIndex() *ArchetypeIndex {
	return &ArchetypeIndex{
		byKey:     make(map[ArchetypeKey]*Archetype),
		entity:    make(map[EntityId]*Archetype),
		edgeCache: NewSimpleCache[TransitionKey, *TransitionInfo](maxCachedTransitions),
	}
}

// Lookup returns the archetype for an entity, or nil if it is unassigned.
func (idx *ArchetypeIndex) Lookup(e EntityId) *Archetype {
	return idx.entity[e]
}

// GetOrCreate returns the archetype for key, creating it (and bumping
// version) if it does not yet exist.
func (idx *ArchetypeIndex) GetOrCreate(key Bitmask) (*Archetype, bool) {
	if a, ok := idx.byKey[key]; ok {
		return a, false
	}
	a := newArchetype(key)
	idx.byKey[key] = a
	idx.all = append(idx.all, a)
	idx.version++
	return a, true
}

// Archetypes returns every archetype in creation order. Callers must not
// mutate the returned slice.
func (idx *ArchetypeIndex) Archetypes() []*Archetype {
	return idx.all
}

// Version returns the current archetype-index version.
func (idx *ArchetypeIndex) Version() uint64 {
	return idx.version
}

// cachedTransition looks up a previously computed TransitionInfo for the
// (src, dst) pair by its packed key, falling back to a structural
// (bitmask-equal) scan of the key's collision bucket since
// ComputeTransitionKey can collide (see bitmask.go).
func (idx *ArchetypeIndex) cachedTransition(key TransitionKey, src, dst Bitmask) *TransitionInfo {
	bucket, ok := idx.edgeCache.Lookup(key)
	if !ok {
		return nil
	}
	for _, info := range bucket {
		if info.Source != nil && info.Source.key == src && info.Destination.key == dst {
			return info
		}
		if info.Source == nil && src == (Bitmask{}) && info.Destination.key == dst {
			return info
		}
	}
	return nil
}

// cacheTransition registers info under key. A full cache (maxCachedTransitions
// distinct keys already seen) silently skips the write: the edge itself
// still carries info, so correctness does not depend on this cache.
func (idx *ArchetypeIndex) cacheTransition(key TransitionKey, info *TransitionInfo) {
	_ = idx.edgeCache.Register(key, info)
}

// cleanupDeadArchetypes unlinks every edge terminating at an
// empty/pending-cleanup archetype from both endpoints, matching
// spec.md §3 ("when an archetype is cleaned, all edges terminating at it
// are unlinked from both endpoints"), and unlinks its outgoing add edges
// too, leaving its add/remove edge maps empty. It does not remove the archetype
// itself from byKey/all: the spec only requires edges to be torn down,
// archetypes persist (ready to be reused if the same bitmask recurs).
func (idx *ArchetypeIndex) cleanupDeadArchetypes() {
	for _, a := range idx.all {
		if !a.pendingCleanup || len(a.entities) != 0 {
			continue
		}
		for e := a.edgeRefs; e != nil; {
			next := e.next
			unlinkEdge(e)
			e = next
		}
		for _, e := range a.addEdges {
			unlinkEdge(e)
		}
		a.pendingCleanup = false
	}
}
