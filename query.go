package ecstore

// QueryView is the result of composing include/exclude/any filters over
// the archetype index. query(components) seeds it and is the only call
// that is cached; with/without/any narrow an existing view in place and
// are never themselves cached (spec.md §4.7).
type QueryView struct {
	ecs *ECS

	include, exclude, any Bitmask
	components             []ComponentId // projected columns, declared order

	archetypes []*Archetype
}

type queryCacheEntry struct {
	include, exclude Bitmask
	version           uint64
	archetypes        []*Archetype
}

// Query seeds a QueryView requiring every component in components. An
// empty components list is a builder misuse (spec.md §4.7) and fails with
// InvalidOperation in debug mode; in release mode it returns an
// unfiltered, never-matching view.
func (e *ECS) Query(components ...ComponentId) (*QueryView, error) {
	if len(components) == 0 {
		if !e.config.debugMode {
			return &QueryView{ecs: e}, nil
		}
		return nil, e.fail(newError(InvalidOperation, "query requires at least one component"))
	}

	var include Bitmask
	for _, c := range components {
		include.Mark(c)
	}
	var exclude Bitmask
	key := ComputeQueryKey(include, exclude)

	if entry, ok := e.queryCacheLookup(key, include, exclude); ok {
		archetypes := make([]*Archetype, len(entry.archetypes))
		copy(archetypes, entry.archetypes)
		return &QueryView{
			ecs:        e,
			include:    include,
			exclude:    exclude,
			components: append([]ComponentId(nil), components...),
			archetypes: archetypes,
		}, nil
	}

	var matched []*Archetype
	for _, a := range e.index.Archetypes() {
		if a.key.ContainsAll(include) {
			matched = append(matched, a)
		}
	}

	e.queryCacheStore(key, include, exclude, matched)
	e.bus.publish(Event{Topic: OnCached, CacheKind: CachedQuery, CacheKey: key})

	archetypes := make([]*Archetype, len(matched))
	copy(archetypes, matched)
	return &QueryView{
		ecs:        e,
		include:    include,
		exclude:    exclude,
		components: append([]ComponentId(nil), components...),
		archetypes: archetypes,
	}, nil
}

// maxCachedQueries bounds the number of distinct packed query keys the
// query cache retains; a full cache degrades to recomputing the scan on
// every Query call for new keys, never to a wrong answer.
const maxCachedQueries = 1 << 12

func (e *ECS) queryCacheLookup(key QueryKey, include, exclude Bitmask) (*queryCacheEntry, bool) {
	bucket, ok := e.queryCache.Lookup(key)
	if !ok {
		return nil, false
	}
	for _, entry := range bucket {
		if entry.include == include && entry.exclude == exclude {
			if entry.version != e.index.Version() {
				return nil, false
			}
			return entry, true
		}
	}
	return nil, false
}

func (e *ECS) queryCacheStore(key QueryKey, include, exclude Bitmask, archetypes []*Archetype) {
	entry := &queryCacheEntry{include: include, exclude: exclude, version: e.index.Version(), archetypes: archetypes}
	_ = e.queryCache.Register(key, entry)
}

// With narrows the view's include mask and re-filters the retained
// archetype set. Never cached.
func (v *QueryView) With(components ...ComponentId) *QueryView {
	for _, c := range components {
		v.include.Mark(c)
	}
	v.filter()
	return v
}

// Without adds components to the view's exclude mask and re-filters.
func (v *QueryView) Without(components ...ComponentId) *QueryView {
	for _, c := range components {
		v.exclude.Mark(c)
	}
	v.filter()
	return v
}

// Any extends the view's any mask: an archetype matches only if it shares
// at least one bit with the accumulated any mask.
func (v *QueryView) Any(components ...ComponentId) *QueryView {
	for _, c := range components {
		v.any.Mark(c)
	}
	v.filter()
	return v
}

func (v *QueryView) filter() {
	kept := v.archetypes[:0:0]
	for _, a := range v.archetypes {
		if !a.key.ContainsAll(v.include) {
			continue
		}
		if !a.key.ContainsNone(v.exclude) {
			continue
		}
		if !v.any.IsEmpty() && !a.key.ContainsAny(v.any) {
			continue
		}
		kept = append(kept, a)
	}
	v.archetypes = kept
}

// MatchedArchetypes returns the archetypes currently retained by the view.
// Callers must not mutate the returned slice.
func (v *QueryView) MatchedArchetypes() []*Archetype {
	return v.archetypes
}
