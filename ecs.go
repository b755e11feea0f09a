package ecstore

import (
	"github.com/TheBitDrifter/bark"
	"github.com/TheBitDrifter/mask"
)

// ECS is the public entry point: it wires the entity allocator, archetype
// index, transition engine, and query cache together behind the library
// surface: Entity, Despawn, Set, Remove, Has, Query and Cleanup.
type ECS struct {
	config configSnapshot

	allocator  *EntityAllocator
	index      *ArchetypeIndex
	transition *TransitionEngine
	bus        *signalBus

	queryCache Cache[QueryKey, *queryCacheEntry]

	// locks mirrors the teacher's storage.locks mask.Mask256 reentrancy
	// guard: one bit held for the lifetime of an active Cursor/View so a
	// mutation attempted mid-iteration can be detected and rejected.
	locks mask.Mask256
	// iterations counts the cursors currently holding the lock bit, so a
	// nested cursor finishing first does not release an outer one's hold.
	iterations int

	profiler *profileSession
}

const iterationLockBit = 0

// New returns an ECS instance with Config's current DebugMode/
// ProfilingMode snapshotted for its lifetime.
func New() *ECS {
	snapshot := snapshotConfig()
	e := &ECS{
		config:     snapshot,
		allocator:  NewEntityAllocator(),
		index:      newArchetypeIndex(),
		bus:        newSignalBus(),
		queryCache: NewSimpleCache[QueryKey, *queryCacheEntry](maxCachedQueries),
	}
	e.transition = newTransitionEngine(e.bus)
	if snapshot.profilingMode {
		e.profiler = startProfiling()
	}
	return e
}

// Close stops any profiling session started by New. Safe to call on an
// ECS created without PROFILING_MODE.
func (e *ECS) Close() {
	if e.profiler != nil {
		e.profiler.stop()
		e.profiler = nil
	}
}

// Subscribe registers fn to receive events on topic: OnSet, OnTransition,
// OnCached, or OnCleanup.
func (e *ECS) Subscribe(topic Topic, fn Listener) {
	e.bus.Subscribe(topic, fn)
}

// Locked reports whether a structural mutation is currently forbidden
// because an iteration holds the reentrancy lock.
func (e *ECS) Locked() bool {
	return !e.locks.IsEmpty()
}

func (e *ECS) lockIteration() {
	e.iterations++
	e.locks.Mark(iterationLockBit)
}

func (e *ECS) unlockIteration() {
	if e.iterations > 0 {
		e.iterations--
	}
	if e.iterations == 0 {
		e.locks.Unmark(iterationLockBit)
	}
}

func (e *ECS) checkMutable() error {
	if e.Locked() {
		return newError(InvalidOperation, "mutation attempted during active iteration")
	}
	return nil
}

// Entity issues a fresh or recycled EntityId with no components.
func (e *ECS) Entity() (EntityId, error) {
	id, err := e.allocator.Allocate()
	if err != nil {
		return 0, e.internalFail(err)
	}
	return id, nil
}

// Despawn retires an entity: it is removed from its archetype (if any) and
// its id is recycled with a bumped generation. Despawning an unknown or
// already-despawned handle is a no-op in release mode; in debug mode it
// fails with InvalidEntity.
func (e *ECS) Despawn(h EntityId) error {
	if err := e.checkMutable(); err != nil {
		return e.fail(err)
	}
	if _, err := e.allocator.Validate(h); err != nil {
		return e.failIfDebug(err)
	}
	if a := e.index.Lookup(h); a != nil {
		a.SwapRemove(h)
		delete(e.index.entity, h)
	}
	if err := e.allocator.Release(h); err != nil {
		return e.failIfDebug(err)
	}
	return nil
}

// Has returns the value stored for (h, c), or (nil, nil) if the entity
// does not carry that component (or, in release mode, does not exist).
func (e *ECS) Has(h EntityId, c ComponentId) (any, error) {
	if _, ok, err := e.validateCall(h, c); err != nil {
		return nil, err
	} else if !ok {
		return nil, nil
	}
	a := e.index.Lookup(h)
	if a == nil {
		return nil, nil
	}
	v, ok := a.Has(h, c)
	if !ok {
		return nil, nil
	}
	return v, nil
}

// Set writes value for component c on entity h, moving h to the archetype
// reached by adding c if it does not already carry it (spec.md §4.6).
func (e *ECS) Set(h EntityId, c ComponentId, value any) error {
	if err := e.checkMutable(); err != nil {
		return e.fail(err)
	}
	if _, ok, err := e.validateCall(h, c); err != nil {
		return err
	} else if !ok {
		return nil
	}

	source := e.index.Lookup(h)
	values := map[ComponentId]any{c: value}

	if source == nil {
		target, _ := e.index.GetOrCreate(Bitmask{}.With(c))
		info := computeTransitionInfo(nil, target)
		if err := e.transition.Move(h, nil, target, info, values, e.index.entity); err != nil {
			return e.internalFail(err)
		}
		e.bus.publish(Event{Topic: OnSet, Entity: h, Component: c, Value: value})
		return nil
	}

	if source.key.Has(c) {
		if err := source.Update(h, c, value); err != nil {
			return e.internalFail(err)
		}
		e.bus.publish(Event{Topic: OnSet, Entity: h, Component: c, Value: value})
		return nil
	}

	targetKey := source.key.With(c)
	target, _ := e.index.GetOrCreate(targetKey)
	edge := e.getOrCreateEdge(source, target, c)

	if err := e.transition.Move(h, source, target, edge.transition, values, e.index.entity); err != nil {
		return e.internalFail(err)
	}
	e.bus.publish(Event{Topic: OnSet, Entity: h, Component: c, Value: value})
	return nil
}

// Remove drops component c from entity h, moving it to the archetype
// reached by removing c. A no-op if h does not carry c.
func (e *ECS) Remove(h EntityId, c ComponentId) error {
	if err := e.checkMutable(); err != nil {
		return e.fail(err)
	}
	if _, ok, err := e.validateCall(h, c); err != nil {
		return err
	} else if !ok {
		return nil
	}

	source := e.index.Lookup(h)
	if source == nil || !source.key.Has(c) {
		return nil
	}

	targetKey := source.key.Without(c)
	target, _ := e.index.GetOrCreate(targetKey)
	// The edge between target (lower bitmask) and source (higher bitmask)
	// is shared between directions: getOrCreateEdge(target, source, c)
	// returns the same Edge whether it was first exercised as an add from
	// target or, here, a remove from source (spec.md §4.4/§8).
	edge := e.getOrCreateEdge(target, source, c)
	info := invertTransition(edge.transition)

	if err := e.transition.Move(h, source, target, info, nil, e.index.entity); err != nil {
		return e.internalFail(err)
	}
	edge.transition.Frequency++
	return nil
}

// getOrCreateEdge returns the single Edge between lower (the archetype
// with bit c clear) and higher (bit c set), creating and caching it on
// first use from either direction. lower.addEdges[c] and
// higher.removeEdges[c] always name the same Edge value once it exists.
func (e *ECS) getOrCreateEdge(lower, higher *Archetype, c ComponentId) *Edge {
	if edge, ok := lower.addEdges[c]; ok {
		return edge
	}
	info := computeTransitionInfo(lower, higher)
	edge := addEdge(lower, higher, c, info)
	key := ComputeTransitionKey(lower.key, higher.key)
	e.index.cacheTransition(key, info)
	e.bus.publish(Event{Topic: OnCached, CacheKind: CachedTransition, CacheKey: key})
	return edge
}

// invertTransition swaps Added/Removed for traversing an edge's cached
// TransitionInfo in the opposite direction it was computed for; Shared is
// direction-independent.
func invertTransition(info *TransitionInfo) *TransitionInfo {
	return &TransitionInfo{
		Source:      info.Destination,
		Destination: info.Source,
		Shared:      info.Shared,
		Added:       info.Removed,
		Removed:     info.Added,
	}
}

// validateCall checks entity and component validity per Config.DebugMode:
// in debug mode both are fully checked and panic via bark.AddTrace on
// failure. In release mode a user-caused failure (stale handle, bad
// component id) is reported as ok=false, err=nil: the caller must treat
// this as a silent no-op and stop, not proceed with a zero id.
func (e *ECS) validateCall(h EntityId, c ComponentId) (id uint32, ok bool, err error) {
	id, verr := e.allocator.Validate(h)
	if verr != nil {
		return 0, false, e.failIfDebug(verr)
	}
	if !ValidComponentID(c) {
		cerr := newError(InvalidComponent, "component id %d outside [1, %d]", c, MaxComponentID)
		return 0, false, e.failIfDebug(cerr)
	}
	return id, true, nil
}

func (e *ECS) fail(err error) error {
	if e.config.debugMode {
		panic(bark.AddTrace(err))
	}
	return err
}

func (e *ECS) failIfDebug(err error) error {
	if ce, ok := err.(CoreError); ok && !ce.Kind.internal() && !e.config.debugMode {
		return nil
	}
	return e.fail(err)
}

func (e *ECS) internalFail(err error) error {
	return e.fail(err)
}
