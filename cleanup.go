package ecstore

// Cleanup unlinks every edge into or out of an emptied archetype, discards the
// query cache wholesale, and surfaces MemoryError if the id space is
// exhausted (spec.md §4.8). It is the only operation that tears down
// edges; Despawn/Remove/Set only mark an archetype pending cleanup.
func (e *ECS) Cleanup() error {
	if err := e.checkMutable(); err != nil {
		return e.fail(err)
	}
	e.index.cleanupDeadArchetypes()
	e.queryCache.Clear()
	e.bus.publish(Event{Topic: OnCleanup})
	if e.allocator.Exhausted() {
		return e.internalFail(newError(MemoryError, "entity id space exhausted"))
	}
	return nil
}
