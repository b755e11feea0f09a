package ecstore

// factory implements the factory pattern the teacher uses for every
// constructed value in the package, so construction reads the same way
// regardless of which type is being built.
type factory struct{}

// Factory is the package's single construction entry point.
var Factory factory

// NewECS returns a ready-to-use ECS, snapshotting Config's current
// DebugMode/ProfilingMode for the instance's lifetime.
func (f factory) NewECS() *ECS {
	return New()
}

// FactoryNewCache returns a bounded Cache keyed by K, used internally for
// the transition-edge and query result caches and exposed for callers who
// want the same collision-bucketed bounded-capacity behaviour. A free
// function, not a factory method: Go methods cannot carry their own type
// parameters.
func FactoryNewCache[K comparable, T any](capacity int) Cache[K, T] {
	return NewSimpleCache[K, T](capacity)
}
