package ecstore

// Config holds process-wide defaults read once when an ECS is constructed.
// Mirrors the warehouse-style package-level configuration singleton: set it
// before calling Factory.NewECS, since an instance snapshots it at
// construction and never re-reads it.
var Config config = config{}

type config struct {
	debugMode      bool
	profilingMode  bool
}

// SetDebugMode enables full argument validation and fail-fast error
// reporting on every public call. With it off, callers are trusted: stale
// or out-of-range handles/ids cause silent no-ops instead of errors; only
// internal-invariant violations and InvalidOperation (mutation during an
// active iteration) are returned as errors, without a panic.
func (c *config) SetDebugMode(on bool) {
	c.debugMode = on
}

// DebugMode reports the current debug setting.
func (c *config) DebugMode() bool {
	return c.debugMode
}

// SetProfilingMode enables a CPU profile that runs from New to Close for
// each ECS instance; individual operations are not timed.
// Purely diagnostic: it never changes the result of an operation.
func (c *config) SetProfilingMode(on bool) {
	c.profilingMode = on
}

// ProfilingMode reports the current profiling setting.
func (c *config) ProfilingMode() bool {
	return c.profilingMode
}

// snapshot captures Config's values at ECS construction time.
type configSnapshot struct {
	debugMode     bool
	profilingMode bool
}

func snapshotConfig() configSnapshot {
	return configSnapshot{
		debugMode:     Config.debugMode,
		profilingMode: Config.profilingMode,
	}
}
