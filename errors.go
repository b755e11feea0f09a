package ecstore

import "fmt"

// ErrorKind classifies the failures a core operation can report, per the
// taxonomy the core's callers are expected to branch on.
type ErrorKind int

const (
	// InvalidEntity means a handle decoded to an unknown id, or its
	// generation did not match the live generation for that id.
	InvalidEntity ErrorKind = iota
	// InvalidComponent means a component id fell outside [1, B].
	InvalidComponent
	// InvalidOperation means re-entrant mutation during active iteration,
	// or misuse of the query builder (e.g. an empty required-component list).
	InvalidOperation
	// ArchetypeError means an internal row/column invariant was violated.
	ArchetypeError
	// TransitionError means an internal transition invariant was violated.
	TransitionError
	// QueryError means a malformed query composition.
	QueryError
	// MemoryError means the 24-bit entity id space is exhausted.
	MemoryError
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidEntity:
		return "INVALID_ENTITY"
	case InvalidComponent:
		return "INVALID_COMPONENT"
	case InvalidOperation:
		return "INVALID_OPERATION"
	case ArchetypeError:
		return "ARCHETYPE_ERROR"
	case TransitionError:
		return "TRANSITION_ERROR"
	case QueryError:
		return "QUERY_ERROR"
	case MemoryError:
		return "MEMORY_ERROR"
	default:
		return "UNKNOWN_ERROR"
	}
}

// CoreError is the error type returned by every public operation that can
// fail. The Kind distinguishes user-caused failures (InvalidEntity,
// InvalidComponent, InvalidOperation, QueryError) from internal-invariant
// violations (ArchetypeError, TransitionError, MemoryError), which always
// surface regardless of Config.DebugMode.
type CoreError struct {
	Kind    ErrorKind
	Message string
}

func (e CoreError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newError(kind ErrorKind, format string, args ...any) CoreError {
	return CoreError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// internal reports whether a kind always surfaces, even with DebugMode off.
func (k ErrorKind) internal() bool {
	switch k {
	case ArchetypeError, TransitionError, MemoryError:
		return true
	default:
		return false
	}
}
