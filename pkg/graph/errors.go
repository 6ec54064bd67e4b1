package graph

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the library.
var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrSchemaMismatch  = errors.New("schema mismatch")
	ErrUnknownProperty = errors.New("unknown property")
)

// GraphError provides structured error information for graph operations.
type GraphError struct {
	Op     string // Operation that failed (e.g., "node", "edges", "score")
	Entity string // Entity type (e.g., "node", "property", "edge")
	Index  int    // Offending index, if applicable
	Field  string // Property name, for property operations
	Cause  error  // Underlying error
}

// Error implements the error interface.
func (e *GraphError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s %s %q: %v", e.Op, e.Entity, e.Field, e.Cause)
	}
	return fmt.Sprintf("%s %s %d: %v", e.Op, e.Entity, e.Index, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *GraphError) Unwrap() error {
	return e.Cause
}

// NodeRangeError reports a node index outside [0, N).
func NodeRangeError(op string, index int) error {
	return &GraphError{Op: op, Entity: "node", Index: index, Cause: ErrIndexOutOfRange}
}

// PropertyError reports a missing or malformed named property.
func PropertyError(op, name string, cause error) error {
	return &GraphError{Op: op, Entity: "property", Field: name, Cause: cause}
}
