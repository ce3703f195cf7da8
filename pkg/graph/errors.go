package graph

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrNodeNotFound  = errors.New("node not found")
	ErrSelfLoop      = errors.New("self-loop not allowed")
	ErrDuplicateEdge = errors.New("duplicate edge")
	ErrInvalidWeight = errors.New("edge weight must be at least 1")
)

// GraphError provides structured error information for graph operations.
type GraphError struct {
	Op     string // Operation that failed (e.g., "AddEdge", "Subgraph")
	Entity string // Entity type (e.g., "node", "edge")
	ID     string // Node ID or "src->dst" edge key (if applicable)
	Cause  error  // Underlying error
}

// Error implements the error interface.
func (e *GraphError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s %q: %v", e.Op, e.Entity, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *GraphError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *GraphError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

func newEdgeError(op, src, dst string, cause error) *GraphError {
	return &GraphError{Op: op, Entity: "edge", ID: src + "->" + dst, Cause: cause}
}

func newNodeError(op, id string, cause error) *GraphError {
	return &GraphError{Op: op, Entity: "node", ID: id, Cause: cause}
}
