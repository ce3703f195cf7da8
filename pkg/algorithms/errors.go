package algorithms

import "errors"

// Common sentinel errors
var (
	// ErrEmptyGraph is returned when an algorithm needs at least one node.
	ErrEmptyGraph = errors.New("graph has no nodes")
	// ErrInsufficientNodes is returned when a normalisation needs N >= 2.
	ErrInsufficientNodes = errors.New("graph needs at least two nodes")
	// ErrNoCommunities is returned when selection runs on an empty partition.
	ErrNoCommunities = errors.New("no communities detected")
	// ErrInvalidSelectionParameter is returned for negative bounds or a label
	// bound exceeding the core bound.
	ErrInvalidSelectionParameter = errors.New("invalid selection parameter")
)
