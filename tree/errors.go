package tree

import (
	"errors"
	"fmt"
)

// Common errors reported while loading and validating trees.
var (
	// ErrEmptyTree is returned when the input describes a tree with no keys.
	ErrEmptyTree = errors.New("tree is empty")
	// ErrMalformedInput is returned when the input JSON cannot be decoded
	// or does not follow the level/node/key nesting.
	ErrMalformedInput = errors.New("malformed tree input")
)

// ShapeError reports a violation of the B+ Tree shape invariants:
// too many keys for the configured fanout, uneven leaf depth, or
// broken parent-child linkage.
type ShapeError struct {
	Node   string // name of the offending node
	Reason string
}

func (e *ShapeError) Error() string {
	if e.Node == "" {
		return fmt.Sprintf("invalid tree shape: %s", e.Reason)
	}
	return fmt.Sprintf("invalid tree shape: node %s: %s", e.Node, e.Reason)
}
