package bptree

import "github.com/cockroachdb/errors"

var (
	// ErrInvalidConfig signals an invalid tree configuration.
	ErrInvalidConfig = errors.New("bptree: invalid configuration")
	// ErrUnsortedInput signals that a bulk build was fed keys out of order
	// or with duplicates.
	ErrUnsortedInput = errors.New("bptree: input not strictly ascending")
	// ErrCorrupted signals a violated structural invariant. It is only ever
	// returned by Check and indicates a bug in the tree algorithms.
	ErrCorrupted = errors.New("bptree: tree invariant violated")
)
