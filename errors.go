package spanrope

import "errors"

var (
	// ErrOutOfRange signals that no node on the traversal path owns a key.
	ErrOutOfRange = errors.New("spanrope: key out of range")
	// ErrMalformed signals an internal structure violating a rope invariant,
	// e.g. an incomplete split.
	ErrMalformed = errors.New("spanrope: malformed node")
	// ErrInvalidConfig signals an invalid rope configuration.
	ErrInvalidConfig = errors.New("spanrope: invalid configuration")
)
