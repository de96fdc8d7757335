// Package types holds the on-disk structures and sentinel errors shared
// across the VMFS reader: decoded descriptors, block-id constants, and
// the small set of failure kinds the core can raise.
package types

import "errors"

// Error kinds raised by the decoders, volume bootstrap, and file/directory
// machinery. Callers distinguish them with errors.Is; wrapping always goes
// through fmt.Errorf("...: %w", ...).
var (
	// ErrShortRead is returned when the backing image yields fewer bytes
	// than a structure requires.
	ErrShortRead = errors.New("vmfs: short read")

	// ErrBadMagic is returned when a decoded structure's magic number does
	// not match the expected constant.
	ErrBadMagic = errors.New("vmfs: bad magic")

	// ErrUnexpectedBlockType is returned when a block id encodes a type
	// that is not valid in the context it was found.
	ErrUnexpectedBlockType = errors.New("vmfs: unexpected block type")

	// ErrNotFound is returned when a path segment has no matching record
	// in the current directory.
	ErrNotFound = errors.New("vmfs: not found")

	// ErrOutOfRange is returned when a positional block-list lookup asks
	// for an index at or past the list's total.
	ErrOutOfRange = errors.New("vmfs: out of range")

	// ErrOom is returned when an allocation failed.
	ErrOom = errors.New("vmfs: out of memory")
)
