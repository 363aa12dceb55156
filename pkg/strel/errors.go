package strel

import "errors"

// Sentinel errors reported at construction time, before any buffer is
// touched. They signal configuration mistakes by the caller.
var (
	// ErrInvalidLength indicates a structuring element length below 1.
	ErrInvalidLength = errors.New("strel: element length must be at least 1")

	// ErrNegativeOffset indicates a negative origin offset.
	ErrNegativeOffset = errors.New("strel: element offset must be non-negative")

	// ErrOffsetOutOfRange indicates an origin offset at or beyond the
	// element length.
	ErrOffsetOutOfRange = errors.New("strel: element offset must be smaller than the length")

	// ErrInvalidRadius indicates a negative element radius.
	ErrInvalidRadius = errors.New("strel: element radius must be non-negative")

	// ErrUnknownShape indicates a shape name the factory does not know.
	ErrUnknownShape = errors.New("strel: unknown structuring element shape")
)
