package main

import "errors"

var (
	// ErrUnsupportedShape is returned when a transform cannot handle the
	// field layout of a declaration (no fields, embedded-only fields for a
	// transform that needs names, a non-struct type).
	ErrUnsupportedShape = errors.New("unsupported struct shape")

	// ErrMalformedField is returned when a field lacks information a well
	// formed declaration always carries, or its tag cannot be parsed.
	ErrMalformedField = errors.New("malformed field")

	ErrNoStructs        = errors.New("no structs found")
	ErrUnknownTransform = errors.New("unknown transform")
	ErrInvalidOption    = errors.New("invalid option")
)
