package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidArgument indicates a ranking call was configured with an
	// out-of-range parameter (non-positive top-k, negative length penalty).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnsupportedType indicates an unknown file format or normaliser type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrEmptySource indicates a corpus source path yielded no readable files.
	ErrEmptySource = errors.New("source contains no documents")
)
