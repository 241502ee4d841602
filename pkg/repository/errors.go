package repository

import "errors"

var (
	// ErrNotFound reports a missing referenced row, e.g. a gap report for an
	// unknown user. Plain lookups return nil instead.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey reports a uniqueness violation such as a reused email.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrStorageUnavailable reports that the backing store cannot be reached
	// or is unusable. Callers do not retry it.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrMalformedEncoding reports a stored list column that is neither empty
	// nor a valid encoded list.
	ErrMalformedEncoding = errors.New("malformed encoding")

	// ErrConflict reports that a read-modify-write lost to concurrent writers
	// more times than allowed.
	ErrConflict = errors.New("concurrent update conflict")
)
