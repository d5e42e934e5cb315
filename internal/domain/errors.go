package domain

import "errors"

var (
	// ErrInvalidQuery covers empty queries and unsupported search kinds.
	ErrInvalidQuery = errors.New("invalid search query")

	// ErrInvalidInput covers malformed report or contact payloads.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicateReport is returned when a reporter files the same number
	// twice on the same calendar day.
	ErrDuplicateReport = errors.New("number already reported today")

	// ErrDataUnavailable signals an unreachable store or ledger. It is never
	// downgraded to an empty or zero-score result.
	ErrDataUnavailable = errors.New("data store unavailable")

	// ErrNotFound is returned when a record does not exist or is not visible
	// to the caller. Ownership mismatches look identical to absence.
	ErrNotFound = errors.New("not found")
)
