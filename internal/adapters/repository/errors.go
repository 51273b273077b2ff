package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound = errors.New("no person found with the specified criteria")
)
