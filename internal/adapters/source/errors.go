package source

import (
	"errors"
	"fmt"
)

// Sentinel kinds for dataset loading errors.
var (
	ErrFetch     = errors.New("fetch dataset failed")
	ErrMalformed = errors.New("malformed dataset")
)

// FetchError reports a dataset that could not be fetched or parsed. It
// matches ErrFetch, and ErrMalformed as well when parsing failed.
type FetchError struct {
	Dataset  string
	Location string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s from %s: %v", e.Dataset, e.Location, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is reports whether target is ErrFetch.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetch
}

// malformedf builds a parse error that matches ErrMalformed.
func malformedf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
}
