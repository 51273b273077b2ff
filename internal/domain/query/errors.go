package query

import (
	"errors"
	"fmt"
)

// Sentinel kinds for query errors.
var (
	ErrInvalidRankInput = errors.New("invalid rank input")
)

// InvalidRankInputError reports rank input that is neither "lowest" nor a
// non-negative integer.
type InvalidRankInputError struct {
	Input string
}

func (e *InvalidRankInputError) Error() string {
	return fmt.Sprintf("invalid rank %q: enter a rank number or 'lowest'", e.Input)
}

// Is lets callers match with errors.Is(err, ErrInvalidRankInput).
func (e *InvalidRankInputError) Is(target error) bool {
	return target == ErrInvalidRankInput
}
