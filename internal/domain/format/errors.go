package format

import (
	"errors"
	"fmt"
)

// Sentinel kinds for formatting errors.
var (
	ErrDecode = errors.New("decode result failed")
)

// DecodeError reports a best value that cannot be rendered for its event.
type DecodeError struct {
	EventID string
	Value   int64
	Reason  string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s result %d: %s", e.EventID, e.Value, e.Reason)
}

// Is lets callers match any DecodeError with errors.Is(err, ErrDecode).
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}
