// Package format renders encoded WCA values (results, ranks, event codes)
// as display strings.
package format

import (
	"fmt"
	"strconv"
	"strings"
)

// Event codes with non-time encodings.
const (
	EventMultiBlind  = "333mbf"
	EventFewestMoves = "333fm"
)

const (
	centisecondsPerMinute = 6000
	centisecondsPerSecond = 100
	secondsPerMinute      = 60

	// mbfPoints is the constant the points digits are subtracted from.
	mbfPoints = 99
	// mbfWidth is the zero-padded width of a multi-blind value.
	mbfWidth = 8
)

// FormatBestResult renders best according to the encoding used by eventID:
// packed digits for multi-blind, a move count for fewest moves, and
// centiseconds for everything else. Negative values are rejected.
func FormatBestResult(eventID string, best int64) (string, error) {
	if best < 0 {
		return "", &DecodeError{EventID: eventID, Value: best, Reason: "negative value"}
	}
	switch eventID {
	case EventMultiBlind:
		return FormatMBFResult(best)
	case EventFewestMoves:
		return strconv.FormatInt(best, 10), nil
	default:
		return FormatTime(best)
	}
}

// FormatMBFResult decodes a multi-blind value.
//
// The value is zero-padded to 8 digits and split as PP T..T MM: PP are the
// points digits, the middle digits are the elapsed seconds and MM is the
// number of missed cubes. solved = 99 - PP + MM, attempted = solved + MM.
func FormatMBFResult(best int64) (string, error) {
	if best < 0 {
		return "", &DecodeError{EventID: EventMultiBlind, Value: best, Reason: "negative value"}
	}
	digits := fmt.Sprintf("%0*d", mbfWidth, best)

	points, _ := strconv.ParseInt(digits[:2], 10, 64)
	seconds, _ := strconv.ParseInt(digits[2:len(digits)-2], 10, 64)
	missed, _ := strconv.ParseInt(digits[len(digits)-2:], 10, 64)

	solved := mbfPoints - points + missed
	attempted := solved + missed
	minutes, rem := seconds/secondsPerMinute, seconds%secondsPerMinute

	return fmt.Sprintf("%d/%d %d:%02d", solved, attempted, minutes, rem), nil
}

// FormatTime renders centiseconds as "m:ss.cc", or "s.cc" below one minute.
func FormatTime(centiseconds int64) (string, error) {
	if centiseconds < 0 {
		return "", &DecodeError{EventID: "time", Value: centiseconds, Reason: "negative value"}
	}
	minutes, rem := centiseconds/centisecondsPerMinute, centiseconds%centisecondsPerMinute
	seconds, fractional := rem/centisecondsPerSecond, rem%centisecondsPerSecond
	if minutes > 0 {
		return fmt.Sprintf("%d:%02d.%02d", minutes, seconds, fractional), nil
	}
	return fmt.Sprintf("%d.%02d", seconds, fractional), nil
}

// ParseTime is the inverse of FormatTime. It accepts "m:ss.cc" and "s.cc".
func ParseTime(s string) (int64, error) {
	var minutes int64
	rest := s
	if m, r, ok := strings.Cut(s, ":"); ok {
		v, err := strconv.ParseInt(m, 10, 64)
		if err != nil || v < 0 {
			return 0, fmt.Errorf("parse minutes %q: %w", s, ErrDecode)
		}
		if len(strings.SplitN(r, ".", 2)[0]) != 2 {
			return 0, fmt.Errorf("parse seconds %q: %w", s, ErrDecode)
		}
		minutes, rest = v, r
	}
	sec, frac, ok := strings.Cut(rest, ".")
	if !ok || len(frac) != 2 {
		return 0, fmt.Errorf("parse fraction %q: %w", s, ErrDecode)
	}
	seconds, err := strconv.ParseInt(sec, 10, 64)
	if err != nil || seconds < 0 || seconds >= secondsPerMinute && minutes > 0 {
		return 0, fmt.Errorf("parse seconds %q: %w", s, ErrDecode)
	}
	fractional, err := strconv.ParseInt(frac, 10, 64)
	if err != nil || fractional < 0 {
		return 0, fmt.Errorf("parse fraction %q: %w", s, ErrDecode)
	}
	return minutes*centisecondsPerMinute + seconds*centisecondsPerSecond + fractional, nil
}
