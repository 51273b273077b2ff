package format

import (
	"math"
	"strconv"
)

// unrankedLabel is shown for ranks that carry no number.
const unrankedLabel = "unranked"

// FormatRank truncates rank to an integer and appends an ordinal suffix.
//
// Only the exact values 1, 2 and 3 get "st", "nd" and "rd"; every other value
// gets "th", so 21 renders as "21th".
func FormatRank(rank float64) string {
	if math.IsNaN(rank) || math.IsInf(rank, 0) {
		return unrankedLabel
	}
	n := int64(rank)
	s := strconv.FormatInt(n, 10)
	switch n {
	case 1:
		return s + "st"
	case 2:
		return s + "nd"
	case 3:
		return s + "rd"
	default:
		return s + "th"
	}
}
