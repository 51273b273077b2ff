// Package query resolves a requested country rank to a single record.
package query

import (
	"math"
	"strconv"
	"strings"

	"github.com/okian/wcarank/internal/domain/model"
)

// LowestToken selects the worst (numerically largest) rank in a subset.
const LowestToken = "lowest"

// RankSpec is a parsed rank request: either a rank number or "lowest".
type RankSpec struct {
	lowest bool
	number int
}

// Lowest returns the spec selecting the largest rank present.
func Lowest() RankSpec { return RankSpec{lowest: true} }

// Number returns the spec selecting rank n.
func Number(n int) RankSpec { return RankSpec{number: n} }

// IsLowest reports whether the spec selects the largest rank.
func (s RankSpec) IsLowest() bool { return s.lowest }

// Value returns the requested rank number; it is zero for Lowest.
func (s RankSpec) Value() int { return s.number }

func (s RankSpec) String() string {
	if s.lowest {
		return LowestToken
	}
	return strconv.Itoa(s.number)
}

// ParseRankSpec accepts "lowest" (any case, surrounding spaces ignored) or a
// non-negative base-10 integer.
func ParseRankSpec(input string) (RankSpec, error) {
	in := strings.TrimSpace(input)
	if strings.EqualFold(in, LowestToken) {
		return Lowest(), nil
	}
	n, err := strconv.Atoi(in)
	if err != nil || n < 0 {
		return RankSpec{}, &InvalidRankInputError{Input: input}
	}
	return Number(n), nil
}

// Resolve turns spec into the rank value to match within subset. It reports
// false when spec is Lowest and subset holds no numeric rank.
func Resolve(subset []model.UnifiedRecord, spec RankSpec) (float64, bool) {
	if !spec.lowest {
		return float64(spec.number), true
	}
	found := false
	highest := 0.0
	for _, r := range subset {
		if math.IsNaN(r.CountryRank) {
			continue
		}
		if !found || r.CountryRank > highest {
			highest = r.CountryRank
			found = true
		}
	}
	return highest, found
}

// FirstWithRank returns the first record of subset whose CountryRank equals
// rank. Ties resolve to the earliest record.
func FirstWithRank(subset []model.UnifiedRecord, rank float64) (model.UnifiedRecord, bool) {
	for _, r := range subset {
		if r.CountryRank == rank {
			return r, true
		}
	}
	return model.UnifiedRecord{}, false
}

// PersonByRank filters records to eventID and region, resolves spec against
// that subset and returns the first matching record. The bool is false when
// nothing matches.
func PersonByRank(records []model.UnifiedRecord, eventID, region string, spec RankSpec) (model.UnifiedRecord, bool) {
	subset := Filter(records, eventID, region)
	rank, ok := Resolve(subset, spec)
	if !ok {
		return model.UnifiedRecord{}, false
	}
	return FirstWithRank(subset, rank)
}

// Filter keeps records whose EventID and PersonCountryID match exactly,
// preserving order.
func Filter(records []model.UnifiedRecord, eventID, region string) []model.UnifiedRecord {
	var out []model.UnifiedRecord
	for _, r := range records {
		if r.EventID == eventID && r.PersonCountryID == region {
			out = append(out, r)
		}
	}
	return out
}
