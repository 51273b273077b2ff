// Package merge joins the results and ranks datasets into unified records.
package merge

import (
	"github.com/okian/wcarank/internal/domain/model"
	"github.com/samber/lo"
)

// Merge inner-joins results and ranks on (PersonID, EventID, Best).
//
// Output follows the order of results; a result matching several rank rows
// yields one record per match, in ranks order. Rows without a partner on the
// other side are dropped.
func Merge(results []model.ResultRecord, ranks []model.RankRecord) []model.UnifiedRecord {
	if len(results) == 0 || len(ranks) == 0 {
		return []model.UnifiedRecord{}
	}

	byKey := make(map[model.JoinKey][]int, len(ranks))
	for i, r := range ranks {
		k := r.Key()
		byKey[k] = append(byKey[k], i)
	}

	out := make([]model.UnifiedRecord, 0, min(len(results), len(ranks)))
	for _, res := range results {
		for _, i := range byKey[res.Key()] {
			out = append(out, model.UnifiedRecord{
				PersonID:        res.PersonID,
				EventID:         res.EventID,
				PersonCountryID: res.PersonCountryID,
				Best:            res.Best,
				PersonName:      res.PersonName,
				CountryRank:     ranks[i].CountryRank,
			})
		}
	}
	return out
}

// AvailableEvents returns the distinct event ids in first-seen order.
func AvailableEvents(records []model.UnifiedRecord) []string {
	return lo.Uniq(lo.Map(records, func(r model.UnifiedRecord, _ int) string {
		return r.EventID
	}))
}

// AvailableRegions returns the distinct country ids in first-seen order.
func AvailableRegions(records []model.UnifiedRecord) []string {
	return lo.Uniq(lo.Map(records, func(r model.UnifiedRecord, _ int) string {
		return r.PersonCountryID
	}))
}
