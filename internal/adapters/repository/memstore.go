package repository

import (
	"context"
	"time"

	"github.com/okian/wcarank/internal/domain/merge"
	"github.com/okian/wcarank/internal/domain/model"
	"github.com/okian/wcarank/internal/domain/query"
	"github.com/okian/wcarank/pkg/metrics"
)

const microsecondsPerMillisecond = 1000

// groupKey selects the records of one event within one country.
type groupKey struct {
	eventID string
	region  string
}

// MemStore is an in-memory Store indexed by (event, region).
//
// Each group keeps its records in load order, so lookups see the same
// iteration order as a linear scan over the full record set.
type MemStore struct {
	records []model.UnifiedRecord
	groups  map[groupKey][]model.UnifiedRecord
	events  []string
	regions []string
}

// NewMemStore indexes records. The slice is copied; later changes by the
// caller are not visible to the store.
func NewMemStore(_ context.Context, records []model.UnifiedRecord) *MemStore {
	s := &MemStore{
		records: make([]model.UnifiedRecord, len(records)),
		groups:  make(map[groupKey][]model.UnifiedRecord),
	}
	copy(s.records, records)

	for _, r := range s.records {
		k := groupKey{eventID: r.EventID, region: r.PersonCountryID}
		s.groups[k] = append(s.groups[k], r)
	}
	s.events = merge.AvailableEvents(s.records)
	s.regions = merge.AvailableRegions(s.records)

	metrics.UpdateIndexGroups(len(s.groups))
	return s
}

// PersonByRank implements Store.
func (s *MemStore) PersonByRank(_ context.Context, eventID, region string, spec query.RankSpec) (rec model.UnifiedRecord, err error) {
	start := time.Now()
	defer func() {
		outcome := metrics.OutcomeFound
		if err != nil {
			outcome = metrics.OutcomeNotFound
		}
		metrics.RecordRankQuery(outcome, float64(time.Since(start).Microseconds())/microsecondsPerMillisecond)
	}()

	subset := s.groups[groupKey{eventID: eventID, region: region}]
	rank, ok := query.Resolve(subset, spec)
	if !ok {
		return model.UnifiedRecord{}, ErrNotFound
	}
	rec, ok = query.FirstWithRank(subset, rank)
	if !ok {
		return model.UnifiedRecord{}, ErrNotFound
	}
	return rec, nil
}

// Events implements Store.
func (s *MemStore) Events(_ context.Context) []string {
	return append([]string(nil), s.events...)
}

// Regions implements Store.
func (s *MemStore) Regions(_ context.Context) []string {
	return append([]string(nil), s.regions...)
}

// Records implements Store.
func (s *MemStore) Records(_ context.Context) []model.UnifiedRecord {
	return append([]model.UnifiedRecord(nil), s.records...)
}

// Count implements Store.
func (s *MemStore) Count(_ context.Context) int {
	return len(s.records)
}

// Groups returns the number of (event, region) groups indexed.
func (s *MemStore) Groups() int {
	return len(s.groups)
}
