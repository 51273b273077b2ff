// Package service loads the WCA exports and answers rank lookups for the
// HTTP API and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	repository "github.com/okian/wcarank/internal/adapters/repository"
	"github.com/okian/wcarank/internal/adapters/source"
	"github.com/okian/wcarank/internal/domain/format"
	"github.com/okian/wcarank/internal/domain/merge"
	"github.com/okian/wcarank/internal/domain/model"
	"github.com/okian/wcarank/internal/domain/query"
	"github.com/okian/wcarank/internal/domain/types"
	"github.com/okian/wcarank/pkg/logger"
	"github.com/okian/wcarank/pkg/metrics"
)

// Load error kinds reported to metrics.
const (
	loadErrorFetch     = "fetch"
	loadErrorMalformed = "malformed"
	loadErrorEmpty     = "empty"
)

// snapshot is one loaded, merged and indexed dataset. It is never mutated.
type snapshot struct {
	id          string
	store       *repository.MemStore
	loadedAt    time.Time
	resultsRows int
	ranksRows   int
}

// Service owns the current dataset snapshot.
//
// Queries read the snapshot through an atomic pointer, so Reload never
// blocks them. Start, Reload and Stop are serialised.
type Service struct {
	mu      sync.Mutex
	loader  source.Loader
	logger  logger.Logger
	current atomic.Pointer[snapshot]
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLoader sets where the datasets come from.
func WithLoader(l source.Loader) Option {
	return func(s *Service) {
		if l != nil {
			s.loader = l
		}
	}
}

// New constructs a Service. It holds no data until Start succeeds.
func New(opts ...Option) *Service {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the datasets and builds the first snapshot. Calling Start on a
// started service is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.current.Load() != nil {
		return nil
	}

	s.logger.Info(ctx, "starting rank service...")
	snap, err := s.build(ctx)
	if err != nil {
		return err
	}
	s.current.Store(snap)
	s.logger.Info(ctx, "rank service started",
		logger.String("snapshot", snap.id),
		logger.Int("records", snap.store.Count(ctx)),
	)
	return nil
}

// Reload fetches fresh datasets and swaps them in. When the loader caches,
// the cache is dropped first. On failure the previous snapshot keeps
// serving and the error is returned.
func (s *Service) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.current.Load()
	if prev == nil {
		return ErrNotStarted
	}
	if inv, ok := s.loader.(interface{ Invalidate() }); ok {
		inv.Invalidate()
	}

	snap, err := s.build(ctx)
	if err != nil {
		s.logger.Warn(ctx, "reload failed, keeping previous snapshot",
			logger.String("snapshot", prev.id),
			logger.Error(err),
		)
		return err
	}
	s.current.Store(snap)
	s.logger.Info(ctx, "dataset reloaded",
		logger.String("previous", prev.id),
		logger.String("snapshot", snap.id),
		logger.Int("records", snap.store.Count(ctx)),
	)
	return nil
}

// Stop drops the snapshot. Later queries return ErrNotStarted.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current.Swap(nil) == nil {
		return
	}
	s.logger.Info(context.Background(), "rank service stopped")
}

func (s *Service) build(ctx context.Context) (*snapshot, error) {
	if s.loader == nil {
		return nil, ErrNoLoader
	}

	start := time.Now()
	ds, err := s.loader.Load(ctx)
	if err != nil {
		kind := loadErrorFetch
		if errors.Is(err, source.ErrMalformed) {
			kind = loadErrorMalformed
		}
		metrics.RecordDatasetLoadError(kind)
		return nil, fmt.Errorf("load dataset: %w", err)
	}

	if err := checkRows(ds); err != nil {
		metrics.RecordDatasetLoadError(loadErrorEmpty)
		return nil, err
	}

	merged := merge.Merge(ds.Results, ds.Ranks)
	metrics.UpdateMergedRows(len(merged))

	snap := &snapshot{
		id:          uuid.NewString(),
		store:       repository.NewMemStore(ctx, merged),
		loadedAt:    time.Now(),
		resultsRows: len(ds.Results),
		ranksRows:   len(ds.Ranks),
	}
	elapsed := time.Since(start)
	metrics.RecordDatasetLoad(float64(elapsed.Milliseconds()), snap.loadedAt.Unix())

	s.logger.Info(ctx, "dataset merged",
		logger.Int("results", snap.resultsRows),
		logger.Int("ranks", snap.ranksRows),
		logger.Int("merged", len(merged)),
		logger.Int("groups", snap.store.Groups()),
		logger.Duration("elapsed", elapsed),
	)
	return snap, nil
}

func checkRows(ds source.Dataset) error {
	if len(ds.Results) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyDataset, source.DatasetResults)
	}
	if len(ds.Ranks) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyDataset, source.DatasetRanks)
	}
	return nil
}

func (s *Service) active() (*snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrNotStarted
	}
	return snap, nil
}

// PersonByRank returns the first record for eventID and region matching spec.
func (s *Service) PersonByRank(ctx context.Context, eventID, region string, spec query.RankSpec) (model.UnifiedRecord, error) {
	snap, err := s.active()
	if err != nil {
		return model.UnifiedRecord{}, err
	}
	return snap.store.PersonByRank(ctx, eventID, region, spec)
}

// Lookup parses rankInput, finds the matching person and formats the result
// for display. Errors match query.ErrInvalidRankInput, repository.ErrNotFound
// or format.ErrDecode.
func (s *Service) Lookup(ctx context.Context, eventID, region, rankInput string) (types.Profile, error) {
	spec, err := query.ParseRankSpec(rankInput)
	if err != nil {
		metrics.RecordRankQuery(metrics.OutcomeInvalid, 0)
		return types.Profile{}, err
	}
	rec, err := s.PersonByRank(ctx, eventID, region, spec)
	if err != nil {
		return types.Profile{}, err
	}
	profile, err := NewProfile(rec)
	if err != nil {
		metrics.RecordDecodeError(rec.EventID)
		metrics.RecordRankQuery(metrics.OutcomeDecode, 0)
		s.log().Warn(ctx, "cannot format result",
			logger.String("personId", rec.PersonID),
			logger.String("eventId", rec.EventID),
			logger.Error(err),
		)
		return types.Profile{}, err
	}
	return profile, nil
}

// NewProfile renders a record for display.
func NewProfile(rec model.UnifiedRecord) (types.Profile, error) {
	best, err := format.FormatBestResult(rec.EventID, int64(rec.Best))
	if err != nil {
		return types.Profile{}, err
	}
	return types.Profile{
		Name:        rec.PersonName,
		PersonID:    rec.PersonID,
		EventID:     rec.EventID,
		Event:       format.FormatEventName(rec.EventID),
		Country:     rec.PersonCountryID,
		Rank:        format.FormatRank(rec.CountryRank),
		CountryRank: rec.CountryRank,
		BestResult:  best,
		Best:        rec.Best,
	}, nil
}

// Events returns the events present in the merged dataset with their
// display names, in first-seen order.
func (s *Service) Events(ctx context.Context) ([]types.EventOption, error) {
	snap, err := s.active()
	if err != nil {
		return nil, err
	}
	ids := snap.store.Events(ctx)
	out := make([]types.EventOption, len(ids))
	for i, id := range ids {
		out[i] = types.EventOption{ID: id, Name: format.FormatEventName(id)}
	}
	return out, nil
}

// Regions returns the country ids present in the merged dataset.
func (s *Service) Regions(ctx context.Context) ([]string, error) {
	snap, err := s.active()
	if err != nil {
		return nil, err
	}
	return snap.store.Regions(ctx), nil
}

// Records returns a copy of the merged dataset.
func (s *Service) Records(ctx context.Context) ([]model.UnifiedRecord, error) {
	snap, err := s.active()
	if err != nil {
		return nil, err
	}
	return snap.store.Records(ctx), nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	ctx := context.Background()
	snap := s.current.Load()
	stats := map[string]interface{}{
		"started": snap != nil,
	}
	if snap == nil {
		return stats
	}
	stats["snapshot"] = snap.id
	stats["loadedAt"] = snap.loadedAt.UTC().Format(time.RFC3339)
	stats["resultsRows"] = snap.resultsRows
	stats["ranksRows"] = snap.ranksRows
	stats["records"] = snap.store.Count(ctx)
	stats["groups"] = snap.store.Groups()
	stats["events"] = len(snap.store.Events(ctx))
	stats["regions"] = len(snap.store.Regions(ctx))
	return stats
}

func (s *Service) log() logger.Logger {
	if s.logger == nil {
		return logger.Get()
	}
	return s.logger
}
