package source

import (
	"context"
	"io"

	"github.com/okian/wcarank/internal/domain/model"
	"github.com/okian/wcarank/pkg/logger"
	"github.com/okian/wcarank/pkg/metrics"
)

// Dataset names used in logs, errors and metrics.
const (
	DatasetResults = "results"
	DatasetRanks   = "ranks"
)

// Dataset holds both raw exports. Consumers must treat the slices as
// read-only; loaders may hand the same Dataset to several callers.
type Dataset struct {
	Results []model.ResultRecord
	Ranks   []model.RankRecord
}

// Loader produces a Dataset. Failures are *FetchError values; retrying is
// up to the caller.
type Loader interface {
	Load(ctx context.Context) (Dataset, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context) (Dataset, error)

// Load implements Loader.
func (f LoaderFunc) Load(ctx context.Context) (Dataset, error) { return f(ctx) }

// TSVLoader reads the results and ranks exports from two Sources.
type TSVLoader struct {
	results Source
	ranks   Source
	logger  logger.Logger
}

// Option applies a configuration option to the TSVLoader.
type Option func(*TSVLoader)

// WithLogger sets the logger used to report loads.
func WithLogger(l logger.Logger) Option {
	return func(t *TSVLoader) {
		if l != nil {
			t.logger = l
		}
	}
}

// NewTSVLoader creates a loader reading results and ranks exports.
func NewTSVLoader(results, ranks Source, opts ...Option) *TSVLoader {
	t := &TSVLoader{results: results, ranks: ranks}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Load implements Loader.
func (t *TSVLoader) Load(ctx context.Context) (Dataset, error) {
	var ds Dataset
	var err error

	ds.Results, err = readDataset(ctx, DatasetResults, t.results, ParseResults)
	if err != nil {
		return Dataset{}, err
	}
	t.logRows(ctx, DatasetResults, t.results, len(ds.Results))

	ds.Ranks, err = readDataset(ctx, DatasetRanks, t.ranks, ParseRanks)
	if err != nil {
		return Dataset{}, err
	}
	t.logRows(ctx, DatasetRanks, t.ranks, len(ds.Ranks))

	return ds, nil
}

func (t *TSVLoader) logRows(ctx context.Context, dataset string, src Source, rows int) {
	metrics.UpdateDatasetRows(dataset, rows)
	if t.logger != nil {
		t.logger.Info(ctx, "dataset read",
			logger.String("dataset", dataset),
			logger.String("location", src.Location()),
			logger.Int("rows", rows),
		)
	}
}

func readDataset[T any](ctx context.Context, name string, src Source, parse func(io.Reader) ([]T, error)) ([]T, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, &FetchError{Dataset: name, Location: src.Location(), Err: err}
	}
	defer func() { _ = rc.Close() }()

	rows, err := parse(rc)
	if err != nil {
		return nil, &FetchError{Dataset: name, Location: src.Location(), Err: err}
	}
	if ctx.Err() != nil {
		return nil, &FetchError{Dataset: name, Location: src.Location(), Err: ctx.Err()}
	}
	return rows, nil
}
