package lookupcli

import (
	"context"
	"errors"
	"fmt"
	"io"

	repository "github.com/okian/wcarank/internal/adapters/repository"
	"github.com/okian/wcarank/internal/adapters/source"
	service "github.com/okian/wcarank/internal/app"
	"github.com/okian/wcarank/internal/domain/types"
	"github.com/okian/wcarank/pkg/logger"
)

// backend is what a lookup needs; both the local service and the remote
// client provide it.
type backend interface {
	Lookup(ctx context.Context, eventID, region, rankInput string) (types.Profile, error)
	Events(ctx context.Context) ([]types.EventOption, error)
}

// Run performs one lookup and prints the result to out. A lookup with no
// match prints NotFoundMessage and is not an error.
func Run(ctx context.Context, cfg *Config, out io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	log := logger.Named("lookup")

	b, stop, err := newBackend(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer stop()

	if cfg.ListEvents {
		events, err := b.Events(ctx)
		if err != nil {
			return fmt.Errorf("list events: %w", err)
		}
		return PrintEvents(out, events)
	}

	log.Debug(ctx, "looking up rank",
		logger.String("event", cfg.Event),
		logger.String("region", cfg.Region),
		logger.String("rank", cfg.Rank),
	)
	profile, err := b.Lookup(ctx, cfg.Event, cfg.Region, cfg.Rank)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return PrintNotFound(out)
	case err != nil:
		return err
	}
	return PrintProfile(out, profile)
}

func newBackend(ctx context.Context, cfg *Config, log logger.Logger) (backend, func(), error) {
	if cfg.ServerURL != "" {
		log.Debug(ctx, "using server", logger.String("url", cfg.ServerURL))
		return newRemoteClient(cfg.ServerURL, cfg.Timeout), func() {}, nil
	}

	loader := source.NewTSVLoader(
		source.NewSource(cfg.ResultsSource, cfg.Timeout),
		source.NewSource(cfg.RanksSource, cfg.Timeout),
		source.WithLogger(log),
	)
	svc := service.New(service.WithLogger(log), service.WithLoader(loader))
	if err := svc.Start(ctx); err != nil {
		return nil, nil, err
	}
	return svc, svc.Stop, nil
}
