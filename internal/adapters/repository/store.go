// Package repository defines the ranking store interface and errors.
package repository

import (
	"context"

	"github.com/okian/wcarank/internal/domain/model"
	"github.com/okian/wcarank/internal/domain/query"
)

// Store provides read access to the joined ranking records. Implementations
// are immutable once built.
type Store interface {
	// PersonByRank returns the first record for eventID and region whose
	// country rank matches spec. Returns ErrNotFound when nothing matches.
	PersonByRank(ctx context.Context, eventID, region string, spec query.RankSpec) (model.UnifiedRecord, error)

	// Events returns the distinct event ids in first-seen order.
	Events(ctx context.Context) []string

	// Regions returns the distinct country ids in first-seen order.
	Regions(ctx context.Context) []string

	// Records returns a copy of every record in load order.
	Records(ctx context.Context) []model.UnifiedRecord

	// Count returns the number of records held.
	Count(ctx context.Context) int
}
