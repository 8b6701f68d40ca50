// Package matchbook manages the match catalog. Matches are created by
// admins and immutable afterwards, which is what makes the read cache safe.
package matchbook

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/betledger/betledger/internal/apperr"
	"github.com/betledger/betledger/internal/infra/cache"
	"github.com/betledger/betledger/internal/repos/matches"
	pgmatches "github.com/betledger/betledger/internal/repos/matches/postgres"
)

const listCacheKey = "matches:list"

type Service struct {
	matches matches.Matches
	cache   *cache.Cache // nil disables caching
}

func New(db *sql.DB, c *cache.Cache) *Service {
	return &Service{
		matches: pgmatches.New(db),
		cache:   c,
	}
}

// Create inserts a match and invalidates the list cache.
func (s *Service) Create(ctx context.Context, home, away string, odds decimal.Decimal) (matches.Match, error) {
	if home == "" || away == "" {
		return matches.Match{}, apperr.Validation("home and away are required")
	}
	if !odds.IsPositive() {
		return matches.Match{}, apperr.Validation("odds must be positive")
	}

	m, err := s.matches.Insert(ctx, home, away, odds)
	if err != nil {
		return matches.Match{}, fmt.Errorf("create match: %w", err)
	}

	if s.cache != nil {
		cerr := s.cache.Delete(ctx, listCacheKey)
		if cerr != nil {
			slog.Warn("invalidate match cache", "error", cerr)
		}
	}

	return m, nil
}

// List returns all matches, newest first, through the cache when available.
// Cache failures degrade to a straight query.
func (s *Service) List(ctx context.Context) ([]matches.Match, error) {
	if s.cache != nil {
		var cached []matches.Match

		found, cerr := s.cache.Get(ctx, listCacheKey, &cached)
		if cerr == nil && found {
			return cached, nil
		}
		if cerr != nil {
			slog.Warn("read match cache", "error", cerr)
		}
	}

	out, err := s.matches.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	if s.cache != nil {
		cerr := s.cache.Set(ctx, listCacheKey, out)
		if cerr != nil {
			slog.Warn("write match cache", "error", cerr)
		}
	}

	return out, nil
}
