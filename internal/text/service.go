// Package text fetches scripture text for passages while keeping requests
// inside a provider's length budget and reusing cached results.
package text

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/FocuswithJustin/passage/core/errors"
	"github.com/FocuswithJustin/passage/core/passage"
	"github.com/FocuswithJustin/passage/internal/cache"
	"github.com/FocuswithJustin/passage/internal/logging"
)

// Source returns the text of one passage.
type Source interface {
	Name() string
	Fetch(ctx context.Context, p passage.Passage, opts Options) (string, error)
}

// cacheKey identifies cached text. Options that change the text are part of
// the key so results never leak across option sets.
type cacheKey struct {
	start, end int
	references bool
}

func (k cacheKey) String() string {
	return fmt.Sprintf("%d-%d-%t", k.start, k.end, k.references)
}

// Service truncates passages to the configured budget and serves their text
// from cache or from a Source.
type Service struct {
	source Source
	cache  *cache.BudgetCache[cacheKey, string]
	flight singleflight.Group
}

// NewService returns a Service over src with a cache bounded by limits.
func NewService(src Source, limits cache.Limits) *Service {
	return &Service{
		source: src,
		cache:  cache.New[cacheKey, string](limits),
	}
}

// Passage returns the text of p, shortened to fit opts. truncated reports
// whether the text covers less than p.
func (s *Service) Passage(ctx context.Context, p passage.Passage, opts Options) (text string, truncated bool, err error) {
	if err := opts.Validate(); err != nil {
		return "", false, err
	}
	if err := p.Validate(); err != nil {
		return "", false, err
	}
	ctx = withRequestID(ctx)

	fetch, ok := p.Truncate(passage.ByVerses(opts.MaxVerses), passage.ByProportion(opts.MaxProportion))
	if !ok {
		return "", false, errors.NewInvalidPassagef(errors.ReasonExceedsLength, "%s allows no verses under the budget", p)
	}
	truncated = !fetch.Equal(p)
	if truncated {
		logging.InfoContext(ctx, "passage truncated", "requested", p.String(), "fetched", fetch.String())
	}

	key := cacheKey{start: fetch.StartKey(), end: fetch.EndKey(), references: opts.IncludeReferences}
	if cached, ok := s.cache.Get(key); ok {
		logging.CacheEvent(ctx, "hit", key.String())
		return cached, truncated, nil
	}
	logging.CacheEvent(ctx, "miss", key.String())

	// The shared fetch outlives any single caller; each caller stops
	// waiting when its own context ends.
	fetchCtx := context.WithoutCancel(ctx)
	ch := s.flight.DoChan(key.String(), func() (any, error) {
		t, err := s.source.Fetch(fetchCtx, fetch, opts)
		if err != nil {
			return "", err
		}
		if !s.cache.Set(key, fetch.StartBook(), fetch.Len(), t) {
			logging.CacheEvent(fetchCtx, "rejected", key.String(), "verses", fetch.Len())
		}
		return t, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return "", false, ctx.Err()
	}
	if res.Err != nil {
		logging.ErrorContext(ctx, "text fetch failed", "source", s.source.Name(), "passage", fetch.String(), "error", res.Err)
		return "", false, errors.Wrapf(res.Err, "fetching %s", fetch)
	}
	return res.Val.(string), truncated, nil
}

// Collection returns the text of every passage in c, separated by blank
// lines. Passages are fetched concurrently; truncated is true if any was.
func (s *Service) Collection(ctx context.Context, c *passage.Collection, opts Options) (text string, truncated bool, err error) {
	if c.Len() == 0 {
		return "", false, nil
	}
	ctx = withRequestID(ctx)

	texts := make([]string, c.Len())
	cut := make([]bool, c.Len())
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range c.All() {
		g.Go(func() error {
			var err error
			texts[i], cut[i], err = s.Passage(gctx, p, opts)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return "", false, err
	}

	for _, t := range cut {
		truncated = truncated || t
	}
	return strings.Join(texts, "\n\n"), truncated, nil
}

// CacheStats returns statistics for the text cache.
func (s *Service) CacheStats() cache.Stats {
	return s.cache.Stats()
}

func withRequestID(ctx context.Context) context.Context {
	if logging.GetRequestID(ctx) != "" {
		return ctx
	}
	return logging.WithRequestID(ctx, uuid.NewString())
}
