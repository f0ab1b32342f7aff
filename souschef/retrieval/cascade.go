package retrieval

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	ports "github.com/hearthware/souschef/souschef/assistant/ports"
)

// ErrUnavailable reports that the recipe source could not be reached at
// all: every applicable strategy failed and none produced candidates.
var ErrUnavailable = errors.New("recipe source unavailable")

// DefaultLimit caps each strategy's result size when the caller passes 0.
const DefaultLimit = 2

// Engine runs the cascading retrieval over the recipe source. Strategies
// execute in a fixed order and the first non-empty result short-circuits
// the cascade. A strategy-level store error yields an empty result and the
// cascade moves on; the error only becomes fatal when the whole cascade
// ends empty because of it.
type Engine struct {
	source  ports.RecipeSource
	metrics *MetricsCollector
	logger  zerolog.Logger
}

// NewEngine creates a retrieval engine.
func NewEngine(source ports.RecipeSource, metrics *MetricsCollector, logger zerolog.Logger) *Engine {
	return &Engine{
		source:  source,
		metrics: metrics,
		logger:  logger.With().Str("component", "retrieval").Logger(),
	}
}

type strategy struct {
	name string
	run  func(ctx context.Context) ([]ports.RecipeCandidate, error)
}

// Retrieve returns up to limit candidates for the classified query, or
// ErrUnavailable when the source is unreachable. An empty result with a
// nil error means the store simply holds nothing relevant (and, because of
// the terminal most-liked fallback, nothing at all).
func (e *Engine) Retrieve(ctx context.Context, intent QueryIntent, query string, limit int) ([]ports.RecipeCandidate, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	var strategies []strategy

	if intent.Type == IntentGeneral {
		strategies = append(strategies, strategy{"exact_match", func(ctx context.Context) ([]ports.RecipeCandidate, error) {
			return e.exactMatch(ctx, query, limit)
		}})
	}
	if intent.Type == IntentCategory {
		category := intent.Category
		strategies = append(strategies, strategy{"category", func(ctx context.Context) ([]ports.RecipeCandidate, error) {
			return e.source.SearchCategoryKeywords(ctx, CategoryKeywords(category), limit)
		}})
	}
	if intent.Specific == RequestPopular {
		strategies = append(strategies, strategy{"popular", func(ctx context.Context) ([]ports.RecipeCandidate, error) {
			return e.source.MostLiked(ctx, limit)
		}})
	}
	if keywords := SmartKeywords(query); len(keywords) > 0 {
		strategies = append(strategies, strategy{"keywords", func(ctx context.Context) ([]ports.RecipeCandidate, error) {
			return e.source.SearchKeywordsAll(ctx, keywords, limit)
		}})
	}
	strategies = append(strategies, strategy{"most_liked", func(ctx context.Context) ([]ports.RecipeCandidate, error) {
		return e.source.MostLiked(ctx, limit)
	}})

	var lastErr error
	for _, s := range strategies {
		start := time.Now()
		candidates, err := s.run(ctx)
		e.metrics.RecordStrategy(s.name, time.Since(start), len(candidates), err)

		if err != nil {
			e.logger.Warn().Err(err).Str("strategy", s.name).Msg("retrieval strategy failed")
			lastErr = err
			continue
		}
		if len(candidates) > 0 {
			if len(candidates) > limit {
				candidates = candidates[:limit]
			}
			e.logger.Debug().Str("strategy", s.name).Int("count", len(candidates)).Msg("retrieval strategy hit")
			return candidates, nil
		}
	}

	if lastErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
	}
	return nil, nil
}

// exactMatch is strategy 1: substring match against titles, falling back
// to ingredient text when the title pass finds nothing.
func (e *Engine) exactMatch(ctx context.Context, query string, limit int) ([]ports.RecipeCandidate, error) {
	candidates, err := e.source.SearchTitle(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	if len(candidates) > 0 {
		return candidates, nil
	}
	return e.source.SearchIngredients(ctx, query, limit)
}
