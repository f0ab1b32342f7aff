package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ports "github.com/hearthware/souschef/souschef/assistant/ports"
)

// stubSource implements RecipeSource with per-primitive hooks.
type stubSource struct {
	titleFunc       func(query string, limit int) ([]ports.RecipeCandidate, error)
	ingredientsFunc func(query string, limit int) ([]ports.RecipeCandidate, error)
	categoryFunc    func(keywords []string, limit int) ([]ports.RecipeCandidate, error)
	keywordsFunc    func(keywords []string, limit int) ([]ports.RecipeCandidate, error)
	mostLikedFunc   func(limit int) ([]ports.RecipeCandidate, error)

	calls []string
}

func (s *stubSource) SearchTitle(_ context.Context, query string, limit int) ([]ports.RecipeCandidate, error) {
	s.calls = append(s.calls, "title")
	if s.titleFunc != nil {
		return s.titleFunc(query, limit)
	}
	return nil, nil
}

func (s *stubSource) SearchIngredients(_ context.Context, query string, limit int) ([]ports.RecipeCandidate, error) {
	s.calls = append(s.calls, "ingredients")
	if s.ingredientsFunc != nil {
		return s.ingredientsFunc(query, limit)
	}
	return nil, nil
}

func (s *stubSource) SearchCategoryKeywords(_ context.Context, keywords []string, limit int) ([]ports.RecipeCandidate, error) {
	s.calls = append(s.calls, "category")
	if s.categoryFunc != nil {
		return s.categoryFunc(keywords, limit)
	}
	return nil, nil
}

func (s *stubSource) SearchKeywordsAll(_ context.Context, keywords []string, limit int) ([]ports.RecipeCandidate, error) {
	s.calls = append(s.calls, "keywords")
	if s.keywordsFunc != nil {
		return s.keywordsFunc(keywords, limit)
	}
	return nil, nil
}

func (s *stubSource) MostLiked(_ context.Context, limit int) ([]ports.RecipeCandidate, error) {
	s.calls = append(s.calls, "most_liked")
	if s.mostLikedFunc != nil {
		return s.mostLikedFunc(limit)
	}
	return nil, nil
}

var _ ports.RecipeSource = (*stubSource)(nil)

func recipes(ids ...int64) []ports.RecipeCandidate {
	out := make([]ports.RecipeCandidate, 0, len(ids))
	for _, id := range ids {
		out = append(out, ports.RecipeCandidate{ID: id, Title: "Recipe"})
	}
	return out
}

func newTestEngine(source ports.RecipeSource) (*Engine, *MetricsCollector) {
	metrics := NewMetricsCollector()
	return NewEngine(source, metrics, zerolog.Nop()), metrics
}

func TestEngine_TitleMatchShortCircuits(t *testing.T) {
	source := &stubSource{
		titleFunc: func(string, int) ([]ports.RecipeCandidate, error) {
			return recipes(1, 2), nil
		},
	}
	engine, _ := newTestEngine(source)

	got, err := engine.Retrieve(context.Background(), Classify("I want a chicken recipe"), "I want a chicken recipe", 2)

	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, []string{"title"}, source.calls)
}

func TestEngine_TitleFallsBackToIngredients(t *testing.T) {
	source := &stubSource{
		ingredientsFunc: func(string, int) ([]ports.RecipeCandidate, error) {
			return recipes(7), nil
		},
	}
	engine, _ := newTestEngine(source)

	got, err := engine.Retrieve(context.Background(), Classify("something with paprika"), "something with paprika", 2)

	require.NoError(t, err)
	assert.Equal(t, recipes(7), got)
	assert.Equal(t, []string{"title", "ingredients"}, source.calls)
}

func TestEngine_CategoryStrategy(t *testing.T) {
	source := &stubSource{
		categoryFunc: func(keywords []string, _ int) ([]ports.RecipeCandidate, error) {
			assert.Contains(t, keywords, "cake")
			return recipes(3), nil
		},
	}
	engine, _ := newTestEngine(source)

	got, err := engine.Retrieve(context.Background(), Classify("dessert ideas"), "dessert ideas", 2)

	require.NoError(t, err)
	assert.Equal(t, recipes(3), got)
	assert.Equal(t, []string{"category"}, source.calls)
}

func TestEngine_PopularStrategy(t *testing.T) {
	source := &stubSource{
		mostLikedFunc: func(int) ([]ports.RecipeCandidate, error) {
			return recipes(9, 8), nil
		},
	}
	engine, _ := newTestEngine(source)

	got, err := engine.Retrieve(context.Background(), Classify("what are the best recipes"), "what are the best recipes", 2)

	require.NoError(t, err)
	assert.Equal(t, recipes(9, 8), got)
	// General intent tries the exact match first, then popularity.
	assert.Equal(t, []string{"title", "ingredients", "most_liked"}, source.calls)
}

func TestEngine_KeywordFallbackBeforeTerminal(t *testing.T) {
	source := &stubSource{
		keywordsFunc: func(keywords []string, _ int) ([]ports.RecipeCandidate, error) {
			assert.Equal(t, []string{"chicken", "curry"}, keywords)
			return recipes(4), nil
		},
	}
	engine, _ := newTestEngine(source)

	got, err := engine.Retrieve(context.Background(), Classify("chicken curry"), "chicken curry", 2)

	require.NoError(t, err)
	assert.Equal(t, recipes(4), got)
	assert.Equal(t, []string{"title", "ingredients", "keywords"}, source.calls)
}

func TestEngine_TerminalFallbackGuaranteesResult(t *testing.T) {
	source := &stubSource{
		mostLikedFunc: func(int) ([]ports.RecipeCandidate, error) {
			return recipes(1), nil
		},
	}
	engine, _ := newTestEngine(source)

	got, err := engine.Retrieve(context.Background(), Classify("zzz qqq"), "zzz qqq", 2)

	require.NoError(t, err)
	assert.NotEmpty(t, got)
}

func TestEngine_LimitCapsEveryStrategy(t *testing.T) {
	source := &stubSource{
		titleFunc: func(string, int) ([]ports.RecipeCandidate, error) {
			return recipes(1, 2, 3, 4), nil
		},
	}
	engine, _ := newTestEngine(source)

	got, err := engine.Retrieve(context.Background(), Classify("chicken"), "chicken", 2)

	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestEngine_StrategyErrorFallsThrough(t *testing.T) {
	source := &stubSource{
		titleFunc: func(string, int) ([]ports.RecipeCandidate, error) {
			return nil, errors.New("connection refused")
		},
		mostLikedFunc: func(int) ([]ports.RecipeCandidate, error) {
			return recipes(5), nil
		},
	}
	engine, _ := newTestEngine(source)

	got, err := engine.Retrieve(context.Background(), Classify("chicken"), "chicken", 2)

	require.NoError(t, err)
	assert.Equal(t, recipes(5), got)
}

func TestEngine_AllStrategiesFailingIsUnavailable(t *testing.T) {
	down := errors.New("connection refused")
	source := &stubSource{
		titleFunc:       func(string, int) ([]ports.RecipeCandidate, error) { return nil, down },
		ingredientsFunc: func(string, int) ([]ports.RecipeCandidate, error) { return nil, down },
		keywordsFunc:    func([]string, int) ([]ports.RecipeCandidate, error) { return nil, down },
		mostLikedFunc:   func(int) ([]ports.RecipeCandidate, error) { return nil, down },
	}
	engine, _ := newTestEngine(source)

	got, err := engine.Retrieve(context.Background(), Classify("chicken"), "chicken", 2)

	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestEngine_EmptyStoreIsNotAnError(t *testing.T) {
	engine, _ := newTestEngine(&stubSource{})

	got, err := engine.Retrieve(context.Background(), Classify("chicken"), "chicken", 2)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEngine_RecordsStrategyMetrics(t *testing.T) {
	source := &stubSource{
		titleFunc: func(string, int) ([]ports.RecipeCandidate, error) {
			return recipes(1), nil
		},
	}
	engine, metrics := newTestEngine(source)

	_, err := engine.Retrieve(context.Background(), Classify("chicken"), "chicken", 2)
	require.NoError(t, err)

	summary := metrics.GetSummary()
	assert.Equal(t, int64(1), summary.RetrievalCount)
	assert.Equal(t, int64(1), summary.StrategyStats["exact_match"].QueryCount)
	assert.Equal(t, int64(1), summary.StrategyStats["exact_match"].HitCount)
}
