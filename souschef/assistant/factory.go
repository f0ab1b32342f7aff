package assistant

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc"

	"github.com/hearthware/souschef/souschef/assistant/adapters"
	ports "github.com/hearthware/souschef/souschef/assistant/ports"
	"github.com/hearthware/souschef/souschef/config"
	"github.com/hearthware/souschef/souschef/generation/ollama"
	"github.com/hearthware/souschef/souschef/retrieval"
)

// Factory wires an Assistant from configuration.
type Factory struct {
	cfg    *config.Config
	db     *sql.DB
	logger zerolog.Logger
}

// NewFactory creates a factory over an already-opened recipe database.
func NewFactory(cfg *config.Config, db *sql.DB, logger zerolog.Logger) *Factory {
	return &Factory{cfg: cfg, db: db, logger: logger}
}

// CreateAssistant builds the fully wired assistant and, when configured,
// fires the backend warm-up without blocking startup.
func (f *Factory) CreateAssistant() *Assistant {
	vocab := retrieval.NewVocabulary()
	metrics := retrieval.NewMetricsCollector()

	source := adapters.NewLibSQLRecipeSource(f.db)
	store := adapters.NewShardedConversationStore(f.cfg.Assistant.HistoryWindow)
	tracer := f.createTracer()

	generator := ollama.NewClient(
		f.cfg.Generation.BaseURL,
		f.cfg.Generation.Model,
		f.cfg.Generation.RequestTimeout,
		f.cfg.Generation.HealthTimeout,
		f.logger,
	)
	if f.cfg.Generation.WarmUpOnStart {
		var wg conc.WaitGroup
		wg.Go(func() {
			generator.WarmUp(context.Background())
		})
		// Warm-up completes in the background; startup never waits on it.
		go wg.Wait()
	}

	engine := retrieval.NewEngine(source, metrics, f.logger)
	enhancer := NewEnhancer(store, vocab, f.cfg.Assistant.EnhancerWindow, f.logger)
	composer := NewComposer(vocab, f.cfg.Assistant.DescriptionLimit, f.cfg.Assistant.IngredientLimit)
	hygiene := NewResponseHygiene(f.cfg.Assistant.MaxOutputSize)

	sampling := ports.Sampling{
		Temperature:   f.cfg.Generation.Temperature,
		TopP:          f.cfg.Generation.TopP,
		NumPredict:    f.cfg.Generation.NumPredict,
		NumCtx:        f.cfg.Generation.NumCtx,
		RepeatPenalty: f.cfg.Generation.RepeatPenalty,
		Stop:          f.cfg.Generation.Stop,
	}

	return NewAssistant(
		enhancer,
		engine,
		composer,
		hygiene,
		generator,
		store,
		source,
		tracer,
		metrics,
		sampling,
		f.cfg.Retrieval.Limit,
		f.cfg.Assistant.HistoryWindow,
		f.logger,
	)
}

func (f *Factory) createTracer() ports.Tracer {
	if !f.cfg.Assistant.EnableTracing {
		return &noOpTracer{}
	}
	return adapters.NewZerologTracer(f.logger)
}

// noOpTracer discards all spans and events.
type noOpTracer struct{}

func (t *noOpTracer) StartSpan(ctx context.Context, name string, attrs map[string]any) (context.Context, func(err error)) {
	return ctx, func(err error) {}
}

func (t *noOpTracer) Event(ctx context.Context, name string, attrs map[string]any) {}

var _ ports.Tracer = (*noOpTracer)(nil)
