package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc"

	ports "github.com/hearthware/souschef/souschef/assistant/ports"
	"github.com/hearthware/souschef/souschef/retrieval"
)

// ErrEmptyMessage rejects empty or whitespace-only chat messages before
// any other pipeline step runs.
var ErrEmptyMessage = errors.New("message is empty")

const (
	// retrievalApology is returned when the recipe source is unreachable.
	retrievalApology = "I'm sorry, I couldn't reach the recipe collection right now. Please try again in a moment."
	// generationApology substitutes for a failed or timed-out generation.
	generationApology = "I'm having trouble generating a response. Please try again."
)

// TurnResult is the shaped outcome of one chat turn.
//
// Success mirrors the source system's semantics: it is false only when
// retrieval failed outright. A failed generation still yields Success=true
// with an apologetic response and the retrieved recipe ids intact. Callers
// must not read Success as "a response was generated".
type TurnResult struct {
	Response   string
	RecipeIDs  []int64
	IntentType string
	Success    bool
}

// Status reports backend reachability for observability. It never gates
// the chat turn itself.
type Status struct {
	BackendAvailable bool   `json:"backend_available"`
	StoreReachable   bool   `json:"store_reachable"`
	ServiceStatus    string `json:"service_status"`
}

// Assistant sequences one chat turn through enhance, classify, retrieve,
// compose, generate, and record. Steps run strictly in order; the only
// suspension points are the recipe-source query and the backend call, both
// timeout-bounded by their owners.
type Assistant struct {
	enhancer  *Enhancer
	engine    *retrieval.Engine
	composer  *Composer
	hygiene   *ResponseHygiene
	generator ports.Generator
	store     ports.ConversationStore
	source    ports.RecipeSource
	tracer    ports.Tracer
	metrics   *retrieval.MetricsCollector

	sampling       ports.Sampling
	retrievalLimit int
	historyWindow  int
	logger         zerolog.Logger
}

// NewAssistant wires an assistant from its collaborators.
func NewAssistant(
	enhancer *Enhancer,
	engine *retrieval.Engine,
	composer *Composer,
	hygiene *ResponseHygiene,
	generator ports.Generator,
	store ports.ConversationStore,
	source ports.RecipeSource,
	tracer ports.Tracer,
	metrics *retrieval.MetricsCollector,
	sampling ports.Sampling,
	retrievalLimit int,
	historyWindow int,
	logger zerolog.Logger,
) *Assistant {
	if retrievalLimit <= 0 {
		retrievalLimit = retrieval.DefaultLimit
	}
	if historyWindow <= 0 {
		historyWindow = 5
	}
	return &Assistant{
		enhancer:       enhancer,
		engine:         engine,
		composer:       composer,
		hygiene:        hygiene,
		generator:      generator,
		store:          store,
		source:         source,
		tracer:         tracer,
		metrics:        metrics,
		sampling:       sampling,
		retrievalLimit: retrievalLimit,
		historyWindow:  historyWindow,
		logger:         logger.With().Str("component", "assistant").Logger(),
	}
}

// Chat runs one turn for the user and returns the shaped result.
//
// A blank message returns ErrEmptyMessage with no side effects. An
// unreachable recipe source returns a result with Success=false, a generic
// apology, and a wrapped retrieval.ErrUnavailable; nothing is recorded. A
// failed generation is recovered locally: the turn still succeeds, the
// apologetic text is recorded as the AI response, and the recipe ids stay
// populated. A cancelled context aborts the turn without touching history.
func (a *Assistant) Chat(ctx context.Context, userID, message string) (TurnResult, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return TurnResult{}, ErrEmptyMessage
	}

	ctx, finish := a.tracer.StartSpan(ctx, "chat_turn", map[string]any{
		"turn_id": uuid.NewString(),
		"user_id": userID,
	})

	enhanced := a.enhancer.Enhance(userID, message)
	intent := retrieval.Classify(enhanced)
	a.tracer.Event(ctx, "classified", map[string]any{
		"intent_type": string(intent.Type),
		"category":    string(intent.Category),
		"specific":    string(intent.Specific),
	})

	candidates, err := a.engine.Retrieve(ctx, intent, enhanced, a.retrievalLimit)
	if err != nil {
		finish(err)
		return TurnResult{
			Response:   retrievalApology,
			IntentType: string(intent.Type),
			Success:    false,
		}, fmt.Errorf("retrieve: %w", err)
	}

	prompt := a.composer.Compose(message, candidates, a.store.Recent(userID, a.historyWindow))

	response := generationApology
	if text, ok := a.generator.Generate(ctx, prompt, a.sampling); ok && text != "" {
		response = a.hygiene.Clean(text)
	} else {
		a.tracer.Event(ctx, "generation_fallback", map[string]any{"user_id": userID})
	}

	// A cancelled turn must not write partial history.
	if ctx.Err() != nil {
		finish(ctx.Err())
		return TurnResult{}, ctx.Err()
	}

	a.store.Append(userID, ports.ConversationEntry{
		Timestamp:   time.Now(),
		UserMessage: message,
		AIResponse:  response,
	})

	finish(nil)
	return TurnResult{
		Response:   response,
		RecipeIDs:  candidateIDs(candidates),
		IntentType: string(intent.Type),
		Success:    true,
	}, nil
}

// History returns up to limit entries for the user, most-recent-last.
func (a *Assistant) History(userID string, limit int) []ports.ConversationEntry {
	return a.store.Recent(userID, limit)
}

// ClearHistory removes all conversation entries for the user. Idempotent.
func (a *Assistant) ClearHistory(userID string) {
	a.store.Clear(userID)
}

// Status probes the generation backend and the recipe source in parallel.
func (a *Assistant) Status(ctx context.Context) Status {
	var backendOK, storeOK bool

	var wg conc.WaitGroup
	wg.Go(func() {
		backendOK = a.generator.HealthCheck(ctx)
	})
	wg.Go(func() {
		_, err := a.source.MostLiked(ctx, 1)
		storeOK = err == nil
	})
	wg.Wait()

	state := "healthy"
	if !backendOK || !storeOK {
		state = "degraded"
	}
	return Status{
		BackendAvailable: backendOK,
		StoreReachable:   storeOK,
		ServiceStatus:    state,
	}
}

// Metrics returns a snapshot of retrieval metrics.
func (a *Assistant) Metrics() retrieval.MetricsSummary {
	return a.metrics.GetSummary()
}

func candidateIDs(candidates []ports.RecipeCandidate) []int64 {
	ids := make([]int64, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.ID)
	}
	return ids
}
