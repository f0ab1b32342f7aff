package adapters

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	ports "github.com/hearthware/souschef/souschef/assistant/ports"
)

type spanLoggerKey struct{}

// ZerologTracer implements the Tracer port on structured zerolog output.
type ZerologTracer struct {
	logger zerolog.Logger
}

// NewZerologTracer creates a tracer writing through the given logger.
func NewZerologTracer(logger zerolog.Logger) *ZerologTracer {
	return &ZerologTracer{logger: logger}
}

// StartSpan opens a span and returns a finish function that logs its
// duration and outcome.
func (t *ZerologTracer) StartSpan(ctx context.Context, name string, attrs map[string]any) (context.Context, func(err error)) {
	spanLogger := t.logger.With().Str("span", name).Logger()
	for k, v := range attrs {
		spanLogger = spanLogger.With().Interface(k, v).Logger()
	}
	ctx = context.WithValue(ctx, spanLoggerKey{}, spanLogger)

	start := time.Now()
	spanLogger.Debug().Msg("span start")

	finish := func(err error) {
		event := spanLogger.Info()
		if err != nil {
			event = spanLogger.Error().Err(err)
		}
		event.Dur("duration", time.Since(start)).Msg("span end")
	}
	return ctx, finish
}

// Event logs a point event inside the current span, falling back to the
// base logger when no span is open.
func (t *ZerologTracer) Event(ctx context.Context, name string, attrs map[string]any) {
	logger, ok := ctx.Value(spanLoggerKey{}).(zerolog.Logger)
	if !ok {
		logger = t.logger
	}

	event := logger.Info()
	for k, v := range attrs {
		event = event.Interface(k, v)
	}
	event.Str("event", name).Msg("trace event")
}

var _ ports.Tracer = (*ZerologTracer)(nil)
