package assistantports

import "context"

// Prompt is the assembled instruction block handed to the backend.
type Prompt struct {
	System string
	User   string
}

// Sampling controls generation behavior at the backend.
type Sampling struct {
	Temperature   float32
	TopP          float32
	NumPredict    int // output-length budget
	NumCtx        int // context window size
	RepeatPenalty float32
	Stop          []string
}

// Generator is the abstraction for the text-generation backend.
//
// Generate converts every transport-level fault (timeout, non-success
// status, connection refused) into ("", false) instead of an error; the
// caller supplies the user-facing fallback text. Cancellation of ctx
// cancels the in-flight backend request.
type Generator interface {
	HealthCheck(ctx context.Context) bool
	Generate(ctx context.Context, prompt Prompt, opts Sampling) (string, bool)
	// WarmUp issues a one-time small generation to absorb first-request
	// latency. Failure is non-fatal and only logged.
	WarmUp(ctx context.Context)
}
