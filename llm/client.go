package llm

import (
	"context"

	"slidegen/prompt"
)

// Backend issues exactly one outbound call per request and returns the
// raw completion text. No retries, no streaming; implementations run
// the call under an explicit deadline.
type Backend interface {
	GenerateCompletion(ctx context.Context, payload prompt.Payload) (string, error)
}
