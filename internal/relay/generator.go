package relay

import "context"

// Generator produces model output for a single prompt as an ordered series
// of text chunks, calling emit once per chunk. An error returned from emit
// stops generation and is propagated back to the caller unchanged.
type Generator interface {
	Generate(ctx context.Context, prompt string, emit func(chunk string) error) error
}
