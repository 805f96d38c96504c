package relay

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

const (
	StatusReady  = "ready"
	StatusStream = "stream"
	StatusStop   = "stop"
)

type Frame struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// ErrorFrame is the terminal failure frame. Its numeric status takes the
// place of the enum and the detail is never leaked to the client.
type ErrorFrame struct {
	Status int    `json:"status"`
	Error  string `json:"error"`
}

// FrameStream is a lazy, ordered sequence of frames consumed incrementally
// by the transport writer. The yield callback returning false means the
// consumer is gone and the sequence is abandoned.
type FrameStream func(yield func(frame any) bool)

var errStreamAbandoned = errors.New("stream abandoned by consumer")

type Relay struct {
	generator  Generator
	chunkDelay time.Duration
}

const DefaultChunkDelay = 10 * time.Millisecond

func NewRelay(generator Generator, chunkDelay time.Duration) *Relay {
	return &Relay{generator: generator, chunkDelay: chunkDelay}
}

// Stream turns one prompt into the frame sequence: exactly one ready frame,
// one stream frame per provider chunk in emission order, then exactly one
// terminal stop or error frame. Chunks are never buffered or concatenated.
func (r *Relay) Stream(ctx context.Context, prompt string) FrameStream {
	return func(yield func(frame any) bool) {
		if !yield(Frame{Status: StatusReady}) {
			return
		}

		err := r.generator.Generate(ctx, prompt, func(chunk string) error {
			if !yield(Frame{Message: chunk, Status: StatusStream}) {
				return errStreamAbandoned
			}
			// Short pause between chunks so one long generation cannot
			// starve other in-flight requests of flush cycles.
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(r.chunkDelay):
			}
			return nil
		})

		switch {
		case errors.Is(err, errStreamAbandoned), ctx.Err() != nil:
			// Consumer disconnected; there is nobody left to tell.
		case err != nil:
			slog.Error("error streaming chat response", "error", err)
			yield(ErrorFrame{Status: http.StatusInternalServerError, Error: "Something went wrong!"})
		default:
			yield(Frame{Status: StatusStop})
		}
	}
}
