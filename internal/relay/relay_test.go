package relay

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type generatorFunc func(ctx context.Context, prompt string, emit func(chunk string) error) error

func (f generatorFunc) Generate(ctx context.Context, prompt string, emit func(chunk string) error) error {
	return f(ctx, prompt, emit)
}

func chunkGenerator(chunks ...string) Generator {
	return generatorFunc(func(ctx context.Context, prompt string, emit func(string) error) error {
		for _, chunk := range chunks {
			if err := emit(chunk); err != nil {
				return err
			}
		}
		return nil
	})
}

func collectFrames(stream FrameStream) []any {
	var frames []any
	stream(func(frame any) bool {
		frames = append(frames, frame)
		return true
	})
	return frames
}

func TestStreamFrameOrder(t *testing.T) {
	r := NewRelay(chunkGenerator("hello", " ", "world"), time.Millisecond)

	frames := collectFrames(r.Stream(context.Background(), "hi"))

	require.Len(t, frames, 5)
	assert.Equal(t, Frame{Status: StatusReady}, frames[0])
	assert.Equal(t, Frame{Message: "hello", Status: StatusStream}, frames[1])
	assert.Equal(t, Frame{Message: " ", Status: StatusStream}, frames[2])
	assert.Equal(t, Frame{Message: "world", Status: StatusStream}, frames[3])
	assert.Equal(t, Frame{Status: StatusStop}, frames[4])
}

func TestStreamEmptyGeneration(t *testing.T) {
	r := NewRelay(chunkGenerator(), time.Millisecond)

	frames := collectFrames(r.Stream(context.Background(), "hi"))

	require.Len(t, frames, 2)
	assert.Equal(t, Frame{Status: StatusReady}, frames[0])
	assert.Equal(t, Frame{Status: StatusStop}, frames[1])
}

func TestStreamPromptPassedToGenerator(t *testing.T) {
	var seen string
	gen := generatorFunc(func(ctx context.Context, prompt string, emit func(string) error) error {
		seen = prompt
		return nil
	})

	collectFrames(NewRelay(gen, time.Millisecond).Stream(context.Background(), "what is go?"))

	assert.Equal(t, "what is go?", seen)
}

func TestStreamErrorMidway(t *testing.T) {
	gen := generatorFunc(func(ctx context.Context, prompt string, emit func(string) error) error {
		if err := emit("one"); err != nil {
			return err
		}
		if err := emit("two"); err != nil {
			return err
		}
		return errors.New("provider hung up")
	})

	frames := collectFrames(NewRelay(gen, time.Millisecond).Stream(context.Background(), "hi"))

	require.Len(t, frames, 4)
	assert.Equal(t, Frame{Status: StatusReady}, frames[0])
	assert.Equal(t, Frame{Message: "one", Status: StatusStream}, frames[1])
	assert.Equal(t, Frame{Message: "two", Status: StatusStream}, frames[2])
	assert.Equal(t, ErrorFrame{Status: http.StatusInternalServerError, Error: "Something went wrong!"}, frames[3])
}

func TestStreamErrorBeforeFirstChunk(t *testing.T) {
	gen := generatorFunc(func(ctx context.Context, prompt string, emit func(string) error) error {
		return errors.New("bad api key")
	})

	frames := collectFrames(NewRelay(gen, time.Millisecond).Stream(context.Background(), "hi"))

	require.Len(t, frames, 2)
	assert.Equal(t, Frame{Status: StatusReady}, frames[0])
	assert.Equal(t, ErrorFrame{Status: http.StatusInternalServerError, Error: "Something went wrong!"}, frames[1])
}

func TestStreamConsumerDisconnect(t *testing.T) {
	emitted := 0
	gen := generatorFunc(func(ctx context.Context, prompt string, emit func(string) error) error {
		for {
			emitted++
			if err := emit("chunk"); err != nil {
				return err
			}
		}
	})

	var frames []any
	NewRelay(gen, time.Millisecond).Stream(context.Background(), "hi")(func(frame any) bool {
		frames = append(frames, frame)
		return len(frames) < 3 // give up after ready + 2 chunks
	})

	// The generator must be stopped instead of running forever, and no
	// terminal frame is delivered to a consumer that walked away.
	assert.Equal(t, 2, emitted)
	require.Len(t, frames, 3)
	assert.Equal(t, Frame{Message: "chunk", Status: StatusStream}, frames[2])
}

func TestStreamContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	gen := generatorFunc(func(ctx context.Context, prompt string, emit func(string) error) error {
		if err := emit("first"); err != nil {
			return err
		}
		return emit("second")
	})

	var frames []any
	NewRelay(gen, time.Millisecond).Stream(ctx, "hi")(func(frame any) bool {
		frames = append(frames, frame)
		cancel() // client disconnects after the first frame it sees
		return true
	})

	// No stop or error frame once the request context is gone.
	for _, frame := range frames {
		if f, ok := frame.(Frame); ok {
			assert.NotEqual(t, StatusStop, f.Status)
		}
		_, isErr := frame.(ErrorFrame)
		assert.False(t, isErr)
	}
}
