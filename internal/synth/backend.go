package synth

import (
	"context"

	"recast/internal/deps"
)

// Request describes one synthesis invocation.
type Request struct {
	// Text is the full translated text to speak.
	Text string
	// Language is the ISO 639-1 code of the text.
	Language string
	// Output is the final audio file path the backend must produce.
	Output string
}

// Backend is one speech synthesis engine. Availability is evaluated fresh per
// job; a backend that reports unavailable is skipped by the selector without
// error.
type Backend interface {
	Name() string
	Available(ctx context.Context, prober deps.Prober) bool
	Synthesize(ctx context.Context, req Request) error
}
