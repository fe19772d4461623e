package synth

import (
	"context"
	"log/slog"
	"strings"

	"recast/internal/command"
	"recast/internal/deps"
	"recast/internal/logging"
	"recast/internal/media"
	"recast/internal/services"
)

// Selector walks a fixed preference order of backends and synthesizes with
// the first one whose tooling is present on the host. The order never
// changes between runs on the same host so output stays reproducible.
type Selector struct {
	backends []Backend
	prober   deps.Prober
	logger   *slog.Logger
}

// NewSelector builds a selector over the given ordered backends.
func NewSelector(backends []Backend, prober deps.Prober, logger *slog.Logger) *Selector {
	return &Selector{
		backends: backends,
		prober:   prober,
		logger:   logging.NewComponentLogger(logger, "synth"),
	}
}

// Config carries the knobs the backends need from configuration.
type Config struct {
	WorkDir    string
	ChunkLimit int
	Espeak     string
	Pico       string
	Say        string
	Python     string
}

// Backends assembles the standard backend chain: espeak, then pico2wave,
// then the macOS say command, then pyttsx3 as the last resort.
func Backends(cfg Config, runner command.Runner, extractor *media.Extractor, logger *slog.Logger) []Backend {
	return []Backend{
		NewEspeak(cfg.Espeak, cfg.WorkDir, runner, logger),
		NewPico(cfg.Pico, cfg.WorkDir, cfg.ChunkLimit, runner, extractor, logger),
		NewSay(cfg.Say, cfg.WorkDir, runner, extractor, logger),
		NewPyttsx(cfg.Python, cfg.WorkDir, runner, logger),
	}
}

// Select returns the first available backend. When none of the backends can
// run, the error names every backend that was tried.
func (s *Selector) Select(ctx context.Context) (Backend, error) {
	attempted := make([]string, 0, len(s.backends))
	for _, backend := range s.backends {
		if backend.Available(ctx, s.prober) {
			s.logger.Info("selected synthesis backend", logging.String("backend", backend.Name()))
			return backend, nil
		}
		s.logger.Debug("synthesis backend unavailable", logging.String("backend", backend.Name()))
		attempted = append(attempted, backend.Name())
	}
	return nil, services.Wrap(services.ErrNoBackend, "synthesize", "select",
		"no synthesis backend available, tried: "+strings.Join(attempted, ", "), nil)
}

// Synthesize selects a backend and renders the text to the output path.
func (s *Selector) Synthesize(ctx context.Context, req Request) (string, error) {
	backend, err := s.Select(ctx)
	if err != nil {
		return "", err
	}
	if err := backend.Synthesize(ctx, req); err != nil {
		return backend.Name(), err
	}
	return backend.Name(), nil
}
