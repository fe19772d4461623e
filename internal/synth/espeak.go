package synth

import (
	"context"
	"log/slog"
	"strings"

	"recast/internal/artifacts"
	"recast/internal/command"
	"recast/internal/deps"
	"recast/internal/logging"
	"recast/internal/services"
)

// Espeak synthesizes via the espeak CLI. It has no input-length limit, so the
// text is written to a single temp file and spoken in one invocation.
type Espeak struct {
	binary  string
	workDir string
	runner  command.Runner
	logger  *slog.Logger
}

// NewEspeak constructs the espeak backend.
func NewEspeak(binary, workDir string, runner command.Runner, logger *slog.Logger) *Espeak {
	return &Espeak{
		binary:  binary,
		workDir: workDir,
		runner:  runner,
		logger:  logging.NewComponentLogger(logger, "espeak"),
	}
}

func (e *Espeak) Name() string { return "espeak" }

func (e *Espeak) Available(ctx context.Context, prober deps.Prober) bool {
	return prober.IsAvailable(e.binary)
}

func (e *Espeak) Synthesize(ctx context.Context, req Request) error {
	scope, err := artifacts.NewScope(e.workDir, e.logger)
	if err != nil {
		return services.Wrap(services.ErrIO, "synthesize", "espeak", "create scope", err)
	}
	defer scope.Cleanup()

	textPath, err := scope.WriteFile("tts_text", "txt", []byte(req.Text))
	if err != nil {
		return services.Wrap(services.ErrIO, "synthesize", "espeak", "write text", err)
	}

	result, err := e.runner.Run(ctx, e.binary,
		"-v", espeakVoice(req.Language),
		"-f", textPath,
		"-w", req.Output,
	)
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		return services.Wrap(services.ErrExternalTool, "synthesize", "espeak",
			strings.TrimSpace(result.Output), nil)
	}
	return nil
}
