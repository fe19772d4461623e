package synth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"recast/internal/artifacts"
	"recast/internal/command"
	"recast/internal/deps"
	"recast/internal/logging"
	"recast/internal/media"
	"recast/internal/services"
	"recast/internal/textchunk"
)

// Pico synthesizes via pico2wave. The engine limits input length per call, so
// the text is chunked at sentence boundaries, each chunk rendered to its own
// temp WAV, and the chunk files concatenated into the final output.
type Pico struct {
	binary     string
	workDir    string
	chunkLimit int
	runner     command.Runner
	extractor  *media.Extractor
	logger     *slog.Logger
}

// NewPico constructs the pico2wave backend.
func NewPico(binary, workDir string, chunkLimit int, runner command.Runner, extractor *media.Extractor, logger *slog.Logger) *Pico {
	return &Pico{
		binary:     binary,
		workDir:    workDir,
		chunkLimit: chunkLimit,
		runner:     runner,
		extractor:  extractor,
		logger:     logging.NewComponentLogger(logger, "pico2wave"),
	}
}

func (p *Pico) Name() string { return "pico2wave" }

func (p *Pico) Available(ctx context.Context, prober deps.Prober) bool {
	return prober.IsAvailable(p.binary)
}

func (p *Pico) Synthesize(ctx context.Context, req Request) error {
	scope, err := artifacts.NewScope(p.workDir, p.logger)
	if err != nil {
		return services.Wrap(services.ErrIO, "synthesize", "pico2wave", "create scope", err)
	}
	defer scope.Cleanup()

	locale := picoLocale(req.Language)
	var chunkPaths []string
	index := 0
	for chunk := range textchunk.Split(req.Text, p.chunkLimit) {
		chunkPath := scope.Path(fmt.Sprintf("chunk_%d", index), "wav")
		index++

		result, err := p.runner.Run(ctx, p.binary, "-l", locale, "-w", chunkPath, chunk)
		if err != nil {
			return err
		}
		if result.ExitCode != 0 {
			return services.Wrap(services.ErrExternalTool, "synthesize", "pico2wave",
				strings.TrimSpace(result.Output), nil)
		}
		chunkPaths = append(chunkPaths, chunkPath)
	}
	if len(chunkPaths) == 0 {
		return services.Wrap(services.ErrValidation, "synthesize", "pico2wave", "no text to speak", nil)
	}

	p.logger.Debug("concatenating chunk audio", logging.Int("chunks", len(chunkPaths)))
	return p.extractor.Concat(ctx, chunkPaths, req.Output)
}
