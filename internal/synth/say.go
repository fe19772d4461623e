package synth

import (
	"context"
	"log/slog"
	"strings"

	"recast/internal/artifacts"
	"recast/internal/command"
	"recast/internal/deps"
	"recast/internal/logging"
	"recast/internal/media"
	"recast/internal/services"
)

// Say synthesizes via the macOS say command. say writes AIFF, so the result
// is converted to the requested output format with ffmpeg.
type Say struct {
	binary    string
	workDir   string
	runner    command.Runner
	extractor *media.Extractor
	logger    *slog.Logger
}

// NewSay constructs the macOS say backend.
func NewSay(binary, workDir string, runner command.Runner, extractor *media.Extractor, logger *slog.Logger) *Say {
	return &Say{
		binary:    binary,
		workDir:   workDir,
		runner:    runner,
		extractor: extractor,
		logger:    logging.NewComponentLogger(logger, "say"),
	}
}

func (s *Say) Name() string { return "say" }

// Available gates on the darwin platform before probing the binary; a say
// executable on another OS is not the voice engine this backend drives.
func (s *Say) Available(ctx context.Context, prober deps.Prober) bool {
	return prober.IsPlatform("darwin") && prober.IsAvailable(s.binary)
}

func (s *Say) Synthesize(ctx context.Context, req Request) error {
	scope, err := artifacts.NewScope(s.workDir, s.logger)
	if err != nil {
		return services.Wrap(services.ErrIO, "synthesize", "say", "create scope", err)
	}
	defer scope.Cleanup()

	aiffPath := scope.Path("speech", "aiff")
	result, err := s.runner.Run(ctx, s.binary,
		"-v", macVoice(req.Language),
		"-o", aiffPath,
		req.Text,
	)
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		return services.Wrap(services.ErrExternalTool, "synthesize", "say",
			strings.TrimSpace(result.Output), nil)
	}

	return s.extractor.Convert(ctx, aiffPath, req.Output)
}
