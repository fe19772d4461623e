package media

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"recast/internal/artifacts"
	"recast/internal/command"
	"recast/internal/logging"
	"recast/internal/services"
)

// bare audio formats the transcription engine accepts directly.
var audioExtensions = map[string]struct{}{
	".mp3":  {},
	".wav":  {},
	".flac": {},
	".ogg":  {},
}

// container formats that need their audio stream demuxed first.
var containerExtensions = map[string]struct{}{
	".mp4":  {},
	".m4a":  {},
	".mkv":  {},
	".mov":  {},
	".webm": {},
}

// Extractor prepares source audio for transcription and concatenates
// synthesized chunk audio, both via ffmpeg.
type Extractor struct {
	ffmpeg string
	runner command.Runner
	logger *slog.Logger
}

// NewExtractor constructs an Extractor around the given ffmpeg binary.
func NewExtractor(ffmpeg string, runner command.Runner, logger *slog.Logger) *Extractor {
	return &Extractor{
		ffmpeg: ffmpeg,
		runner: runner,
		logger: logging.NewComponentLogger(logger, "media"),
	}
}

// Prepare returns a path to bare audio for the given input. Bare audio files
// pass through untouched; containers are demuxed to a mono 16kHz WAV tracked
// by scope. Unrecognized extensions fail with an unsupported-format error.
func (e *Extractor) Prepare(ctx context.Context, input string, scope *artifacts.Scope) (string, error) {
	if _, err := os.Stat(input); err != nil {
		return "", services.Wrap(services.ErrIO, "prepare audio", "stat input", input, err)
	}

	ext := strings.ToLower(filepath.Ext(input))
	if _, ok := audioExtensions[ext]; ok {
		e.logger.Debug("input is bare audio", logging.String("input", input))
		return input, nil
	}
	if _, ok := containerExtensions[ext]; !ok {
		return "", services.Wrap(services.ErrUnsupportedFormat, "prepare audio", "detect format",
			fmt.Sprintf("extension %q not recognized", ext), nil)
	}

	dest := scope.Path("extracted", "wav")
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", input,
		"-vn",
		"-sn",
		"-dn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "pcm_s16le",
		dest,
	}
	result, err := e.runner.Run(ctx, e.ffmpeg, args...)
	if err != nil {
		return "", err
	}
	if result.ExitCode != 0 {
		return "", services.Wrap(services.ErrExternalTool, "prepare audio", "ffmpeg extract",
			strings.TrimSpace(result.Output), nil)
	}
	e.logger.Debug("extracted audio", logging.String("input", input), logging.String("dest", dest))
	return dest, nil
}

// Concat joins the given audio files, in order and losslessly re-encoded by
// ffmpeg's concat filter, into output.
func (e *Extractor) Concat(ctx context.Context, inputs []string, output string) error {
	if len(inputs) == 0 {
		return services.Wrap(services.ErrValidation, "concat audio", "", "no input files", nil)
	}

	args := []string{"-y", "-hide_banner", "-loglevel", "error"}
	for _, input := range inputs {
		args = append(args, "-i", input)
	}

	var filter strings.Builder
	for i := range inputs {
		fmt.Fprintf(&filter, "[%d:0]", i)
	}
	fmt.Fprintf(&filter, "concat=n=%d:v=0:a=1[out]", len(inputs))

	args = append(args, "-filter_complex", filter.String(), "-map", "[out]", output)

	result, err := e.runner.Run(ctx, e.ffmpeg, args...)
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		return services.Wrap(services.ErrExternalTool, "concat audio", "ffmpeg concat",
			strings.TrimSpace(result.Output), nil)
	}
	return nil
}

// Convert transcodes one audio file to another container/codec chosen by
// ffmpeg from the output extension.
func (e *Extractor) Convert(ctx context.Context, input, output string) error {
	result, err := e.runner.Run(ctx, e.ffmpeg, "-y", "-hide_banner", "-loglevel", "error", "-i", input, output)
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		return services.Wrap(services.ErrExternalTool, "convert audio", "ffmpeg convert",
			strings.TrimSpace(result.Output), nil)
	}
	return nil
}
