package whisper

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"strings"

	"recast/internal/artifacts"
	"recast/internal/command"
	"recast/internal/logging"
	"recast/internal/services"
)

// Config captures the transcription engine invocation settings.
type Config struct {
	// Binary is the whisper.cpp CLI executable.
	Binary string
	// Model is the path to the ggml model file.
	Model string
}

// Request describes one transcription.
type Request struct {
	AudioPath string
	// Language is the ISO 639-1 code of the spoken language.
	Language string
	// WordHints lists proper nouns and domain terms the recording mentions.
	WordHints []string
	// EpisodeContext is optional free-text context about this recording.
	EpisodeContext string
}

// Adapter invokes the whisper CLI and extracts the transcript text from its
// JSON output.
type Adapter struct {
	cfg    Config
	runner command.Runner
	logger *slog.Logger
}

// NewAdapter constructs a transcription adapter.
func NewAdapter(cfg Config, runner command.Runner, logger *slog.Logger) *Adapter {
	return &Adapter{
		cfg:    cfg,
		runner: runner,
		logger: logging.NewComponentLogger(logger, "whisper"),
	}
}

// Transcribe runs the engine against req.AudioPath and returns the recognized
// text. The prompt file and the JSON transcript are tracked by scope so they
// are removed on every exit path of the calling stage.
func (a *Adapter) Transcribe(ctx context.Context, req Request, scope *artifacts.Scope) (string, error) {
	prompt := BuildPrompt(req.WordHints, req.EpisodeContext)
	promptPath, err := scope.WriteFile("prompt", "txt", []byte(prompt))
	if err != nil {
		return "", services.Wrap(services.ErrIO, "transcribe", "write prompt", "", err)
	}

	// The engine appends .json to the --output-file base itself.
	outputBase := scope.Path("transcript", "")
	jsonPath := outputBase + ".json"
	scope.Track(jsonPath)

	args := []string{
		"--model", a.cfg.Model,
		"--language", req.Language,
		"--output-json",
		"--output-file", outputBase,
		"--prompt", prompt,
		req.AudioPath,
	}
	result, err := a.runner.Run(ctx, a.cfg.Binary, args...)
	if err != nil {
		return "", err
	}
	if result.ExitCode != 0 {
		return "", services.Wrap(services.ErrExternalTool, "transcribe", "whisper",
			strings.TrimSpace(result.Output), nil)
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return "", services.Wrap(services.ErrIO, "transcribe", "read transcript", jsonPath, err)
	}
	text, err := parseTranscript(data)
	if err != nil {
		return "", err
	}

	a.logger.Debug("transcription complete",
		logging.String("prompt_file", promptPath),
		logging.Int("transcript_chars", len(text)),
	)
	return text, nil
}

// BuildPrompt assembles the initial transcription prompt from a fixed
// preamble, the comma-joined word hints, and the optional episode context.
func BuildPrompt(wordHints []string, episodeContext string) string {
	var prompt strings.Builder
	prompt.WriteString("This is a spoken-word recording. ")
	if len(wordHints) > 0 {
		prompt.WriteString("It frequently mentions people and terms including: ")
		prompt.WriteString(strings.Join(wordHints, ", "))
		prompt.WriteString(". ")
	}
	if episodeContext = strings.TrimSpace(episodeContext); episodeContext != "" {
		prompt.WriteString(episodeContext)
	}
	return strings.TrimSpace(prompt.String())
}

// parseTranscript extracts the transcript text field. whisper.cpp writes the
// field as an array of timed segments; a plain string is tolerated too.
func parseTranscript(data []byte) (string, error) {
	var doc struct {
		Transcription json.RawMessage `json:"transcription"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return "", services.Wrap(services.ErrParse, "transcribe", "decode transcript", "", err)
	}
	if len(doc.Transcription) == 0 {
		return "", services.Wrap(services.ErrParse, "transcribe", "decode transcript",
			"transcription field missing", nil)
	}

	var plain string
	if err := json.Unmarshal(doc.Transcription, &plain); err == nil {
		return strings.TrimSpace(plain), nil
	}

	var segments []struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(doc.Transcription, &segments); err != nil {
		return "", services.Wrap(services.ErrParse, "transcribe", "decode transcript",
			"transcription field has unexpected shape", err)
	}
	var text strings.Builder
	for _, segment := range segments {
		text.WriteString(segment.Text)
	}
	return strings.TrimSpace(text.String()), nil
}
