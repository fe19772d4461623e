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

// pyttsxScript is the throwaway interpreter script the backend writes per
// invocation. It is a scope-tracked artifact like any other temp file.
const pyttsxScript = `import sys
import pyttsx3

text = sys.argv[1]
output_path = sys.argv[2]
language = sys.argv[3]

engine = pyttsx3.init()

voices = engine.getProperty('voices')
for voice in voices:
    if language in voice.id.lower() or language in voice.name.lower():
        engine.setProperty('voice', voice.id)
        break

engine.setProperty('rate', 150)
engine.setProperty('volume', 0.9)

engine.save_to_file(text, output_path)
engine.runAndWait()
`

// Pyttsx synthesizes through the python pyttsx3 library, invoked via a
// generated script. It is the last-resort backend for hosts without a native
// synthesis tool.
type Pyttsx struct {
	python  string
	workDir string
	runner  command.Runner
	logger  *slog.Logger

	// moduleProbe is swappable for tests; the default spawns the interpreter.
	moduleProbe func(ctx context.Context, python, module string) bool
}

// NewPyttsx constructs the pyttsx3 backend.
func NewPyttsx(python, workDir string, runner command.Runner, logger *slog.Logger) *Pyttsx {
	return &Pyttsx{
		python:      python,
		workDir:     workDir,
		runner:      runner,
		logger:      logging.NewComponentLogger(logger, "pyttsx3"),
		moduleProbe: deps.PythonModuleAvailable,
	}
}

func (p *Pyttsx) Name() string { return "pyttsx3" }

func (p *Pyttsx) Available(ctx context.Context, prober deps.Prober) bool {
	return prober.IsAvailable(p.python) && p.moduleProbe(ctx, p.python, "pyttsx3")
}

func (p *Pyttsx) Synthesize(ctx context.Context, req Request) error {
	scope, err := artifacts.NewScope(p.workDir, p.logger)
	if err != nil {
		return services.Wrap(services.ErrIO, "synthesize", "pyttsx3", "create scope", err)
	}
	defer scope.Cleanup()

	scriptPath, err := scope.WriteFile("tts_script", "py", []byte(pyttsxScript))
	if err != nil {
		return services.Wrap(services.ErrIO, "synthesize", "pyttsx3", "write script", err)
	}

	result, err := p.runner.Run(ctx, p.python, scriptPath, req.Text, req.Output, req.Language)
	if err != nil {
		return err
	}
	if result.ExitCode != 0 {
		return services.Wrap(services.ErrExternalTool, "synthesize", "pyttsx3",
			strings.TrimSpace(result.Output), nil)
	}
	return nil
}
