package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"recast/internal/config"
	"recast/internal/deps"
	"recast/internal/services/ollama"
)

const (
	ansiGreen = "\x1b[32m"
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check availability of the external tools the pipeline uses",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.CheckBinaries(requirements(cfg))
			statuses = append(statuses, pythonModuleStatus(cmd, cfg))
			statuses = append(statuses, ollamaStatus(cmd, cfg))

			out := cmd.OutOrStdout()
			colorize := isTerminal(out)

			rows := make([][]string, 0, len(statuses))
			missingRequired := false
			for _, status := range statuses {
				if !status.Available && !status.Optional {
					missingRequired = true
				}
				rows = append(rows, []string{
					status.Name,
					status.Command,
					mark(status.Available, colorize),
					yesNo(status.Optional),
					status.Detail,
				})
			}

			fmt.Fprintln(out, renderTable([]string{"Tool", "Command", "Available", "Optional", "Detail"}, rows))
			if missingRequired {
				return fmt.Errorf("required tools are missing")
			}
			return nil
		},
	}
}

func requirements(cfg *config.Config) []deps.Requirement {
	reqs := []deps.Requirement{
		{Name: "ffmpeg", Command: cfg.Media.FFmpegBinary, Description: "audio extraction and concatenation"},
		{Name: "whisper", Command: cfg.Whisper.Binary, Description: "speech transcription"},
		{Name: "espeak", Command: cfg.TTS.EspeakBinary, Description: "speech synthesis", Optional: true},
		{Name: "pico2wave", Command: cfg.TTS.PicoBinary, Description: "speech synthesis", Optional: true},
	}
	if runtime.GOOS == "darwin" {
		reqs = append(reqs, deps.Requirement{
			Name: "say", Command: cfg.TTS.SayBinary, Description: "speech synthesis", Optional: true,
		})
	}
	return reqs
}

func pythonModuleStatus(cmd *cobra.Command, cfg *config.Config) deps.Status {
	status := deps.Status{
		Name:        "pyttsx3",
		Command:     cfg.TTS.PythonBinary,
		Description: "speech synthesis",
		Optional:    true,
	}
	if deps.PythonModuleAvailable(cmd.Context(), cfg.TTS.PythonBinary, "pyttsx3") {
		status.Available = true
	} else {
		status.Detail = "python module pyttsx3 not importable"
	}
	return status
}

func ollamaStatus(cmd *cobra.Command, cfg *config.Config) deps.Status {
	status := deps.Status{
		Name:        "ollama",
		Command:     cfg.Ollama.BaseURL,
		Description: "transcript enhancement and translation",
	}
	client := ollama.NewClient(ollama.Config{BaseURL: cfg.Ollama.BaseURL, Model: cfg.Ollama.Model})
	if err := client.Ping(cmd.Context()); err != nil {
		status.Detail = fmt.Sprintf("service unreachable at %s", cfg.Ollama.BaseURL)
	} else {
		status.Available = true
	}
	return status
}

func mark(available, colorize bool) string {
	if !colorize {
		return yesNo(available)
	}
	if available {
		return ansiGreen + "yes" + ansiReset
	}
	return ansiRed + "no" + ansiReset
}
