package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"recast/internal/command"
	"recast/internal/config"
	"recast/internal/deps"
	"recast/internal/history"
	"recast/internal/language"
	"recast/internal/logging"
	"recast/internal/media"
	"recast/internal/pipeline"
	"recast/internal/services/ollama"
	"recast/internal/services/whisper"
	"recast/internal/synth"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var (
		inputFlag   string
		outputFlag  string
		sourceFlag  string
		targetFlag  string
		hintFlags   []string
		contextFlag string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Translate a recording end to end",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			job, err := resolveJob(cfg, inputFlag, outputFlag, sourceFlag, targetFlag, hintFlags, contextFlag)
			if err != nil {
				return err
			}

			lock := flock.New(cfg.LockPath())
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire run lock: %w", err)
			}
			if !locked {
				return fmt.Errorf("another recast run is already in progress (lock %s)", cfg.LockPath())
			}
			defer func() { _ = lock.Unlock() }()

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			logger, err := logging.New(logging.Options{
				Level:       cfg.Logging.Level,
				Format:      cfg.Logging.Format,
				OutputPaths: []string{"stderr", cfg.LogPath()},
			})
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			store, err := history.Open(cfg.HistoryDBPath())
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			runner := command.NewExec(logger)
			extractor := media.NewExtractor(cfg.Media.FFmpegBinary, runner, logger)
			transcriber := whisper.NewAdapter(whisper.Config{
				Binary: cfg.Whisper.Binary,
				Model:  cfg.Whisper.Model,
			}, runner, logger)
			textService := ollama.NewClient(ollama.Config{
				BaseURL:        cfg.Ollama.BaseURL,
				Model:          cfg.Ollama.Model,
				TimeoutSeconds: cfg.Ollama.GenerateTimeoutSeconds,
			})
			backends := synth.Backends(synth.Config{
				WorkDir:    cfg.Paths.WorkDir,
				ChunkLimit: cfg.TTS.ChunkLimit,
				Espeak:     cfg.TTS.EspeakBinary,
				Pico:       cfg.TTS.PicoBinary,
				Say:        cfg.TTS.SayBinary,
				Python:     cfg.TTS.PythonBinary,
			}, runner, extractor, logger)
			selector := synth.NewSelector(backends, deps.Host{}, logger)

			orchestrator := pipeline.New(pipeline.Options{
				WorkDir:     cfg.Paths.WorkDir,
				Preparer:    extractor,
				Transcriber: transcriber,
				Text:        textService,
				Synthesizer: selector,
				Recorder:    store,
				Logger:      logger,
			})

			result, err := orchestrator.Run(signalCtx, job)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Translated %s (%s) to %s (%s)\n",
				job.Input, language.DisplayName(job.SourceLanguage),
				result.Output, language.DisplayName(job.TargetLanguage))
			fmt.Fprintf(out, "Synthesis backend: %s\n", result.Backend)
			fmt.Fprintf(out, "Job ID: %d\n", result.JobID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputFlag, "input", "i", "", "Input media file (audio or video container)")
	cmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output audio file")
	cmd.Flags().StringVarP(&sourceFlag, "source-language", "s", "", "Source language code (ISO 639-1)")
	cmd.Flags().StringVarP(&targetFlag, "target-language", "t", "", "Target language code (ISO 639-1)")
	cmd.Flags().StringArrayVar(&hintFlags, "hint", nil, "Domain word or phrase to bias transcription (repeatable)")
	cmd.Flags().StringVar(&contextFlag, "episode-context", "", "One-line description of the recording")
	return cmd
}

// resolveJob merges command-line flags over the configured job and validates
// the result. Flags win over the config file.
func resolveJob(cfg *config.Config, input, output, source, target string, hints []string, episodeContext string) (config.Job, error) {
	job := cfg.Job

	if v := strings.TrimSpace(input); v != "" {
		job.Input = v
	}
	if v := strings.TrimSpace(output); v != "" {
		job.Output = v
	}
	if v := strings.TrimSpace(source); v != "" {
		job.SourceLanguage = language.Normalize(v)
	}
	if v := strings.TrimSpace(target); v != "" {
		job.TargetLanguage = language.Normalize(v)
	}
	if len(hints) > 0 {
		job.WordHints = nil
		for _, hint := range hints {
			if hint = strings.TrimSpace(hint); hint != "" {
				job.WordHints = append(job.WordHints, hint)
			}
		}
	}
	if v := strings.TrimSpace(episodeContext); v != "" {
		job.EpisodeContext = v
	}

	if job.Input == "" {
		return config.Job{}, fmt.Errorf("no input file: set --input or job.input in the config")
	}
	expanded, err := config.ExpandPath(job.Input)
	if err != nil {
		return config.Job{}, fmt.Errorf("resolve input path: %w", err)
	}
	job.Input = expanded
	if _, err := os.Stat(job.Input); err != nil {
		return config.Job{}, fmt.Errorf("input file %s: %w", job.Input, err)
	}

	if job.Output == "" {
		return config.Job{}, fmt.Errorf("no output file: set --output or job.output in the config")
	}
	expanded, err = config.ExpandPath(job.Output)
	if err != nil {
		return config.Job{}, fmt.Errorf("resolve output path: %w", err)
	}
	job.Output = expanded

	if job.SourceLanguage == "" || job.TargetLanguage == "" {
		return config.Job{}, fmt.Errorf("both source and target languages are required")
	}
	if job.SourceLanguage == job.TargetLanguage {
		return config.Job{}, fmt.Errorf("source and target languages must differ (both %q)", job.SourceLanguage)
	}

	return job, nil
}
