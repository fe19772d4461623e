package pipeline

import (
	"context"
	"log/slog"
	"time"

	"recast/internal/artifacts"
	"recast/internal/config"
	"recast/internal/history"
	"recast/internal/logging"
	"recast/internal/services"
	"recast/internal/services/whisper"
	"recast/internal/synth"
)

// AudioPreparer turns an input media file into bare audio for transcription.
type AudioPreparer interface {
	Prepare(ctx context.Context, input string, scope *artifacts.Scope) (string, error)
}

// Transcriber converts audio to text.
type Transcriber interface {
	Transcribe(ctx context.Context, req whisper.Request, scope *artifacts.Scope) (string, error)
}

// TextService cleans up and translates transcripts. Ping verifies the
// service is reachable before any work starts.
type TextService interface {
	Ping(ctx context.Context) error
	Enhance(ctx context.Context, transcript string) (string, error)
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// Synthesizer renders text to speech and reports which backend did it.
type Synthesizer interface {
	Synthesize(ctx context.Context, req synth.Request) (string, error)
}

// Recorder persists job progress. The history store satisfies it.
type Recorder interface {
	Create(ctx context.Context, input, output, sourceLanguage, targetLanguage string) (*history.Job, error)
	SetStatus(ctx context.Context, id int64, status history.Status) error
	MarkCompleted(ctx context.Context, id int64, backend string) error
	MarkFailed(ctx context.Context, id int64, message string) error
}

// Options wires an Orchestrator. Recorder and Logger may be nil.
type Options struct {
	WorkDir     string
	Preparer    AudioPreparer
	Transcriber Transcriber
	Text        TextService
	Synthesizer Synthesizer
	Recorder    Recorder
	Logger      *slog.Logger
}

// Orchestrator drives one translation job through its stages in order:
// extract, transcribe, enhance, translate, synthesize. The text service is
// probed before any stage runs so an unreachable service fails the job
// without touching the input or creating temp files.
type Orchestrator struct {
	workDir     string
	preparer    AudioPreparer
	transcriber Transcriber
	text        TextService
	synthesizer Synthesizer
	recorder    Recorder
	logger      *slog.Logger
}

// Result reports what a completed job produced.
type Result struct {
	JobID      int64
	Transcript string
	Enhanced   string
	Translated string
	Backend    string
	Output     string
}

// New constructs an Orchestrator.
func New(opts Options) *Orchestrator {
	recorder := opts.Recorder
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &Orchestrator{
		workDir:     opts.WorkDir,
		preparer:    opts.Preparer,
		transcriber: opts.Transcriber,
		text:        opts.Text,
		synthesizer: opts.Synthesizer,
		recorder:    recorder,
		logger:      logging.NewComponentLogger(opts.Logger, "pipeline"),
	}
}

// Run executes the full pipeline for the given job description.
func (o *Orchestrator) Run(ctx context.Context, job config.Job) (*Result, error) {
	record, err := o.recorder.Create(ctx, job.Input, job.Output, job.SourceLanguage, job.TargetLanguage)
	if err != nil {
		return nil, services.Wrap(services.ErrIO, "start", "record job", "", err)
	}
	ctx = services.WithJobID(ctx, record.ID)
	logger := o.logger.With(logging.Int64(logging.FieldJobID, record.ID))

	logger.Info("job started",
		logging.String("input", job.Input),
		logging.String("output", job.Output),
		logging.String("source_language", job.SourceLanguage),
		logging.String("target_language", job.TargetLanguage),
	)

	result, err := o.run(ctx, logger, record.ID, job)
	if err != nil {
		if recordErr := o.recorder.MarkFailed(ctx, record.ID, err.Error()); recordErr != nil {
			logger.Warn("failed to record job failure", logging.Error(recordErr))
		}
		return nil, err
	}

	if recordErr := o.recorder.MarkCompleted(ctx, record.ID, result.Backend); recordErr != nil {
		logger.Warn("failed to record job completion", logging.Error(recordErr))
	}
	result.JobID = record.ID
	logger.Info("job completed",
		logging.String("backend", result.Backend),
		logging.String("output", result.Output),
	)
	return result, nil
}

func (o *Orchestrator) run(ctx context.Context, logger *slog.Logger, jobID int64, job config.Job) (*Result, error) {
	// Probe the text service before doing any work. The probe happens ahead
	// of scope creation so a dead service leaves nothing behind on disk.
	if err := o.text.Ping(ctx); err != nil {
		logger.Error("text service unreachable", logging.Error(err))
		return nil, err
	}

	scope, err := artifacts.NewScope(o.workDir, logger)
	if err != nil {
		return nil, services.Wrap(services.ErrIO, "start", "create scope", "", err)
	}
	defer scope.Cleanup()

	result := &Result{Output: job.Output}

	var audio string
	err = o.stage(ctx, logger, jobID, "extract", history.StatusExtracting, func(ctx context.Context) error {
		audio, err = o.preparer.Prepare(ctx, job.Input, scope)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = o.stage(ctx, logger, jobID, "transcribe", history.StatusTranscribing, func(ctx context.Context) error {
		transcript, err := o.transcriber.Transcribe(ctx, whisper.Request{
			AudioPath:      audio,
			Language:       job.SourceLanguage,
			WordHints:      job.WordHints,
			EpisodeContext: job.EpisodeContext,
		}, scope)
		if err != nil {
			return err
		}
		result.Transcript = transcript
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = o.stage(ctx, logger, jobID, "enhance", history.StatusEnhancing, func(ctx context.Context) error {
		enhanced, err := o.text.Enhance(ctx, result.Transcript)
		if err != nil {
			return err
		}
		result.Enhanced = enhanced
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = o.stage(ctx, logger, jobID, "translate", history.StatusTranslating, func(ctx context.Context) error {
		translated, err := o.text.Translate(ctx, result.Enhanced, job.SourceLanguage, job.TargetLanguage)
		if err != nil {
			return err
		}
		result.Translated = translated
		return nil
	})
	if err != nil {
		return nil, err
	}

	err = o.stage(ctx, logger, jobID, "synthesize", history.StatusSynthesizing, func(ctx context.Context) error {
		backend, err := o.synthesizer.Synthesize(ctx, synth.Request{
			Text:     result.Translated,
			Language: job.TargetLanguage,
			Output:   job.Output,
		})
		if err != nil {
			return err
		}
		result.Backend = backend
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// stage runs one pipeline stage with progress recording and start/complete
// logging.
func (o *Orchestrator) stage(ctx context.Context, logger *slog.Logger, jobID int64, name string, status history.Status, fn func(context.Context) error) error {
	if err := o.recorder.SetStatus(ctx, jobID, status); err != nil {
		logger.Warn("failed to record stage", logging.String(logging.FieldStage, name), logging.Error(err))
	}

	ctx = services.WithStage(ctx, name)
	stageLogger := logger.With(logging.String(logging.FieldStage, name))
	stageLogger.Info("stage started", logging.String(logging.FieldEventType, "stage_start"))

	started := time.Now()
	if err := fn(ctx); err != nil {
		stageLogger.Error("stage failed",
			logging.String(logging.FieldEventType, "stage_failure"),
			logging.Duration("elapsed", time.Since(started)),
			logging.Error(err),
		)
		return err
	}

	stageLogger.Info("stage completed",
		logging.String(logging.FieldEventType, "stage_complete"),
		logging.Duration("elapsed", time.Since(started)),
	)
	return nil
}

type noopRecorder struct{}

func (noopRecorder) Create(ctx context.Context, input, output, sourceLanguage, targetLanguage string) (*history.Job, error) {
	return &history.Job{}, nil
}
func (noopRecorder) SetStatus(context.Context, int64, history.Status) error { return nil }
func (noopRecorder) MarkCompleted(context.Context, int64, string) error    { return nil }
func (noopRecorder) MarkFailed(context.Context, int64, string) error       { return nil }
