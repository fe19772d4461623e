package pipeline

import (
	"context"
	"errors"
	"os"
	"testing"

	"recast/internal/artifacts"
	"recast/internal/config"
	"recast/internal/history"
	"recast/internal/services"
	"recast/internal/services/whisper"
	"recast/internal/synth"
)

type fakePreparer struct {
	calls int
	audio string
	err   error
}

func (f *fakePreparer) Prepare(ctx context.Context, input string, scope *artifacts.Scope) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if f.audio != "" {
		return f.audio, nil
	}
	return input, nil
}

type fakeTranscriber struct {
	calls      int
	gotAudio   string
	gotRequest whisper.Request
	transcript string
	err        error
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, req whisper.Request, scope *artifacts.Scope) (string, error) {
	f.calls++
	f.gotAudio = req.AudioPath
	f.gotRequest = req
	if f.err != nil {
		return "", f.err
	}
	return f.transcript, nil
}

type fakeText struct {
	pingErr       error
	enhanceCalls  int
	translateArgs []string
	err           error
}

func (f *fakeText) Ping(ctx context.Context) error { return f.pingErr }

func (f *fakeText) Enhance(ctx context.Context, transcript string) (string, error) {
	f.enhanceCalls++
	if f.err != nil {
		return "", f.err
	}
	return "enhanced: " + transcript, nil
}

func (f *fakeText) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	f.translateArgs = []string{text, sourceLang, targetLang}
	if f.err != nil {
		return "", f.err
	}
	return "translated: " + text, nil
}

type fakeSynthesizer struct {
	calls   int
	gotReq  synth.Request
	backend string
	err     error
}

func (f *fakeSynthesizer) Synthesize(ctx context.Context, req synth.Request) (string, error) {
	f.calls++
	f.gotReq = req
	if f.err != nil {
		return "", f.err
	}
	return f.backend, nil
}

type fakeRecorder struct {
	statuses  []history.Status
	backend   string
	failedMsg string
	completed bool
	failed    bool
}

func (f *fakeRecorder) Create(ctx context.Context, input, output, src, tgt string) (*history.Job, error) {
	return &history.Job{ID: 7, Input: input, Output: output}, nil
}

func (f *fakeRecorder) SetStatus(ctx context.Context, id int64, status history.Status) error {
	f.statuses = append(f.statuses, status)
	return nil
}

func (f *fakeRecorder) MarkCompleted(ctx context.Context, id int64, backend string) error {
	f.completed = true
	f.backend = backend
	return nil
}

func (f *fakeRecorder) MarkFailed(ctx context.Context, id int64, message string) error {
	f.failed = true
	f.failedMsg = message
	return nil
}

type fixture struct {
	workDir     string
	preparer    *fakePreparer
	transcriber *fakeTranscriber
	text        *fakeText
	synthesizer *fakeSynthesizer
	recorder    *fakeRecorder
	orch        *Orchestrator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		workDir:     t.TempDir(),
		preparer:    &fakePreparer{},
		transcriber: &fakeTranscriber{transcript: "hello world"},
		text:        &fakeText{},
		synthesizer: &fakeSynthesizer{backend: "espeak"},
		recorder:    &fakeRecorder{},
	}
	f.orch = New(Options{
		WorkDir:     f.workDir,
		Preparer:    f.preparer,
		Transcriber: f.transcriber,
		Text:        f.text,
		Synthesizer: f.synthesizer,
		Recorder:    f.recorder,
	})
	return f
}

func (f *fixture) leftovers(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(f.workDir)
	if err != nil {
		t.Fatalf("read work dir: %v", err)
	}
	var names []string
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

func testJob() config.Job {
	return config.Job{
		Input:          "episode.mp3",
		Output:         "episode_nl.wav",
		SourceLanguage: "en",
		TargetLanguage: "nl",
		WordHints:      []string{"Recast"},
		EpisodeContext: "a tech podcast",
	}
}

func TestRunHappyPath(t *testing.T) {
	f := newFixture(t)

	result, err := f.orch.Run(context.Background(), testJob())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.JobID != 7 {
		t.Fatalf("expected job ID 7, got %d", result.JobID)
	}
	if result.Transcript != "hello world" {
		t.Fatalf("unexpected transcript %q", result.Transcript)
	}
	if result.Enhanced != "enhanced: hello world" {
		t.Fatalf("unexpected enhanced text %q", result.Enhanced)
	}
	if result.Translated != "translated: enhanced: hello world" {
		t.Fatalf("unexpected translation %q", result.Translated)
	}
	if result.Backend != "espeak" || result.Output != "episode_nl.wav" {
		t.Fatalf("unexpected result %+v", result)
	}

	if f.transcriber.gotRequest.Language != "en" || len(f.transcriber.gotRequest.WordHints) != 1 {
		t.Fatalf("unexpected transcription request %+v", f.transcriber.gotRequest)
	}
	if got := f.text.translateArgs; len(got) != 3 || got[1] != "en" || got[2] != "nl" {
		t.Fatalf("unexpected translate args %v", got)
	}
	if f.synthesizer.gotReq.Language != "nl" || f.synthesizer.gotReq.Output != "episode_nl.wav" {
		t.Fatalf("unexpected synthesis request %+v", f.synthesizer.gotReq)
	}

	wantStatuses := []history.Status{
		history.StatusExtracting,
		history.StatusTranscribing,
		history.StatusEnhancing,
		history.StatusTranslating,
		history.StatusSynthesizing,
	}
	if len(f.recorder.statuses) != len(wantStatuses) {
		t.Fatalf("unexpected statuses %v", f.recorder.statuses)
	}
	for i, want := range wantStatuses {
		if f.recorder.statuses[i] != want {
			t.Fatalf("status %d: expected %q, got %q", i, want, f.recorder.statuses[i])
		}
	}
	if !f.recorder.completed || f.recorder.backend != "espeak" {
		t.Fatalf("expected completion recorded, got %+v", f.recorder)
	}
	if rest := f.leftovers(t); len(rest) != 0 {
		t.Fatalf("expected cleaned work dir, found %v", rest)
	}
}

func TestRunStopsWhenTextServiceUnreachable(t *testing.T) {
	f := newFixture(t)
	f.text.pingErr = services.Wrap(services.ErrServiceUnavailable, "liveness", "ping", "connection refused", nil)

	_, err := f.orch.Run(context.Background(), testJob())
	if !errors.Is(err, services.ErrServiceUnavailable) {
		t.Fatalf("expected unavailable error, got %v", err)
	}

	if f.preparer.calls != 0 || f.transcriber.calls != 0 || f.text.enhanceCalls != 0 || f.synthesizer.calls != 0 {
		t.Fatal("expected no stage invocations after failed liveness probe")
	}
	if rest := f.leftovers(t); len(rest) != 0 {
		t.Fatalf("expected no temp files, found %v", rest)
	}
	if !f.recorder.failed || f.recorder.completed {
		t.Fatalf("expected failure recorded, got %+v", f.recorder)
	}
}

func TestRunTranscriptionFailure(t *testing.T) {
	f := newFixture(t)
	f.transcriber.err = services.Wrap(services.ErrExternalTool, "transcribe", "whisper", "exit status 1", nil)

	_, err := f.orch.Run(context.Background(), testJob())
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
	if f.text.enhanceCalls != 0 || f.synthesizer.calls != 0 {
		t.Fatal("expected no downstream invocations after transcription failure")
	}
	if !f.recorder.failed || f.recorder.failedMsg == "" {
		t.Fatalf("expected failure message recorded, got %+v", f.recorder)
	}
	if rest := f.leftovers(t); len(rest) != 0 {
		t.Fatalf("expected cleaned work dir, found %v", rest)
	}
}

func TestRunNoSynthesisBackend(t *testing.T) {
	f := newFixture(t)
	f.synthesizer.err = services.Wrap(services.ErrNoBackend, "synthesize", "select",
		"no synthesis backend available, tried: espeak, pico2wave, say, pyttsx3", nil)

	_, err := f.orch.Run(context.Background(), testJob())
	if !errors.Is(err, services.ErrNoBackend) {
		t.Fatalf("expected no-backend error, got %v", err)
	}
	if f.synthesizer.calls != 1 {
		t.Fatalf("expected single synthesis attempt, got %d", f.synthesizer.calls)
	}
	if f.recorder.failedMsg == "" {
		t.Fatal("expected failure message recorded")
	}
}

func TestRunPassesExtractedAudioDownstream(t *testing.T) {
	f := newFixture(t)
	f.preparer.audio = "/tmp/extracted.wav"

	if _, err := f.orch.Run(context.Background(), testJob()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if f.transcriber.gotAudio != "/tmp/extracted.wav" {
		t.Fatalf("expected extracted audio path, got %q", f.transcriber.gotAudio)
	}
}

func TestRunWithoutRecorder(t *testing.T) {
	f := newFixture(t)
	orch := New(Options{
		WorkDir:     f.workDir,
		Preparer:    f.preparer,
		Transcriber: f.transcriber,
		Text:        f.text,
		Synthesizer: f.synthesizer,
	})
	if _, err := orch.Run(context.Background(), testJob()); err != nil {
		t.Fatalf("Run: %v", err)
	}
}
