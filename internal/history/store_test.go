package history

import (
	"context"
	"path/filepath"
	"testing"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestCreateAndGet(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	job, err := store.Create(ctx, "in.mp3", "out.wav", "en", "nl")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if job.ID == 0 {
		t.Fatal("expected assigned ID")
	}
	if job.Status != StatusPending {
		t.Fatalf("expected pending, got %q", job.Status)
	}
	if job.CreatedAt.IsZero() || job.UpdatedAt.IsZero() {
		t.Fatal("expected timestamps")
	}

	got, err := store.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Input != "in.mp3" || got.TargetLanguage != "nl" {
		t.Fatalf("unexpected job %+v", got)
	}
}

func TestStatusTransitions(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	job, err := store.Create(ctx, "in.mp3", "out.wav", "en", "fr")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	for _, status := range []Status{StatusExtracting, StatusTranscribing, StatusEnhancing, StatusTranslating, StatusSynthesizing} {
		if err := store.SetStatus(ctx, job.ID, status); err != nil {
			t.Fatalf("SetStatus %s: %v", status, err)
		}
		got, err := store.GetByID(ctx, job.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got.Status != status {
			t.Fatalf("expected %q, got %q", status, got.Status)
		}
		if got.Terminal() {
			t.Fatalf("%q must not be terminal", status)
		}
	}

	if err := store.MarkCompleted(ctx, job.ID, "espeak"); err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}
	got, err := store.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.Terminal() || got.Backend != "espeak" {
		t.Fatalf("unexpected completed job %+v", got)
	}
}

func TestMarkFailed(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	job, err := store.Create(ctx, "in.mp3", "out.wav", "en", "de")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := store.MarkFailed(ctx, job.ID, "transcription failed"); err != nil {
		t.Fatalf("MarkFailed: %v", err)
	}

	got, err := store.GetByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != StatusFailed || got.ErrorMessage != "transcription failed" {
		t.Fatalf("unexpected failed job %+v", got)
	}
}

func TestUpdateMissingJob(t *testing.T) {
	store := openStore(t)
	if err := store.SetStatus(context.Background(), 42, StatusExtracting); err == nil {
		t.Fatal("expected error for missing job")
	}
}

func TestListNewestFirstWithFilter(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	first, err := store.Create(ctx, "a.mp3", "a.wav", "en", "nl")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := store.Create(ctx, "b.mp3", "b.wav", "en", "nl")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := store.MarkCompleted(ctx, first.ID, "say"); err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}

	jobs, err := store.List(ctx, "", 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(jobs) != 2 || jobs[0].ID != second.ID {
		t.Fatalf("expected newest first, got %+v", jobs)
	}

	completed, err := store.List(ctx, StatusCompleted, 10)
	if err != nil {
		t.Fatalf("List completed: %v", err)
	}
	if len(completed) != 1 || completed[0].ID != first.ID {
		t.Fatalf("unexpected filter result %+v", completed)
	}
}

func TestReopenChecksSchemaVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := store.Create(context.Background(), "a.mp3", "a.wav", "en", "nl"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	jobs, err := reopened.List(context.Background(), "", 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected persisted job, got %d", len(jobs))
	}
}

func TestParseStatus(t *testing.T) {
	if status, ok := ParseStatus(" Completed "); !ok || status != StatusCompleted {
		t.Fatalf("expected completed, got %q ok=%v", status, ok)
	}
	if _, ok := ParseStatus("bogus"); ok {
		t.Fatal("expected rejection of unknown status")
	}
}
