package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"recast/internal/config"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	contents := fmt.Sprintf(`[paths]
work_dir = %q
log_dir = %q
state_dir = %q

[job]
source_language = "en"
target_language = "nl"
`,
		filepath.Join(base, "work"),
		filepath.Join(base, "logs"),
		filepath.Join(base, "state"),
	)
	path := filepath.Join(base, "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func requireContains(t *testing.T, output, want string) {
	t.Helper()
	if !strings.Contains(output, want) {
		t.Fatalf("output %q does not contain %q", output, want)
	}
}

func TestRootShowsHelp(t *testing.T) {
	out, err := runCLI(t, "--config", writeTestConfig(t))
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	requireContains(t, out, "Translate spoken-word recordings")
}

func TestConfigInit(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")

	out, err := runCLI(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, err := runCLI(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected refusal to overwrite existing config")
	}
	if _, err := runCLI(t, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigShow(t *testing.T) {
	path := writeTestConfig(t)
	out, err := runCLI(t, "--config", path, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, path)
	requireContains(t, out, "en -> nl")
}

func TestHistoryEmpty(t *testing.T) {
	out, err := runCLI(t, "--config", writeTestConfig(t), "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "No jobs recorded")
}

func TestHistoryRejectsUnknownStatus(t *testing.T) {
	_, err := runCLI(t, "--config", writeTestConfig(t), "history", "--status", "bogus")
	if err == nil || !strings.Contains(err.Error(), "unknown status") {
		t.Fatalf("expected unknown status error, got %v", err)
	}
}

func TestRunRequiresInput(t *testing.T) {
	_, err := runCLI(t, "--config", writeTestConfig(t), "run")
	if err == nil || !strings.Contains(err.Error(), "no input file") {
		t.Fatalf("expected input error, got %v", err)
	}
}

func TestResolveJob(t *testing.T) {
	cfg := config.Default()
	input := filepath.Join(t.TempDir(), "episode.mp3")
	if err := os.WriteFile(input, []byte("data"), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	job, err := resolveJob(&cfg, input, "out.wav", "EN", "nld", []string{" Recast ", ""}, "a podcast")
	if err != nil {
		t.Fatalf("resolveJob: %v", err)
	}
	if job.SourceLanguage != "en" || job.TargetLanguage != "nl" {
		t.Fatalf("unexpected languages %q -> %q", job.SourceLanguage, job.TargetLanguage)
	}
	if len(job.WordHints) != 1 || job.WordHints[0] != "Recast" {
		t.Fatalf("unexpected hints %v", job.WordHints)
	}

	if _, err := resolveJob(&cfg, input, "out.wav", "en", "en", nil, ""); err == nil {
		t.Fatal("expected rejection of identical language pair")
	}
	if _, err := resolveJob(&cfg, filepath.Join(t.TempDir(), "missing.mp3"), "out.wav", "en", "nl", nil, ""); err == nil {
		t.Fatal("expected rejection of missing input")
	}
	if _, err := resolveJob(&cfg, input, "", "en", "nl", nil, ""); err == nil {
		t.Fatal("expected rejection of empty output")
	}
}
