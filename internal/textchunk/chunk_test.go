package textchunk

import (
	"strings"
	"testing"
)

func TestSplitSentenceBoundaries(t *testing.T) {
	chunks := SplitAll("hello world. this is a test.", 15)
	want := []string{"hello world. ", "this is a test."}
	if len(chunks) != len(want) {
		t.Fatalf("expected %d chunks, got %v", len(want), chunks)
	}
	for i := range want {
		if chunks[i] != want[i] {
			t.Fatalf("chunk %d = %q, want %q", i, chunks[i], want[i])
		}
	}
}

func TestSplitConcatenationInvariant(t *testing.T) {
	texts := []string{
		"",
		"a",
		"no terminator at all just words flowing on and on",
		"One. Two! Three? Four.",
		"Trailing spaces after stops.   And then more text here.",
		"Ünïcödé sentences. Mixed with 日本語のテキスト。 And ascii again.",
		strings.Repeat("abc. ", 100),
	}
	for _, text := range texts {
		for _, limit := range []int{1, 2, 7, 15, 100, 500} {
			chunks := SplitAll(text, limit)
			if got := strings.Join(chunks, ""); got != text {
				t.Fatalf("limit %d: concatenation mismatch for %q: got %q", limit, text, got)
			}
			for i, chunk := range chunks {
				if chunk == "" {
					t.Fatalf("limit %d: empty chunk at index %d for %q", limit, i, text)
				}
				if len([]rune(chunk)) > limit {
					t.Fatalf("limit %d: chunk %q exceeds bound", limit, chunk)
				}
			}
		}
	}
}

func TestSplitNoTerminatorMakesProgress(t *testing.T) {
	text := strings.Repeat("x", 53)
	chunks := SplitAll(text, 10)
	if len(chunks) != 6 {
		t.Fatalf("expected 6 greedy chunks, got %d: %v", len(chunks), chunks)
	}
	for _, chunk := range chunks[:5] {
		if len(chunk) != 10 {
			t.Fatalf("expected full windows, got %q", chunk)
		}
	}
	if chunks[5] != "xxx" {
		t.Fatalf("unexpected tail chunk %q", chunks[5])
	}
}

func TestSplitIsRestartable(t *testing.T) {
	seq := Split("First. Second. Third.", 10)
	first := make([]string, 0, 4)
	for chunk := range seq {
		first = append(first, chunk)
	}
	second := make([]string, 0, 4)
	for chunk := range seq {
		second = append(second, chunk)
	}
	if len(first) == 0 || len(first) != len(second) {
		t.Fatalf("sequence not restartable: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("restart mismatch at %d: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestSplitEarlyStop(t *testing.T) {
	count := 0
	for range Split(strings.Repeat("word. ", 50), 12) {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Fatalf("expected early stop after 2 chunks, got %d", count)
	}
}

func TestSplitNonPositiveLimit(t *testing.T) {
	chunks := SplitAll("whole text untouched", 0)
	if len(chunks) != 1 || chunks[0] != "whole text untouched" {
		t.Fatalf("unexpected chunks %v", chunks)
	}
}
