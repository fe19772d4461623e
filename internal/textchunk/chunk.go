package textchunk

import "iter"

// sentence terminators recognized when searching for a natural break.
func isTerminator(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// Split returns a lazy sequence of segments of text, each at most limit runes
// long, preferring to break immediately after the last sentence terminator
// found inside the window. Spaces following the terminator stay with the
// preceding segment so the next one starts at a word. When a window contains
// no terminator the full window is emitted as-is, so the sequence always
// makes forward progress and never yields an empty segment. Concatenating
// the segments in order reproduces text exactly.
//
// A non-positive limit yields the whole text as a single segment.
func Split(text string, limit int) iter.Seq[string] {
	return func(yield func(string) bool) {
		runes := []rune(text)
		if len(runes) == 0 {
			return
		}
		if limit <= 0 {
			yield(text)
			return
		}
		start := 0
		for start < len(runes) {
			end := start + limit
			if end >= len(runes) {
				end = len(runes)
			} else if cut := lastSentenceEnd(runes, start, end); cut > start {
				end = cut
			}
			if !yield(string(runes[start:end])) {
				return
			}
			start = end
		}
	}
}

// SplitAll collects the segments of Split into a slice.
func SplitAll(text string, limit int) []string {
	var chunks []string
	for chunk := range Split(text, limit) {
		chunks = append(chunks, chunk)
	}
	return chunks
}

// lastSentenceEnd scans [start, end) and returns the index just past the last
// sentence terminator, with any directly following spaces consumed, or -1
// when the window contains no terminator.
func lastSentenceEnd(runes []rune, start, end int) int {
	cut := -1
	for i := start; i < end; i++ {
		if !isTerminator(runes[i]) {
			continue
		}
		j := i + 1
		for j < end && runes[j] == ' ' {
			j++
		}
		cut = j
	}
	return cut
}
