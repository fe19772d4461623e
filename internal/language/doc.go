// Package language normalizes ISO 639 language codes and resolves the
// display names used in translation prompts and synthesis voice selection.
package language
