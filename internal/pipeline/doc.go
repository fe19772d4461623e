// Package pipeline sequences a translation job: audio extraction, speech
// transcription, transcript enhancement, translation, and speech synthesis.
// Each stage is recorded in the job history and logged with timing.
package pipeline
