// Package whisper adapts the whisper.cpp command line for the transcription
// stage: prompt assembly, invocation, and JSON transcript extraction.
package whisper
