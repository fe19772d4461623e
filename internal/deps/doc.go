// Package deps probes the availability of the external engines the pipeline
// depends on: the transcription binary, ffmpeg, and the synthesis backends.
package deps
