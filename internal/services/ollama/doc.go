// Package ollama adapts the local Ollama generate API for the transcript
// enhancement and translation stages.
package ollama
