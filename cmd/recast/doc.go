// Command recast translates spoken-word recordings into another language.
// It extracts audio, transcribes with whisper, cleans up and translates the
// transcript through a local Ollama instance, and synthesizes speech with the
// first available synthesis engine on the host.
package main
