package config

import (
	"fmt"
	"strings"

	"recast/internal/language"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeJob(); err != nil {
		return err
	}
	if err := c.normalizeWhisper(); err != nil {
		return err
	}
	c.normalizeOllama()
	c.normalizeTTS()
	c.normalizeMedia()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeJob() error {
	var err error
	if c.Job.Input = strings.TrimSpace(c.Job.Input); c.Job.Input != "" {
		if c.Job.Input, err = expandPath(c.Job.Input); err != nil {
			return fmt.Errorf("job.input: %w", err)
		}
	}
	if c.Job.Output = strings.TrimSpace(c.Job.Output); c.Job.Output != "" {
		if c.Job.Output, err = expandPath(c.Job.Output); err != nil {
			return fmt.Errorf("job.output: %w", err)
		}
	}
	if normalized := language.Normalize(c.Job.SourceLanguage); normalized != "" {
		c.Job.SourceLanguage = normalized
	} else {
		c.Job.SourceLanguage = strings.ToLower(strings.TrimSpace(c.Job.SourceLanguage))
	}
	if normalized := language.Normalize(c.Job.TargetLanguage); normalized != "" {
		c.Job.TargetLanguage = normalized
	} else {
		c.Job.TargetLanguage = strings.ToLower(strings.TrimSpace(c.Job.TargetLanguage))
	}

	hints := make([]string, 0, len(c.Job.WordHints))
	for _, hint := range c.Job.WordHints {
		if hint = strings.TrimSpace(hint); hint != "" {
			hints = append(hints, hint)
		}
	}
	c.Job.WordHints = hints
	c.Job.EpisodeContext = strings.TrimSpace(c.Job.EpisodeContext)
	return nil
}

func (c *Config) normalizeWhisper() error {
	c.Whisper.Binary = strings.TrimSpace(c.Whisper.Binary)
	if c.Whisper.Binary == "" {
		c.Whisper.Binary = defaultWhisperBinary
	}
	if c.Whisper.Model = strings.TrimSpace(c.Whisper.Model); c.Whisper.Model != "" {
		var err error
		if c.Whisper.Model, err = expandPath(c.Whisper.Model); err != nil {
			return fmt.Errorf("whisper.model: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeOllama() {
	c.Ollama.BaseURL = strings.TrimRight(strings.TrimSpace(c.Ollama.BaseURL), "/")
	if c.Ollama.BaseURL == "" {
		c.Ollama.BaseURL = defaultOllamaBaseURL
	}
	c.Ollama.Model = strings.TrimSpace(c.Ollama.Model)
	if c.Ollama.Model == "" {
		c.Ollama.Model = defaultOllamaModel
	}
	if c.Ollama.GenerateTimeoutSeconds < 0 {
		c.Ollama.GenerateTimeoutSeconds = 0
	}
}

func (c *Config) normalizeTTS() {
	if c.TTS.ChunkLimit <= 0 {
		c.TTS.ChunkLimit = defaultChunkLimit
	}
	if c.TTS.EspeakBinary = strings.TrimSpace(c.TTS.EspeakBinary); c.TTS.EspeakBinary == "" {
		c.TTS.EspeakBinary = defaultEspeakBinary
	}
	if c.TTS.PicoBinary = strings.TrimSpace(c.TTS.PicoBinary); c.TTS.PicoBinary == "" {
		c.TTS.PicoBinary = defaultPicoBinary
	}
	if c.TTS.SayBinary = strings.TrimSpace(c.TTS.SayBinary); c.TTS.SayBinary == "" {
		c.TTS.SayBinary = defaultSayBinary
	}
	if c.TTS.PythonBinary = strings.TrimSpace(c.TTS.PythonBinary); c.TTS.PythonBinary == "" {
		c.TTS.PythonBinary = defaultPythonBinary
	}
}

func (c *Config) normalizeMedia() {
	if c.Media.FFmpegBinary = strings.TrimSpace(c.Media.FFmpegBinary); c.Media.FFmpegBinary == "" {
		c.Media.FFmpegBinary = defaultFFmpegBinary
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
