package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable. Job input and output paths
// are checked by the run command, not here, so commands that never start a
// pipeline (deps, history, config) work with a job-less config.
func (c *Config) Validate() error {
	if err := c.validateJob(); err != nil {
		return err
	}
	if err := c.validateOllama(); err != nil {
		return err
	}
	if err := c.validateTTS(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateJob() error {
	if c.Job.SourceLanguage == "" {
		return errors.New("job.source_language must be set")
	}
	if c.Job.TargetLanguage == "" {
		return errors.New("job.target_language must be set")
	}
	if c.Job.SourceLanguage == c.Job.TargetLanguage {
		return fmt.Errorf("job.source_language and job.target_language are both %q; nothing to translate", c.Job.SourceLanguage)
	}
	return nil
}

func (c *Config) validateOllama() error {
	if c.Ollama.BaseURL == "" {
		return errors.New("ollama.base_url must be set")
	}
	if c.Ollama.Model == "" {
		return errors.New("ollama.model must be set")
	}
	return nil
}

func (c *Config) validateTTS() error {
	if c.TTS.ChunkLimit <= 0 {
		return errors.New("tts.chunk_limit must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}
