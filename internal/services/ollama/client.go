package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"recast/internal/language"
	"recast/internal/services"
)

const (
	generatePath = "/api/generate"
	versionPath  = "/api/version"

	// livenessTimeout bounds the upfront reachability probe. Generation has
	// its own, much larger, configurable timeout.
	livenessTimeout = 1 * time.Second
)

// Config captures the runtime settings required to talk to the Ollama service.
type Config struct {
	BaseURL        string
	Model          string
	TimeoutSeconds int
}

// Client wraps the local Ollama generate API.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// NewClient constructs an Ollama client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	var timeout time.Duration
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg: Config{
			BaseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
			Model:          strings.TrimSpace(cfg.Model),
			TimeoutSeconds: cfg.TimeoutSeconds,
		},
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.cfg.BaseURL == "" {
		client.cfg.BaseURL = "http://localhost:11434"
	}
	return client
}

// Model returns the configured model identifier for logging.
func (c *Client) Model() string {
	return c.cfg.Model
}

// Ping verifies the service is reachable before the pipeline commits to a
// job. Any failure, connection refused, timeout, or a non-200 status, is
// reported as a service-unavailable error.
func (c *Client) Ping(ctx context.Context) error {
	probeCtx, cancel := context.WithTimeout(ctx, livenessTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, c.cfg.BaseURL+versionPath, nil)
	if err != nil {
		return services.Wrap(services.ErrServiceUnavailable, "liveness", "build request", c.cfg.BaseURL, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return services.Wrap(services.ErrServiceUnavailable, "liveness", "probe", c.cfg.BaseURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return services.Wrap(services.ErrServiceUnavailable, "liveness", "probe",
			fmt.Sprintf("%s returned http %d", c.cfg.BaseURL, resp.StatusCode), nil)
	}
	return nil
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error"`
}

// Generate issues one synchronous generate call and returns the produced
// text. There is no retry; callers are expected to have run Ping first.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", services.Wrap(services.ErrValidation, "generate", "", "prompt required", nil)
	}
	if c.cfg.Model == "" {
		return "", services.Wrap(services.ErrConfiguration, "generate", "", "model required", nil)
	}

	encoded, err := json.Marshal(generateRequest{Model: c.cfg.Model, Prompt: prompt, Stream: false})
	if err != nil {
		return "", services.Wrap(services.ErrValidation, "generate", "encode body", "", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+generatePath, bytes.NewReader(encoded))
	if err != nil {
		return "", services.Wrap(services.ErrServiceUnavailable, "generate", "build request", c.cfg.BaseURL, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", services.Wrap(services.ErrServiceUnavailable, "generate", "http", c.cfg.BaseURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", services.Wrap(services.ErrServiceUnavailable, "generate", "read body", "", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", services.Wrap(services.ErrServiceUnavailable, "generate",
			fmt.Sprintf("http %d", resp.StatusCode), strings.TrimSpace(string(body)), nil)
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", services.Wrap(services.ErrParse, "generate", "decode response", "", err)
	}
	if parsed.Error != "" {
		return "", services.Wrap(services.ErrServiceUnavailable, "generate", "api error", parsed.Error, nil)
	}
	if strings.TrimSpace(parsed.Response) == "" {
		return "", services.Wrap(services.ErrParse, "generate", "decode response", "response field missing or empty", nil)
	}
	return parsed.Response, nil
}

// Enhance cleans up grammar and punctuation of a raw transcript while
// preserving its meaning.
func (c *Client) Enhance(ctx context.Context, transcript string) (string, error) {
	if strings.TrimSpace(transcript) == "" {
		return "", services.Wrap(services.ErrValidation, "enhance", "", "transcript required", nil)
	}
	prompt := "You are an expert in enhancing and cleaning up transcribed text. " +
		"Fix any grammatical errors, improve punctuation, and make the text more readable while " +
		"preserving the original meaning. Respond with the cleaned-up text only. Here is the original text:\n\n" +
		transcript
	return c.Generate(ctx, prompt)
}

// Translate renders text from the source language into the target language.
// Language arguments are ISO codes; the prompt uses their display names.
func (c *Client) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", services.Wrap(services.ErrValidation, "translate", "", "text required", nil)
	}
	source := language.DisplayName(sourceLang)
	target := language.DisplayName(targetLang)
	prompt := "Translate the following " + source + " text to " + target +
		". Ensure the translation is natural and preserves the original meaning. " +
		"Respond with the translation only.\n\n" +
		"Text to translate:\n" + text + "\n\n" +
		"Translation in " + target + ":"
	return c.Generate(ctx, prompt)
}

// IsUnavailable reports whether err represents an unreachable or failing service.
func IsUnavailable(err error) bool {
	return errors.Is(err, services.ErrServiceUnavailable)
}
