package services

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel markers for stage failure classification. Every error a stage
// returns is tagged with exactly one of these so the orchestrator and CLI can
// report the failure kind without string matching.
var (
	ErrIO                 = errors.New("io error")
	ErrSpawn              = errors.New("spawn failure")
	ErrExternalTool       = errors.New("external tool error")
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrParse              = errors.New("parse error")
	ErrNoBackend          = errors.New("no synthesis backend available")
	ErrUnsupportedFormat  = errors.New("unsupported input format")
	ErrValidation         = errors.New("validation error")
	ErrConfiguration      = errors.New("configuration error")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrExternalTool
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Kind returns a short human-readable label for the marker carried by err,
// or "failure" when the error carries no known marker.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrSpawn):
		return "spawn"
	case errors.Is(err, ErrExternalTool):
		return "external tool"
	case errors.Is(err, ErrServiceUnavailable):
		return "service unavailable"
	case errors.Is(err, ErrParse):
		return "parse"
	case errors.Is(err, ErrNoBackend):
		return "no backend"
	case errors.Is(err, ErrUnsupportedFormat):
		return "unsupported format"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrIO):
		return "io"
	default:
		return "failure"
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
