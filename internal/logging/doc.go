// Package logging builds the process-wide slog logger and provides attr and
// context helpers shared by the pipeline stages.
package logging
