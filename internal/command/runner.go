package command

import (
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"

	"recast/internal/logging"
	"recast/internal/services"
)

// Result captures the observable outcome of one external tool invocation.
type Result struct {
	// Output holds the merged stdout and stderr of the child process.
	Output string
	// ExitCode is the process exit status. Zero means the tool reported success.
	ExitCode int
}

// Runner executes an external command and waits for it to terminate. A nonzero
// exit is not an error at this layer; interpreting the tool's failure mode is
// the calling adapter's job. Spawn failures (binary missing, not executable)
// are returned as spawn-tagged errors.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// Exec runs commands via os/exec with combined output capture.
type Exec struct {
	logger *slog.Logger
}

// NewExec constructs the default runner. logger may be nil.
func NewExec(logger *slog.Logger) *Exec {
	return &Exec{logger: logging.NewComponentLogger(logger, "command")}
}

// Run spawns exactly one child process and blocks until it exits. Arguments
// are passed as discrete tokens; no shell is involved.
func (e *Exec) Run(ctx context.Context, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	output, err := cmd.CombinedOutput()
	result := Result{Output: string(output)}

	if err == nil {
		e.logger.Debug("command completed",
			logging.String("command", name),
			logging.Int("exit_code", 0),
		)
		return result, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		e.logger.Debug("command exited nonzero",
			logging.String("command", name),
			logging.Int("exit_code", result.ExitCode),
			logging.String("output", strings.TrimSpace(result.Output)),
		)
		return result, nil
	}

	return result, services.Wrap(services.ErrSpawn, "", "run command", name, err)
}
