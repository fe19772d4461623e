package deps

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Requirement defines an external tool the pipeline relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Prober answers availability questions for external commands and platforms.
// Tests substitute a fake; production code uses Host.
type Prober interface {
	IsAvailable(command string) bool
	IsPlatform(family string) bool
}

// Host probes the running system using exec.LookPath and runtime.GOOS.
type Host struct{}

// IsAvailable reports whether the named command resolves to an executable.
// Probe failures of any kind are treated as "not available".
func (Host) IsAvailable(command string) bool {
	command = strings.TrimSpace(command)
	if command == "" {
		return false
	}
	_, err := exec.LookPath(command)
	return err == nil
}

// IsPlatform reports whether the current OS family matches (e.g. "darwin").
func (Host) IsPlatform(family string) bool {
	return runtime.GOOS == strings.ToLower(strings.TrimSpace(family))
}

// PythonModuleAvailable reports whether the given python module can be
// imported by the resolvable python interpreter. Any failure, including the
// interpreter itself being absent, is treated as "not available".
func PythonModuleAvailable(ctx context.Context, python, module string) bool {
	python = strings.TrimSpace(python)
	module = strings.TrimSpace(module)
	if python == "" || module == "" {
		return false
	}
	if _, err := exec.LookPath(python); err != nil {
		return false
	}
	cmd := exec.CommandContext(ctx, python, "-c", "import "+module) //nolint:gosec
	return cmd.Run() == nil
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	prober := Host{}
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if !prober.IsAvailable(cmd) {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}
