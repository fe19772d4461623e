package artifacts

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"recast/internal/logging"
)

// Scope owns the temporary files created while one stage (or one job)
// executes. Every allocated path is tracked, and Cleanup removes all of them
// on both the success and the failure exit path. Paths carry a job-unique
// prefix so concurrent scopes in the same directory can never collide.
type Scope struct {
	dir    string
	prefix string
	logger *slog.Logger

	mu    sync.Mutex
	paths []string
}

// NewScope creates a scope rooted in dir, creating the directory if needed.
func NewScope(dir string, logger *slog.Logger) (*Scope, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure artifact directory: %w", err)
	}
	return &Scope{
		dir:    dir,
		prefix: uuid.NewString(),
		logger: logging.NewComponentLogger(logger, "artifacts"),
	}, nil
}

// Dir returns the directory this scope allocates paths in.
func (s *Scope) Dir() string {
	return s.dir
}

// Path allocates and tracks a scope-unique file path. The file itself is not
// created; label distinguishes artifacts within the scope and ext is the
// extension without the leading dot.
func (s *Scope) Path(label, ext string) string {
	name := s.prefix + "-" + sanitizeLabel(label)
	if ext = strings.TrimPrefix(strings.TrimSpace(ext), "."); ext != "" {
		name += "." + ext
	}
	path := filepath.Join(s.dir, name)
	s.track(path)
	return path
}

// WriteFile allocates a tracked path and writes data to it.
func (s *Scope) WriteFile(label, ext string, data []byte) (string, error) {
	path := s.Path(label, ext)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write artifact %s: %w", path, err)
	}
	return path, nil
}

// Track registers an externally produced path (such as an output file an
// engine derives from a path the scope handed out) for cleanup.
func (s *Scope) Track(path string) {
	if strings.TrimSpace(path) == "" {
		return
	}
	s.track(path)
}

func (s *Scope) track(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paths = append(s.paths, path)
}

// Cleanup deletes every tracked path. It is idempotent and tolerates paths
// that were never created or are already gone.
func (s *Scope) Cleanup() {
	s.mu.Lock()
	paths := s.paths
	s.paths = nil
	s.mu.Unlock()

	for _, path := range paths {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("artifact cleanup failed",
				logging.String("path", path),
				logging.Error(err),
			)
		}
	}
}

func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "artifact"
	}
	replacer := strings.NewReplacer(" ", "_", string(filepath.Separator), "_")
	return replacer.Replace(label)
}
