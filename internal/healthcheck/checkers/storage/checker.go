package storagechecker

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/memohai/linehook/internal/healthcheck"
)

const checkTypeStorage = "storage.writable"

// Checker verifies that a directory exists and accepts new files.
type Checker struct {
	logger *slog.Logger
	name   string
	dir    string
}

// NewChecker creates a storage checker for dir. name identifies the check.
func NewChecker(log *slog.Logger, name, dir string) *Checker {
	if log == nil {
		log = slog.Default()
	}
	return &Checker{
		logger: log.With(slog.String("checker", "healthcheck_storage")),
		name:   name,
		dir:    dir,
	}
}

// ListChecks probes the directory by creating and removing a temp file.
func (c *Checker) ListChecks(ctx context.Context) []healthcheck.CheckResult {
	result := healthcheck.CheckResult{
		ID:       checkTypeStorage + "." + c.name,
		Type:     checkTypeStorage,
		Metadata: map[string]any{"dir": c.dir},
	}
	if err := ctx.Err(); err != nil {
		result.Status = healthcheck.StatusUnknown
		result.Summary = "Check cancelled."
		return []healthcheck.CheckResult{result}
	}

	info, err := os.Stat(c.dir)
	if err != nil {
		result.Status = healthcheck.StatusError
		result.Summary = "Directory is not accessible."
		result.Detail = err.Error()
		return []healthcheck.CheckResult{result}
	}
	if !info.IsDir() {
		result.Status = healthcheck.StatusError
		result.Summary = "Path is not a directory."
		return []healthcheck.CheckResult{result}
	}

	f, err := os.CreateTemp(c.dir, ".healthcheck-*")
	if err != nil {
		c.logger.Warn("storage not writable", slog.String("dir", c.dir), slog.Any("error", err))
		result.Status = healthcheck.StatusError
		result.Summary = "Directory is not writable."
		result.Detail = err.Error()
		return []healthcheck.CheckResult{result}
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(filepath.Clean(name))

	result.Status = healthcheck.StatusOK
	result.Summary = "Directory is writable."
	return []healthcheck.CheckResult{result}
}
