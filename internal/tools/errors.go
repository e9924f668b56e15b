package tools

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrDependencyMissing = errors.New("dependency is not installed")
	ErrToolFailed        = errors.New("external tool failed")
)

// ToolError is returned when an external tool cannot be started or exits with a non-zero status.
// It matches ErrToolFailed with errors.Is.
type ToolError struct {
	Tool     string
	Args     []string
	ExitCode int
	Err      error
}

func (e *ToolError) Error() string {
	if e.ExitCode < 0 {
		return fmt.Sprintf("%s %s: %v", e.Tool, strings.Join(e.Args, " "), e.Err)
	}

	return fmt.Sprintf("%s %s: exited with status %d", e.Tool, strings.Join(e.Args, " "), e.ExitCode)
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

func (e *ToolError) Is(target error) bool {
	return target == ErrToolFailed //nolint:errorlint
}
