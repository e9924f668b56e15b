package tools

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/pkg/errors"
)

// Command is one invocation of an external tool.
type Command struct {
	Name string
	Args []string

	// Stdin, Stdout and Stderr override the runner defaults when set.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (c Command) String() string {
	return fmt.Sprintf("%q", append([]string{c.Name}, c.Args...))
}

// Runner executes external tools and waits for them to finish.
type Runner interface {
	Run(ctx context.Context, cmd Command) error
}

// ExecRunner runs commands as subprocesses of the current process.
// Output not redirected by the command goes to Stdout and Stderr, or to the process ones when those are nil.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

func firstWriter(writers ...io.Writer) io.Writer {
	for _, w := range writers {
		if w != nil {
			return w
		}
	}

	return nil
}

// Run starts the command and blocks until it exits. A non-zero exit status is reported as a *ToolError.
func (r ExecRunner) Run(ctx context.Context, c Command) error {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...) //nolint:gosec
	cmd.Stdin = c.Stdin
	cmd.Stdout = firstWriter(c.Stdout, r.Stdout, os.Stdout)
	cmd.Stderr = firstWriter(c.Stderr, r.Stderr, os.Stderr)

	err := cmd.Run()
	if err == nil {
		return nil
	}

	toolErr := &ToolError{
		Tool:     c.Name,
		Args:     c.Args,
		ExitCode: -1,
		Err:      err,
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		toolErr.ExitCode = exitErr.ExitCode()
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		toolErr.Err = ctxErr
	}

	return toolErr
}

var _ Runner = ExecRunner{}
