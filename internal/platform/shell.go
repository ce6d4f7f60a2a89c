package platform

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// CommandRunner runs a shell command and returns what it wrote to stdout.
type CommandRunner interface {
	Output(ctx context.Context, command string) (string, error)
}

// Shell runs commands with an in-process POSIX shell interpreter.
// External programs named by a command are still executed from the PATH.
type Shell struct {
	// Env is the environment for commands; nil means the current process environment.
	Env []string
}

// Output runs command and returns its stdout.
// A non-zero exit status is not an error: whatever was printed is still returned.
func (s Shell) Output(ctx context.Context, command string) (string, error) {
	prog, err := syntax.NewParser().Parse(strings.NewReader(command), "is_it_me")
	if err != nil {
		return "", fmt.Errorf("failed to parse command '%s': %w", command, err)
	}

	env := s.Env
	if env == nil {
		env = os.Environ()
	}

	var stdout bytes.Buffer
	runner, err := interp.New(
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(nil, &stdout, nil),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create interpreter: %w", err)
	}

	err = runner.Run(ctx, prog)
	var exitStatus interp.ExitStatus
	if err != nil && !errors.As(err, &exitStatus) {
		return stdout.String(), fmt.Errorf("command '%s' failed: %w", command, err)
	}

	return stdout.String(), nil
}
