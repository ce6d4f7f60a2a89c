package script

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"

	apperrors "github.com/geos-esm/jedi-bundle/internal/errors"
)

// Runner runs a script found in a directory.
type Runner interface {
	Run(ctx context.Context, dir string, name string) error
}

// ExecRunner runs scripts as child processes, streaming their output.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Run executes ./name with dir as the working directory.
func (r ExecRunner) Run(ctx context.Context, dir string, name string) error {
	cmd := exec.CommandContext(ctx, "."+string(filepath.Separator)+name)
	cmd.Dir = dir
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%w: '%s' in '%s': %w", apperrors.ErrCommandFailed, name, dir, err)
	}
	return nil
}
