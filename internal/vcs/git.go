// Package vcs materializes resolved repositories on disk using the git command line client.
package vcs

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"

	apperrors "github.com/geos-esm/jedi-bundle/internal/errors"
	"github.com/geos-esm/jedi-bundle/internal/files"
	"github.com/geos-esm/jedi-bundle/internal/resolve"
)

// RequiredExecutables must be on the PATH before cloning.
// git-lfs is needed for repositories that keep test data in LFS.
var RequiredExecutables = []string{"git", "git-lfs"}

// Client fetches repositories and keeps existing clones up to date.
type Client interface {
	// Fetch clones url at ref into target.
	Fetch(ctx context.Context, url string, ref string, isTag bool, recursive bool, target string) error

	// UpdateExisting brings the branch ref of the clone in target up to date with its remote.
	UpdateExisting(ctx context.Context, target string, ref string) error
}

// Action describes what Materialize did for a repository.
type Action string

const (
	ActionCloned  Action = "cloned"
	ActionUpdated Action = "updated"
	ActionSkipped Action = "skipped"
)

var _ Client = (*Git)(nil)

// Git runs the git binary.
type Git struct {
	logger   hclog.Logger
	bin      string
	lookPath func(string) (string, error)
}

// Option defines a functional option for Git.
type Option func(*Git)

// WithBinary sets the git executable to run.
func WithBinary(bin string) Option {
	return func(g *Git) {
		g.bin = bin
	}
}

// WithLookPath replaces the PATH lookup used by CheckExecutables.
func WithLookPath(fn func(string) (string, error)) Option {
	return func(g *Git) {
		g.lookPath = fn
	}
}

// NewGit creates a git client.
func NewGit(logger hclog.Logger, opt ...Option) *Git {
	g := &Git{
		logger:   logger.Named("vcs"),
		bin:      "git",
		lookPath: exec.LookPath,
	}
	for _, o := range opt {
		if o != nil {
			o(g)
		}
	}
	return g
}

// CheckExecutables verifies that every required executable is on the PATH.
func (g *Git) CheckExecutables() error {
	for _, name := range RequiredExecutables {
		if _, err := g.lookPath(name); err != nil {
			return fmt.Errorf("%w: did not find %s in the path", apperrors.ErrExecutableNotFound, name)
		}
	}
	return nil
}

// Fetch clones url at ref into target.
func (g *Git) Fetch(ctx context.Context, url string, ref string, isTag bool, recursive bool, target string) error {
	args := []string{"clone"}
	if recursive {
		args = append(args, "--recursive")
	}
	// -b accepts tags as well as branches; a tag clone is left on a detached HEAD.
	args = append(args, "-b", ref, url, target)

	g.logger.Debug("Cloning", "url", url, "ref", ref, "tag", isTag, "target", target)
	return g.run(ctx, "", args...)
}

// UpdateExisting fetches, checks out ref, and pulls it from origin.
func (g *Git) UpdateExisting(ctx context.Context, target string, ref string) error {
	g.logger.Debug("Updating", "target", target, "ref", ref)

	steps := [][]string{
		{"fetch"},
		{"checkout", ref},
		{"pull", "origin", ref},
	}
	for _, args := range steps {
		if err := g.run(ctx, target, args...); err != nil {
			return err
		}
	}
	return nil
}

// Materialize makes the repository available at <sourceDir>/<repo>.
// A missing clone is fetched; an existing tag clone is left alone since tags do not move;
// an existing branch clone is updated.
func Materialize(ctx context.Context, client Client, repo resolve.Repository, sourceDir string) (Action, error) {
	target := filepath.Join(sourceDir, repo.Repo)

	if !files.Exists(target) {
		if err := client.Fetch(ctx, repo.URL, repo.Ref, repo.IsTag, repo.Recursive, target); err != nil {
			return "", err
		}
		return ActionCloned, nil
	}

	if repo.IsTag {
		return ActionSkipped, nil
	}

	if err := client.UpdateExisting(ctx, target, repo.Ref); err != nil {
		return "", err
	}
	return ActionUpdated, nil
}

func (g *Git) run(ctx context.Context, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, g.bin, args...)
	cmd.Dir = dir
	// Never block on a credential prompt.
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf(
			"%w: '%s %s' failed: %s: %w",
			apperrors.ErrCommandFailed,
			g.bin,
			strings.Join(args, " "),
			strings.TrimSpace(string(output)),
			err,
		)
	}

	g.logger.Trace("git output", "args", args, "output", string(output))
	return nil
}
