package pipeline

import (
	"fmt"

	"github.com/geos-esm/jedi-bundle/internal/platform"
	"github.com/geos-esm/jedi-bundle/internal/probe"
	"github.com/geos-esm/jedi-bundle/internal/script"
)

// Option defines a functional option for New.
type Option func(*Options) error

// Options configure a Pipeline.
type Options struct {
	ProberBuilder probe.Builder
	VCS           VCS
	ScriptRunner  script.Runner
	CommandRunner platform.CommandRunner
	Jobs          int
}

// WithProberBuilder sets how the remote prober is created.
func WithProberBuilder(b probe.Builder) Option {
	return func(o *Options) error {
		if b == nil {
			return fmt.Errorf("prober builder cannot be nil")
		}
		o.ProberBuilder = b
		return nil
	}
}

// WithVCS sets the client used to clone and update repositories.
func WithVCS(v VCS) Option {
	return func(o *Options) error {
		if v == nil {
			return fmt.Errorf("version control client cannot be nil")
		}
		o.VCS = v
		return nil
	}
}

// WithScriptRunner sets how the configure and make scripts are run.
func WithScriptRunner(r script.Runner) Option {
	return func(o *Options) error {
		if r == nil {
			return fmt.Errorf("script runner cannot be nil")
		}
		o.ScriptRunner = r
		return nil
	}
}

// WithCommandRunner sets how platform probe commands are run.
func WithCommandRunner(r platform.CommandRunner) Option {
	return func(o *Options) error {
		if r == nil {
			return fmt.Errorf("command runner cannot be nil")
		}
		o.CommandRunner = r
		return nil
	}
}

// WithJobs sets how many repositories are resolved concurrently.
func WithJobs(n int) Option {
	return func(o *Options) error {
		if n < 1 {
			return fmt.Errorf("jobs must be at least 1, got %d", n)
		}
		o.Jobs = n
		return nil
	}
}
