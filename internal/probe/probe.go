// Package probe answers questions about remote repositories: does a repository exist at a
// hosting organization, and does it carry a given branch or tag.
//
// Probes never fail. Any transport problem, unexpected status, or malformed response is
// reported as "does not exist" so that one unreachable organization cannot abort a search
// that another organization may still satisfy.
package probe

import (
	"context"

	"github.com/hashicorp/go-hclog"
)

// Prober is the read-only view of remote hosting needed by ref resolution.
type Prober interface {
	// URL returns the fetchable address of the repository name under org.
	URL(org string, name string) string

	// Exists reports whether the repository name is present under org.
	Exists(ctx context.Context, org string, name string) bool

	// HasRef reports whether the repository name under org has a branch (or, when isTag, a tag) called ref.
	HasRef(ctx context.Context, org string, name string, ref string, isTag bool) bool
}

// Builder creates a Prober.
type Builder interface {
	BuildProber() (Prober, error)
}

// BuilderFunc adapts a function to the Builder interface.
type BuilderFunc func() (Prober, error)

func (f BuilderFunc) BuildProber() (Prober, error) {
	return f()
}

// RefName returns the fully qualified reference name for a branch or tag.
func RefName(ref string, isTag bool) string {
	if isTag {
		return "refs/tags/" + ref
	}
	return "refs/heads/" + ref
}

// NewDefaultBuilder returns a Builder for a GitHub prober authenticated with whatever
// credentials are found in the environment, a .env file or ~/.git-credentials.
func NewDefaultBuilder(logger hclog.Logger) Builder {
	return BuilderFunc(func() (Prober, error) {
		creds := LoadCredentials(logger)
		gh, err := NewGitHub(logger, WithCredentials(creds))
		if err != nil {
			return nil, err
		}
		return gh, nil
	})
}
