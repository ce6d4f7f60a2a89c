// Package buildorder holds the master, dependency-ordered list of repositories
// and prunes it down to the repositories a run actually needs.
package buildorder

import (
	"fmt"
	"slices"
	"strings"

	"github.com/geos-esm/jedi-bundle/internal/bundle"
	apperrors "github.com/geos-esm/jedi-bundle/internal/errors"
)

// Entry is one repository in the build order.
type Entry struct {
	// Repo is the short, unique repository name used across bundles and the build descriptor.
	Repo string `json:"repo" yaml:"repo"`

	// RemoteName is the repository name at the hosting organization.
	// Use RemoteNameOrRepo when reading it, since it defaults to Repo.
	RemoteName string `json:"remoteName,omitempty" yaml:"repo_url_name,omitempty"`

	// DefaultRef is the branch (or tag, when IsTag) used when the user branch is not available.
	DefaultRef string `json:"defaultRef" yaml:"default_branch"`

	// IsTag marks DefaultRef as a tag rather than a branch.
	IsTag bool `json:"isTag,omitempty" yaml:"is_tag,omitempty"`

	// Recursive requests that submodules are fetched with the repository.
	Recursive bool `json:"recursive,omitempty" yaml:"recursive,omitempty"`

	// ExtraBuildText is injected verbatim into the build descriptor straight after this repository.
	ExtraBuildText string `json:"extraBuildText,omitempty" yaml:"cmakelists,omitempty"`
}

// RemoteNameOrRepo returns the name of the repository at the hosting organization.
func (e Entry) RemoteNameOrRepo() string {
	if n := strings.TrimSpace(e.RemoteName); n != "" {
		return n
	}
	return e.Repo
}

// Validate checks the fields that must be present for every entry.
func (e Entry) Validate() error {
	if strings.TrimSpace(e.Repo) == "" {
		return fmt.Errorf("repository name cannot be empty")
	}
	if strings.TrimSpace(e.DefaultRef) == "" {
		return fmt.Errorf("repository '%s' has no default_branch", e.Repo)
	}
	return nil
}

// Names returns the repository names of entries in order.
func Names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Repo
	}
	return out
}

// Filter returns the entries of order that appear in required or optional, preserving their relative order.
// Every requested repository must be present in order; otherwise nothing is filtered and an error
// wrapping errors.ErrUnknownRepository lists the unknown names.
func Filter(order []Entry, required bundle.Set, optional bundle.Set) ([]Entry, error) {
	wanted := required.Union(optional)

	known := make(bundle.Set, len(order))
	for _, e := range order {
		known.Add(e.Repo)
	}

	var unknown []string
	for name := range wanted {
		if !known.Has(name) {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		return nil, fmt.Errorf(
			"%w: not present in the build order: %s",
			apperrors.ErrUnknownRepository,
			strings.Join(unknown, ", "),
		)
	}

	filtered := make([]Entry, 0, len(wanted))
	for _, e := range order {
		if wanted.Has(e.Repo) {
			filtered = append(filtered, e)
		}
	}

	return filtered, nil
}
