// Package bundle aggregates the repositories required (and optionally wanted) by a selection of bundles.
package bundle

import (
	"fmt"
	"strings"
)

// Descriptor is a named, user-selectable feature set and the repositories it declares.
type Descriptor struct {
	Name     string
	Required Set
	Optional Set
}

// Loader loads the descriptor for a named bundle.
type Loader interface {
	LoadBundle(name string) (Descriptor, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(name string) (Descriptor, error)

func (f LoaderFunc) LoadBundle(name string) (Descriptor, error) {
	return f(name)
}

// Sets holds the union of required and optional repositories across every selected bundle.
// A repository may appear in both; Required takes precedence.
type Sets struct {
	Required Set
	Optional Set
}

// IsRequired reports whether the repository must resolve for the run to succeed.
func (s Sets) IsRequired(name string) bool {
	return s.Required.Has(name)
}

// All returns every repository named by either set.
func (s Sets) All() Set {
	return s.Required.Union(s.Optional)
}

// Aggregate unions the required and optional repositories of the named bundles,
// then adds extraRepos to the required set.
func Aggregate(names []string, loader Loader, extraRepos []string) (Sets, error) {
	if loader == nil {
		return Sets{}, fmt.Errorf("bundle loader is required")
	}

	sets := Sets{
		Required: NewSet(),
		Optional: NewSet(),
	}

	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			return Sets{}, fmt.Errorf("bundle name cannot be empty")
		}

		d, err := loader.LoadBundle(name)
		if err != nil {
			return Sets{}, fmt.Errorf("failed to load bundle '%s': %w", name, err)
		}

		for repo := range d.Required {
			sets.Required.Add(repo)
		}
		for repo := range d.Optional {
			sets.Optional.Add(repo)
		}
	}

	for _, repo := range extraRepos {
		repo = strings.TrimSpace(repo)
		if repo == "" {
			continue
		}
		sets.Required.Add(repo)
	}

	return sets, nil
}
