package resolve

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/geos-esm/jedi-bundle/internal/buildorder"
	"github.com/geos-esm/jedi-bundle/internal/bundle"
	apperrors "github.com/geos-esm/jedi-bundle/internal/errors"
)

// Repository is a build order entry with its fetch location decided.
type Repository struct {
	Repo           string `json:"repo"                     yaml:"repo"`
	URL            string `json:"url"                      yaml:"url"`
	Ref            string `json:"ref"                      yaml:"ref"`
	IsTag          bool   `json:"isTag"                    yaml:"is_tag"`
	Recursive      bool   `json:"recursive"                yaml:"recursive"`
	ExtraBuildText string `json:"extraBuildText,omitempty" yaml:"extra_build_text,omitempty"`
}

// Outcome is the result of resolving every repository in a filtered build order.
type Outcome struct {
	// Resolved holds the repositories to fetch and build, in build order.
	Resolved []Repository

	// Skipped lists optional repositories that could not be resolved, in build order.
	Skipped []string
}

// BatchOption defines a functional option for ResolveAll.
type BatchOption func(*batchOptions) error

type batchOptions struct {
	concurrency int
}

// WithConcurrency sets how many repositories are resolved at once.
// The default of 1 resolves sequentially.
func WithConcurrency(n int) BatchOption {
	return func(o *batchOptions) error {
		if n < 1 {
			return fmt.Errorf("concurrency must be at least 1, got %d", n)
		}
		o.concurrency = n
		return nil
	}
}

// ResolveAll resolves each entry against orgs and userRef.
//
// Entries may be resolved concurrently, but the outcome always follows the order of entries.
// An optional repository that cannot be resolved is skipped; a required one fails the whole call
// with an error wrapping errors.ErrRequiredResolution that names the first such repository in build order.
func (r *Resolver) ResolveAll(
	ctx context.Context,
	orgs []string,
	userRef string,
	entries []buildorder.Entry,
	sets bundle.Sets,
	opt ...BatchOption,
) (Outcome, error) {
	opts := batchOptions{concurrency: 1}
	for _, o := range opt {
		if o == nil {
			continue
		}
		if err := o(&opts); err != nil {
			return Outcome{}, err
		}
	}

	results := make([]Result, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.concurrency)

	for i, e := range entries {
		g.Go(func() error {
			results[i] = r.Resolve(gctx, Request{
				Orgs:       orgs,
				RemoteName: e.RemoteNameOrRepo(),
				DefaultRef: e.DefaultRef,
				UserRef:    userRef,
				IsTag:      e.IsTag,
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Outcome{}, err
	}
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	var out Outcome
	for i, e := range entries {
		res := results[i]
		if !res.Found {
			if sets.IsRequired(e.Repo) {
				return Outcome{}, requiredError(e, res, orgs)
			}

			r.logger.Info("Optional repository not resolved", "repo", e.Repo, "org_found", res.OrgFound)
			out.Skipped = append(out.Skipped, e.Repo)
			continue
		}

		out.Resolved = append(out.Resolved, Repository{
			Repo:           e.Repo,
			URL:            res.URL,
			Ref:            res.Ref,
			IsTag:          res.IsTag,
			Recursive:      e.Recursive,
			ExtraBuildText: e.ExtraBuildText,
		})
	}

	return out, nil
}

func requiredError(e buildorder.Entry, res Result, orgs []string) error {
	if !res.OrgFound {
		return fmt.Errorf(
			"%w: repo '%s' was not found in any organisations (searched: %s)",
			apperrors.ErrRequiredResolution,
			e.Repo,
			strings.Join(orgs, ", "),
		)
	}

	return fmt.Errorf(
		"%w: no matching branch for repo '%s' was found in any organisations (searched: %s)",
		apperrors.ErrRequiredResolution,
		e.Repo,
		strings.Join(orgs, ", "),
	)
}
