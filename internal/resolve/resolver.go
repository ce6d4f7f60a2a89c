// Package resolve decides, for each repository, which hosting organization and which branch or tag to fetch.
package resolve

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/geos-esm/jedi-bundle/internal/probe"
)

// Request describes one repository to resolve.
type Request struct {
	// Orgs are the hosting organizations to search, in priority order.
	Orgs []string

	// RemoteName is the repository name at the hosting organizations.
	RemoteName string

	// DefaultRef is used when UserRef is not found anywhere.
	DefaultRef string

	// UserRef is the branch the user asked for. It is always looked up as a branch.
	UserRef string

	// IsTag marks DefaultRef as a tag.
	IsTag bool
}

// Result is the outcome of resolving a Request.
type Result struct {
	// Found is true when a matching ref was selected.
	Found bool

	// OrgFound is true when the repository exists in at least one organization,
	// whether or not a matching ref was found there.
	OrgFound bool

	// Org is the organization the ref was selected from.
	Org string

	URL   string
	Ref   string
	IsTag bool
}

// Resolver searches hosting organizations for the ref to fetch.
type Resolver struct {
	prober probe.Prober
	logger hclog.Logger
}

// NewResolver creates a Resolver backed by prober.
func NewResolver(logger hclog.Logger, prober probe.Prober) (*Resolver, error) {
	if prober == nil {
		return nil, fmt.Errorf("prober is required")
	}

	return &Resolver{
		prober: prober,
		logger: logger.Named("resolve"),
	}, nil
}

// Resolve searches req.Orgs in order.
//
// The user ref wins over the default ref wherever it is found: the first organization carrying
// the user ref (as a branch) ends the search immediately, even when an earlier organization
// already matched the default ref. The default ref is taken from the first organization that
// carries it, and only once every organization has been scanned without finding the user ref.
func (r *Resolver) Resolve(ctx context.Context, req Request) Result {
	userRef := strings.TrimSpace(req.UserRef)

	var res Result
	var defaultMatch *Result

	for _, org := range req.Orgs {
		if err := ctx.Err(); err != nil {
			r.logger.Debug("Resolution cancelled", "repo", req.RemoteName, "error", err)
			break
		}

		if !r.prober.Exists(ctx, org, req.RemoteName) {
			r.logger.Trace("Repository not in organization", "repo", req.RemoteName, "org", org)
			continue
		}
		res.OrgFound = true

		url := r.prober.URL(org, req.RemoteName)

		if userRef != "" && r.prober.HasRef(ctx, org, req.RemoteName, userRef, false) {
			r.logger.Debug("User branch found", "repo", req.RemoteName, "org", org, "ref", userRef)
			return Result{
				Found:    true,
				OrgFound: true,
				Org:      org,
				URL:      url,
				Ref:      userRef,
				IsTag:    false,
			}
		}

		if defaultMatch == nil && r.prober.HasRef(ctx, org, req.RemoteName, req.DefaultRef, req.IsTag) {
			r.logger.Debug("Default ref found", "repo", req.RemoteName, "org", org, "ref", req.DefaultRef)
			defaultMatch = &Result{
				Found:    true,
				OrgFound: true,
				Org:      org,
				URL:      url,
				Ref:      req.DefaultRef,
				IsTag:    req.IsTag,
			}
		}
	}

	if defaultMatch != nil {
		return *defaultMatch
	}

	return res
}
