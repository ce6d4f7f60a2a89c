package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	lru "github.com/hashicorp/golang-lru/v2"
)

var _ Prober = (*GitHub)(nil)

// GitHub probes repositories hosted on GitHub (or a compatible server).
// NewGitHub should be used to create instances of GitHub.
type GitHub struct {
	logger      hclog.Logger
	apiBaseURL  string
	gitBaseURL  string
	timeout     time.Duration
	client      *http.Client
	credentials Credentials
	lister      RefLister

	// refs remembers remote ref listings by URL for the lifetime of this prober.
	refs *lru.Cache[string, []string]
}

// repoResponse is the subset of the GitHub repository API response that is inspected.
type repoResponse struct {
	FullName string `json:"full_name"`
}

// NewGitHub creates a GitHub prober.
func NewGitHub(logger hclog.Logger, opt ...Option) (*GitHub, error) {
	opts, err := NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	cache, err := lru.New[string, []string](opts.refCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create ref cache: %w", err)
	}

	return &GitHub{
		logger:      logger.Named("probe"),
		apiBaseURL:  opts.apiBaseURL,
		gitBaseURL:  opts.gitBaseURL,
		timeout:     opts.timeout,
		client:      opts.httpClient,
		credentials: opts.credentials,
		lister:      opts.refLister,
		refs:        cache,
	}, nil
}

func (g *GitHub) URL(org string, name string) string {
	return g.gitBaseURL + "/" + org + "/" + name
}

// Exists asks the repository API for org/name and checks that the canonical full name it reports
// matches the requested path. Renamed or transferred repositories redirect to a different full name
// and are treated as absent.
func (g *GitHub) Exists(ctx context.Context, org string, name string) bool {
	path := org + "/" + name
	apiURL := g.apiBaseURL + "/repos/" + path

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		g.logger.Debug("Invalid repository API request", "url", apiURL, "error", err)
		return false
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if !g.credentials.IsZero() {
		req.SetBasicAuth(g.credentials.Username, g.credentials.Token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Debug("Repository API unreachable", "url", apiURL, "error", err)
		return false
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		g.logger.Debug("Repository not found", "url", apiURL, "status", resp.StatusCode)
		return false
	}

	var body repoResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		g.logger.Debug("Failed to decode repository API response", "url", apiURL, "error", err)
		return false
	}

	if body.FullName == "" || !strings.EqualFold(body.FullName, path) {
		g.logger.Debug("Repository full name mismatch", "requested", path, "full_name", body.FullName)
		return false
	}

	return true
}

func (g *GitHub) HasRef(ctx context.Context, org string, name string, ref string, isTag bool) bool {
	if strings.TrimSpace(ref) == "" {
		return false
	}

	refs, err := g.listRefs(ctx, g.URL(org, name))
	if err != nil {
		return false
	}

	return slices.Contains(refs, RefName(ref, isTag))
}

// listRefs returns the refs advertised at url, consulting the cache first.
// Failed listings are not cached.
func (g *GitHub) listRefs(ctx context.Context, url string) ([]string, error) {
	if refs, ok := g.refs.Get(url); ok {
		return refs, nil
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	refs, err := g.lister.ListRefs(ctx, url)
	if err != nil {
		g.logger.Debug("Failed to list remote refs", "url", url, "error", err)
		return nil, err
	}

	g.refs.Add(url, refs)
	g.logger.Trace("Listed remote refs", "url", url, "count", len(refs))

	return refs, nil
}
