package probe

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultAPIBaseURL is the GitHub REST API root used to check that repositories exist.
	DefaultAPIBaseURL = "https://api.github.com"

	// DefaultGitBaseURL is the root of fetchable repository URLs.
	DefaultGitBaseURL = "https://github.com"

	// DefaultTimeout bounds every individual probe.
	DefaultTimeout = 30 * time.Second

	// DefaultRefCacheSize is the number of remote ref listings remembered by a GitHub prober.
	DefaultRefCacheSize = 256
)

// Option defines a functional option for configuring GitHub.
type Option func(*Options) error

// Options contains optional configuration for the GitHub prober.
type Options struct {
	apiBaseURL   string
	gitBaseURL   string
	timeout      time.Duration
	httpClient   *http.Client
	credentials  Credentials
	refLister    RefLister
	refCacheSize int
}

func NewOptions(opts ...Option) (Options, error) {
	o := Options{
		apiBaseURL:   DefaultAPIBaseURL,
		gitBaseURL:   DefaultGitBaseURL,
		timeout:      DefaultTimeout,
		refCacheSize: DefaultRefCacheSize,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&o); err != nil {
			return Options{}, err
		}
	}

	if o.httpClient == nil {
		o.httpClient = &http.Client{Timeout: o.timeout}
	}

	if o.refLister == nil {
		o.refLister = NewGitRefLister(o.credentials)
	}

	return o, nil
}

// WithAPIBaseURL sets the root of the hosting API, e.g. a GitHub Enterprise endpoint.
func WithAPIBaseURL(u string) Option {
	return func(o *Options) error {
		u = strings.TrimRight(strings.TrimSpace(u), "/")
		if u == "" {
			return fmt.Errorf("API base URL cannot be empty")
		}
		o.apiBaseURL = u
		return nil
	}
}

// WithGitBaseURL sets the root of fetchable repository URLs.
func WithGitBaseURL(u string) Option {
	return func(o *Options) error {
		u = strings.TrimRight(strings.TrimSpace(u), "/")
		if u == "" {
			return fmt.Errorf("git base URL cannot be empty")
		}
		o.gitBaseURL = u
		return nil
	}
}

// WithTimeout bounds each probe.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) error {
		if d <= 0 {
			return fmt.Errorf("timeout must be positive, got %v", d)
		}
		o.timeout = d
		return nil
	}
}

// WithHTTPClient sets the client used for API requests.
func WithHTTPClient(c *http.Client) Option {
	return func(o *Options) error {
		if c == nil {
			return fmt.Errorf("HTTP client cannot be nil")
		}
		o.httpClient = c
		return nil
	}
}

// WithCredentials authenticates API requests and ref listings, which makes private repositories visible.
func WithCredentials(c Credentials) Option {
	return func(o *Options) error {
		o.credentials = c
		return nil
	}
}

// WithRefLister replaces the component that lists remote refs.
func WithRefLister(l RefLister) Option {
	return func(o *Options) error {
		if l == nil {
			return fmt.Errorf("ref lister cannot be nil")
		}
		o.refLister = l
		return nil
	}
}

// WithRefCacheSize sets how many ref listings are remembered.
func WithRefCacheSize(size int) Option {
	return func(o *Options) error {
		if size <= 0 {
			return fmt.Errorf("ref cache size must be positive, got %d", size)
		}
		o.refCacheSize = size
		return nil
	}
}
