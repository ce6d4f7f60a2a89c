package probe

import (
	"context"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/transport"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/storage/memory"
)

// RefLister lists the fully qualified reference names advertised by a remote repository.
type RefLister interface {
	ListRefs(ctx context.Context, url string) ([]string, error)
}

// GitRefLister lists remote refs in process, the equivalent of 'git ls-remote <url>'.
type GitRefLister struct {
	auth transport.AuthMethod
}

// NewGitRefLister returns a lister that authenticates with creds when they are set.
func NewGitRefLister(creds Credentials) *GitRefLister {
	l := &GitRefLister{}
	if !creds.IsZero() {
		l.auth = &githttp.BasicAuth{
			Username: creds.Username,
			Password: creds.Token,
		}
	}
	return l
}

func (l *GitRefLister) ListRefs(ctx context.Context, url string) ([]string, error) {
	remote := git.NewRemote(memory.NewStorage(), &gitconfig.RemoteConfig{
		Name: "origin",
		URLs: []string{url},
	})

	refs, err := remote.ListContext(ctx, &git.ListOptions{Auth: l.auth})
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(refs))
	for _, r := range refs {
		names = append(names, r.Name().String())
	}

	return names, nil
}
