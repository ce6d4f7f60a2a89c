package vcs

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	apperrors "github.com/geos-esm/jedi-bundle/internal/errors"
	"github.com/geos-esm/jedi-bundle/internal/resolve"
)

func requireGit(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}

// gitIn runs git in dir with an identity that does not depend on the host configuration.
func gitIn(t *testing.T, dir string, args ...string) string {
	t.Helper()

	full := append([]string{
		"-c", "user.name=test",
		"-c", "user.email=test@example.com",
		"-c", "commit.gpgsign=false",
		"-c", "tag.gpgsign=false",
	}, args...)

	cmd := exec.Command("git", full...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))
	return strings.TrimSpace(string(out))
}

// upstream creates a repository with a 'develop' branch and a 'v1' tag.
func upstream(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	gitIn(t, dir, "init")
	gitIn(t, dir, "checkout", "-b", "develop")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "file.txt"), []byte("one\n"), 0o644))
	gitIn(t, dir, "add", "file.txt")
	gitIn(t, dir, "commit", "-m", "one")
	gitIn(t, dir, "tag", "v1")
	return dir
}

func commit(t *testing.T, dir string, content string) {
	t.Helper()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "file.txt"), []byte(content), 0o644))
	gitIn(t, dir, "commit", "-am", content)
}

func TestGit_CheckExecutables(t *testing.T) {
	t.Parallel()

	t.Run("all present", func(t *testing.T) {
		t.Parallel()

		var looked []string
		g := NewGit(hclog.NewNullLogger(), WithLookPath(func(name string) (string, error) {
			looked = append(looked, name)
			return "/usr/bin/" + name, nil
		}))

		require.NoError(t, g.CheckExecutables())
		require.Equal(t, []string{"git", "git-lfs"}, looked)
	})

	t.Run("git-lfs missing", func(t *testing.T) {
		t.Parallel()

		g := NewGit(hclog.NewNullLogger(), WithLookPath(func(name string) (string, error) {
			if name == "git-lfs" {
				return "", exec.ErrNotFound
			}
			return "/usr/bin/" + name, nil
		}))

		err := g.CheckExecutables()
		require.ErrorIs(t, err, apperrors.ErrExecutableNotFound)
		require.EqualError(t, err, "executable not found: did not find git-lfs in the path")
	})
}

func TestGit_Fetch(t *testing.T) {
	t.Parallel()
	requireGit(t)

	src := upstream(t)
	g := NewGit(hclog.NewNullLogger())

	t.Run("branch", func(t *testing.T) {
		t.Parallel()

		target := filepath.Join(t.TempDir(), "repo")
		require.NoError(t, g.Fetch(context.Background(), src, "develop", false, false, target))
		require.Equal(t, "develop", gitIn(t, target, "rev-parse", "--abbrev-ref", "HEAD"))
	})

	t.Run("tag", func(t *testing.T) {
		t.Parallel()

		target := filepath.Join(t.TempDir(), "repo")
		require.NoError(t, g.Fetch(context.Background(), src, "v1", true, true, target))
		require.Equal(t, "v1", gitIn(t, target, "describe", "--tags", "--exact-match"))
	})

	t.Run("missing ref", func(t *testing.T) {
		t.Parallel()

		target := filepath.Join(t.TempDir(), "repo")
		err := g.Fetch(context.Background(), src, "nope", false, false, target)
		require.ErrorIs(t, err, apperrors.ErrCommandFailed)
		require.ErrorContains(t, err, "git clone -b nope")
	})
}

func TestGit_UpdateExisting(t *testing.T) {
	t.Parallel()
	requireGit(t)

	src := upstream(t)
	g := NewGit(hclog.NewNullLogger())

	target := filepath.Join(t.TempDir(), "repo")
	require.NoError(t, g.Fetch(context.Background(), src, "develop", false, false, target))

	commit(t, src, "two\n")
	require.NoError(t, g.UpdateExisting(context.Background(), target, "develop"))

	data, err := os.ReadFile(filepath.Join(target, "file.txt"))
	require.NoError(t, err)
	require.Equal(t, "two\n", string(data))
}

// fakeClient records calls made through the Client interface.
type fakeClient struct {
	fetched []string
	updated []string
	err     error
}

func (f *fakeClient) Fetch(_ context.Context, url string, ref string, _ bool, _ bool, target string) error {
	f.fetched = append(f.fetched, url+"@"+ref+"->"+target)
	return f.err
}

func (f *fakeClient) UpdateExisting(_ context.Context, target string, ref string) error {
	f.updated = append(f.updated, target+"@"+ref)
	return f.err
}

func TestMaterialize(t *testing.T) {
	t.Parallel()

	src := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(src, "existing"), 0o755))

	tests := []struct {
		name    string
		repo    resolve.Repository
		action  Action
		fetched []string
		updated []string
	}{
		{
			name:    "absent branch is cloned",
			repo:    resolve.Repository{Repo: "fresh", URL: "u", Ref: "develop"},
			action:  ActionCloned,
			fetched: []string{"u@develop->" + filepath.Join(src, "fresh")},
		},
		{
			name:    "absent tag is cloned",
			repo:    resolve.Repository{Repo: "fresh", URL: "u", Ref: "v1", IsTag: true},
			action:  ActionCloned,
			fetched: []string{"u@v1->" + filepath.Join(src, "fresh")},
		},
		{
			name:   "existing tag is skipped",
			repo:   resolve.Repository{Repo: "existing", URL: "u", Ref: "v1", IsTag: true},
			action: ActionSkipped,
		},
		{
			name:    "existing branch is updated",
			repo:    resolve.Repository{Repo: "existing", URL: "u", Ref: "develop"},
			action:  ActionUpdated,
			updated: []string{filepath.Join(src, "existing") + "@develop"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			client := &fakeClient{}
			action, err := Materialize(context.Background(), client, tc.repo, src)
			require.NoError(t, err)
			require.Equal(t, tc.action, action)
			require.Equal(t, tc.fetched, client.fetched)
			require.Equal(t, tc.updated, client.updated)
		})
	}
}

func TestMaterialize_Error(t *testing.T) {
	t.Parallel()

	client := &fakeClient{err: errors.New("boom")}
	_, err := Materialize(context.Background(), client, resolve.Repository{Repo: "x", Ref: "r"}, t.TempDir())
	require.EqualError(t, err, "boom")
}
