// Package descriptor renders the CMake bundle descriptor that drives the downstream build.
package descriptor

import (
	"fmt"
	"strings"

	"github.com/geos-esm/jedi-bundle/internal/files"
	"github.com/geos-esm/jedi-bundle/internal/perms"
	"github.com/geos-esm/jedi-bundle/internal/resolve"
)

// FileName is the name of the descriptor written to the source directory.
const FileName = "CMakeLists.txt"

// Bootstrap describes the repository that provides the build macros themselves.
// Its directive is guarded so a locally installed copy can be used instead.
type Bootstrap struct {
	// Repo is the repository name that receives the guard.
	Repo string `yaml:"repo"`

	// EnvVar is the environment variable pointing at a local copy.
	EnvVar string `yaml:"env_var"`

	// Include is the file included, relative to EnvVar, when the local copy is used.
	Include string `yaml:"include"`
}

// DefaultBootstrap returns the guard used when none is configured.
func DefaultBootstrap() Bootstrap {
	return Bootstrap{
		Repo:    "jedicmake",
		EnvVar:  "jedi_cmake_ROOT",
		Include: "share/jedicmake/Functions/git_functions.cmake",
	}
}

// Option defines a functional option for Emit.
type Option func(*options)

type options struct {
	bootstrap Bootstrap
}

// WithBootstrap replaces the default bootstrap guard.
// A zero Repo disables the guard entirely.
func WithBootstrap(b Bootstrap) Option {
	return func(o *options) {
		o.bootstrap = b
	}
}

type widths struct {
	repo int
	url  int
	ref  int
}

func columnWidths(resolved []resolve.Repository) widths {
	var w widths
	for _, r := range resolved {
		w.repo = max(w.repo, len(r.Repo))
		w.url = max(w.url, len(r.URL)+2) // Quoted.
		w.ref = max(w.ref, len(r.Ref))
	}
	return w
}

// Emit renders the descriptor: header lines, one directive per resolved repository in order, then footer lines.
// Each line ends with a newline.
func Emit(header []string, footer []string, resolved []resolve.Repository, opt ...Option) string {
	opts := options{bootstrap: DefaultBootstrap()}
	for _, o := range opt {
		if o != nil {
			o(&opts)
		}
	}

	w := columnWidths(resolved)

	var sb strings.Builder
	for _, l := range header {
		sb.WriteString(l)
		sb.WriteString("\n")
	}

	for _, r := range resolved {
		line := directive(r, w)

		if opts.bootstrap.Repo != "" && r.Repo == opts.bootstrap.Repo {
			fmt.Fprintf(&sb, "if( DEFINED ENV{%s} )\n", opts.bootstrap.EnvVar)
			fmt.Fprintf(&sb, "  include( $ENV{%s}/%s )\n", opts.bootstrap.EnvVar, opts.bootstrap.Include)
			sb.WriteString("else()\n")
			sb.WriteString("  " + line + "\n")
			sb.WriteString("endif()\n")
		} else {
			sb.WriteString(line + "\n")
		}

		if r.ExtraBuildText != "" {
			sb.WriteString(r.ExtraBuildText)
			sb.WriteString("\n")
		}
	}

	for _, l := range footer {
		sb.WriteString(l)
		sb.WriteString("\n")
	}

	return sb.String()
}

// directive renders a single ecbuild_bundle line padded to the column widths.
func directive(r resolve.Repository, w widths) string {
	kind := "BRANCH"
	if r.IsTag {
		kind = "TAG"
	}

	line := fmt.Sprintf(
		"ecbuild_bundle( PROJECT %-*s GIT %-*s %s %-*s",
		w.repo, r.Repo,
		w.url, `"`+r.URL+`"`,
		kind,
		w.ref, r.Ref,
	)

	if !r.IsTag {
		line += " UPDATE"
	}
	if r.Recursive {
		line += " RECURSIVE"
	}

	return line + " )"
}

// WriteFile replaces the file at path with text.
func WriteFile(path string, text string) error {
	if err := files.ReplaceFile(path, []byte(text), perms.RegularFile); err != nil {
		return fmt.Errorf("failed to write descriptor '%s': %w", path, err)
	}
	return nil
}
