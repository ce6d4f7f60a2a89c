// Package catalog loads the bundle definitions, build order, descriptor template and platform definitions
// that ship with the tool, or that are supplied from a directory in the same layout.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/geos-esm/jedi-bundle/internal/buildorder"
	"github.com/geos-esm/jedi-bundle/internal/bundle"
	apperrors "github.com/geos-esm/jedi-bundle/internal/errors"
)

const (
	bundlesDir     = "bundles"
	platformsDir   = "platforms"
	buildOrderFile = "build-order.yaml"
	templateFile   = "cmake.yaml"
	yamlExt        = ".yaml"
)

//go:embed data
var embedded embed.FS

// Catalog reads definitions from a file system laid out as:
//
//	bundles/<name>.yaml
//	bundles/build-order.yaml
//	cmake.yaml
//	platforms/<name>.yaml
type Catalog struct {
	fsys   fs.FS
	source string
}

// New returns a Catalog over fsys. The source is used in error messages.
func New(fsys fs.FS, source string) *Catalog {
	return &Catalog{fsys: fsys, source: source}
}

// Embedded returns the catalog compiled into the binary.
func Embedded() *Catalog {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		// The embedded tree is fixed at build time.
		panic(fmt.Sprintf("embedded catalog is missing: %v", err))
	}
	return New(sub, "embedded catalog")
}

// Open returns the catalog in dir, or the embedded catalog when dir is empty.
func Open(dir string) (*Catalog, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return Embedded(), nil
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: catalog directory '%s': %w", apperrors.ErrConfig, dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: catalog path '%s' is not a directory", apperrors.ErrConfig, dir)
	}

	return New(os.DirFS(dir), dir), nil
}

// Source describes where the catalog is read from.
func (c *Catalog) Source() string {
	return c.source
}

type bundleFile struct {
	Required []string `yaml:"required_repos"`
	Optional []string `yaml:"optional_repos"`
}

// LoadBundle loads the named bundle.
func (c *Catalog) LoadBundle(name string) (bundle.Descriptor, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, `/\`) || name+yamlExt == buildOrderFile {
		return bundle.Descriptor{}, fmt.Errorf("%w: invalid bundle name '%s'", apperrors.ErrConfig, name)
	}

	file := path.Join(bundlesDir, name+yamlExt)

	var bf bundleFile
	if err := c.decode(file, &bf); err != nil {
		return bundle.Descriptor{}, err
	}

	if len(bf.Required) == 0 {
		return bundle.Descriptor{}, fmt.Errorf(
			"%w: '%s' in %s must list at least one entry in required_repos",
			apperrors.ErrConfig,
			file,
			c.source,
		)
	}

	return bundle.Descriptor{
		Name:     name,
		Required: bundle.NewSet(bf.Required...),
		Optional: bundle.NewSet(bf.Optional...),
	}, nil
}

// Bundles returns the names of every bundle in the catalog, sorted.
func (c *Catalog) Bundles() ([]string, error) {
	names, err := c.yamlFiles(bundlesDir)
	if err != nil {
		return nil, err
	}

	return slices.DeleteFunc(names, func(n string) bool {
		return n+yamlExt == buildOrderFile
	}), nil
}

// LoadBuildOrder loads the full build order.
// Each item in the file is a single-key mapping from the repository name to its settings.
func (c *Catalog) LoadBuildOrder() ([]buildorder.Entry, error) {
	file := path.Join(bundlesDir, buildOrderFile)

	var raw []map[string]buildorder.Entry
	if err := c.decode(file, &raw); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(raw))
	entries := make([]buildorder.Entry, 0, len(raw))
	for i, item := range raw {
		if len(item) != 1 {
			return nil, fmt.Errorf(
				"%w: item %d of '%s' in %s must map exactly one repository name",
				apperrors.ErrConfig,
				i,
				file,
				c.source,
			)
		}

		for repo, e := range item {
			e.Repo = repo
			if err := e.Validate(); err != nil {
				return nil, fmt.Errorf("%w: '%s' in %s: %w", apperrors.ErrConfig, file, c.source, err)
			}
			if _, ok := seen[repo]; ok {
				return nil, fmt.Errorf(
					"%w: '%s' in %s lists repository '%s' more than once",
					apperrors.ErrConfig,
					file,
					c.source,
					repo,
				)
			}
			seen[repo] = struct{}{}
			entries = append(entries, e)
		}
	}

	return entries, nil
}

// decode reads a YAML file from the catalog into out.
func (c *Catalog) decode(file string, out any) error {
	data, err := fs.ReadFile(c.fsys, file)
	if err != nil {
		return fmt.Errorf("%w: failed to read '%s' from %s: %w", apperrors.ErrConfig, file, c.source, err)
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: failed to parse '%s' from %s: %w", apperrors.ErrConfig, file, c.source, err)
	}

	return nil
}

// yamlFiles returns the base names (without extension) of YAML files in dir, sorted.
// Names that do not start with a letter or digit are ignored.
func (c *Catalog) yamlFiles(dir string) ([]string, error) {
	entries, err := fs.ReadDir(c.fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list '%s' in %s: %w", apperrors.ErrConfig, dir, c.source, err)
	}

	var names []string
	for _, e := range entries {
		n := e.Name()
		if e.IsDir() || !strings.HasSuffix(n, yamlExt) || !startsAlnum(n) {
			continue
		}
		names = append(names, strings.TrimSuffix(n, yamlExt))
	}

	slices.Sort(names)
	return names, nil
}

func startsAlnum(s string) bool {
	if s == "" {
		return false
	}
	r := s[0]
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
