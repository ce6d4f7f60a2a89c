package catalog

import (
	"fmt"
	"strings"

	"github.com/geos-esm/jedi-bundle/internal/descriptor"
	apperrors "github.com/geos-esm/jedi-bundle/internal/errors"
)

// Template holds the fixed parts of the build descriptor.
type Template struct {
	Header []string `yaml:"header"`
	Footer []string `yaml:"footer"`

	// Bootstrap overrides the default bootstrap guard when set.
	Bootstrap *descriptor.Bootstrap `yaml:"bootstrap,omitempty"`
}

// Options returns the emitter options implied by the template.
func (t Template) Options() []descriptor.Option {
	if t.Bootstrap == nil {
		return nil
	}
	return []descriptor.Option{descriptor.WithBootstrap(*t.Bootstrap)}
}

// LoadDescriptorTemplate loads the descriptor header, footer and bootstrap guard.
func (c *Catalog) LoadDescriptorTemplate() (Template, error) {
	var t Template
	if err := c.decode(templateFile, &t); err != nil {
		return Template{}, err
	}

	if b := t.Bootstrap; b != nil && strings.TrimSpace(b.Repo) != "" {
		if strings.TrimSpace(b.EnvVar) == "" || strings.TrimSpace(b.Include) == "" {
			return Template{}, fmt.Errorf(
				"%w: bootstrap for '%s' in '%s' needs both env_var and include",
				apperrors.ErrConfig,
				b.Repo,
				templateFile,
			)
		}
	}

	return t, nil
}
