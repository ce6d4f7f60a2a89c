package catalog

import (
	"fmt"
	"path"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	apperrors "github.com/geos-esm/jedi-bundle/internal/errors"
)

// DefaultModulesName selects the platform's default module set.
const DefaultModulesName = "default"

// Probe is a shell command whose output identifies a platform.
type Probe struct {
	Command  string `yaml:"command"`
	Contains string `yaml:"contains"`
}

// Platform describes a machine the bundle can be built on.
type Platform struct {
	Name    string  `yaml:"platform_name"`
	IsItMe  []Probe `yaml:"is_it_me"`
	Modules Modules `yaml:"modules"`
}

// Modules holds the named sets of environment module directives for a platform.
type Modules struct {
	// Default names the set used when DefaultModulesName is requested.
	Default string

	// Sets maps a set name to its shell directives.
	Sets map[string][]string
}

// UnmarshalYAML decodes the modules mapping, where the 'default_modules' key names
// the default set and every other key holds a list of directives.
func (m *Modules) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("modules must be a mapping (line %d)", value.Line)
	}

	m.Sets = map[string][]string{}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i].Value
		val := value.Content[i+1]

		if key == "default_modules" {
			if err := val.Decode(&m.Default); err != nil {
				return fmt.Errorf("default_modules: %w", err)
			}
			continue
		}

		var lines []string
		if err := val.Decode(&lines); err != nil {
			return fmt.Errorf("modules '%s': %w", key, err)
		}
		m.Sets[key] = lines
	}

	return nil
}

// Lookup returns the directives for the named set.
// DefaultModulesName resolves to the platform's default set.
func (m Modules) Lookup(name string) ([]string, bool) {
	if name == DefaultModulesName {
		name = m.Default
	}
	lines, ok := m.Sets[name]
	return lines, ok
}

// Names returns the module set names, sorted.
func (m Modules) Names() []string {
	names := make([]string, 0, len(m.Sets))
	for n := range m.Sets {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

func (p Platform) validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("platform_name is required")
	}
	if len(p.IsItMe) == 0 {
		return fmt.Errorf("platform '%s' has no is_it_me probes", p.Name)
	}
	for i, probe := range p.IsItMe {
		if strings.TrimSpace(probe.Command) == "" {
			return fmt.Errorf("platform '%s' probe %d has no command", p.Name, i)
		}
	}
	if p.Modules.Default != "" {
		if _, ok := p.Modules.Sets[p.Modules.Default]; !ok {
			return fmt.Errorf("platform '%s' default_modules '%s' is not defined", p.Name, p.Modules.Default)
		}
	}
	return nil
}

// LoadPlatforms loads every platform definition, ordered by file name.
func (c *Catalog) LoadPlatforms() ([]Platform, error) {
	names, err := c.yamlFiles(platformsDir)
	if err != nil {
		return nil, err
	}

	platforms := make([]Platform, 0, len(names))
	for _, n := range names {
		file := path.Join(platformsDir, n+yamlExt)

		var p Platform
		if err := c.decode(file, &p); err != nil {
			return nil, err
		}
		if err := p.validate(); err != nil {
			return nil, fmt.Errorf("%w: '%s' in %s: %w", apperrors.ErrConfig, file, c.source, err)
		}

		platforms = append(platforms, p)
	}

	return platforms, nil
}
