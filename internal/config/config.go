package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/geos-esm/jedi-bundle/internal/perms"
)

// DefaultLoader reads build configuration files from disk.
type DefaultLoader struct {
	// DefaultsFile is an optional user defaults file merged under every loaded configuration.
	DefaultsFile string
}

// Default returns the starting configuration with both paths set to dir.
func Default(dir string) *Config {
	return &Config{
		Source: SourceOptions{
			UserBranch:   "",
			GitHubOrgs:   []string{"JCSDA-internal", "JCSDA"},
			Bundles:      []string{"fv3-jedi"},
			PathToSource: dir,
		},
		Build: BuildOptions{
			Platform:          PlatformDiscover,
			Modules:           "default",
			CMakeBuildType:    "release",
			PathToBuild:       dir,
			CoresToUseForMake: 6,
			ExternalModules:   false,
		},
	}
}

// Init creates the starting build configuration file at path, with source and build paths
// pointing at the directory containing it.
func (d *DefaultLoader) Init(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	data, err := Marshal(Default(filepath.Dir(abs)))
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, perms.RegularFile); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}
	return buf.Bytes(), nil
}

// Load reads, validates and normalizes the build configuration at path.
// Relative paths in the file are resolved against the directory containing it.
func (d *DefaultLoader) Load(path string) (*Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("%w: path cannot be empty", ErrConfigLoadFailed)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf(
				"%w: config file '%s' cannot be found, run: 'jedi_bundle init'",
				ErrConfigLoadFailed,
				path,
			)
		}
		return nil, fmt.Errorf("%w: failed to read config file (%s): %w", ErrConfigLoadFailed, path, err)
	}

	if err := validateSchema(data); err != nil {
		return nil, fmt.Errorf("%w: invalid config file (%s): %w", ErrConfigLoadFailed, path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to decode config from file (%s): %w", ErrConfigLoadFailed, path, err)
	}

	defaults, err := LoadUserDefaults(d.DefaultsFile)
	if err != nil {
		return nil, err
	}
	defaults.apply(&cfg)

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to resolve config path (%s): %w", ErrConfigLoadFailed, path, err)
	}
	cfg.path = abs
	cfg.resolvePaths(filepath.Dir(abs))

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%w: failed to validate config (%s): %w", ErrConfigLoadFailed, path, err)
	}

	return &cfg, nil
}

// resolvePaths makes relative source and build paths absolute against base.
func (c *Config) resolvePaths(base string) {
	abs := func(p string) string {
		p = strings.TrimSpace(p)
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}

	c.Source.PathToSource = abs(c.Source.PathToSource)
	c.Build.PathToBuild = abs(c.Build.PathToBuild)
}

// validate checks the rules the schema cannot express.
func (c *Config) validate() error {
	if len(c.Source.GitHubOrgs) == 0 {
		return fmt.Errorf("source_code_options.github_orgs must list at least one organization")
	}

	seen := map[string]struct{}{}
	for _, b := range c.Source.Bundles {
		if _, ok := seen[b]; ok {
			return fmt.Errorf("duplicate bundle '%s'", b)
		}
		seen[b] = struct{}{}
	}

	return nil
}
