package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/BurntSushi/toml"

	"github.com/geos-esm/jedi-bundle/internal/files"
)

// DefaultsFileName is the user defaults file inside the user's config directory.
const DefaultsFileName = "defaults.toml"

// UserDefaults are per-user settings used when a build configuration leaves them out.
type UserDefaults struct {
	GitHubOrgs []string `toml:"github_orgs"`
	UserBranch string   `toml:"user_branch"`
}

// DefaultsFilePath returns the location of the user defaults file.
func DefaultsFilePath() (string, error) {
	dir, err := files.UserSpecificConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DefaultsFileName), nil
}

// LoadUserDefaults reads the user defaults file at path.
// A missing file yields empty defaults.
func LoadUserDefaults(path string) (UserDefaults, error) {
	var d UserDefaults
	if path == "" {
		return d, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return d, nil
	}

	if _, err := toml.DecodeFile(path, &d); err != nil {
		return UserDefaults{}, fmt.Errorf("%w: failed to decode user defaults (%s): %w", ErrConfigLoadFailed, path, err)
	}

	return d, nil
}

// apply fills the settings cfg leaves empty.
func (d UserDefaults) apply(cfg *Config) {
	if len(cfg.Source.GitHubOrgs) == 0 {
		cfg.Source.GitHubOrgs = slices.Clone(d.GitHubOrgs)
	}
	if cfg.Source.UserBranch == "" {
		cfg.Source.UserBranch = d.UserBranch
	}
}
