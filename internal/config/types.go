package config

var (
	_ Loader      = (*DefaultLoader)(nil)
	_ Initializer = (*DefaultLoader)(nil)
)

// Loader loads and validates a build configuration file.
type Loader interface {
	Load(path string) (*Config, error)
}

// Initializer writes a starting build configuration file.
type Initializer interface {
	Init(path string) error
}

// Config is the content of a build configuration file (build.yaml).
type Config struct {
	Source SourceOptions `json:"source_code_options" yaml:"source_code_options"`
	Build  BuildOptions  `json:"build_options"       yaml:"build_options"`

	// path is the file the configuration was loaded from.
	path string
}

// SourceOptions control which repositories are fetched and where from.
type SourceOptions struct {
	// UserBranch is preferred over each repository's default branch wherever it exists.
	UserBranch string `json:"user_branch,omitempty" yaml:"user_branch"`

	// GitHubOrgs are searched in order for each repository.
	GitHubOrgs []string `json:"github_orgs" yaml:"github_orgs"`

	// Bundles selects the feature sets to build.
	Bundles []string `json:"bundles" yaml:"bundles"`

	// ExtraRepos are added to the required repositories of every bundle.
	ExtraRepos []string `json:"extra_repos,omitempty" yaml:"extra_repos,omitempty"`

	// PathToSource is where repositories are cloned and the descriptor is written.
	PathToSource string `json:"path_to_source" yaml:"path_to_source"`
}

// BuildOptions control the configure and make steps.
type BuildOptions struct {
	// Platform is a platform_name from the catalog, or PlatformDiscover.
	Platform string `json:"platform" yaml:"platform"`

	// Modules names the platform's module set.
	Modules string `json:"modules" yaml:"modules"`

	CMakeBuildType    string `json:"cmake_build_type"      yaml:"cmake_build_type"`
	PathToBuild       string `json:"path_to_build"         yaml:"path_to_build"`
	CoresToUseForMake int    `json:"cores_to_use_for_make" yaml:"cores_to_use_for_make"`

	// ExternalModules skips sourcing the modules file when making, for environments set up by the caller.
	ExternalModules bool `json:"external_modules" yaml:"external_modules"`
}

// PlatformDiscover asks for the platform to be detected from the machine.
const PlatformDiscover = "discover"

// Path returns the file the configuration was loaded from.
func (c *Config) Path() string {
	return c.path
}
