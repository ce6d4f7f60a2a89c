package cmd

import (
	"github.com/spf13/cobra"

	"github.com/geos-esm/jedi-bundle/internal/catalog"
	"github.com/geos-esm/jedi-bundle/internal/cmd"
	cmdopts "github.com/geos-esm/jedi-bundle/internal/cmd/options"
	"github.com/geos-esm/jedi-bundle/internal/config"
	"github.com/geos-esm/jedi-bundle/internal/flags"
	"github.com/geos-esm/jedi-bundle/internal/pipeline"
	"github.com/geos-esm/jedi-bundle/internal/ui"
)

const (
	flagNameJobs     = "jobs"
	flagNamePlatform = "platform"
	flagNameModules  = "modules"
)

// BuildCmd holds what the build commands share: the configuration loader and
// the collaborators a pipeline is assembled from.
type BuildCmd struct {
	*cmd.BaseCmd
	Jobs     int
	Platform string
	Modules  string

	cfgLoader config.Loader
	opts      cmdopts.CmdOptions
}

func newBuildCmd(baseCmd *cmd.BaseCmd, requireBuildOptions bool, opt ...cmdopts.CmdOption) (*BuildCmd, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	loader := opts.ConfigLoader
	if requireBuildOptions {
		loader = config.NewValidatingLoader(loader, config.RequireBuildOptions)
	}

	return &BuildCmd{
		BaseCmd:   baseCmd,
		Jobs:      1,
		cfgLoader: loader,
		opts:      opts,
	}, nil
}

func (c *BuildCmd) addJobsFlag(cobraCmd *cobra.Command) {
	cobraCmd.Flags().IntVar(
		&c.Jobs,
		flagNameJobs,
		c.Jobs,
		"Number of repositories to look up at the same time",
	)
}

// addPlatformFlags lets the platform and module set be chosen on the command line.
// Module set names belong to a platform, so both must be given.
func (c *BuildCmd) addPlatformFlags(cobraCmd *cobra.Command) {
	cobraCmd.Flags().StringVar(
		&c.Platform,
		flagNamePlatform,
		"",
		"Optional, overrides build_options.platform (requires --modules)",
	)
	cobraCmd.Flags().StringVar(
		&c.Modules,
		flagNameModules,
		"",
		"Optional, overrides build_options.modules (requires --platform)",
	)
}

// console returns the configured UI, or the base command's console.
func (c *BuildCmd) console() ui.UI {
	if c.opts.UI != nil {
		return c.opts.UI
	}
	return c.UI()
}

// catalog returns the configured catalog, or opens the one named by --catalog-dir.
func (c *BuildCmd) catalog() (cmdopts.Catalog, error) {
	if c.opts.Catalog != nil {
		return c.opts.Catalog, nil
	}
	return catalog.Open(flags.CatalogDir)
}

func (c *BuildCmd) loadConfig() (*config.Config, error) {
	return c.cfgLoader.Load(flags.ConfigFile)
}

func (c *BuildCmd) pipeline() (*pipeline.Pipeline, error) {
	cat, err := c.catalog()
	if err != nil {
		return nil, err
	}

	opt := []pipeline.Option{
		pipeline.WithProberBuilder(c.opts.ProberBuilder),
		pipeline.WithJobs(c.Jobs),
	}
	if c.opts.VCS != nil {
		opt = append(opt, pipeline.WithVCS(c.opts.VCS))
	}
	if c.opts.ScriptRunner != nil {
		opt = append(opt, pipeline.WithScriptRunner(c.opts.ScriptRunner))
	}
	if c.opts.CommandRunner != nil {
		opt = append(opt, pipeline.WithCommandRunner(c.opts.CommandRunner))
	}

	return pipeline.New(c.Logger(), c.console(), cat, opt...)
}

// prepare loads the configuration, applies any command line overrides and assembles the pipeline.
func (c *BuildCmd) prepare(cobraCmd *cobra.Command) (*config.Config, *pipeline.Pipeline, error) {
	if cobraCmd.Flags().Lookup(flagNamePlatform) != nil {
		if err := c.RequireTogether(cobraCmd, flagNamePlatform, flagNameModules); err != nil {
			return nil, nil, err
		}
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return nil, nil, err
	}

	if c.Platform != "" {
		cfg.Build.Platform = c.Platform
		cfg.Build.Modules = c.Modules
	}

	p, err := c.pipeline()
	if err != nil {
		return nil, nil, err
	}

	return cfg, p, nil
}
