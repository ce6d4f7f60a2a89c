package options

import (
	"github.com/geos-esm/jedi-bundle/internal/cmd"
	"github.com/geos-esm/jedi-bundle/internal/config"
	"github.com/geos-esm/jedi-bundle/internal/pipeline"
	"github.com/geos-esm/jedi-bundle/internal/platform"
	"github.com/geos-esm/jedi-bundle/internal/probe"
	"github.com/geos-esm/jedi-bundle/internal/script"
	"github.com/geos-esm/jedi-bundle/internal/ui"
)

type CmdOption func(*CmdOptions) error

// Catalog is the pipeline catalog plus bundle listing.
type Catalog interface {
	pipeline.Catalog
	Bundles() ([]string, error)
}

// CmdOptions carry the collaborators shared by commands.
// Catalog, VCS, UI, ScriptRunner and CommandRunner are nil unless overridden;
// commands then fall back to the built-in catalog (or --catalog-dir) and the real system.
type CmdOptions struct {
	ConfigLoader      config.Loader
	ConfigInitializer config.Initializer
	ProberBuilder     probe.Builder
	Catalog           Catalog
	VCS               pipeline.VCS
	UI                ui.UI
	ScriptRunner      script.Runner
	CommandRunner     platform.CommandRunner
}

func defaultOptions() CmdOptions {
	configLoader := &config.DefaultLoader{}
	if path, err := config.DefaultsFilePath(); err == nil {
		configLoader.DefaultsFile = path
	}

	return CmdOptions{
		ConfigLoader:      configLoader,
		ConfigInitializer: configLoader,
		ProberBuilder:     &cmd.BaseCmd{},
	}
}

func NewOptions(opt ...CmdOption) (CmdOptions, error) {
	opts := defaultOptions()

	for _, o := range opt {
		if o == nil {
			continue
		}
		if err := o(&opts); err != nil {
			return CmdOptions{}, err
		}
	}
	return opts, nil
}

func WithConfigLoader(l config.Loader) CmdOption {
	return func(o *CmdOptions) error {
		o.ConfigLoader = l
		return nil
	}
}

func WithConfigInitializer(i config.Initializer) CmdOption {
	return func(o *CmdOptions) error {
		o.ConfigInitializer = i
		return nil
	}
}

func WithProberBuilder(b probe.Builder) CmdOption {
	return func(o *CmdOptions) error {
		o.ProberBuilder = b
		return nil
	}
}

func WithCatalog(c Catalog) CmdOption {
	return func(o *CmdOptions) error {
		o.Catalog = c
		return nil
	}
}

func WithVCS(v pipeline.VCS) CmdOption {
	return func(o *CmdOptions) error {
		o.VCS = v
		return nil
	}
}

func WithUI(u ui.UI) CmdOption {
	return func(o *CmdOptions) error {
		o.UI = u
		return nil
	}
}

func WithScriptRunner(r script.Runner) CmdOption {
	return func(o *CmdOptions) error {
		o.ScriptRunner = r
		return nil
	}
}

func WithCommandRunner(r platform.CommandRunner) CmdOption {
	return func(o *CmdOptions) error {
		o.CommandRunner = r
		return nil
	}
}
