// Package pipeline runs the clone, configure and make steps of a bundle build.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/geos-esm/jedi-bundle/internal/buildorder"
	"github.com/geos-esm/jedi-bundle/internal/bundle"
	"github.com/geos-esm/jedi-bundle/internal/catalog"
	"github.com/geos-esm/jedi-bundle/internal/config"
	"github.com/geos-esm/jedi-bundle/internal/descriptor"
	apperrors "github.com/geos-esm/jedi-bundle/internal/errors"
	"github.com/geos-esm/jedi-bundle/internal/files"
	"github.com/geos-esm/jedi-bundle/internal/platform"
	"github.com/geos-esm/jedi-bundle/internal/printer"
	"github.com/geos-esm/jedi-bundle/internal/resolve"
	"github.com/geos-esm/jedi-bundle/internal/script"
	"github.com/geos-esm/jedi-bundle/internal/ui"
	"github.com/geos-esm/jedi-bundle/internal/vcs"
)

// ConfigCopyName is the name the build configuration is copied to inside the source directory.
const ConfigCopyName = "build.yaml"

const summaryRule = "-------------------------"

// Catalog is the read-only source of bundle, build order, template and platform definitions.
type Catalog interface {
	bundle.Loader
	LoadBuildOrder() ([]buildorder.Entry, error)
	LoadDescriptorTemplate() (catalog.Template, error)
	LoadPlatforms() ([]catalog.Platform, error)
}

// VCS clones repositories and can verify its own prerequisites.
type VCS interface {
	vcs.Client
	CheckExecutables() error
}

// Pipeline runs build steps for one build configuration.
type Pipeline struct {
	logger   hclog.Logger
	ui       ui.UI
	catalog  Catalog
	opts     Options
	detector *platform.Detector
}

// New creates a Pipeline. A prober builder must be supplied with WithProberBuilder.
func New(logger hclog.Logger, console ui.UI, cat Catalog, opt ...Option) (*Pipeline, error) {
	if console == nil {
		return nil, fmt.Errorf("console cannot be nil")
	}
	if cat == nil {
		return nil, fmt.Errorf("catalog cannot be nil")
	}

	opts := Options{Jobs: 1}
	for _, o := range opt {
		if o == nil {
			continue
		}
		if err := o(&opts); err != nil {
			return nil, err
		}
	}

	if opts.ProberBuilder == nil {
		return nil, fmt.Errorf("prober builder is required")
	}
	if opts.VCS == nil {
		opts.VCS = vcs.NewGit(logger)
	}
	if opts.ScriptRunner == nil {
		opts.ScriptRunner = script.ExecRunner{Stdout: os.Stdout, Stderr: os.Stderr}
	}

	return &Pipeline{
		logger:   logger.Named("pipeline"),
		ui:       console,
		catalog:  cat,
		opts:     opts,
		detector: platform.NewDetector(logger, opts.CommandRunner),
	}, nil
}

// Plan works out which repositories the configuration needs and where each is fetched from,
// without touching the disk.
func (p *Pipeline) Plan(ctx context.Context, cfg *config.Config) (resolve.Outcome, error) {
	sets, err := bundle.Aggregate(cfg.Source.Bundles, p.catalog, cfg.Source.ExtraRepos)
	if err != nil {
		return resolve.Outcome{}, err
	}

	order, err := p.catalog.LoadBuildOrder()
	if err != nil {
		return resolve.Outcome{}, err
	}

	entries, err := buildorder.Filter(order, sets.Required, sets.Optional)
	if err != nil {
		return resolve.Outcome{}, err
	}
	p.logger.Debug("Build order filtered", "repos", buildorder.Names(entries))

	prober, err := p.opts.ProberBuilder.BuildProber()
	if err != nil {
		return resolve.Outcome{}, fmt.Errorf("failed to create remote prober: %w", err)
	}

	resolver, err := resolve.NewResolver(p.logger, prober)
	if err != nil {
		return resolve.Outcome{}, err
	}

	return resolver.ResolveAll(
		ctx,
		cfg.Source.GitHubOrgs,
		cfg.Source.UserBranch,
		entries,
		sets,
		resolve.WithConcurrency(p.opts.Jobs),
	)
}

// Clone resolves, fetches or updates every needed repository into the source directory,
// then writes the build descriptor there.
func (p *Pipeline) Clone(ctx context.Context, cfg *config.Config) error {
	if err := p.opts.VCS.CheckExecutables(); err != nil {
		return err
	}

	tmpl, err := p.catalog.LoadDescriptorTemplate()
	if err != nil {
		return err
	}

	outcome, err := p.Plan(ctx, cfg)
	if err != nil {
		return err
	}

	if err := p.reportSummary(printer.NewSummary(outcome)); err != nil {
		return err
	}

	sourceDir := cfg.Source.PathToSource
	if err := files.EnsureRegularDir(sourceDir); err != nil {
		return err
	}

	for _, repo := range outcome.Resolved {
		p.ui.Info(fmt.Sprintf("Cloning '%s'.", repo.Repo))

		action, err := vcs.Materialize(ctx, p.opts.VCS, repo, sourceDir)
		if err != nil {
			return fmt.Errorf("failed to clone '%s': %w", repo.Repo, err)
		}

		switch action {
		case vcs.ActionSkipped:
			p.ui.Info(fmt.Sprintf("Repo %s, tag already cloned, skipping...", repo.URL))
		case vcs.ActionUpdated:
			p.ui.Info(fmt.Sprintf("Repo %s, already cloned. Updated branch %s.", repo.URL, repo.Ref))
		}
		p.logger.Debug("Repository materialized", "repo", repo.Repo, "action", action)
	}

	text := descriptor.Emit(tmpl.Header, tmpl.Footer, outcome.Resolved, tmpl.Options()...)
	path := filepath.Join(sourceDir, descriptor.FileName)
	if err := descriptor.WriteFile(path, text); err != nil {
		return err
	}
	p.ui.Info(fmt.Sprintf("Wrote %s", path))

	return nil
}

// reportSummary shows what will be cloned, and which optional repositories are left out.
func (p *Pipeline) reportSummary(s printer.Summary) error {
	sp := &printer.SummaryPrinter{}
	sp.SetHeader(func(w io.Writer, _ int) {
		_, _ = fmt.Fprintf(w, "Repository clone summary:\n%s\n", summaryRule)
	})
	sp.SetFooter(func(w io.Writer, _ int) {
		_, _ = fmt.Fprintln(w, summaryRule)
	})

	var buf bytes.Buffer
	sp.Header(&buf, 1)
	if err := sp.Item(&buf, s); err != nil {
		return err
	}
	sp.Footer(&buf, 1)

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		p.ui.Info(line)
	}

	return nil
}

// BuildDir returns the build directory for the configured module set and build type.
func BuildDir(cfg *config.Config) string {
	return filepath.Join(
		cfg.Build.PathToBuild,
		fmt.Sprintf("build-%s-%s", cfg.Build.Modules, cfg.Build.CMakeBuildType),
	)
}

// Configure writes the modules file and configure script into the build directory and runs the script.
func (p *Pipeline) Configure(ctx context.Context, cfg *config.Config) error {
	platforms, err := p.catalog.LoadPlatforms()
	if err != nil {
		return err
	}

	plat, err := p.detector.Select(ctx, platforms, cfg.Build.Platform)
	if err != nil {
		return err
	}
	p.ui.Info(fmt.Sprintf("Configuring for platform '%s' with '%s' modules", plat.Name, cfg.Build.Modules))

	directives, err := platform.ModuleDirectives(plat, cfg.Build.Modules)
	if err != nil {
		return err
	}

	dir := BuildDir(cfg)
	if err := files.EnsureRegularDir(dir); err != nil {
		return err
	}

	if err := script.WriteModules(filepath.Join(dir, script.ModulesFileName), directives); err != nil {
		return err
	}

	src, err := script.Configure(cfg.Build.CMakeBuildType, cfg.Source.PathToSource)
	if err != nil {
		return err
	}
	if err := script.WriteExecutable(filepath.Join(dir, script.ConfigureScriptName), src); err != nil {
		return err
	}

	command, err := script.ConfigureCommand(cfg.Build.CMakeBuildType, cfg.Source.PathToSource)
	if err != nil {
		return err
	}
	p.ui.Info(fmt.Sprintf("Running configure with '%s'", command))

	if err := p.opts.ScriptRunner.Run(ctx, dir, script.ConfigureScriptName); err != nil {
		return fmt.Errorf("configure failed: %w", err)
	}

	return nil
}

// Make writes the make script into the configured build directory and runs it.
func (p *Pipeline) Make(ctx context.Context, cfg *config.Config) error {
	dir := BuildDir(cfg)
	if !files.Exists(dir) {
		return fmt.Errorf(
			"%w: build directory '%s' does not exist, run configure first",
			apperrors.ErrCommandFailed,
			dir,
		)
	}

	if err := script.WriteExecutable(
		filepath.Join(dir, script.MakeScriptName),
		script.Make(cfg.Build.CoresToUseForMake, cfg.Build.ExternalModules),
	); err != nil {
		return err
	}

	p.ui.Blank("")
	p.ui.Info(fmt.Sprintf(
		"Building the %s bundle using %d cores",
		strings.Join(cfg.Source.Bundles, ", "),
		cfg.Build.CoresToUseForMake,
	))
	p.ui.Blank("")

	if err := p.opts.ScriptRunner.Run(ctx, dir, script.MakeScriptName); err != nil {
		return fmt.Errorf("make failed: %w", err)
	}

	return nil
}

// CopyConfig copies the build configuration into the source directory,
// unless it already lives there.
func (p *Pipeline) CopyConfig(cfg *config.Config) error {
	src := cfg.Path()
	if src == "" {
		return nil
	}

	dst := filepath.Join(cfg.Source.PathToSource, ConfigCopyName)
	if filepath.Clean(dst) == filepath.Clean(src) {
		return nil
	}

	if err := files.EnsureRegularDir(cfg.Source.PathToSource); err != nil {
		return err
	}
	if err := files.CopyFile(src, dst); err != nil {
		return err
	}

	p.logger.Debug("Configuration copied", "from", src, "to", dst)
	return nil
}
