// Package platform identifies the machine being built on and the environment modules it needs.
package platform

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/geos-esm/jedi-bundle/internal/catalog"
	"github.com/geos-esm/jedi-bundle/internal/config"
	apperrors "github.com/geos-esm/jedi-bundle/internal/errors"
)

// Detector matches the current machine against platform definitions.
type Detector struct {
	logger hclog.Logger
	runner CommandRunner
}

// NewDetector creates a Detector that runs probe commands with runner.
func NewDetector(logger hclog.Logger, runner CommandRunner) *Detector {
	if runner == nil {
		runner = Shell{}
	}
	return &Detector{
		logger: logger.Named("platform"),
		runner: runner,
	}
}

// Matches reports whether every probe of p prints its expected text.
func (d *Detector) Matches(ctx context.Context, p catalog.Platform) bool {
	for _, probe := range p.IsItMe {
		out, err := d.runner.Output(ctx, probe.Command)
		if err != nil {
			d.logger.Debug("Probe command failed", "platform", p.Name, "command", probe.Command, "error", err)
			return false
		}
		if !strings.Contains(out, probe.Contains) {
			d.logger.Trace("Probe did not match", "platform", p.Name, "command", probe.Command)
			return false
		}
	}
	return len(p.IsItMe) > 0
}

// Detect returns the first platform that matches the current machine.
func (d *Detector) Detect(ctx context.Context, platforms []catalog.Platform) (catalog.Platform, error) {
	for _, p := range platforms {
		if d.Matches(ctx, p) {
			d.logger.Info("Platform detected", "platform", p.Name)
			return p, nil
		}
	}

	return catalog.Platform{}, fmt.Errorf("%w: this machine does not match any known platform", apperrors.ErrUnknownPlatform)
}

// Select returns the named platform, or detects one when name is config.PlatformDiscover.
func (d *Detector) Select(ctx context.Context, platforms []catalog.Platform, name string) (catalog.Platform, error) {
	if name == config.PlatformDiscover {
		return d.Detect(ctx, platforms)
	}

	var known []string
	for _, p := range platforms {
		if p.Name == name {
			return p, nil
		}
		known = append(known, p.Name)
	}

	return catalog.Platform{}, fmt.Errorf(
		"%w: '%s' (known platforms: %s)",
		apperrors.ErrUnknownPlatform,
		name,
		strings.Join(known, ", "),
	)
}

// ModuleDirectives returns the shell lines that load the named module set on p.
func ModuleDirectives(p catalog.Platform, modules string) ([]string, error) {
	lines, ok := p.Modules.Lookup(modules)
	if !ok {
		return nil, fmt.Errorf(
			"%w: modules '%s' are not defined for platform '%s' (available: %s)",
			apperrors.ErrConfig,
			modules,
			p.Name,
			strings.Join(p.Modules.Names(), ", "),
		)
	}
	return lines, nil
}
