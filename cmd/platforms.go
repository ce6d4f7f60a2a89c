package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/geos-esm/jedi-bundle/internal/catalog"
	"github.com/geos-esm/jedi-bundle/internal/cmd"
	cmdopts "github.com/geos-esm/jedi-bundle/internal/cmd/options"
	apperrors "github.com/geos-esm/jedi-bundle/internal/errors"
	"github.com/geos-esm/jedi-bundle/internal/platform"
)

type PlatformsCmd struct {
	*BuildCmd
}

func NewPlatformsCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	buildCmd, err := newBuildCmd(baseCmd, false, opt...)
	if err != nil {
		return nil, err
	}

	c := &PlatformsCmd{BuildCmd: buildCmd}

	cobraCommand := &cobra.Command{
		Use:   "platforms",
		Short: "Lists the known platforms and reports which one this machine is",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}

	return cobraCommand, nil
}

func (c *PlatformsCmd) run(cobraCmd *cobra.Command, _ []string) error {
	cat, err := c.catalog()
	if err != nil {
		return err
	}

	platforms, err := cat.LoadPlatforms()
	if err != nil {
		return err
	}

	out := cobraCmd.OutOrStdout()
	for _, p := range platforms {
		if _, err := fmt.Fprintf(out, "%s (modules: %s)\n", p.Name, moduleNames(p)); err != nil {
			return err
		}
	}

	detected, err := platform.NewDetector(c.Logger(), c.opts.CommandRunner).Detect(cobraCmd.Context(), platforms)
	switch {
	case errors.Is(err, apperrors.ErrUnknownPlatform):
		_, err = fmt.Fprintln(out, "\nThis machine does not match any known platform")
		return err
	case err != nil:
		return err
	}

	_, err = fmt.Fprintf(out, "\nThis machine is '%s'\n", detected.Name)
	return err
}

func moduleNames(p catalog.Platform) string {
	names := p.Modules.Names()
	for i, n := range names {
		if n == p.Modules.Default {
			names[i] = n + " [default]"
		}
	}
	return strings.Join(names, ", ")
}
