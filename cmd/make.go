package cmd

import (
	"github.com/spf13/cobra"

	"github.com/geos-esm/jedi-bundle/internal/cmd"
	cmdopts "github.com/geos-esm/jedi-bundle/internal/cmd/options"
)

type MakeCmd struct {
	*BuildCmd
}

func NewMakeCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	buildCmd, err := newBuildCmd(baseCmd, true, opt...)
	if err != nil {
		return nil, err
	}

	c := &MakeCmd{BuildCmd: buildCmd}

	cobraCommand := &cobra.Command{
		Use:         "make",
		Short:       "Builds the configured build directory",
		Long:        c.longDescription(),
		Annotations: withBanner(),
		Args:        cobra.NoArgs,
		RunE:        c.run,
	}

	c.addPlatformFlags(cobraCommand)

	return cobraCommand, nil
}

func (c *MakeCmd) longDescription() string {
	return `Writes a make script into the build directory and runs it with the configured number of cores.
The build directory must already have been configured.`
}

func (c *MakeCmd) run(cobraCmd *cobra.Command, _ []string) error {
	cfg, p, err := c.prepare(cobraCmd)
	if err != nil {
		return err
	}

	return p.Make(cobraCmd.Context(), cfg)
}
