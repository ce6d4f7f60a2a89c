package cmd

import (
	"github.com/spf13/cobra"

	"github.com/geos-esm/jedi-bundle/internal/cmd"
	cmdopts "github.com/geos-esm/jedi-bundle/internal/cmd/options"
)

type ConfigureCmd struct {
	*BuildCmd
}

func NewConfigureCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	buildCmd, err := newBuildCmd(baseCmd, true, opt...)
	if err != nil {
		return nil, err
	}

	c := &ConfigureCmd{BuildCmd: buildCmd}

	cobraCommand := &cobra.Command{
		Use:         "configure",
		Short:       "Configures the build directory for the current platform",
		Long:        c.longDescription(),
		Annotations: withBanner(),
		Args:        cobra.NoArgs,
		RunE:        c.run,
	}

	c.addPlatformFlags(cobraCommand)

	return cobraCommand, nil
}

func (c *ConfigureCmd) longDescription() string {
	return `Selects the platform (detecting it when the configuration says 'discover'), writes its
module set and a configure script into the build directory, and runs ecbuild on the source path.`
}

func (c *ConfigureCmd) run(cobraCmd *cobra.Command, _ []string) error {
	cfg, p, err := c.prepare(cobraCmd)
	if err != nil {
		return err
	}

	return p.Configure(cobraCmd.Context(), cfg)
}
