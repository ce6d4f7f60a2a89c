package cmd

import (
	"github.com/spf13/cobra"

	"github.com/geos-esm/jedi-bundle/internal/cmd"
	cmdopts "github.com/geos-esm/jedi-bundle/internal/cmd/options"
)

type CloneCmd struct {
	*BuildCmd
}

func NewCloneCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	buildCmd, err := newBuildCmd(baseCmd, false, opt...)
	if err != nil {
		return nil, err
	}

	c := &CloneCmd{BuildCmd: buildCmd}

	cobraCommand := &cobra.Command{
		Use:         "clone",
		Short:       "Clones the repositories of the configured bundles and writes CMakeLists.txt",
		Long:        c.longDescription(),
		Annotations: withBanner(),
		Args:        cobra.NoArgs,
		RunE:        c.run,
	}

	c.addJobsFlag(cobraCommand)

	return cobraCommand, nil
}

func (c *CloneCmd) longDescription() string {
	return `Works out the repositories needed by the configured bundles, looks up the branch or tag
to use for each across the configured GitHub organizations, and clones them into the source path.
Repositories that are already cloned are updated. Finally the CMakeLists.txt that builds them
together is written to the source path.`
}

func (c *CloneCmd) run(cobraCmd *cobra.Command, _ []string) error {
	cfg, p, err := c.prepare(cobraCmd)
	if err != nil {
		return err
	}

	if err := p.CopyConfig(cfg); err != nil {
		return err
	}

	return p.Clone(cobraCmd.Context(), cfg)
}
