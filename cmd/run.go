package cmd

import (
	"github.com/spf13/cobra"

	"github.com/geos-esm/jedi-bundle/internal/cmd"
	cmdopts "github.com/geos-esm/jedi-bundle/internal/cmd/options"
	"github.com/geos-esm/jedi-bundle/internal/pipeline"
)

type RunCmd struct {
	*BuildCmd
}

func NewRunCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	buildCmd, err := newBuildCmd(baseCmd, true, opt...)
	if err != nil {
		return nil, err
	}

	c := &RunCmd{BuildCmd: buildCmd}

	cobraCommand := &cobra.Command{
		Use:         "run [clone|configure|make|all]...",
		Short:       "Runs the clone, configure and make steps",
		Long:        c.longDescription(),
		Annotations: withBanner(),
		ValidArgs: []string{
			string(pipeline.TaskClone),
			string(pipeline.TaskConfigure),
			string(pipeline.TaskMake),
			string(pipeline.TaskAll),
		},
		RunE: c.run,
	}

	c.addJobsFlag(cobraCommand)
	c.addPlatformFlags(cobraCommand)

	return cobraCommand, nil
}

func (c *RunCmd) longDescription() string {
	return `Runs the named steps of a build, always in the order clone, configure, make.
Step names are case-insensitive. With no steps, or with 'all', every step is run.`
}

func (c *RunCmd) run(cobraCmd *cobra.Command, args []string) error {
	tasks, err := pipeline.ParseTasks(args)
	if err != nil {
		return err
	}

	cfg, p, err := c.prepare(cobraCmd)
	if err != nil {
		return err
	}

	return p.Run(cobraCmd.Context(), cfg, tasks)
}
