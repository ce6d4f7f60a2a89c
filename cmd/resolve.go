package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/geos-esm/jedi-bundle/internal/cmd"
	cmdopts "github.com/geos-esm/jedi-bundle/internal/cmd/options"
	"github.com/geos-esm/jedi-bundle/internal/printer"
)

type ResolveCmd struct {
	*BuildCmd
	Format cmd.OutputFormat
}

func NewResolveCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	buildCmd, err := newBuildCmd(baseCmd, false, opt...)
	if err != nil {
		return nil, err
	}

	c := &ResolveCmd{
		BuildCmd: buildCmd,
		Format:   cmd.FormatText,
	}

	cobraCommand := &cobra.Command{
		Use:   "resolve",
		Short: "Shows where each repository would be cloned from, without cloning",
		Long:  c.longDescription(),
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}

	allowed := cmd.AllowedOutputFormats()
	cobraCommand.Flags().Var(
		&c.Format,
		"format",
		fmt.Sprintf("Specify the output format (one of: %s)", allowed.String()),
	)
	c.addJobsFlag(cobraCommand)

	return cobraCommand, nil
}

func (c *ResolveCmd) longDescription() string {
	return `Works out the repositories needed by the configured bundles and the branch or tag
each would be cloned from, and prints the result. Nothing is written to disk.`
}

func (c *ResolveCmd) run(cobraCmd *cobra.Command, _ []string) error {
	handler, err := cmd.NewHandler[printer.Summary](c.Format, cobraCmd.OutOrStdout(), &printer.SummaryPrinter{})
	if err != nil {
		return err
	}

	cfg, p, err := c.prepare(cobraCmd)
	if err != nil {
		return handler.HandleError(err)
	}

	outcome, err := p.Plan(cobraCmd.Context(), cfg)
	if err != nil {
		return handler.HandleError(err)
	}

	return handler.HandleResult(printer.NewSummary(outcome))
}
