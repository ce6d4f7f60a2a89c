package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/geos-esm/jedi-bundle/internal/cmd"
	cmdopts "github.com/geos-esm/jedi-bundle/internal/cmd/options"
)

type BundlesCmd struct {
	*BuildCmd
}

func NewBundlesCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	buildCmd, err := newBuildCmd(baseCmd, false, opt...)
	if err != nil {
		return nil, err
	}

	c := &BundlesCmd{BuildCmd: buildCmd}

	cobraCommand := &cobra.Command{
		Use:   "bundles",
		Short: "Lists the bundles in the catalog and the repositories each needs",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}

	return cobraCommand, nil
}

func (c *BundlesCmd) run(cobraCmd *cobra.Command, _ []string) error {
	cat, err := c.catalog()
	if err != nil {
		return err
	}

	names, err := cat.Bundles()
	if err != nil {
		return err
	}

	out := cobraCmd.OutOrStdout()
	if len(names) == 0 {
		_, err := fmt.Fprintln(out, "No bundles found")
		return err
	}

	for _, n := range names {
		b, err := cat.LoadBundle(n)
		if err != nil {
			return err
		}

		if _, err := fmt.Fprintf(out, "%s\n  required: %s\n", b.Name, strings.Join(b.Required.Sorted(), ", ")); err != nil {
			return err
		}
		if len(b.Optional) > 0 {
			if _, err := fmt.Fprintf(out, "  optional: %s\n", strings.Join(b.Optional.Sorted(), ", ")); err != nil {
				return err
			}
		}
	}

	return nil
}
