package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/geos-esm/jedi-bundle/internal/cmd"
	cmdopts "github.com/geos-esm/jedi-bundle/internal/cmd/options"
	"github.com/geos-esm/jedi-bundle/internal/flags"
)

var version = "dev" // Set at build time using -ldflags

// ProjectURL is shown in the welcome banner.
const ProjectURL = "https://geos-esm.github.io/jedi_bundle"

// annotationBanner marks commands that open with the welcome banner.
// Commands whose output may be machine-read leave it off.
const annotationBanner = "banner"

func withBanner() map[string]string {
	return map[string]string{annotationBanner: "true"}
}

type RootCmd struct {
	*cmd.BaseCmd
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The logger is created on first use, after flags are parsed.
	baseCmd := &cmd.BaseCmd{}

	rootCmd, err := NewRootCmd(&RootCmd{BaseCmd: baseCmd})
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error creating root command: %s\n", err)
		os.Exit(1)
	}

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			err = fmt.Errorf("interrupted")
		}
		baseCmd.UI().Abort(err.Error())
		stop()
		os.Exit(1)
	}
}

// NewRootCmd builds the root command and every subcommand.
func NewRootCmd(c *RootCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	rootCmd := &cobra.Command{
		Use:           "jedi_bundle <command> [args]",
		Short:         "Clone, configure and build JEDI bundles.",
		Long:          c.longDescription(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if _, ok := cmd.Annotations[annotationBanner]; ok {
				c.welcome()
			}
		},
	}

	// Global flags
	flags.InitFlags(rootCmd.PersistentFlags())

	fns := []func(*cmd.BaseCmd, ...cmdopts.CmdOption) (*cobra.Command, error){
		NewInitCmd,
		NewCloneCmd,
		NewResolveCmd,
		NewConfigureCmd,
		NewMakeCmd,
		NewRunCmd,
		NewBundlesCmd,
		NewPlatformsCmd,
	}

	for _, fn := range fns {
		tempCmd, err := fn(c.BaseCmd, opt...)
		if err != nil {
			return nil, err
		}
		rootCmd.AddCommand(tempCmd)
	}

	return rootCmd, nil
}

func (c *RootCmd) longDescription() string {
	return `The 'jedi_bundle' CLI assembles JEDI bundles from many repositories.

It works out which repositories the requested bundles need, finds the branch or tag
to use for each across the configured GitHub organizations (preferring the user
branch wherever it exists), clones them, writes the CMakeLists.txt that builds them
together, then configures and makes the build for the current platform.`
}

func (c *RootCmd) welcome() {
	console := c.UI()
	for _, l := range banner() {
		console.Blank(l)
	}
}

func banner() []string {
	return []string{
		"",
		"       _ ______ _____ _____   ____                  _ _",
		"      | |  ____|  __ \\_   _| |  _ \\                | | |",
		"      | | |__  | |  | || |   | |_) |_   _ _ __   __| | | ___",
		"  _   | |  __| | |  | || |   |  _ <| | | | '_ \\ / _` | |/ _ \\",
		" | |__| | |____| |__| || |_  | |_) | |_| | | | | (_| | |  __/",
		"  \\____/|______|_____/_____| |____/ \\__,_|_| |_|\\__,_|_|\\___|",
		"",
		"  Jedi Bundle Build System",
		"  NASA Global Modelling and Assimilation Office",
		"  Version " + version,
		"  " + ProjectURL,
		"",
	}
}
