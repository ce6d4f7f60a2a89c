package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/geos-esm/jedi-bundle/internal/cmd"
	cmdopts "github.com/geos-esm/jedi-bundle/internal/cmd/options"
	"github.com/geos-esm/jedi-bundle/internal/config"
	"github.com/geos-esm/jedi-bundle/internal/files"
	"github.com/geos-esm/jedi-bundle/internal/flags"
	"github.com/geos-esm/jedi-bundle/internal/ui"
)

type InitCmd struct {
	*cmd.BaseCmd
	cfgInitializer config.Initializer
	ui             ui.UI
}

func NewInitCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &InitCmd{
		BaseCmd:        baseCmd,
		cfgInitializer: opts.ConfigInitializer,
		ui:             opts.UI,
	}

	cobraCommand := &cobra.Command{
		Use:         "init",
		Short:       "Creates a build configuration file in the current directory",
		Long:        c.longDescription(),
		Annotations: withBanner(),
		Args:        cobra.NoArgs,
		RunE:        c.run,
	}

	return cobraCommand, nil
}

func (c *InitCmd) longDescription() string {
	return fmt.Sprintf(
		"Creates a %s build configuration file with default settings, "+
			"with the source and build paths set to the directory containing it.\n\n"+
			"If the file already exists you are asked to confirm before it is replaced.\n\n"+
			"The configuration file path can be overridden using the `--%s` flag or the `%s` environment variable",
		flags.DefaultConfigFile,
		flags.FlagNameConfigFile,
		flags.EnvVarConfigFile,
	)
}

func (c *InitCmd) console() ui.UI {
	if c.ui != nil {
		return c.ui
	}
	return c.UI()
}

func (c *InitCmd) run(_ *cobra.Command, _ []string) error {
	logger := c.Logger()
	console := c.console()

	var initFilePath string

	// If the config file flag just has the default value, we're expecting to create it in the current working directory.
	if flags.ConfigFile == flags.DefaultConfigFile {
		cwd, err := os.Getwd()
		if err != nil {
			logger.Error("Failed to get working directory", "error", err)
			return fmt.Errorf("error getting current directory: %w", err)
		}
		initFilePath = filepath.Join(cwd, flags.DefaultConfigFile)
	} else {
		initFilePath = flags.ConfigFile
	}

	if files.Exists(initFilePath) {
		if err := console.Prompt(
			fmt.Sprintf("The file '%s' already exists and will be overwritten.", initFilePath),
			"Press Ctrl+C to keep it.",
		); err != nil {
			logger.Error("Existing configuration kept", "path", initFilePath, "error", err)
			return fmt.Errorf("keeping existing file '%s': %w", initFilePath, err)
		}
		if err := files.RemoveFile(initFilePath); err != nil {
			return err
		}
	}

	if err := c.cfgInitializer.Init(initFilePath); err != nil {
		logger.Error("Configuration initialization failed", "error", err)
		return fmt.Errorf("error creating build configuration: %w", err)
	}

	console.Info(fmt.Sprintf("Created build configuration %s", initFilePath))
	console.Info("Edit it as needed, then run 'jedi_bundle run'")

	return nil
}
