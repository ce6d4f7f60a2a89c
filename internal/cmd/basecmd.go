package cmd

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/geos-esm/jedi-bundle/internal/flags"
	"github.com/geos-esm/jedi-bundle/internal/probe"
	"github.com/geos-esm/jedi-bundle/internal/ui"
)

// ConsoleTask prefixes every console message.
const ConsoleTask = "JediBundle"

var _ probe.Builder = (*BaseCmd)(nil)

type BaseCmd struct {
	logger  hclog.Logger
	console ui.UI
}

// SetLogger updates the command's logger
func (c *BaseCmd) SetLogger(logger hclog.Logger) {
	c.logger = logger
}

// Logger returns the current logger for the command
func (c *BaseCmd) Logger() hclog.Logger {
	if c.logger != nil {
		return c.logger
	}

	// Get log level from flags first, then environment, then default
	logLevel := flags.LogLevel
	if logLevel == "" {
		logLevel = strings.ToLower(os.Getenv(flags.EnvVarLogLevel))
		if logLevel == "" {
			logLevel = flags.DefaultLogLevel
		}
	}

	// Get log path from flags first, then environment
	logPath := flags.LogPath
	if logPath == "" {
		logPath = strings.TrimSpace(os.Getenv(flags.EnvVarLogPath))
	}

	var output io.Writer = io.Discard
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file (%s): %v, using stderr\n", logPath, err)
			output = os.Stderr
		} else {
			output = f
		}
	}

	c.logger = hclog.New(&hclog.LoggerOptions{
		Name:   "jedi_bundle",
		Level:  hclog.LevelFromString(logLevel),
		Output: output,
	})

	return c.logger
}

// SetUI replaces the console used to report progress.
func (c *BaseCmd) SetUI(console ui.UI) {
	c.console = console
}

// UI returns the console, creating one on stdout with levels taken from the LOG_* environment.
func (c *BaseCmd) UI() ui.UI {
	if c.console == nil {
		c.console = ui.NewConsole(ConsoleTask, ui.LevelsFromEnv(os.LookupEnv), os.Stdout, os.Stdin)
	}
	return c.console
}

// BuildProber creates a GitHub prober using whatever credentials are available.
func (c *BaseCmd) BuildProber() (probe.Prober, error) {
	return probe.NewDefaultBuilder(c.Logger()).BuildProber()
}

// RequireTogether returns an error when only some of the named flags were set on cmd.
func (c *BaseCmd) RequireTogether(cmd *cobra.Command, names ...string) error {
	var set int
	for _, n := range names {
		if cmd.Flags().Changed(n) {
			set++
		}
	}

	if set == 0 || set == len(names) {
		return nil
	}

	sorted := slices.Clone(names)
	slices.Sort(sorted)

	return fmt.Errorf(
		"flags must be provided together or not at all (%s)",
		strings.Join(sorted, ", "),
	)
}
