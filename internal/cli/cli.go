// Package cli implements the iisrank command-line interface.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/iisrank/pkg/buildinfo"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "iisrank"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// out receives status lines and the confirmation message.
	out io.Writer
}

// New creates a new CLI instance logging to w. Status output goes to stdout.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// SetOutput redirects status output.
func (c *CLI) SetOutput(w io.Writer) {
	c.out = w
}

// RootCommand creates the root cobra command with all subcommands registered.
// Invoked without a subcommand it runs the full analysis, same as "run".
func (c *CLI) RootCommand() *cobra.Command {
	flags := newRunFlags()
	root := &cobra.Command{
		Use:   appName,
		Short: "Monte Carlo sensitivity analysis of IIS node rankings",
		Long: `iisrank measures how stable the IIS ranking of a key node is across random
network models. It generates Erdős–Rényi and scale-free networks, scores every
node, records the key node's rank and draws the rank distributions as a boxplot.

PDF (the default) and PNG output are converted from SVG with rsvg-convert
(librsvg), which must be on PATH. Use --format svg to run without it.`,
		Version:      buildinfo.Version,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runE(cmd, flags)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	flags.register(root)

	root.AddCommand(c.runCommand())
	root.AddCommand(c.sampleCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// versionCommand prints build information.
func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			printKeyValue(c.out, "version", buildinfo.Version)
			printKeyValue(c.out, "commit", buildinfo.Commit)
			printKeyValue(c.out, "built", buildinfo.Date)
		},
	}
}
