// Package cli provides the Cobra command structure for bue.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/rgabbard/bue-common-open/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root bue command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var paramsPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "bue",
		Short: "Text offset bookkeeping and scoring utilities",
		Long: `bue provides command-line access to the offset-tracking text utilities of
this library.

It can map a document's characters to their byte, code point, and EDT
offsets (code point offsets that skip angle-bracket markup and carriage
returns), inspect the resulting region table, and score annotation system
output against a gold standard with bootstrapped confidence intervals.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&paramsPath, "params", "", "path to parameter file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newOffsetsCommand())
	rootCmd.AddCommand(newScoreCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
