package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/bankimport/internal/buildinfo"
)

type rootOptions struct {
	repo      string
	logLevel  string
	logFormat string
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "bankimport",
		Short:   "Import bank statements into an expense ledger",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.repo, "repo", ".", "import repo root")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (overrides config)")
	rootCmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format: text or json (overrides config)")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newDetectCommand(opts))
	rootCmd.AddCommand(newScanCommand(opts))
	rootCmd.AddCommand(newPreviewCommand(opts))
	rootCmd.AddCommand(newImportCommand(opts))

	return rootCmd
}
