// Package commands implements the extractctl CLI, grounded on the
// teacher's orchestrator CLI (libs/knowledge-engine/cmd/orchestrator/
// commands).
package commands

import (
	"github.com/spf13/cobra"

	"github.com/freightlayer/extraction-engine/cmd/extractctl/ui"
)

var (
	cfgFile string
	verbose bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "extractctl",
	Short: "Extract structured freight data from email and document text",
	Long: `extractctl runs the freight correspondence extraction pipeline over a
single email/document pair, printing the extracted fields and their
confidence scores, or writing the full record as JSON.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		ui.Init(noColor, verbose)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
