// Package cli implements the stylelens command line interface. The serve
// command runs the HTTP dashboard service; the report command runs the same
// analytics pipeline once against a local file.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stylelens/pkg/contracts"
)

var rootCmd = &cobra.Command{
	Use:   "stylelens",
	Short: "StyleLens: fashion product analytics",
	Long: `StyleLens loads fashion product catalogs from CSV or XLSX files,
cleans them, and serves interactive filter, chart, and export views either
over HTTP or as a one-shot command line report.`,
	Version:      contracts.GetFullVersionString(),
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
