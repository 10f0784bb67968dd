package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"stylelens/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the StyleLens HTTP service",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.NewApplication()
		if err != nil {
			return fmt.Errorf("assemble application: %w", err)
		}
		return a.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
