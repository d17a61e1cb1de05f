// internal/commands/show.go
package travvy

import "github.com/spf13/cobra"

// showCmd groups the 'show' subcommands.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show runtime information",
}

func init() {
	rootCmd.AddCommand(showCmd)
}
