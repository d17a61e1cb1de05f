// internal/commands/show_config.go
package travvy

import (
	"errors"
	"fmt"

	"github.com/mwiater/travvy/internal/appconfig"
	"github.com/spf13/cobra"
)

var showConfigFormat string

// showConfigCmd implements the 'show config' command, which displays the current configuration settings.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the JSON config, environment and flags are merged in the right order. Credentials are masked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg == nil {
			return errors.New("configuration not loaded")
		}
		switch showConfigFormat {
		case "", "text":
			appconfig.ShowConfig(cmd.OutOrStdout(), *cfg)
			return nil
		case "yaml":
			return appconfig.ShowConfigYAML(cmd.OutOrStdout(), *cfg)
		default:
			return fmt.Errorf("unknown format %q (want text or yaml)", showConfigFormat)
		}
	},
}

func init() {
	showConfigCmd.Flags().StringVar(&showConfigFormat, "format", "text", "output format: text or yaml")
	showCmd.AddCommand(showConfigCmd)
}
