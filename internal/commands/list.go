// internal/commands/list.go
package travvy

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/travvy/internal/appconfig"
	"github.com/mwiater/travvy/internal/toolsets"
	"github.com/mwiater/travvy/internal/tools"
	"github.com/mwiater/travvy/internal/util"
	"github.com/spf13/cobra"
)

const descriptionWidth = 76

// listCmd groups the 'list' subcommands.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tools or commands",
}

// listToolsCmd implements 'list tools', which prints every enabled tool grouped
// by toolset along with its parameters.
var listToolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the enabled tools and their parameters",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg == nil {
			return errors.New("configuration not loaded")
		}
		return ListTools(cmd.OutOrStdout(), *cfg)
	},
}

func init() {
	listCmd.AddCommand(listToolsCmd)
	rootCmd.AddCommand(listCmd)
}

// ListTools renders the tool catalog for cfg.
func ListTools(out io.Writer, cfg appconfig.Config) error {
	reg, err := toolsets.Registry(cfg)
	if err != nil {
		return err
	}

	setStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
	toolStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	requiredStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("46"))

	for _, set := range toolsets.Catalog(cfg) {
		fmt.Fprintln(out, setStyle.Render(fmt.Sprintf("%s (%d tools):", set.Name, len(set.Tools))))
		for _, name := range set.Tools {
			d, ok := reg.Lookup(name)
			if !ok {
				continue
			}
			fmt.Fprintln(out, "  >>> "+toolStyle.Render(d.Name))
			fmt.Fprintln(out, util.Indent(util.WrapToWidth(d.Description, descriptionWidth), "      "))
			for _, p := range d.Params {
				line := fmt.Sprintf("%s (%s)", p.Name, p.Type)
				if p.Required {
					line += " " + requiredStyle.Render("required")
				}
				fmt.Fprintln(out, "      - "+line+paramHint(p))
			}
		}
		fmt.Fprintln(out)
	}
	return nil
}

func paramHint(p tools.Param) string {
	var hints []string
	if len(p.Enum) > 0 {
		hints = append(hints, "one of "+strings.Join(p.Enum, "|"))
	}
	if p.Default != nil {
		hints = append(hints, fmt.Sprintf("default %v", p.Default))
	}
	if len(hints) == 0 {
		return ""
	}
	return ": " + strings.Join(hints, ", ")
}
