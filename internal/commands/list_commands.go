// internal/commands/list_commands.go
package travvy

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// CommandInfo is one row of 'list commands'.
type CommandInfo struct {
	Path        string
	Depth       int
	Description string
	Flags       []string
}

// commandsCmd implements 'list commands', which prints the command tree with
// each command's description and the flags it defines.
var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List all commands, their descriptions and flags",
	Run: func(cmd *cobra.Command, args []string) {
		ListCommands(cmd.OutOrStdout(), collectCommandData(rootCmd, "", 0))
	},
}

func init() {
	listCmd.AddCommand(commandsCmd)
}

// collectCommandData walks the command tree depth first. Help and completion
// commands are skipped.
func collectCommandData(cmd *cobra.Command, parent string, depth int) []CommandInfo {
	path := cmd.Name()
	if parent != "" {
		path = parent + " " + cmd.Name()
	}

	var flags []string
	cmd.LocalNonPersistentFlags().VisitAll(func(f *pflag.Flag) {
		if !f.Hidden && f.Name != "help" {
			flags = append(flags, "--"+f.Name)
		}
	})
	if depth == 0 {
		cmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
			flags = append(flags, "--"+f.Name)
		})
	}
	sort.Strings(flags)

	rows := []CommandInfo{{Path: path, Depth: depth, Description: cmd.Short, Flags: flags}}
	for _, sub := range cmd.Commands() {
		if !sub.IsAvailableCommand() || sub.Name() == "completion" {
			continue
		}
		rows = append(rows, collectCommandData(sub, path, depth+1)...)
	}
	return rows
}

// ListCommands prints the command tree in two columns, with flags beneath.
func ListCommands(out io.Writer, commands []CommandInfo) {
	width := 0
	for _, c := range commands {
		if n := 2*c.Depth + len(c.Path); n > width {
			width = n
		}
	}

	pathStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	flagStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	fmt.Fprintln(out, "Commands and Subcommands:")
	for _, c := range commands {
		cell := strings.Repeat("  ", c.Depth) + c.Path
		pad := strings.Repeat(" ", width-len(cell)+2)
		fmt.Fprintf(out, "  %s%s%s\n", pathStyle.Render(cell), pad, c.Description)
		if len(c.Flags) > 0 {
			fmt.Fprintf(out, "  %s%s\n", strings.Repeat(" ", width+2), flagStyle.Render("flags: "+strings.Join(c.Flags, ", ")))
		}
	}
}
