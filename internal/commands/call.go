// internal/commands/call.go
package travvy

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/k0kubun/pp"
	"github.com/mwiater/travvy/internal/appconfig"
	"github.com/mwiater/travvy/internal/toolsets"
	"github.com/mwiater/travvy/internal/tools"
	"github.com/spf13/cobra"
)

var (
	callArgs string
	callRaw  bool
)

// errToolFailed makes 'call' exit non-zero after the failure has been printed.
var errToolFailed = errors.New("tool call failed")

// callCmd implements 'call', which invokes one tool directly without an MCP client.
var callCmd = &cobra.Command{
	Use:   "call <tool>",
	Short: "Invoke a single tool and print its result",
	Example: `  travvy call get_weather_alerts --args '{"state":"CA"}'
  travvy call search_flights --args '{"origin":"JFK","destination":"LAX","departure_date":"2025-12-25"}' --raw`,
	Args:          cobra.ExactArgs(1),
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg == nil {
			return errors.New("configuration not loaded")
		}
		return CallTool(cmd, *cfg, args[0], callArgs, callRaw)
	},
}

func init() {
	callCmd.Flags().StringVar(&callArgs, "args", "", "tool arguments as a JSON object")
	callCmd.Flags().BoolVar(&callRaw, "raw", false, "print the full result envelope")
	rootCmd.AddCommand(callCmd)
}

// CallTool runs name with the JSON-encoded arguments and reports the outcome on
// the command's output.
func CallTool(cmd *cobra.Command, cfg appconfig.Config, name, rawArgs string, raw bool) error {
	out := cmd.OutOrStdout()

	args, err := parseCallArgs(rawArgs)
	if err != nil {
		res := tools.Failure(err)
		printResult(out, name, res, raw)
		return errToolFailed
	}

	reg, err := toolsets.Registry(cfg)
	if err != nil {
		return err
	}
	res := reg.Invoke(commandContext(cmd), name, args)
	printResult(out, name, res, raw)
	if !res.Success {
		return errToolFailed
	}
	return nil
}

func parseCallArgs(raw string) (map[string]any, error) {
	args := map[string]any{}
	if strings.TrimSpace(raw) == "" {
		return args, nil
	}
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, tools.Validationf("--args must be a JSON object: %v", err)
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}

func printResult(out io.Writer, name string, res tools.Result, raw bool) {
	if raw {
		pp.ColoringEnabled = false
		_, _ = pp.Fprintln(out, res)
		return
	}

	if res.Success {
		color.New(color.FgGreen, color.Bold).Fprintf(out, "✔ %s\n\n", name)
		fmt.Fprintln(out, res.Content)
		return
	}
	color.New(color.FgRed, color.Bold).Fprintf(out, "✖ %s failed (%s)\n\n", name, res.Kind)
	fmt.Fprintln(out, res.Error)
}
