// internal/commands/serve.go
package travvy

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/mwiater/travvy/internal/appconfig"
	"github.com/mwiater/travvy/internal/logging"
	"github.com/mwiater/travvy/internal/server"
	"github.com/mwiater/travvy/internal/toolsets"
	"github.com/spf13/cobra"
)

// serveCmd implements 'serve', which exposes the enabled toolsets to MCP clients.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the travel tools over stdio or HTTP",
	Long: `Serve the enabled toolsets as an MCP server.

With --transport stdio (the default) JSON-RPC messages are read from stdin and
replies written to stdout; logs go to stderr and the log file only. With
--transport http the server listens on --host:--port.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg == nil {
			return errors.New("configuration not loaded")
		}
		return runServe(cmd.Context(), *cfg, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	serveCmd.Flags().String("transport", appconfig.TransportStdio, "transport to serve on: stdio or http")
	serveCmd.Flags().String("host", "", "HTTP listen host")
	serveCmd.Flags().Int("port", 0, "HTTP listen port")
	serveCmd.Flags().String("token", "", "bearer token required by the HTTP tool routes")
	serveCmd.Flags().StringSlice("toolsets", nil, "toolsets to enable (weather,flights,accommodation,trains,maps)")
	serveCmd.Flags().Int("maxInFlight", 0, "maximum concurrent tool calls")
	rootCmd.AddCommand(serveCmd)
}

// newServer wires the registry for cfg's toolsets into an MCP server.
func newServer(cfg appconfig.Config) (*server.Server, error) {
	reg, err := toolsets.Registry(cfg)
	if err != nil {
		return nil, fmt.Errorf("build tool registry: %w", err)
	}
	info := server.Info{
		Name:     "travvy",
		Version:  appVersion,
		Toolsets: toolsets.Catalog(cfg),
	}
	return server.New(reg, info, logging.Named("server"),
		server.WithToken(cfg.Token),
		server.WithMaxInFlight(cfg.InFlightLimit()),
	), nil
}

func runServe(ctx context.Context, cfg appconfig.Config, in io.Reader, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	srv, err := newServer(cfg)
	if err != nil {
		return err
	}

	log := logging.Named("commands")
	switch cfg.Transport {
	case appconfig.TransportHTTP:
		log.Infof("serving %v over http on %s", cfg.Toolsets(), cfg.Addr())
		return srv.ListenAndServe(ctx, cfg.Addr())
	default:
		log.Infof("serving %v over stdio", cfg.Toolsets())
		return srv.ServeStdio(ctx, in, out)
	}
}
