// internal/commands/root.go
package travvy

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mwiater/travvy/internal/appconfig"
	"github.com/mwiater/travvy/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
	appVersion    = "dev"
	appCommit     = "none"
	appDate       = "unknown"
)

// flagKeys maps command-line flags onto configuration keys. Serve-only flags
// are looked up on the running command and skipped elsewhere.
var flagKeys = map[string]string{
	"debug":       "debug",
	"logFile":     "logFile",
	"timeout":     "timeout",
	"transport":   "transport",
	"host":        "host",
	"port":        "port",
	"token":       "token",
	"toolsets":    "toolsets",
	"maxInFlight": "maxInFlight",
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:          "travvy",
	Short:        "travvy: travel lookup tools served over MCP",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		appconfig.LoadEnv(commandContext(cmd), ".env")

		v, err := loadViper(cmd)
		if err != nil {
			return err
		}
		cfg, err := appconfig.FromViper(v)
		if err != nil {
			return err
		}
		currentConfig = &cfg

		if err := logging.Init(cfg.LogFilePath(), cfg.Debug); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logging.Named("commands").WithField("config", cfg.ConfigPath).Debug("configuration loaded")
		return nil
	},
}

// Execute adds all child commands to the root command and runs it until the
// process is interrupted. This is called by main.main().
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	stop()
	_ = logging.Close()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("logFile", "", "path to the log file")
	rootCmd.PersistentFlags().Int("timeout", 0, "per-request provider timeout in seconds (0 = default)")
}

// loadViper builds a fresh configuration view for one invocation: defaults,
// then the config file, then the environment, then any flags that were set.
func loadViper(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	appconfig.SetDefaults(v)
	if err := appconfig.BindEnv(v); err != nil {
		return nil, err
	}
	if err := appconfig.ReadOptional(v, cfgFile); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	for name, key := range flagKeys {
		flag := lookupFlag(cmd, name)
		if flag == nil || !flag.Changed {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return v, nil
}

func lookupFlag(cmd *cobra.Command, name string) *pflag.Flag {
	if f := cmd.Flags().Lookup(name); f != nil {
		return f
	}
	return cmd.Root().PersistentFlags().Lookup(name)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// GetConfig returns the loaded application configuration for other packages.
func GetConfig() *appconfig.Config {
	return currentConfig
}

// SetVersionInfo allows the main package to inject build-time variables.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}
