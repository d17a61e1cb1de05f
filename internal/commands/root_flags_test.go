// internal/commands/root_flags_test.go
package travvy

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mwiater/travvy/internal/appconfig"
	"github.com/mwiater/travvy/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func resetFlag(cmdFlag string) {
	for _, set := range []*cobra.Command{rootCmd, serveCmd, callCmd, showConfigCmd} {
		flags := set.Flags()
		if set == rootCmd {
			flags = rootCmd.PersistentFlags()
		}
		flag := flags.Lookup(cmdFlag)
		if flag == nil {
			continue
		}
		if sv, ok := flag.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = flag.Value.Set(flag.DefValue)
		}
		flag.Changed = false
	}
}

func resetAllFlags() {
	for _, name := range []string{
		"config", "debug", "logFile", "timeout",
		"transport", "host", "port", "token", "toolsets", "maxInFlight",
		"args", "raw", "format",
	} {
		resetFlag(name)
	}
}

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// useConfig points the --config flag at path for the duration of the test.
func useConfig(t *testing.T, path string) {
	t.Helper()
	resetAllFlags()
	prevCfgFile := cfgFile
	cfgFile = path
	t.Cleanup(func() {
		cfgFile = prevCfgFile
		currentConfig = nil
		resetAllFlags()
	})
	t.Cleanup(func() { _ = logging.Close() })
}

// runRoot executes the command tree with args and returns everything written.
func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs([]string{})
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	_, err := rootCmd.ExecuteC()
	return buf.String(), err
}

func TestPersistentPreRunEUsesFlagValues(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "travvy.log")
	configPath := writeTempConfig(t, `{"transport": "http", "port": 9000, "timeout": 5}`)
	useConfig(t, configPath)

	_ = rootCmd.PersistentFlags().Set("debug", "true")
	_ = rootCmd.PersistentFlags().Set("timeout", "12")
	_ = rootCmd.PersistentFlags().Set("logFile", logPath)

	if err := rootCmd.PersistentPreRunE(rootCmd, []string{}); err != nil {
		t.Fatalf("PersistentPreRunE error: %v", err)
	}

	if currentConfig == nil || currentConfig.ConfigPath != configPath {
		t.Fatalf("expected config loaded with path %s, got %+v", configPath, currentConfig)
	}
	if !currentConfig.Debug {
		t.Fatalf("expected debug flag to flow into config: %+v", currentConfig)
	}
	if currentConfig.TimeoutSeconds != 12 {
		t.Fatalf("expected timeout flag to override file, got %d", currentConfig.TimeoutSeconds)
	}
	if currentConfig.Transport != appconfig.TransportHTTP || currentConfig.Port != 9000 {
		t.Fatalf("expected file values kept, got %+v", currentConfig)
	}
	if currentConfig.LogFilePath() != logPath {
		t.Fatalf("expected log file %s, got %s", logPath, currentConfig.LogFilePath())
	}
}

func TestPersistentPreRunEServeFlagsOverrideFile(t *testing.T) {
	configPath := writeTempConfig(t, `{"transport": "http", "port": 9000}`)
	useConfig(t, configPath)

	_ = serveCmd.Flags().Set("transport", "stdio")
	_ = serveCmd.Flags().Set("toolsets", "maps,weather")
	_ = serveCmd.Flags().Set("maxInFlight", "3")

	if err := rootCmd.PersistentPreRunE(serveCmd, []string{}); err != nil {
		t.Fatalf("PersistentPreRunE error: %v", err)
	}
	if currentConfig.Transport != appconfig.TransportStdio {
		t.Fatalf("expected transport flag to win, got %s", currentConfig.Transport)
	}
	if got := strings.Join(currentConfig.Toolsets(), ","); got != "weather,maps" {
		t.Fatalf("unexpected toolsets %s", got)
	}
	if currentConfig.InFlightLimit() != 3 {
		t.Fatalf("expected maxInFlight 3, got %d", currentConfig.InFlightLimit())
	}
	if currentConfig.Port != 9000 {
		t.Fatalf("expected port from file, got %d", currentConfig.Port)
	}
}

func TestPersistentPreRunEInvalidTransport(t *testing.T) {
	useConfig(t, writeTempConfig(t, `{"transport": "carrier-pigeon"}`))

	if err := rootCmd.PersistentPreRunE(rootCmd, []string{}); err == nil {
		t.Fatalf("expected error for unknown transport")
	}
}

func TestPersistentPreRunEMissingConfigUsesDefaults(t *testing.T) {
	useConfig(t, filepath.Join(t.TempDir(), "absent.json"))

	if err := rootCmd.PersistentPreRunE(rootCmd, []string{}); err != nil {
		t.Fatalf("PersistentPreRunE error: %v", err)
	}
	if currentConfig.ConfigPath != "" {
		t.Fatalf("expected no config file, got %s", currentConfig.ConfigPath)
	}
	if currentConfig.Transport != appconfig.TransportStdio {
		t.Fatalf("expected default transport, got %s", currentConfig.Transport)
	}
	if len(currentConfig.Toolsets()) != len(appconfig.KnownToolsets) {
		t.Fatalf("expected every toolset enabled by default, got %v", currentConfig.Toolsets())
	}
}

func TestShowConfigCommandOutput(t *testing.T) {
	configPath := writeTempConfig(t, "{}")
	useConfig(t, configPath)

	out, err := runRoot(t, "--config", configPath, "--debug", "show", "config")
	if err != nil {
		t.Fatalf("ExecuteC error: %v", err)
	}

	if !strings.Contains(out, "Config file: "+configPath) {
		t.Fatalf("expected config file path in output, got %s", out)
	}
	if !strings.Contains(out, "Debug:           true") {
		t.Fatalf("expected debug in output, got %s", out)
	}
}

func TestShowConfigYAMLMasksSecrets(t *testing.T) {
	configPath := writeTempConfig(t, `{"token": "supersecret", "providers": {"rapidAPIKey": "rapid-1234"}}`)
	useConfig(t, configPath)

	out, err := runRoot(t, "--config", configPath, "show", "config", "--format", "yaml")
	if err != nil {
		t.Fatalf("ExecuteC error: %v", err)
	}
	if strings.Contains(out, "supersecret") || strings.Contains(out, "rapid-1234") {
		t.Fatalf("secrets leaked into output: %s", out)
	}
	if !strings.Contains(out, "transport: stdio") || !strings.Contains(out, "****cret") {
		t.Fatalf("unexpected yaml output: %s", out)
	}
}

func TestShowConfigUnknownFormat(t *testing.T) {
	configPath := writeTempConfig(t, "{}")
	useConfig(t, configPath)

	if _, err := runRoot(t, "--config", configPath, "show", "config", "--format", "toml"); err == nil {
		t.Fatal("expected an error for an unknown format")
	}
}
