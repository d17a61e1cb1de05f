// internal/commands/commands_test.go
package travvy

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/mwiater/travvy/internal/appconfig"
)

func alertsServer(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/alerts/active/area/CA" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/geo+json")
		_, _ = w.Write([]byte(`{"features":[{"properties":{"event":"Heat Advisory","areaDesc":"Central Valley","severity":"Moderate","urgency":"Expected"}}]}`))
	}))
	t.Cleanup(server.Close)
	return server, &hits
}

func TestListCommandsOutput(t *testing.T) {
	configPath := writeTempConfig(t, "{}")
	useConfig(t, configPath)

	out, err := runRoot(t, "--config", configPath, "list", "commands")
	if err != nil {
		t.Fatalf("ExecuteC error: %v", err)
	}
	for _, want := range []string{"Commands and Subcommands:", "travvy serve", "travvy list tools", "travvy show config", "travvy call"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "completion") || strings.Contains(out, "travvy help") {
		t.Errorf("completion and help commands should be hidden:\n%s", out)
	}
	if strings.Contains(out, "--help") {
		t.Errorf("the help flag should not be listed:\n%s", out)
	}
}

func TestCollectCommandDataFlags(t *testing.T) {
	rows := collectCommandData(rootCmd, "", 0)
	byPath := map[string]CommandInfo{}
	for _, r := range rows {
		byPath[r.Path] = r
	}

	root, ok := byPath["travvy"]
	if !ok || root.Depth != 0 || strings.Join(root.Flags, ",") != "--config,--debug,--logFile,--timeout" {
		t.Fatalf("unexpected root row %+v", root)
	}
	serve := byPath["travvy serve"]
	if serve.Depth != 1 || !strings.Contains(strings.Join(serve.Flags, ","), "--transport") {
		t.Fatalf("unexpected serve row %+v", serve)
	}
	if tools := byPath["travvy list tools"]; tools.Depth != 2 || len(tools.Flags) != 0 {
		t.Fatalf("unexpected list tools row %+v", tools)
	}
}

func TestListCommandsAlignsColumns(t *testing.T) {
	var buf bytes.Buffer
	ListCommands(&buf, []CommandInfo{
		{Path: "travvy", Description: "root", Flags: []string{"--debug"}},
		{Path: "travvy serve", Depth: 1, Description: "serve"},
	})
	want := "Commands and Subcommands:\n" +
		"  travvy          root\n" +
		"                  flags: --debug\n" +
		"    travvy serve  serve\n"
	if buf.String() != want {
		t.Fatalf("unexpected layout:\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestListToolsOnlyEnabledToolsets(t *testing.T) {
	var buf bytes.Buffer
	cfg := appconfig.Config{EnabledSets: []string{appconfig.ToolsetWeather}}
	if err := ListTools(&buf, cfg); err != nil {
		t.Fatalf("ListTools: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"weather (3 tools):", "get_weather_forecast", "state (string) required", "days (integer): default 5"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "search_flights") {
		t.Errorf("flights toolset should not be listed:\n%s", out)
	}
}

func TestCallCommandSuccess(t *testing.T) {
	server, hits := alertsServer(t)
	configPath := writeTempConfig(t, `{"providers": {"weatherURL": "`+server.URL+`"}}`)
	useConfig(t, configPath)

	out, err := runRoot(t, "--config", configPath, "call", "get_weather_alerts", "--args", `{"state": "ca"}`)
	if err != nil {
		t.Fatalf("call failed: %v\n%s", err, out)
	}
	if hits.Load() != 1 {
		t.Fatalf("expected one provider request, got %d", hits.Load())
	}
	for _, want := range []string{"get_weather_alerts", "Active Weather Alerts for CA:", "1. Heat Advisory", "Central Valley"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestCallCommandFailures(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "missing required", args: []string{"call", "get_weather_alerts", "--args", `{}`}, want: "failed (validation)"},
		{name: "bad json", args: []string{"call", "get_weather_alerts", "--args", `{"state":`}, want: "--args must be a JSON object"},
		{name: "unknown tool", args: []string{"call", "book_spaceship"}, want: "book_spaceship failed"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			server, hits := alertsServer(t)
			configPath := writeTempConfig(t, `{"providers": {"weatherURL": "`+server.URL+`"}}`)
			useConfig(t, configPath)

			out, err := runRoot(t, append([]string{"--config", configPath}, tt.args...)...)
			if err == nil {
				t.Fatalf("expected a failing exit, got output:\n%s", out)
			}
			if !strings.Contains(out, tt.want) {
				t.Fatalf("expected %q in output:\n%s", tt.want, out)
			}
			if hits.Load() != 0 {
				t.Fatalf("expected no provider requests, got %d", hits.Load())
			}
		})
	}
}

func TestCallCommandRaw(t *testing.T) {
	server, _ := alertsServer(t)
	configPath := writeTempConfig(t, `{"providers": {"weatherURL": "`+server.URL+`"}}`)
	useConfig(t, configPath)

	out, err := runRoot(t, "--config", configPath, "call", "get_weather_alerts", "--args", `{"state":"CA"}`, "--raw")
	if err != nil {
		t.Fatalf("call failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Success:") || !strings.Contains(out, "Heat Advisory") {
		t.Fatalf("expected the result envelope, got:\n%s", out)
	}
}

func TestRunServeStdio(t *testing.T) {
	cfg := appconfig.Config{EnabledSets: []string{appconfig.ToolsetWeather}}
	in := strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}` + "\n" +
		`{"jsonrpc":"2.0","method":"notifications/initialized"}` + "\n")
	var out bytes.Buffer

	if err := runServe(context.Background(), cfg, in, &out); err != nil {
		t.Fatalf("runServe: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected exactly one reply, got %q", out.String())
	}
	var resp struct {
		ID     int `json:"id"`
		Result struct {
			ProtocolVersion string `json:"protocolVersion"`
			ServerInfo      struct {
				Name string `json:"name"`
			} `json:"serverInfo"`
		} `json:"result"`
	}
	if err := json.Unmarshal([]byte(lines[0]), &resp); err != nil {
		t.Fatalf("decode reply: %v", err)
	}
	if resp.ID != 1 || resp.Result.ProtocolVersion != "2024-11-05" || resp.Result.ServerInfo.Name != "travvy" {
		t.Fatalf("unexpected initialize reply %+v", resp)
	}
}
