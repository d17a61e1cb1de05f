package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

type testStringer string

func (s testStringer) String() string { return string(s) }

func TestInitAndLoggingToFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "nested", "travvy.log")

	if err := Init(logPath, true); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	t.Cleanup(func() {
		_ = Close()
	})

	LogEvent("hello %s", "world")
	LogRequest("client->travvy", "get_weather_alerts", "req-1", map[string]any{"state": "CA"})
	_ = Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "hello world") {
		t.Fatalf("expected LogEvent content, got: %s", content)
	}
	if !strings.Contains(content, "[CLIENT->TRAVVY]") || !strings.Contains(content, "tool=get_weather_alerts") {
		t.Fatalf("expected LogRequest content, got: %s", content)
	}
	if !strings.Contains(content, `payload={"state":"CA"}`) {
		t.Fatalf("expected payload json, got: %s", content)
	}
}

func TestLogRequestHiddenBelowDebug(t *testing.T) {
	if err := Init("", false); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { _ = Close() })

	LogRequest("in", "tool", "", "x")
	if buf.Len() != 0 {
		t.Fatalf("expected request log suppressed at info level, got: %s", buf.String())
	}
}

func TestPlainFormatter(t *testing.T) {
	entry := &logrus.Entry{
		Logger:  logrus.New(),
		Time:    time.Date(2024, 12, 25, 10, 0, 0, 0, time.UTC),
		Level:   logrus.WarnLevel,
		Message: "provider slow",
		Data:    logrus.Fields{"component": "server", "tool": "x", "a": 1},
	}
	out, err := PlainFormatter{}.Format(entry)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	want := "[2024-12-25T10:00:00Z] [WARNING] [server] provider slow a=1 tool=x\n"
	if string(out) != want {
		t.Fatalf("got %q want %q", out, want)
	}
}

func TestFormatPayloadVariants(t *testing.T) {
	if got := formatPayload(nil); got != "null" {
		t.Fatalf("nil payload: %s", got)
	}
	if got := formatPayload(" "); got != `""` {
		t.Fatalf("empty string payload: %s", got)
	}
	if got := formatPayload([]byte("hi")); got != "hi" {
		t.Fatalf("byte payload: %s", got)
	}
	if got := formatPayload(testStringer("ok")); got != "ok" {
		t.Fatalf("stringer payload: %s", got)
	}
}

func TestDirectionLabelDefaults(t *testing.T) {
	if got := directionLabel(" in "); got != "[IN]" {
		t.Fatalf("got %s", got)
	}
	if got := directionLabel(""); got != "[UNKNOWN]" {
		t.Fatalf("got %s", got)
	}
}
