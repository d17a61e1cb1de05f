// Package logging configures the process-wide logrus logger used by every travvy
// component. Stdout is never written to, because the stdio transport owns it.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	mu      sync.Mutex
	logFile *os.File
	root    = logrus.New()
)

func init() {
	root.SetOutput(os.Stderr)
	root.SetFormatter(PlainFormatter{})
}

// Init routes log output to stderr and, when logPath is set, to that file as well.
func Init(logPath string, debug bool) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	writers := []io.Writer{os.Stderr}
	if logPath != "" {
		if dir := filepath.Dir(logPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		logFile = file
		writers = append(writers, logFile)
	}

	root.SetOutput(io.MultiWriter(writers...))
	if debug {
		root.SetLevel(logrus.DebugLevel)
	} else {
		root.SetLevel(logrus.InfoLevel)
	}
	return nil
}

// Close flushes and detaches the log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	root.SetOutput(os.Stderr)
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// SetOutput replaces the log destination; tests use it to capture output.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	root.SetOutput(w)
}

// Root returns the shared logger.
func Root() *logrus.Logger { return root }

// Named returns an entry tagged with a component field.
func Named(component string) *logrus.Entry {
	entry := logrus.NewEntry(root)
	if component != "" {
		entry = entry.WithField("component", component)
	}
	return entry
}

// LogEvent writes a formatted info line.
func LogEvent(format string, args ...any) {
	root.Infof(format, args...)
}

// LogRequest records a message crossing a boundary, e.g. CLIENT->TRAVVY or TRAVVY->PROVIDER.
func LogRequest(direction, tool, requestID string, payload any) {
	fields := logrus.Fields{"payload": formatPayload(payload)}
	if tool = strings.TrimSpace(tool); tool != "" {
		fields["tool"] = tool
	}
	if requestID = strings.TrimSpace(requestID); requestID != "" {
		fields["request_id"] = requestID
	}
	root.WithFields(fields).Debug(directionLabel(direction))
}

func directionLabel(direction string) string {
	dir := strings.ToUpper(strings.TrimSpace(direction))
	if dir == "" {
		dir = "UNKNOWN"
	}
	return fmt.Sprintf("[%s]", dir)
}

func formatPayload(payload any) string {
	switch v := payload.(type) {
	case nil:
		return "null"
	case string:
		if strings.TrimSpace(v) == "" {
			return `""`
		}
		return v
	case []byte:
		if len(v) == 0 {
			return "[]"
		}
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}

// PlainFormatter renders: [timestamp] [LEVEL] [component] message key=value...
type PlainFormatter struct{}

// Format implements logrus.Formatter.
func (PlainFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	if entry == nil {
		return []byte{}, nil
	}
	parts := []string{
		fmt.Sprintf("[%s]", entry.Time.UTC().Format(time.RFC3339Nano)),
		fmt.Sprintf("[%s]", strings.ToUpper(entry.Level.String())),
	}
	if component, ok := entry.Data["component"].(string); ok && component != "" {
		parts = append(parts, fmt.Sprintf("[%s]", component))
	}
	parts = append(parts, entry.Message)
	if fields := formatFields(entry.Data); fields != "" {
		parts = append(parts, fields)
	}
	return []byte(strings.Join(parts, " ") + "\n"), nil
}

func formatFields(fields logrus.Fields) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if k == "component" {
			continue
		}
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, fields[k]))
	}
	return strings.Join(parts, " ")
}
