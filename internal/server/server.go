// internal/server/server.go
// Package server exposes a tool registry over the Model Context Protocol:
// JSON-RPC 2.0 on stdio (Content-Length framed or newline-delimited) and
// over HTTP through a chi router.
package server

import (
	"github.com/sirupsen/logrus"

	"github.com/mwiater/travvy/internal/logging"
	"github.com/mwiater/travvy/internal/tools"
	"github.com/mwiater/travvy/internal/toolsets"
)

// ProtocolVersion is the MCP revision answered to initialize.
const ProtocolVersion = "2024-11-05"

const defaultMaxInFlight = 8

// Info identifies the server to clients.
type Info struct {
	Name     string             `json:"name"`
	Version  string             `json:"version"`
	Toolsets []toolsets.Summary `json:"toolsets,omitempty"`
}

// Server dispatches protocol messages to a registry. The registry is read-only
// after construction, so one Server may serve many requests concurrently.
type Server struct {
	reg         *tools.Registry
	info        Info
	log         *logrus.Entry
	token       string
	maxInFlight int
}

// Option adjusts a Server.
type Option func(*Server)

// WithToken requires "Authorization: Bearer <token>" on the HTTP tool routes.
func WithToken(token string) Option {
	return func(s *Server) { s.token = token }
}

// WithMaxInFlight bounds how many stdio requests run at once.
func WithMaxInFlight(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxInFlight = n
		}
	}
}

// New returns a server for reg. A nil logger logs under the "server" component.
func New(reg *tools.Registry, info Info, logger *logrus.Entry, opts ...Option) *Server {
	if logger == nil {
		logger = logging.Named("server")
	}
	s := &Server{reg: reg, info: info, log: logger, maxInFlight: defaultMaxInFlight}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
