package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mwiater/travvy/internal/logging"
	"github.com/mwiater/travvy/internal/tools"
)

// JSON-RPC 2.0 error codes.
const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeInternalError  = -32603
)

type request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type contentPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type callResult struct {
	Content []contentPart `json:"content"`
	IsError bool          `json:"isError"`
}

var nullID = json.RawMessage("null")

// Handle dispatches one JSON-RPC message. It reports false when the message was
// a notification and no response must be sent.
func (s *Server) Handle(ctx context.Context, raw []byte) ([]byte, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '[' {
		return s.encode(errorResponse(nullID, codeInvalidRequest, "batch requests are not supported")), true
	}

	var req request
	if err := json.Unmarshal(raw, &req); err != nil {
		s.log.WithError(err).Debug("unparseable message")
		return s.encode(errorResponse(nullID, codeParseError, "Parse error")), true
	}
	if req.ID == nil {
		s.log.WithField("method", req.Method).Debug("notification")
		return nil, false
	}
	if req.JSONRPC != "2.0" || req.Method == "" {
		return s.encode(errorResponse(req.ID, codeInvalidRequest, "Invalid Request")), true
	}
	return s.encode(s.dispatch(ctx, req)), true
}

func (s *Server) dispatch(ctx context.Context, req request) response {
	switch req.Method {
	case "initialize":
		return resultResponse(req.ID, map[string]any{
			"protocolVersion": ProtocolVersion,
			"serverInfo":      map[string]any{"name": s.info.Name, "version": s.info.Version},
			"capabilities":    map[string]any{"tools": map[string]any{"listChanged": false}},
		})
	case "ping":
		return resultResponse(req.ID, map[string]any{})
	case "tools/list":
		return resultResponse(req.ID, map[string]any{"tools": s.reg.List()})
	case "tools/call":
		var call tools.Call
		if len(req.Params) > 0 {
			if err := json.Unmarshal(req.Params, &call); err != nil {
				return errorResponse(req.ID, codeInvalidParams, "Invalid params")
			}
		}
		if call.Name == "" {
			return errorResponse(req.ID, codeInvalidParams, "Invalid params: missing tool name")
		}
		res := s.call(ctx, call)
		return resultResponse(req.ID, callResult{
			Content: []contentPart{{Type: "text", Text: res.Text()}},
			IsError: !res.Success,
		})
	}
	return errorResponse(req.ID, codeMethodNotFound, fmt.Sprintf("Method not found: %s", req.Method))
}

// call invokes a tool and logs the exchange under a fresh request id.
func (s *Server) call(ctx context.Context, call tools.Call) tools.Result {
	id := uuid.NewString()
	logging.LogRequest("CLIENT->TRAVVY", call.Name, id, call.Arguments)
	start := time.Now()

	res := s.reg.Invoke(ctx, call.Name, call.Arguments)

	entry := s.log.WithField("tool", call.Name).
		WithField("request_id", id).
		WithField("elapsed", time.Since(start).Round(time.Millisecond))
	if res.Success {
		entry.Info("tool call succeeded")
	} else {
		entry.WithField("kind", res.Kind).Warn(res.Error)
	}
	logging.LogRequest("TRAVVY->CLIENT", call.Name, id, res)
	return res
}

func (s *Server) encode(resp response) []byte {
	data, err := json.Marshal(resp)
	if err != nil {
		s.log.WithError(err).Error("encode response")
		data, _ = json.Marshal(errorResponse(resp.ID, codeInternalError, "Internal error"))
	}
	return data
}

func resultResponse(id json.RawMessage, result any) response {
	return response{JSONRPC: "2.0", ID: id, Result: result}
}

func errorResponse(id json.RawMessage, code int, msg string) response {
	return response{JSONRPC: "2.0", ID: id, Error: &rpcError{Code: code, Message: msg}}
}
