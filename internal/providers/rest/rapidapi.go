package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mwiater/travvy/internal/tools"
)

// NewRapidAPI returns a client for a RapidAPI-hosted service. baseURL defaults
// to https://{host}.
func NewRapidAPI(service, host, baseURL, key string, timeout time.Duration) *Client {
	header := http.Header{}
	header.Set("X-RapidAPI-Key", key)
	header.Set("X-RapidAPI-Host", host)
	if strings.TrimSpace(baseURL) == "" {
		baseURL = "https://" + host
	}
	return New(service, baseURL, timeout, header)
}

// Envelope is the {status, message, data} wrapper RapidAPI services reply with.
type Envelope struct {
	Status  *bool           `json:"status"`
	Message json.RawMessage `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// GetEnvelope fetches path and decodes the envelope's data into out. A false
// status becomes a provider error carrying the service's message.
func (c *Client) GetEnvelope(ctx context.Context, action, path string, query url.Values, out any) error {
	var env Envelope
	if err := c.GetJSON(ctx, action, path, query, &env); err != nil {
		return err
	}
	if env.Status != nil && !*env.Status {
		msg := envelopeMessage(env.Message)
		if msg == "" {
			msg = "request was rejected"
		}
		return tools.Providerf("%s: %s", action, msg)
	}
	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return tools.Wrap(tools.KindProvider, err, "%s: malformed response from service", action)
	}
	return nil
}

// envelopeMessage flattens message, which is a string or a list of
// {field: reason} objects depending on the endpoint.
func envelopeMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var list []map[string]any
	if err := json.Unmarshal(raw, &list); err == nil {
		var parts []string
		for _, m := range list {
			for k, v := range m {
				parts = append(parts, k+": "+strings.TrimSpace(toString(v)))
			}
		}
		return strings.Join(parts, "; ")
	}
	return strings.TrimSpace(string(raw))
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, _ := json.Marshal(v)
	return string(b)
}
