// internal/providers/rest/client.go
// Package rest is the JSON-over-HTTP client shared by every travel provider.
// It issues exactly one GET per call, never retries, and maps transport
// failures onto the tool error taxonomy.
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mwiater/travvy/internal/logging"
	"github.com/mwiater/travvy/internal/tools"
)

// maxBodyBytes bounds how much of a provider response is read.
const maxBodyBytes = 10 << 20

// Client issues GET requests against one provider.
type Client struct {
	BaseURL string
	Header  http.Header
	HTTP    *http.Client
	Timeout time.Duration
	// Service names the provider in log lines.
	Service string
}

// New returns a client whose requests are bounded by timeout.
func New(service, baseURL string, timeout time.Duration, header http.Header) *Client {
	if header == nil {
		header = http.Header{}
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Header:  header,
		HTTP:    &http.Client{Timeout: timeout},
		Timeout: timeout,
		Service: service,
	}
}

// GetJSON requests path (relative to BaseURL, or absolute) with query and decodes
// the body into out. action prefixes every error message, e.g.
// "Unable to fetch forecast: service returned 503".
func (c *Client) GetJSON(ctx context.Context, action, path string, query url.Values, out any) error {
	endpoint, err := c.resolve(path, query)
	if err != nil {
		return tools.Wrap(tools.KindInternal, err, "%s: invalid request url", action)
	}

	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return tools.Wrap(tools.KindInternal, err, "%s: could not build request", action)
	}
	for k, vals := range c.Header {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}

	logging.LogRequest("TRAVVY->"+c.Service, "", "", redact(endpoint))
	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return c.transportError(action, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return c.transportError(action, err)
	}
	logging.Named("rest").WithField("service", c.Service).
		WithField("status", resp.StatusCode).
		WithField("elapsed", time.Since(start).Round(time.Millisecond)).
		Debug("provider response")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Action: action, Code: resp.StatusCode, Body: snippet(body)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return tools.Wrap(tools.KindProvider, err, "%s: malformed response from service", action)
	}
	return nil
}

// Bound returns ctx limited by the client timeout. Calls that chain several
// requests use it so the whole chain shares one deadline.
func (c *Client) Bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.Timeout)
}

func (c *Client) resolve(path string, query url.Values) (*url.URL, error) {
	raw := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		raw = c.BaseURL + "/" + strings.TrimLeft(path, "/")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if len(query) > 0 {
		q := u.Query()
		for k, vals := range query {
			for _, v := range vals {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u, nil
}

func (c *Client) transportError(action string, err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return tools.Wrap(tools.KindTimeout, err, "%s: service did not respond within %s", action, c.Timeout)
	}
	if errors.Is(err, context.Canceled) {
		return tools.Wrap(tools.KindProvider, err, "%s: request canceled", action)
	}
	return tools.Wrap(tools.KindProvider, err, "%s: could not reach service", action)
}

// StatusError reports a non-2xx provider response. It classifies as KindProvider.
type StatusError struct {
	Action string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: service returned %d", e.Action, e.Code)
}

// Unwrap exposes the classified form so tools.KindOf sees KindProvider.
func (e *StatusError) Unwrap() error {
	return &tools.Error{Kind: tools.KindProvider, Msg: e.Error()}
}

// redact drops credentials that travel in the query string.
func redact(u *url.URL) string {
	c := *u
	q := c.Query()
	for _, k := range []string{"key", "api_key", "apikey"} {
		if q.Has(k) {
			q.Set(k, "REDACTED")
		}
	}
	c.RawQuery = q.Encode()
	return c.String()
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}
