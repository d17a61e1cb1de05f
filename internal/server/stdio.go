package server

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// maxMessageBytes bounds a single framed message.
const maxMessageBytes = 4 << 20

// framing is how a message arrived; the reply uses the same one.
type framing int

const (
	framed framing = iota
	lineDelimited
)

// ServeStdio reads messages from r until EOF and writes responses to w. Each
// request runs on its own goroutine, at most maxInFlight at a time, so replies
// may be written out of order; each one carries its request id.
func (s *Server) ServeStdio(ctx context.Context, r io.Reader, w io.Writer) error {
	in := bufio.NewReaderSize(r, 64<<10)
	out := &syncWriter{w: bufio.NewWriter(w)}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxInFlight)

	s.log.WithField("max_in_flight", s.maxInFlight).Info("serving on stdio")
	for {
		if err := gctx.Err(); err != nil {
			break
		}
		msg, mode, err := readMessage(in)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if errors.Is(err, errFraming) {
				s.log.WithError(err).Warn("dropping malformed frame")
				continue
			}
			_ = g.Wait()
			return fmt.Errorf("read stdin: %w", err)
		}
		g.Go(func() error {
			resp, ok := s.Handle(gctx, msg)
			if !ok {
				return nil
			}
			return out.write(resp, mode)
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("write stdout: %w", err)
	}
	return nil
}

var errFraming = errors.New("malformed frame")

// readMessage returns the next message body. A line starting with a header
// opens a Content-Length frame; a line starting with '{' or '[' is a whole
// newline-delimited message. Blank lines are skipped.
func readMessage(r *bufio.Reader) ([]byte, framing, error) {
	for {
		line, err := r.ReadBytes('\n')
		if len(bytes.TrimSpace(line)) == 0 {
			if err != nil {
				return nil, 0, err
			}
			continue
		}
		trimmed := bytes.TrimSpace(line)
		if trimmed[0] == '{' || trimmed[0] == '[' {
			return trimmed, lineDelimited, nil
		}
		if err != nil {
			return nil, 0, err
		}
		body, err := readFrame(r, string(trimmed))
		return body, framed, err
	}
}

// readFrame consumes headers after first up to the blank line, then the body.
func readFrame(r *bufio.Reader, first string) ([]byte, error) {
	if !strings.Contains(first, ":") {
		return nil, fmt.Errorf("%w: unexpected line %q", errFraming, first)
	}
	length := -1
	header := first
	for {
		if header == "" {
			break
		}
		name, value, ok := strings.Cut(header, ":")
		if ok && strings.EqualFold(strings.TrimSpace(name), "Content-Length") {
			n, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil || n < 0 || n > maxMessageBytes {
				return nil, fmt.Errorf("%w: bad Content-Length %q", errFraming, value)
			}
			length = n
		}
		line, err := r.ReadString('\n')
		if err != nil {
			return nil, err
		}
		header = strings.TrimRight(line, "\r\n")
	}
	if length < 0 {
		return nil, fmt.Errorf("%w: missing Content-Length", errFraming)
	}
	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, err
	}
	return body, nil
}

// syncWriter serialises replies from concurrent handlers.
type syncWriter struct {
	mu sync.Mutex
	w  *bufio.Writer
}

func (sw *syncWriter) write(data []byte, mode framing) error {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	if mode == framed {
		if _, err := fmt.Fprintf(sw.w, "Content-Length: %d\r\n\r\n", len(data)); err != nil {
			return err
		}
		if _, err := sw.w.Write(data); err != nil {
			return err
		}
	} else {
		if _, err := sw.w.Write(data); err != nil {
			return err
		}
		if err := sw.w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return sw.w.Flush()
}
