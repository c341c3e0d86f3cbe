package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
)

// ErrUnknownAction is reported for requests naming an action the dispatcher
// was not built with.
var ErrUnknownAction = errors.New("bridge: unknown action")

// Request is one call from the host.
type Request struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
	ID      json.RawMessage `json:"id,omitempty"`
}

// Response answers the Request with the same ID. Exactly one of Result and
// Error is set.
type Response struct {
	Result any             `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
	ID     json.RawMessage `json:"id,omitempty"`
}

// Handler serves one action. payload is the raw JSON of Request.Payload and
// may be empty.
type Handler func(ctx context.Context, payload json.RawMessage) (any, error)

// Dispatcher routes requests to handlers through a table fixed at
// construction. It is safe for concurrent use.
type Dispatcher struct {
	handlers map[string]Handler
	logger   *slog.Logger
}

// NewDispatcher builds a dispatcher from table. The table is copied; later
// changes to it have no effect. A nil logger discards log output.
func NewDispatcher(table map[string]Handler, logger *slog.Logger) *Dispatcher {
	handlers := make(map[string]Handler, len(table))
	for name, h := range table {
		if h != nil {
			handlers[name] = h
		}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Dispatcher{handlers: handlers, logger: logger}
}

// Actions returns the sorted names of every action the dispatcher serves.
func (d *Dispatcher) Actions() []string {
	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch runs the handler for req.Action.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) Response {
	resp := Response{ID: req.ID}

	h, ok := d.handlers[req.Action]
	if !ok {
		d.logger.Warn("unknown action", "action", req.Action)
		resp.Error = fmt.Errorf("%w: %q", ErrUnknownAction, req.Action).Error()
		return resp
	}

	result, err := h(ctx, req.Payload)
	if err != nil {
		d.logger.Error("action failed", "action", req.Action, "error", err)
		resp.Error = err.Error()
		return resp
	}

	d.logger.Debug("action served", "action", req.Action)
	resp.Result = result
	return resp
}

// DispatchJSON decodes a request envelope, dispatches it and encodes the
// response envelope.
func (d *Dispatcher) DispatchJSON(ctx context.Context, data []byte) ([]byte, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("bridge: invalid request: %w", err)
	}
	return json.Marshal(d.Dispatch(ctx, req))
}
