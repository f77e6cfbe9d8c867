package http_request

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/vk/flowgrid/internal/ctxlog"
	"github.com/vk/flowgrid/internal/handlers"
	"github.com/vk/flowgrid/internal/workflow"
)

// Module implements the handlers.Module interface for this package.
type Module struct {
	// Client allows tests to substitute a transport; nil means
	// http.DefaultClient.
	Client *http.Client
}

// run performs one HTTP request described by the step input ("url" required,
// "method" defaults to GET) and outputs status_code and body.
func (m *Module) run(ctx context.Context, input workflow.Record) (workflow.Record, error) {
	url, ok := input["url"].(string)
	if !ok || url == "" {
		return nil, fmt.Errorf("http_request requires a string 'url' input")
	}
	method := http.MethodGet
	if v, ok := input["method"].(string); ok && v != "" {
		method = v
	}

	ctxlog.FromContext(ctx).Info("Making HTTP request.", "method", method, "url", url)

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	client := m.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	ctxlog.FromContext(ctx).Info("Received HTTP response.", "status", resp.Status)

	return workflow.Record{
		"status_code": resp.StatusCode,
		"body":        string(body),
	}, nil
}

// Register registers the action with the engine.
func (m *Module) Register(h *handlers.Handlers) {
	h.Register("http_request", workflow.ActionFunc(m.run))
}
