package http_request

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/flowgrid/internal/workflow"
)

func TestRunPerformsRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.WriteHeader(http.StatusTeapot)
		fmt.Fprint(w, "short and stout")
	}))
	defer server.Close()

	m := &Module{Client: server.Client()}
	out, err := m.run(context.Background(), workflow.Record{"url": server.URL})
	require.NoError(t, err)

	assert.Equal(t, http.StatusTeapot, out["status_code"])
	assert.Equal(t, "short and stout", out["body"])
}

func TestRunUsesConfiguredMethod(t *testing.T) {
	var gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
	}))
	defer server.Close()

	m := &Module{Client: server.Client()}
	_, err := m.run(context.Background(), workflow.Record{"url": server.URL, "method": http.MethodDelete})
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, gotMethod)
}

func TestRunRequiresURL(t *testing.T) {
	m := &Module{}
	_, err := m.run(context.Background(), workflow.Record{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "url")
}
