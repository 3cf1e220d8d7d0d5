package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/routemap/pkg/errors"
	"github.com/matzehuels/routemap/pkg/observability"
	"github.com/matzehuels/routemap/pkg/pipeline"
	"github.com/matzehuels/routemap/pkg/render"
)

func testRouter(maxBody int64) http.Handler {
	opts := pipeline.Options{Render: render.DefaultOptions(), Seed: 7}
	return newRouter(newLogger(io.Discard, LogInfo), opts, maxBody)
}

func post(t *testing.T, h http.Handler, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(defaultMaxBody).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Errorf("GET /healthz = %d %q", rec.Code, rec.Body.String())
	}
}

func TestServeRoute(t *testing.T) {
	h := testRouter(defaultMaxBody)

	tests := []struct {
		format      string
		contentType string
		prefix      string
	}{
		{"png", "image/png", "\x89PNG"},
		{"dot", "text/vnd.graphviz; charset=utf-8", "graph"},
		{"json", "application/json", "{"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			rec := post(t, h, "/route?from=A&to=D&format="+tt.format, citiesCSV)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
			}
			hdr := rec.Header()
			if got := hdr.Get("Content-Type"); got != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", got, tt.contentType)
			}
			if hdr.Get("X-Route-Found") != "true" || hdr.Get("X-Route-Cost") != "9" {
				t.Errorf("route headers = found %q cost %q", hdr.Get("X-Route-Found"), hdr.Get("X-Route-Cost"))
			}
			if got := hdr.Get("X-Route-Path"); got != "A --> B --> C --> D" {
				t.Errorf("X-Route-Path = %q", got)
			}
			if hdr.Get("X-Render-ID") == "" {
				t.Error("missing X-Render-ID")
			}
			if !bytes.HasPrefix(bytes.TrimSpace(rec.Body.Bytes()), []byte(tt.prefix)) {
				t.Errorf("body does not start with %q", tt.prefix)
			}
		})
	}
}

func TestServeRouteDefaultsToPNG(t *testing.T) {
	rec := post(t, testRouter(defaultMaxBody), "/route?from=A&to=B", citiesCSV)
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "image/png" {
		t.Errorf("status %d, Content-Type %q", rec.Code, rec.Header().Get("Content-Type"))
	}
}

func TestServeRouteNoPath(t *testing.T) {
	rec := post(t, testRouter(defaultMaxBody), "/route?from=A&to=Q&format=dot", citiesCSV)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	hdr := rec.Header()
	if hdr.Get("X-Route-Found") != "false" {
		t.Errorf("X-Route-Found = %q", hdr.Get("X-Route-Found"))
	}
	if hdr.Get("X-Route-Cost") != "" || hdr.Get("X-Route-Path") != "" {
		t.Error("cost and path headers set without a route")
	}
}

func TestServeRouteErrors(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		body    string
		maxBody int64
		status  int
		code    errors.Code
	}{
		{"missing to", "/route?from=A", citiesCSV, defaultMaxBody, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"bad format", "/route?from=A&to=D&format=gif", citiesCSV, defaultMaxBody, http.StatusBadRequest, errors.ErrCodeInvalidFormat},
		{"bad seed", "/route?from=A&to=D&seed=-1", citiesCSV, defaultMaxBody, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"bad weight", "/route?from=A&to=D", "h,h,h\nA,B,x\n", defaultMaxBody, http.StatusBadRequest, errors.ErrCodeInvalidWeight},
		{"bad record", "/route?from=A&to=D", "h,h,h\nA,B\n", defaultMaxBody, http.StatusBadRequest, errors.ErrCodeInvalidRecord},
		{"too large", "/route?from=A&to=D", citiesCSV, 16, http.StatusRequestEntityTooLarge, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, testRouter(tt.maxBody), tt.target, tt.body)
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body.String())
			}
			var resp ErrorResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if resp.Code != string(tt.code) {
				t.Errorf("code = %q, want %q", resp.Code, tt.code)
			}
			if resp.Error == "" {
				t.Error("empty error message")
			}
		})
	}
}

type recordingServerHooks struct {
	observability.NoopServerHooks
	mu       sync.Mutex
	requests []string
	statuses []int
}

func (h *recordingServerHooks) OnRequest(_ context.Context, method, path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.requests = append(h.requests, method+" "+path)
}

func (h *recordingServerHooks) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses = append(h.statuses, status)
}

func TestServerHooks(t *testing.T) {
	hooks := &recordingServerHooks{}
	observability.SetServerHooks(hooks)
	t.Cleanup(observability.Reset)

	h := testRouter(defaultMaxBody)
	post(t, h, "/route?from=A&to=D&format=dot", citiesCSV)
	post(t, h, "/route?from=A", citiesCSV)

	if len(hooks.requests) != 2 || hooks.requests[0] != "POST /route" {
		t.Errorf("requests = %v", hooks.requests)
	}
	if len(hooks.statuses) != 2 || hooks.statuses[0] != http.StatusOK || hooks.statuses[1] != http.StatusBadRequest {
		t.Errorf("statuses = %v", hooks.statuses)
	}
}

func TestRunServerShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := &http.Server{Addr: "127.0.0.1:0", Handler: testRouter(defaultMaxBody)}

	done := make(chan error, 1)
	go func() { done <- runServer(ctx, srv, newLogger(io.Discard, LogInfo)) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("runServer() = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("runServer did not return after cancel")
	}
}
