package webtui

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	srv, err := NewServer(ServerConfig{Addr: "127.0.0.1:0", Catalog: "docs.yaml", Logger: log.New(io.Discard)})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return srv
}

func TestNewServer_RequiresAddr(t *testing.T) {
	t.Parallel()

	if _, err := NewServer(ServerConfig{}); err == nil {
		t.Fatalf("expected error for missing addr")
	}
}

func TestHandler_TerminalPage(t *testing.T) {
	t.Parallel()

	h, err := newTestServer(t).Handler()
	if err != nil {
		t.Fatalf("Handler: %v", err)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/terminal" {
		t.Fatalf("expected redirect to /terminal; got %d %q", rec.Code, rec.Header().Get("Location"))
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/terminal", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{`id="term"`, `data-catalog="docs.yaml"`, "/ws", "xterm"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in page", want)
		}
	}
}

func TestHandler_CompressesPage(t *testing.T) {
	t.Parallel()

	h, err := newTestServer(t).Handler()
	if err != nil {
		t.Fatalf("Handler: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/terminal", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got := rec.Header().Get("Content-Encoding"); got != "gzip" {
		t.Fatalf("expected gzip encoding; got %q", got)
	}
}

func TestSameOrigin(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "http://127.0.0.1:8088/ws", nil)
	if !sameOrigin(req) {
		t.Fatalf("missing origin should be allowed")
	}
	req.Header.Set("Origin", "http://127.0.0.1:8088")
	if !sameOrigin(req) {
		t.Fatalf("same origin should be allowed")
	}
	req.Header.Set("Origin", "http://evil.example")
	if sameOrigin(req) {
		t.Fatalf("foreign origin should be rejected")
	}
}

func TestResizeClampsDimensions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		cols, rows int
		wantCols   uint16
		wantRows   uint16
	}{
		{cols: 80, rows: 24, wantCols: 80, wantRows: 24},
		{cols: 70000, rows: 65536, wantCols: 65535, wantRows: 65535},
		{cols: 0, rows: -3, wantCols: 1, wantRows: 1},
	}
	for _, tt := range tests {
		ws := wsMsg{Type: "resize", Cols: tt.cols, Rows: tt.rows}.winsize()
		if ws.Cols != tt.wantCols || ws.Rows != tt.wantRows {
			t.Fatalf("%dx%d: got %dx%d want %dx%d", tt.cols, tt.rows, ws.Cols, ws.Rows, tt.wantCols, tt.wantRows)
		}
	}
}
