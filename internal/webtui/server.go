// Package webtui serves the interactive explorer in a browser: each websocket
// connection drives a PTY that runs the terminal UI.
package webtui

import (
	"errors"
	"html/template"
	"net/http"
	"strings"

	"github.com/CAFxX/httpcompression"
	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
)

type ServerConfig struct {
	Addr string
	// Catalog is passed to each session as --catalog; empty uses the built-in one.
	Catalog string
	// Command overrides the executable started per session (tests, wrappers).
	Command []string
	Logger  *log.Logger
}

type Server struct {
	cfg    ServerConfig
	tmpl   *template.Template
	logger *log.Logger
}

func NewServer(cfg ServerConfig) (*Server, error) {
	if strings.TrimSpace(cfg.Addr) == "" {
		return nil, errors.New("webtui: missing addr")
	}
	tmpl, err := template.New("terminal").Parse(terminalHTML)
	if err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Server{cfg: cfg, tmpl: tmpl, logger: logger.WithPrefix("webtui")}, nil
}

func (s *Server) Addr() string {
	return strings.TrimSpace(s.cfg.Addr)
}

// Handler returns the routes: the terminal page (compressed) and the
// websocket endpoint (uncompressed, it hijacks the connection).
func (s *Server) Handler() (http.Handler, error) {
	compress, err := httpcompression.DefaultAdapter()
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Get("/ws", s.handleWS)
	r.Group(func(r chi.Router) {
		r.Use(compress)
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/terminal", http.StatusFound)
		})
		r.Get("/terminal", s.handleTerminal)
	})
	return r, nil
}

type terminalVM struct {
	Title   string
	Catalog string
}

func (s *Server) handleTerminal(w http.ResponseWriter, r *http.Request) {
	vm := terminalVM{Title: "docexplorer", Catalog: strings.TrimSpace(s.cfg.Catalog)}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.Execute(w, vm); err != nil {
		s.logger.Error("render terminal page", "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

const terminalHTML = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/xterm@5.3.0/css/xterm.css">
<style>
html, body { margin: 0; height: 100%; background: #111; }
#term { position: absolute; inset: 0; }
</style>
</head>
<body>
<div id="term" role="application" aria-label="Project files terminal"{{if .Catalog}} data-catalog="{{.Catalog}}"{{end}}></div>
<script src="https://cdn.jsdelivr.net/npm/xterm@5.3.0/lib/xterm.js"></script>
<script src="https://cdn.jsdelivr.net/npm/xterm-addon-fit@0.8.0/lib/xterm-addon-fit.js"></script>
<script>
(function () {
  var term = new Terminal({ cursorBlink: true, convertEol: false });
  var fit = new FitAddon.FitAddon();
  term.loadAddon(fit);
  term.open(document.getElementById("term"));
  fit.fit();

  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/ws");
  ws.binaryType = "arraybuffer";

  function resize() {
    fit.fit();
    if (ws.readyState === WebSocket.OPEN) {
      ws.send(JSON.stringify({ type: "resize", cols: term.cols, rows: term.rows }));
    }
  }
  ws.onopen = resize;
  ws.onmessage = function (ev) {
    if (typeof ev.data === "string") { term.write(ev.data); return; }
    term.write(new Uint8Array(ev.data));
  };
  ws.onclose = function () { term.write("\r\n[session closed]\r\n"); };
  term.onData(function (d) { if (ws.readyState === WebSocket.OPEN) ws.send(d); });
  window.addEventListener("resize", resize);
})();
</script>
</body>
</html>
`
