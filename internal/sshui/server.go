// Package sshui serves the interactive explorer over SSH. Every session gets
// its own tree and dialog state over a shared, read-only catalog.
package sshui

import (
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	bm "github.com/charmbracelet/wish/bubbletea"

	"docexplorer/internal/catalog"
	"docexplorer/internal/tui"
)

const shutdownTimeout = 5 * time.Second

type Config struct {
	Addr        string
	HostKeyPath string
	Catalog     *catalog.Store
	Source      string
	Logger      *log.Logger
}

type Server struct {
	cfg    Config
	srv    *ssh.Server
	logger *log.Logger
}

func New(cfg Config) (*Server, error) {
	cfg.Addr = strings.TrimSpace(cfg.Addr)
	if cfg.Addr == "" {
		return nil, errors.New("ssh: missing addr")
	}
	if strings.TrimSpace(cfg.HostKeyPath) == "" {
		return nil, errors.New("ssh: missing host key path")
	}
	if cfg.Catalog == nil {
		cfg.Catalog = catalog.Default()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{cfg: cfg, logger: logger.WithPrefix("ssh")}

	srv, err := wish.NewServer(
		wish.WithAddress(cfg.Addr),
		wish.WithHostKeyPath(cfg.HostKeyPath),
		wish.WithMiddleware(
			bm.Middleware(s.teaHandler),
			activeterm.Middleware(),
			s.loggingMiddleware(),
		),
	)
	if err != nil {
		return nil, err
	}
	s.srv = srv
	return s, nil
}

func (s *Server) Addr() string { return s.cfg.Addr }

// ListenAndServe blocks until ctx is cancelled or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, ssh.ErrServerClosed) || errors.Is(err, net.ErrClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return err
	}
	s.logger.Info("stopped")
	return nil
}

func (s *Server) newSessionModel() tea.Model {
	return tui.New(tui.Options{
		Catalog: s.cfg.Catalog,
		Source:  s.cfg.Source,
		Logger:  s.logger,
	})
}

func (s *Server) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	return s.newSessionModel(), tui.ProgramOptions()
}

// Listed last in WithMiddleware, so it wraps the whole session.
func (s *Server) loggingMiddleware() wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			start := time.Now()
			s.logger.Info("session opened", "user", sess.User(), "remote", sess.RemoteAddr().String())
			next(sess)
			s.logger.Info("session closed", "user", sess.User(), "duration", time.Since(start).Round(time.Millisecond))
		}
	}
}
