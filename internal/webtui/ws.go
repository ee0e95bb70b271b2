package webtui

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/creack/pty"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"docexplorer/internal/debounce"
)

// resizeWait coalesces the burst of resize frames a browser sends while the
// window is dragged.
const resizeWait = 50 * time.Millisecond

type wsMsg struct {
	Type string `json:"type"`
	Cols int    `json:"cols"`
	Rows int    `json:"rows"`
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  32 * 1024,
	WriteBufferSize: 32 * 1024,
	CheckOrigin:     sameOrigin,
}

func sameOrigin(r *http.Request) bool {
	origin := strings.TrimSpace(r.Header.Get("Origin"))
	if origin == "" {
		return true
	}
	host := strings.TrimSpace(r.Host)
	return strings.HasSuffix(origin, "://"+host)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client.
		s.logger.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	session := uuid.NewString()
	logger := s.logger.With("session", session)

	ptmx, cmd, err := s.startPTYSession()
	if err != nil {
		logger.Error("start session", "err", err)
		_ = conn.WriteMessage(websocket.TextMessage, []byte("failed to start session: "+err.Error()))
		return
	}
	logger.Info("session started", "pid", cmd.Process.Pid, "remote", r.RemoteAddr)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error { return pumpPTYToWS(ctx, ptmx, conn) })
	g.Go(func() error { return pumpWSToPTY(ctx, conn, ptmx) })
	g.Go(func() error {
		// Unblock both pumps once either side stops.
		<-ctx.Done()
		_ = ptmx.Close()
		_ = conn.Close()
		if cmd.Process != nil {
			_ = cmd.Process.Kill()
		}
		return nil
	})

	err = g.Wait()
	_, _ = cmd.Process.Wait()
	if err != nil && !isClosedErr(err) {
		logger.Warn("session ended", "err", err)
		return
	}
	logger.Info("session ended")
}

func (s *Server) sessionCommand() (*exec.Cmd, error) {
	if len(s.cfg.Command) > 0 {
		return exec.Command(s.cfg.Command[0], s.cfg.Command[1:]...), nil
	}
	exe, err := os.Executable()
	if err != nil {
		return nil, err
	}
	var args []string
	if c := strings.TrimSpace(s.cfg.Catalog); c != "" {
		args = append(args, "--catalog", c)
	}
	// No subcommand starts the interactive explorer.
	return exec.Command(exe, args...), nil
}

func (s *Server) startPTYSession() (*os.File, *exec.Cmd, error) {
	cmd, err := s.sessionCommand()
	if err != nil {
		return nil, nil, err
	}
	cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"COLORTERM=truecolor",
	)
	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Cols: 120, Rows: 40})
	if err != nil {
		return nil, nil, err
	}
	return ptmx, cmd, nil
}

func isClosedErr(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed) {
		return true
	}
	return websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway)
}

func pumpPTYToWS(ctx context.Context, ptmx *os.File, conn *websocket.Conn) error {
	buf := make([]byte, 32*1024)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := ptmx.Read(buf)
		if n > 0 {
			_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if werr := conn.WriteMessage(websocket.BinaryMessage, buf[:n]); werr != nil {
				return werr
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				// The explorer exited; end the session.
				return io.EOF
			}
			return err
		}
	}
}

// maxTermDim bounds client-sent sizes to what a pty winsize can hold.
const maxTermDim = math.MaxUint16

func clampDim(n int) uint16 {
	switch {
	case n < 1:
		return 1
	case n > maxTermDim:
		return maxTermDim
	default:
		return uint16(n)
	}
}

func (m wsMsg) winsize() *pty.Winsize {
	return &pty.Winsize{Cols: clampDim(m.Cols), Rows: clampDim(m.Rows)}
}

func pumpWSToPTY(ctx context.Context, conn *websocket.Conn, ptmx *os.File) error {
	resize, cancelResize := debounce.Func(resizeWait, func(m wsMsg) {
		_ = pty.Setsize(ptmx, m.winsize())
	})
	defer cancelResize()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		mt, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if len(data) == 0 {
			continue
		}

		// Control messages are JSON text frames; keystrokes are anything else.
		if mt == websocket.TextMessage && data[0] == '{' {
			var m wsMsg
			if jerr := json.Unmarshal(data, &m); jerr == nil && strings.EqualFold(strings.TrimSpace(m.Type), "resize") {
				if m.Cols > 0 && m.Rows > 0 {
					resize(m)
				}
				continue
			}
		}
		if _, err := ptmx.Write(data); err != nil {
			return err
		}
	}
}
