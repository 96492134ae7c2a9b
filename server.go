package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/gorilla/websocket"
	sshproxy "github.com/imjasonh/ssh-proxy"
)

const shutdownTimeout = 30 * time.Second

func newSSHServer(cfg Config, hostKey ssh.Option, sessions *SessionManager, logger *log.Logger) (*ssh.Server, error) {
	s, err := wish.NewServer(
		wish.WithAddress(fmt.Sprintf(":%d", cfg.SSHPort)),
		hostKey,
		wish.WithMiddleware(
			bubbletea.Middleware(sessionHandler(cfg, sessions, logger)),
			logging.MiddlewareWithLogger(logger),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create SSH server: %w", err)
	}
	return s, nil
}

// sessionHandler gives every SSH connection its own game.
func sessionHandler(cfg Config, sessions *SessionManager, logger *log.Logger) bubbletea.Handler {
	return func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
		sess := sessions.Add(s.User(), cfg.Human)

		// Handle cleanup on session end
		go func() {
			<-s.Context().Done()
			sessions.Remove(sess.ID)
		}()

		m := newModel(cfg, s.User(), logger.With("session", sess.ID))
		m.sessionID, m.sessions = sess.ID, sessions
		return m, []tea.ProgramOption{tea.WithAltScreen()}
	}
}

// newProxyHandler bridges browser WebSocket connections to the local SSH
// server.
func newProxyHandler(sshPort int) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ssh", sshproxy.ProxyWebSocketToSSH(fmt.Sprintf(":%d", sshPort), websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true // Allow connections from any origin for now
		},
	}))
	return mux
}

// serve runs the SSH server, and the WebSocket proxy when cfg.HTTPPort is
// set, until ctx is done or one of them fails.
func serve(ctx context.Context, cfg Config, s *ssh.Server, logger *log.Logger) error {
	errc := make(chan error, 2)

	go func() {
		logger.Info("starting SSH chess server", "addr", s.Addr)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- fmt.Errorf("SSH server: %w", err)
		}
	}()

	var hs *http.Server
	if cfg.HTTPPort != "" {
		hs = &http.Server{
			Addr:              ":" + cfg.HTTPPort,
			Handler:           newProxyHandler(cfg.SSHPort),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			logger.Info("starting WebSocket to SSH proxy", "addr", hs.Addr)
			if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errc <- fmt.Errorf("HTTP server: %w", err)
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errc:
	}
	logger.Info("stopping servers")

	tctx, tcancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer tcancel()
	if hs != nil {
		if err := hs.Shutdown(tctx); err != nil {
			runErr = errors.Join(runErr, fmt.Errorf("HTTP shutdown: %w", err))
		}
	}
	if err := s.Shutdown(tctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		runErr = errors.Join(runErr, fmt.Errorf("SSH shutdown: %w", err))
	}
	return runErr
}
