package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/shape-fusion/internal/core"
	"github.com/vovakirdan/shape-fusion/internal/storage"
)

// SSHServerConfig configures the SSH host. Each connection gets its own menu
// and games; all of them share one round store.
type SSHServerConfig struct {
	Address     string        // host:port, e.g. ":23234"
	HostKeyPath string        // Created on first start; empty means ~/.fusion/host_key
	DBPath      string        // Rounds database shared by all sessions
	IdleTimeout time.Duration // Idle connections are dropped after this
	TickRate    int           // Simulation rate of every session
	Logger      *log.Logger   // Nil logs to stderr
}

// DefaultSSHServerConfig returns the settings used by `fusion serve`.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.fusion/rounds.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    30,
	}
}

// shutdownTimeout bounds how long Serve waits for sessions to end.
const shutdownTimeout = 10 * time.Second

// SSHServer serves Shape Fusion sessions over SSH.
type SSHServer struct {
	config   SSHServerConfig
	server   *ssh.Server
	store    *storage.Store // Nil when the database could not be opened
	logger   *log.Logger
	sessions atomic.Int64
}

// NewSSHServer prepares the server. A database that cannot be opened only
// disables round history; a host key that cannot be placed is an error.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "fusion-ssh"})
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = DefaultSSHServerConfig().TickRate
	}

	keyPath, err := hostKeyPath(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	srv := &SSHServer{config: cfg, logger: cfg.Logger}
	if srv.store, err = storage.Open(cfg.DBPath); err != nil {
		srv.logger.Warn("could not open rounds database, history is disabled", "path", cfg.DBPath, "error", err)
		srv.store = nil
	}

	srv.server, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		// Last middleware runs first
		wish.WithMiddleware(
			bubbletea.Middleware(srv.newSession),
			srv.trackSession,
		),
	)
	if err != nil {
		if srv.store != nil {
			srv.store.Close()
		}
		return nil, fmt.Errorf("create ssh server: %w", err)
	}
	return srv, nil
}

// hostKeyPath resolves the host key location and makes sure its directory exists.
func hostKeyPath(p string) (string, error) {
	if p == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("locate host key: %w", err)
		}
		p = filepath.Join(home, ".fusion", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		return "", fmt.Errorf("host key directory: %w", err)
	}
	return p, nil
}

// newSession builds the Bubble Tea program for one connection. Connections
// without a terminal are refused.
func (s *SSHServer) newSession(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("refusing session without a terminal", "user", sess.User())
		wish.Fatalln(sess, "Shape Fusion needs an interactive terminal, try: ssh -t")
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}
	return NewSessionModel(s.store, cfg, sess.User(), s.logger), []tea.ProgramOption{tea.WithAltScreen()}
}

// trackSession counts live sessions and logs each one's lifetime.
func (s *SSHServer) trackSession(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		l := s.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		l.Info("session started", "active", s.sessions.Add(1))
		defer func() {
			l.Info("session ended", "active", s.sessions.Add(-1), "duration", time.Since(start).Round(time.Second))
		}()
		next(sess)
	}
}

// ActiveSessions returns the number of connected sessions.
func (s *SSHServer) ActiveSessions() int64 {
	return s.sessions.Load()
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// Serve accepts connections until ctx is canceled or the listener fails. It
// then shuts down, waiting up to shutdownTimeout for sessions, and closes the
// round store.
func (s *SSHServer) Serve(ctx context.Context) error {
	s.logger.Info("listening", "address", s.config.Address)

	listenErr := make(chan error, 1)
	go func() { listenErr <- s.server.ListenAndServe() }()

	var err error
	select {
	case err = <-listenErr:
		if errors.Is(err, ssh.ErrServerClosed) {
			err = nil
		} else {
			err = fmt.Errorf("ssh server: %w", err)
		}
	case <-ctx.Done():
		s.logger.Info("shutting down", "active", s.sessions.Load())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if shutErr := s.server.Shutdown(shutdownCtx); shutErr != nil && err == nil && !errors.Is(shutErr, ssh.ErrServerClosed) {
		err = fmt.Errorf("ssh shutdown: %w", shutErr)
	}

	if s.store != nil {
		if closeErr := s.store.Close(); closeErr != nil {
			s.logger.Warn("close rounds database", "error", closeErr)
		}
	}
	return err
}
