package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/shape-fusion/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host Shape Fusion over SSH",
	Long: `Host Shape Fusion for anyone with an SSH client.

Every connection gets a private menu, level picker and game. All players
share the server's round history, so the records screen shows everyone.

The host key is read from --host-key, or created at ~/.fusion/host_key
on first start. SIGINT or SIGTERM stops accepting players and waits a
few seconds for open sessions to finish.

Examples:
  fusion serve
  fusion serve --ssh 0.0.0.0:2222 --db /var/lib/fusion/rounds.db
  fusion serve --host-key ./host_key --idle-timeout 10m

Players join with:
  ssh -p 23234 <host>`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	def := tui.DefaultSSHServerConfig()
	f := serveCmd.Flags()
	f.StringVar(&flagSSHAddr, "ssh", def.Address, "Listen address (host:port)")
	f.StringVar(&flagHostKey, "host-key", "", "Host key file, created when missing (default ~/.fusion/host_key)")
	f.DurationVar(&flagIdleTimeout, "idle-timeout", def.IdleTimeout, "Drop sessions idle for this long")
}

func runServe(cmd *cobra.Command, _ []string) error {
	if flagIdleTimeout <= 0 {
		return fmt.Errorf("--idle-timeout must be positive, got %s", flagIdleTimeout)
	}
	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: expandHome(flagHostKey),
		DBPath:      flagDBPath,
		IdleTimeout: flagIdleTimeout,
		TickRate:    flagFPS,
		Logger:      logger.WithPrefix("fusion-ssh"),
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Serving Shape Fusion on %s, idle timeout %s. Ctrl+C stops.\n", server.Addr(), cfg.IdleTimeout)
	if err := server.Serve(ctx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
