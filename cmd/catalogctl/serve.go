// Serve command: run the HTTP API with a background status refresher.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wickers-data/catalog/internal/server"
	"github.com/wickers-data/catalog/pkg/publish"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog HTTP API",
	Long: `Serve runs the catalog HTTP API with a background refresher that
recomputes snapshot statuses on an interval, so scheduled snapshots
activate on time without a request having to trigger it.

Example:
  catalogctl serve
  catalogctl serve --addr :9090`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default: config server.addr or :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	configDir, err := resolveConfigDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, "serve:", err)
		os.Exit(exitSysError)
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "serve:", err)
		os.Exit(exitSysError)
	}

	addr := serveAddr
	if addr == "" {
		addr = cfg.GetString(cfgKeyServerAddr)
	}
	interval := cfg.GetDuration(cfgKeyRefreshInterval)
	if interval <= 0 {
		interval = publish.DefaultRefreshInterval
	}
	log := newLogger(cfg.GetString(cfgKeyLogLevel))

	backend, err := attachBackend()
	if err != nil {
		fmt.Fprintln(os.Stderr, "serve:", err)
		os.Exit(exitSysError)
	}
	defer backend.Detach()

	engine, err := loadEngine()
	if err != nil {
		return fmt.Errorf("load attribute engine: %w", err)
	}

	mgr := publish.NewManager(backend, log)
	srv := server.New(backend, engine, mgr, log)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	refresher := publish.NewRefresher(mgr, interval, log)
	go refresher.Run(ctx)

	log.Info().
		Str("addr", addr).
		Dur("refresh_interval", interval).
		Msg("catalog server starting")

	if err := srv.ListenAndServe(ctx, addr); err != nil {
		fmt.Fprintln(os.Stderr, "serve:", err)
		os.Exit(exitSysError)
	}
	return nil
}
