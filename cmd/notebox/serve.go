package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/aretw0/notebox"
	"github.com/aretw0/notebox/internal/config"
	"github.com/aretw0/notebox/internal/platform"
	noteslifecycle "github.com/aretw0/notebox/pkg/adapters/lifecycle"
	"github.com/aretw0/notebox/pkg/adapters/memory"
	"github.com/aretw0/notebox/pkg/auth"
	"github.com/aretw0/notebox/pkg/core"
	"github.com/aretw0/notebox/pkg/transport/httpapi"
)

var (
	configPath  string
	auditLog    bool
	auditEvents string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the notebox HTTP server",
	Long: `Serve the note operations over HTTP until SIGINT or SIGTERM.

The config file is taken from --config, else the nearest notebox.yaml found
walking up from the working directory, else built-in defaults. NOTEBOX_*
environment variables override the file. Log level changes in the file are
applied without a restart.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fs := afero.NewOsFs()
		cfg, path, err := loadConfig(fs)
		if err != nil {
			fatal("Failed to load config", err)
		}

		applyLogLevel(cfg)
		logger := newLogger(os.Stderr, cfg.Log.Format, logLevel)
		slog.SetDefault(logger)

		authn, err := newAuthenticator(cfg.Auth)
		if err != nil {
			fatal("Failed to create authenticator", err)
		}

		store := memory.NewStore(memory.Config{
			Logger:      logger,
			EventBuffer: cfg.Events.Buffer,
		})
		service := notebox.New(
			notebox.WithLogger(logger),
			notebox.WithStore(store),
		)

		server := httpapi.New(service, httpapi.Config{
			Logger:            logger,
			Authenticator:     authn,
			CORSOrigins:       cfg.Server.CORSOrigins,
			Mode:              cfg.Server.Mode,
			Version:           strings.TrimSpace(notebox.Version),
			ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
			ExposeState:       cfg.Server.ExposeState,
		})

		if cfg.Auth.Mode == config.AuthHeader && !loopbackAddr(cfg.Server.Addr) {
			logger.Warn("header auth trusts any caller; listening beyond loopback lets every client act as any principal",
				"addr", cfg.Server.Addr, "header", cfg.Auth.Header)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if path != "" {
			watcher := config.NewWatcher(fs, path, logger, func(next *config.Config) {
				applyLogLevel(next)
				logger.Info("log level applied", "level", logLevel.Level())
			})
			if err := watcher.Start(ctx); err != nil {
				logger.Warn("config reload disabled", "error", err)
			}
		}

		if auditLog {
			types, err := noteslifecycle.ParseEventTypes(auditEvents)
			if err != nil {
				fatal("Invalid --audit-events", err)
			}
			if err := startAudit(ctx, store, logger, types...); err != nil {
				fatal("Failed to start audit log", err)
			}
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info("starting notebox", "addr", cfg.Server.Addr, "auth", cfg.Auth.Mode, "config", path)
			errCh <- server.Start(cfg.Server.Addr)
		}()

		select {
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				fatal("Server failed", err)
			}
			return
		case <-ctx.Done():
		}

		logger.Info("shutting down", "timeout", cfg.Server.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			fatal("Shutdown failed", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&configPath, "config", "", "Path to the config file")
	serveCmd.Flags().BoolVar(&auditLog, "audit", false, "Log every change of every principal")
	serveCmd.Flags().StringVar(&auditEvents, "audit-events", "", "Comma-separated event types to audit (create,modify,delete); empty for all")
}

// loadConfig resolves the config file and loads it. The returned path is
// empty when only defaults and the environment were used.
func loadConfig(fs afero.Fs) (*config.Config, string, error) {
	path := configPath
	if path == "" {
		found, err := platform.FindConfig(fs, ".")
		switch {
		case err == nil:
			path = found
		case !errors.Is(err, platform.ErrConfigNotFound):
			return nil, "", err
		}
	}
	cfg, err := config.Load(fs, path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// loopbackAddr reports whether addr only accepts local connections. An empty
// host (":8080") listens on every interface.
func loopbackAddr(addr string) bool {
	host, _, err := net.SplitHostPort(addr)
	if err != nil || host == "" {
		return false
	}
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func applyLogLevel(cfg *config.Config) {
	if verbose {
		logLevel.Set(slog.LevelDebug)
		return
	}
	// Validate already rejected unknown levels.
	level, _ := cfg.Log.SlogLevel()
	logLevel.Set(level)
}

func newAuthenticator(cfg config.AuthConfig) (auth.Authenticator, error) {
	switch cfg.Mode {
	case config.AuthHeader:
		return auth.HeaderAuthenticator{Header: cfg.Header}, nil
	case config.AuthJWT:
		return auth.NewJWTAuthenticator(cfg.JWTSecret, cfg.Issuer)
	default:
		return nil, fmt.Errorf("unknown auth mode %q", cfg.Mode)
	}
}

// startAudit logs change events of the given types (all when none) through a
// lifecycle source until ctx ends.
func startAudit(ctx context.Context, store *memory.Store, logger *slog.Logger, types ...core.EventType) error {
	events, err := store.WatchAll(ctx)
	if err != nil {
		return err
	}
	source := noteslifecycle.NewSource(events, noteslifecycle.WithTypes(types...))
	if err := source.Start(ctx); err != nil {
		return err
	}
	go func() {
		for event := range source.Events() {
			logger.Info("audit", "event", event.String())
		}
	}()
	return nil
}
