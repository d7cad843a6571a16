package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/storefront/internal/config"
	"github.com/deppfellow/storefront/internal/handler"
	"github.com/deppfellow/storefront/internal/lib/email"
	"github.com/deppfellow/storefront/internal/lib/monitor"
	"github.com/deppfellow/storefront/internal/lib/utils"
	"github.com/deppfellow/storefront/internal/logger"
	"github.com/deppfellow/storefront/internal/repository"
	"github.com/deppfellow/storefront/internal/router"
	"github.com/deppfellow/storefront/internal/server"
	"github.com/deppfellow/storefront/internal/service"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	serve := newServeCommand()

	root := &cobra.Command{
		Use:          "storefront",
		Short:        "Storefront catalogue and site content API",
		SilenceUsage: true,
		RunE:         serve.RunE,
	}

	root.AddCommand(serve, newCheckConfigCommand(), newPreviewEmailCommand())

	return root
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API until SIGINT or SIGTERM",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	defer loggerService.Shutdown()

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize server")
		return err
	}

	repos := repository.NewRepositories(srv)

	services, err := service.NewServices(srv, repos)
	if err != nil {
		log.Error().Err(err).Msg("could not create services")
		return err
	}

	handlers := handler.NewHandlers(srv, services)
	srv.SetupHTTPServer(router.NewRouter(srv, handlers))

	var healthMonitor *monitor.Monitor
	if cfg.Observability.HealthChecks.Enabled {
		checks := monitor.ServerChecks(srv, cfg.Observability.EnabledChecks())
		healthMonitor, err = monitor.New(cfg.Observability.HealthChecks, checks, &log, loggerService.GetApplication())
		if err != nil {
			log.Error().Err(err).Msg("could not create health monitor")
			return err
		}
		healthMonitor.Start()
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped unexpectedly")
			return err
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if healthMonitor != nil {
		healthMonitor.Stop(shutdownCtx)
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return err
	}

	log.Info().Msg("server exited properly")
	return nil
}

// effectiveConfig is what check-config prints. Secrets are masked.
type effectiveConfig struct {
	Env            string   `json:"env"`
	Port           string   `json:"port"`
	Database       string   `json:"database"`
	MaxOpenConns   int      `json:"max_open_conns"`
	Redis          string   `json:"redis"`
	ResendAPIKey   string   `json:"resend_api_key"`
	NotifyEmail    string   `json:"notify_email"`
	Notifications  bool     `json:"notifications"`
	LogLevel       string   `json:"log_level"`
	NewRelic       bool     `json:"new_relic"`
	HealthChecks   []string `json:"health_checks"`
	HealthInterval string   `json:"health_interval"`
}

func newCheckConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check-config",
		Short: "Validate the environment and print the effective settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			return utils.PrintJSON(cmd.OutOrStdout(), effectiveConfig{
				Env:            cfg.Primary.Env,
				Port:           cfg.Server.Port,
				Database:       utils.MaskDSN(cfg.Database.DSN()),
				MaxOpenConns:   cfg.Database.MaxOpenConns,
				Redis:          cfg.Redis.Address,
				ResendAPIKey:   utils.Mask(cfg.Integration.ResendAPIKey),
				NotifyEmail:    cfg.Integration.NotifyEmail,
				Notifications:  cfg.Redis.Enabled() && cfg.Integration.NotificationsEnabled(),
				LogLevel:       cfg.Observability.GetLogLevel(),
				NewRelic:       cfg.Observability.NewRelic.LicenseKey != "",
				HealthChecks:   cfg.Observability.EnabledChecks(),
				HealthInterval: cfg.Observability.HealthChecks.Interval.String(),
			})
		},
	}
}

func newPreviewEmailCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "preview-email [template]",
		Short: "Render an email template with sample data to stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := email.TemplateOrderCreated
			if len(args) == 1 {
				name = email.Template(args[0])
			}

			if _, ok := email.PreviewData[name]; !ok {
				return fmt.Errorf("unknown email template %q", name)
			}

			html, err := email.Preview(name)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), html)
			return err
		},
	}
}
