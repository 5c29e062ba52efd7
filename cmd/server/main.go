package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"francoggm/paygate-go-redis/internal/app/healthcheck"
	"francoggm/paygate-go-redis/internal/app/ledger"
	"francoggm/paygate-go-redis/internal/app/logging"
	"francoggm/paygate-go-redis/internal/app/payment"
	"francoggm/paygate-go-redis/internal/app/server"
	"francoggm/paygate-go-redis/internal/app/server/handlers"
	"francoggm/paygate-go-redis/internal/app/webhook"
	"francoggm/paygate-go-redis/internal/config"

	"github.com/spf13/pflag"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// run wires the service and serves until ctx is cancelled. Every failure
// after the ledger is opened returns through the deferred Close.
func run(ctx context.Context, args []string, stdout io.Writer) error {
	flags := pflag.NewFlagSet("paygate", pflag.ContinueOnError)
	configPath := flags.String("config", os.Getenv("PAYGATE_CONFIG"), "Path to a YAML config file")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, stdout)
	if err != nil {
		return err
	}

	store, err := ledger.Open(ctx, cfg.Ledger)
	if err != nil {
		return fmt.Errorf("open %s ledger: %w", cfg.Ledger.Backend, err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close ledger", "error", err)
		}
	}()

	// Services
	verifier, err := webhook.NewVerifier(cfg.Provider.WebhookSecrets, cfg.Provider.SignatureTolerance)
	if err != nil {
		return fmt.Errorf("build signature verifier: %w", err)
	}
	applier := webhook.NewApplier(verifier, store,
		webhook.WithLogger(logger.With("component", "webhook")),
		webhook.WithMetadataKey(cfg.Provider.MetadataKey),
	)

	paymentService, err := payment.NewPaymentService(store, cfg.Provider.PaymentLink, logger.With("component", "payment"))
	if err != nil {
		return fmt.Errorf("build payment service: %w", err)
	}

	healthService := healthcheck.NewHealthCheckService(store, cfg.App.HealthInterval, logger.With("component", "healthcheck"))
	healthService.Start(ctx)

	h := handlers.NewHandlers(cfg, applier, paymentService, healthService, logger.With("component", "http"))
	srv := server.NewServer(cfg, h, logger)

	logger.Info("paygate starting",
		"app", cfg.App.Name, "port", cfg.Server.Port, "ledger", cfg.Ledger.Backend,
		"secrets", len(cfg.Provider.WebhookSecrets), "instance_id", healthService.InstanceID())

	if err := srv.Run(ctx); err != nil {
		return err
	}

	logger.Info("paygate stopped")
	return nil
}
