package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"spendlog/internal/amqp"
	"spendlog/internal/annotate"
	"spendlog/internal/annotate/heuristic"
	"spendlog/internal/annotate/openai"
	"spendlog/internal/annotate/prose"
	"spendlog/internal/backend"
	"spendlog/internal/cli"
	"spendlog/internal/config"
	apphttp "spendlog/internal/http"
	"spendlog/internal/interpret"
	"spendlog/internal/ledger"
	applog "spendlog/internal/log"
	"spendlog/internal/services"
)

func main() {
	logger := cli.SetupLogger()
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Ledger store per configured backend
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", "error", err)
		os.Exit(1)
	}
	result, err := backend.NewFactory(logger.WithComponent(applog.ComponentBackend).Logger).CreateStore(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize ledger store", "error", err)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Store cleanup error", "error", err)
			}
		}()
	}

	lg := ledger.New(result.Store, nil)

	ann, ready := buildAnnotator(cfg, logger)
	interp := interpret.New(ann)

	// Event publication is optional; a broker outage never blocks startup.
	var publisher services.EventPublisher
	if cfg.AMQPURL != "" {
		amqpLog := logger.WithComponent(applog.ComponentAMQP)
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			amqpLog.Warn("Failed to initialize AMQP client, continuing without events", "error", err)
		} else {
			amqpLog.Info("Initialized AMQP client",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
			publisher = client
		}
	}

	service := services.NewExpenseService(lg, interp, publisher)
	defer func() {
		if err := service.Close(); err != nil {
			logger.Error("Service close error", "error", err)
		}
	}()

	srv := apphttp.NewServer(":"+cfg.Port, service, ready)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting spendlog server",
			applog.FieldOperation, applog.OpStartup,
			"port", cfg.Port,
			"backend", cfg.DataBackend,
			"annotator", cfg.Annotator)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutting down", applog.FieldOperation, applog.OpShutdown)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}

// buildAnnotator selects the configured annotator. The prose model loads in
// the background; requests block on the readiness gate until it is warm.
func buildAnnotator(cfg *config.Config, logger *applog.Logger) (annotate.Annotator, func() bool) {
	switch cfg.Annotator {
	case "prose":
		warmed := annotate.Warm(func() (annotate.Annotator, error) {
			return prose.New()
		})
		return warmed, warmed.Ready
	case "openai":
		ann, err := openai.New(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		if err != nil {
			logger.Error("Failed to initialize OpenAI annotator", "error", err)
			os.Exit(1)
		}
		return ann, nil
	default:
		return heuristic.New(), nil
	}
}
