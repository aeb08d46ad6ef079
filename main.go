package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Aashish23092/ocr-text-extraction/client"
	"github.com/Aashish23092/ocr-text-extraction/config"
	"github.com/Aashish23092/ocr-text-extraction/logger"
	"github.com/Aashish23092/ocr-text-extraction/server"
	"github.com/Aashish23092/ocr-text-extraction/service"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("Server failed", zap.Error(err))
	}
	log.Info("Server exited")
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Vision clients are built per request; only the settings are shared.
	factory := client.NewVisionFactory(client.VisionConfig{
		ProjectID: cfg.OCR.ProjectID,
		Endpoint:  cfg.OCR.Endpoint,
	}, log)
	extractionService := service.NewExtractionService(factory, cfg.OCR.Timeout, log)

	srv := server.New(cfg, extractionService, log)

	log.Info("Starting Text Extraction Service",
		zap.String("address", cfg.Addr()),
		zap.Int64("max_upload_bytes", cfg.Upload.MaxFileSize),
		zap.Duration("ocr_timeout", cfg.OCR.Timeout))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Run)
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down gracefully")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
