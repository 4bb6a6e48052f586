package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/frogshopping/PharmaCare-POS-sub001/internal/config"
	"github.com/frogshopping/PharmaCare-POS-sub001/internal/infra"
	"github.com/frogshopping/PharmaCare-POS-sub001/internal/middleware"
	"github.com/frogshopping/PharmaCare-POS-sub001/internal/repository"
	"github.com/frogshopping/PharmaCare-POS-sub001/internal/router"
	"github.com/frogshopping/PharmaCare-POS-sub001/internal/worker"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	middleware.InitMetrics()

	// Start goroutine worker pool for async tasks (receipt PDFs, email).
	// Worker handlers are wired here (composition root) so that the pool
	// has full access to all infrastructure dependencies.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := infra.NewMailer(cfg)
	dispatcher := worker.NewDispatcher(rdb)
	saleRepo := repository.NewSaleRepository(db)
	medicineRepo := repository.NewMedicineRepository(db)

	handlers := worker.Handlers{
		Receipt: worker.NewReceiptWorker(saleRepo, dispatcher, rdb, cfg.PDFStoragePath, cfg.PharmacyName),
		Email:   worker.NewEmailWorker(mailer, rdb),
	}
	worker.StartWorkerPool(ctx, rdb, cfg.WorkerPoolSize, handlers)

	worker.StartLowStockCron(ctx, worker.LowStockCronConfig{
		MedicineRepo: medicineRepo,
		Mailer:       mailer,
		RDB:          rdb,
		AlertEmail:   cfg.AlertEmail,
	})

	r := router.New(cfg, db, rdb, dispatcher)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("PharmaCare backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
