package worker

// lowstock_cron.go
// Background goroutine that periodically scans the catalog for medicines at
// or below their minimum stock level and emails a summary to the configured
// alert address. A Redis key suppresses duplicate alerts within the window.

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/frogshopping/PharmaCare-POS-sub001/internal/infra"
	"github.com/frogshopping/PharmaCare-POS-sub001/internal/repository"
)

const (
	lowStockTickInterval = 1 * time.Hour
	lowStockSuppressKey  = "alerts:lowstock:sent"
	lowStockSuppressTTL  = 24 * time.Hour
)

// LowStockCronConfig holds all dependencies for the alert goroutine.
type LowStockCronConfig struct {
	MedicineRepo repository.MedicineRepository
	Mailer       *infra.Mailer
	RDB          *redis.Client
	AlertEmail   string
}

// StartLowStockCron launches a background goroutine that ticks hourly and
// sends at most one low-stock summary per day. It respects the context for
// graceful shutdown.
func StartLowStockCron(ctx context.Context, cfg LowStockCronConfig) {
	if cfg.AlertEmail == "" {
		log.Info().Msg("lowstock_cron: no alert email configured — disabled")
		return
	}
	go func() {
		ticker := time.NewTicker(lowStockTickInterval)
		defer ticker.Stop()

		log.Info().Msg("lowstock_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("lowstock_cron: shutting down")
				return
			case <-ticker.C:
				checkLowStock(ctx, cfg)
			}
		}
	}()
}

func checkLowStock(ctx context.Context, cfg LowStockCronConfig) {
	// Suppression window: one alert per day is enough
	if cfg.RDB != nil {
		if n, err := cfg.RDB.Exists(ctx, lowStockSuppressKey).Result(); err == nil && n > 0 {
			return
		}
	}

	medicines, err := cfg.MedicineRepo.ListLowStock(ctx)
	if err != nil {
		log.Error().Err(err).Msg("lowstock_cron: query failed")
		return
	}
	if len(medicines) == 0 {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d medicine(s) at or below minimum stock:\n\n", len(medicines))
	for _, m := range medicines {
		fmt.Fprintf(&b, "  %-30s  stock %d / min %d\n", m.Name, m.Stock, m.MinStock)
	}

	subject := fmt.Sprintf("Low stock alert — %d medicine(s) need restocking", len(medicines))
	if err := cfg.Mailer.SendAlert(cfg.AlertEmail, subject, b.String()); err != nil {
		log.Error().Err(err).Msg("lowstock_cron: failed to send alert email")
		return
	}

	if cfg.RDB != nil {
		_ = cfg.RDB.Set(ctx, lowStockSuppressKey, time.Now().UTC().Format(time.RFC3339), lowStockSuppressTTL).Err()
	}
	log.Info().Int("count", len(medicines)).Str("to", cfg.AlertEmail).Msg("lowstock_cron: alert sent")
}
