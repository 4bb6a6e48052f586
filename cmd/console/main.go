// Command console is a terminal demonstration of the admin-console client
// kit: the session profile, the dashboard data source, the per-entity REST
// services, the debounced query controller, and the sale cart.
//
// With API_BASE_URL unset it runs fully offline against the fixture data
// source, which is how the UI team works on views before the backend is up.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/frogshopping/PharmaCare-POS-sub001/internal/cart"
	"github.com/frogshopping/PharmaCare-POS-sub001/internal/client"
	"github.com/frogshopping/PharmaCare-POS-sub001/internal/config"
	"github.com/frogshopping/PharmaCare-POS-sub001/internal/dto"
	"github.com/frogshopping/PharmaCare-POS-sub001/internal/infra"
	"github.com/frogshopping/PharmaCare-POS-sub001/internal/query"
	"github.com/frogshopping/PharmaCare-POS-sub001/internal/session"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	profile := session.FromConfig(cfg)
	fmt.Printf("Signed in as %s (%s)\n\n", profile.Name, profile.Role)

	ctx := context.Background()

	// ── Dashboard ────────────────────────────────────────────────────────────
	// Offline demo keeps a small simulated latency so the loading state shows.
	var source client.DashboardSource = client.FixtureDashboardSource{Latency: 50 * time.Millisecond}
	if cfg.APIBaseURL != "" {
		source = client.NewDashboardSource(cfg.APIBaseURL + "/api")
	}
	if stats, err := source.Stats(ctx); err != nil {
		log.Warn().Err(err).Msg("dashboard unavailable")
	} else {
		fmt.Println("Dashboard")
		fmt.Printf("  medicines: %d   customers: %d   suppliers: %d\n",
			stats.TotalMedicines, stats.TotalCustomers, stats.TotalSuppliers)
		fmt.Printf("  low stock: %d   today: %d sales / $%s\n\n",
			stats.LowStockCount, stats.TodaySaleCount, stats.TodayRevenue.StringFixed(2))
	}

	// ── Medicines list view: debounced search over the REST service ─────────
	if cfg.APIBaseURL != "" {
		// Fast-fail repeated calls against a downed backend instead of
		// burning the full deadline on each keystroke's fetch.
		breaker := infra.NewCircuitBreaker(infra.CircuitBreakerConfig{
			FailureThreshold: 3,
			SuccessThreshold: 1,
			OpenTimeout:      15 * time.Second,
		})
		medicinesSvc := client.New[dto.MedicineResponse](cfg.APIBaseURL+"/api", "medicines", client.WithBreaker(breaker))

		notices := query.NewNotifications()
		ctrl := query.NewController(func(ctx context.Context, p query.Params) (query.Page[dto.MedicineResponse], error) {
			page, err := medicinesSvc.GetAll(ctx, p.Page, p.Limit, p.Search)
			if err != nil {
				return query.Page[dto.MedicineResponse]{}, err
			}
			return query.Page[dto.MedicineResponse]{Items: page.Data, Pagination: page.Pagination}, nil
		}, notices, query.Config{Debounce: time.Duration(cfg.DebounceMillis) * time.Millisecond})

		// Simulated typing: only the final term reaches the backend.
		for _, term := range []string{"p", "pa", "par", "para"} {
			ctrl.SetSearchTerm(term)
			time.Sleep(80 * time.Millisecond)
		}
		time.Sleep(time.Duration(cfg.DebounceMillis) * time.Millisecond)
		ctrl.Wait()

		snap := ctrl.Snapshot()
		fmt.Printf("Medicines matching %q — page %d/%d (%d total)\n",
			snap.Params.Search, snap.Pagination.CurrentPage, snap.Pagination.TotalPages, snap.Pagination.TotalItems)
		for _, m := range snap.Items {
			fmt.Printf("  %-30s $%s  stock %d\n", m.Name, m.UnitPrice.StringFixed(2), m.Stock)
		}
		for _, n := range notices.Drain() {
			fmt.Printf("  [%s] %s\n", n.Level, n.Message)
		}
		fmt.Println()
	}

	// ── Cart walkthrough ─────────────────────────────────────────────────────
	paracetamol := cart.Product{
		ID:        uuid.New(),
		Name:      "Paracetamol 500mg",
		UnitPrice: decimal.RequireFromString("10.00"),
		VATPct:    decimal.RequireFromString("15"),
		Stock:     12,
		Unit:      cart.UnitPiece,
	}
	syrup := cart.Product{
		ID:        uuid.New(),
		Name:      "Cough Syrup 120ml",
		UnitPrice: decimal.RequireFromString("4.50"),
		VATPct:    decimal.Zero,
		Stock:     3,
		Unit:      cart.UnitPiece,
	}

	ct := cart.New()
	line := ct.AddItem(paracetamol)
	ct.UpdateQuantity(line.ID, 3)
	ct.AddItem(paracetamol) // merges: quantity becomes 4
	ct.UpdateQuantity(ct.AddItem(syrup).ID, 10) // clamped to the 3 in stock

	fmt.Println("Cart")
	for _, l := range ct.Lines() {
		fmt.Printf("  %-22s x%-3d @ $%s (VAT %s%%) = $%s\n",
			l.Name, l.Quantity,
			l.UnitPrice.StringFixed(2), l.VATPct.StringFixed(0),
			l.Total.StringFixed(2))
	}
	fmt.Printf("  TOTAL: $%s\n", ct.Total().StringFixed(2))
}
