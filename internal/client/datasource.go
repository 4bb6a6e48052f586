package client

// datasource.go — explicit data-source strategy for the dashboard view.
// The real backend and the canned fixture implement the same interface and
// are selected once at composition time, not branched on a flag inside
// every call site.

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/frogshopping/PharmaCare-POS-sub001/internal/dto"
)

// DashboardSource yields the stats behind the dashboard cards.
type DashboardSource interface {
	Stats(ctx context.Context) (*dto.DashboardStats, error)
}

// NewDashboardSource selects the strategy: an empty base URL means no
// backend is configured and the fixture payload is served instead.
func NewDashboardSource(baseURL string) DashboardSource {
	if baseURL == "" {
		return FixtureDashboardSource{}
	}
	return &HTTPDashboardSource{
		base: baseURL,
		http: &http.Client{Timeout: DefaultTimeout},
	}
}

// HTTPDashboardSource fetches stats from GET {base}/dashboard.
type HTTPDashboardSource struct {
	base string
	http *http.Client
}

func (s *HTTPDashboardSource) Stats(ctx context.Context) (*dto.DashboardStats, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.base+"/dashboard", nil)
	if err != nil {
		return nil, fmt.Errorf("dashboard: create request: %w", err)
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dashboard: backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dashboard: backend returned %d", resp.StatusCode)
	}

	var env dto.Envelope[dto.DashboardStats]
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("dashboard: decode response: %w", err)
	}
	if !env.Success || env.Data == nil {
		return nil, fmt.Errorf("dashboard: %s", env.Error)
	}
	return env.Data, nil
}

// FixtureDashboardSource returns a fixed payload for demos and UI work
// without a running backend. Latency, when set, simulates a network pause so
// loading states stay visible; it defaults to none.
type FixtureDashboardSource struct {
	Latency time.Duration
}

func (f FixtureDashboardSource) Stats(_ context.Context) (*dto.DashboardStats, error) {
	if f.Latency > 0 {
		time.Sleep(f.Latency)
	}
	return &dto.DashboardStats{
		TotalMedicines: 248,
		TotalCustomers: 312,
		TotalSuppliers: 18,
		LowStockCount:  7,
		TodaySaleCount: 42,
		TodayRevenue:   decimal.NewFromFloat(15230.75),
	}, nil
}
