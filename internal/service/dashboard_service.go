package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/frogshopping/PharmaCare-POS-sub001/internal/dto"
	"github.com/frogshopping/PharmaCare-POS-sub001/internal/repository"
)

const (
	dashboardCacheKey = "cache:dashboard_stats"
	dashboardCacheTTL = 60 * time.Second
)

// DashboardService aggregates the headline numbers for the admin landing
// page. Counts are cached in Redis for a short TTL — the dashboard is polled
// by every open console and the numbers tolerate a minute of staleness.
type DashboardService interface {
	Stats(ctx context.Context) (*dto.DashboardStats, error)
}

type dashboardService struct {
	medicineRepo repository.MedicineRepository
	customerRepo repository.CustomerRepository
	supplierRepo repository.SupplierRepository
	saleRepo     repository.SaleRepository
	rdb          *redis.Client
}

func NewDashboardService(
	medicineRepo repository.MedicineRepository,
	customerRepo repository.CustomerRepository,
	supplierRepo repository.SupplierRepository,
	saleRepo repository.SaleRepository,
	rdb *redis.Client,
) DashboardService {
	return &dashboardService{
		medicineRepo: medicineRepo,
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
		saleRepo:     saleRepo,
		rdb:          rdb,
	}
}

func (s *dashboardService) Stats(ctx context.Context) (*dto.DashboardStats, error) {
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, dashboardCacheKey).Result(); err == nil {
			var stats dto.DashboardStats
			if err := json.Unmarshal([]byte(raw), &stats); err == nil {
				return &stats, nil
			}
		}
	}

	stats, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if raw, err := json.Marshal(stats); err == nil {
			if err := s.rdb.Set(ctx, dashboardCacheKey, raw, dashboardCacheTTL).Err(); err != nil {
				log.Warn().Err(err).Msg("dashboard: cache write failed")
			}
		}
	}
	return stats, nil
}

func (s *dashboardService) compute(ctx context.Context) (*dto.DashboardStats, error) {
	totalMedicines, err := s.medicineRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	totalCustomers, err := s.customerRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	totalSuppliers, err := s.supplierRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.medicineRepo.CountLowStock(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todaySales, err := s.saleRepo.CountSince(ctx, midnight)
	if err != nil {
		return nil, err
	}
	todayRevenue, err := s.saleRepo.RevenueSince(ctx, midnight)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardStats{
		TotalMedicines: totalMedicines,
		TotalCustomers: totalCustomers,
		TotalSuppliers: totalSuppliers,
		LowStockCount:  lowStock,
		TodaySaleCount: todaySales,
		TodayRevenue:   todayRevenue,
	}, nil
}
