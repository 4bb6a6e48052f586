package dto

import (
	"github.com/shopspring/decimal"
)

// DashboardStats is the payload behind GET /api/dashboard. The fixture data
// source returns a canned instance of the same shape when no backend is
// configured.
type DashboardStats struct {
	TotalMedicines int64           `json:"total_medicines"`
	TotalCustomers int64           `json:"total_customers"`
	TotalSuppliers int64           `json:"total_suppliers"`
	LowStockCount  int64           `json:"low_stock_count"`
	TodaySaleCount int64           `json:"today_sale_count"`
	TodayRevenue   decimal.Decimal `json:"today_revenue"`
}
