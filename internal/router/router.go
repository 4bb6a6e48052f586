package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/frogshopping/PharmaCare-POS-sub001/internal/config"
	"github.com/frogshopping/PharmaCare-POS-sub001/internal/handler"
	"github.com/frogshopping/PharmaCare-POS-sub001/internal/middleware"
	"github.com/frogshopping/PharmaCare-POS-sub001/internal/repository"
	"github.com/frogshopping/PharmaCare-POS-sub001/internal/service"
	"github.com/frogshopping/PharmaCare-POS-sub001/internal/session"
	"github.com/frogshopping/PharmaCare-POS-sub001/internal/worker"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.Prometheus())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	medicineRepo := repository.NewMedicineRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	supplierRepo := repository.NewSupplierRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	medicineSvc := service.NewMedicineService(medicineRepo, movementRepo)
	categorySvc := service.NewCategoryService(categoryRepo)
	customerSvc := service.NewCustomerService(customerRepo)
	supplierSvc := service.NewSupplierService(supplierRepo)
	saleSvc := service.NewSaleService(saleRepo, medicineRepo, movementRepo, dispatcher)
	purchaseSvc := service.NewPurchaseService(purchaseRepo, medicineRepo, supplierRepo, movementRepo)
	dashboardSvc := service.NewDashboardService(medicineRepo, customerRepo, supplierRepo, saleRepo, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	profile := session.FromConfig(cfg)
	medicinesH := handler.NewMedicinesHandler(medicineSvc)
	categoriesH := handler.NewCategoriesHandler(categorySvc)
	customersH := handler.NewCustomersHandler(customerSvc)
	suppliersH := handler.NewSuppliersHandler(supplierSvc)
	salesH := handler.NewSalesHandler(saleSvc, profile)
	purchasesH := handler.NewPurchasesHandler(purchaseSvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(db, rdb))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/dashboard", dashboardH.Stats)

		medicines := api.Group("/medicines")
		{
			medicines.POST("", medicinesH.Create)
			medicines.GET("", medicinesH.List)
			medicines.GET("/:id", medicinesH.GetByID)
			medicines.GET("/barcode/:barcode", medicinesH.GetByBarcode)
			medicines.PUT("/:id", medicinesH.Update)
			medicines.PATCH("/:id/stock", medicinesH.AdjustStock)
			medicines.DELETE("/:id", medicinesH.Deactivate)
		}

		categories := api.Group("/categories")
		{
			categories.POST("", categoriesH.Create)
			categories.GET("", categoriesH.List)
			categories.PUT("/:id", categoriesH.Update)
			categories.DELETE("/:id", categoriesH.Deactivate)
		}

		customers := api.Group("/customers")
		{
			customers.POST("", customersH.Create)
			customers.GET("", customersH.List)
			customers.GET("/:id", customersH.GetByID)
			customers.PUT("/:id", customersH.Update)
			customers.DELETE("/:id", customersH.Deactivate)
		}

		suppliers := api.Group("/suppliers")
		{
			suppliers.POST("", suppliersH.Create)
			suppliers.GET("", suppliersH.List)
			suppliers.GET("/:id", suppliersH.GetByID)
			suppliers.PUT("/:id", suppliersH.Update)
			suppliers.DELETE("/:id", suppliersH.Deactivate)
		}

		sales := api.Group("/sales")
		{
			sales.POST("", salesH.Register)
			sales.GET("", salesH.List)
			sales.GET("/report", salesH.Report)
			sales.GET("/:id", salesH.GetByID)
			sales.DELETE("/:id", salesH.Void)
		}

		purchases := api.Group("/purchases")
		{
			purchases.POST("", purchasesH.Receive)
			purchases.GET("", purchasesH.List)
			purchases.GET("/:id", purchasesH.GetByID)
		}
	}

	return r
}
