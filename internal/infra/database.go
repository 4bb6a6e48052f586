package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/frogshopping/PharmaCare-POS-sub001/internal/model"
)

// NewDatabase establishes a GORM connection backed by pgx and runs
// AutoMigrate for all entities.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return db, nil
}

// RunMigrations applies the schema. Also used by integration tests against
// a throwaway database.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Category{},
		&model.Supplier{},
		&model.Customer{},
		&model.Medicine{},
		&model.Sale{},
		&model.SaleItem{},
		&model.Purchase{},
		&model.PurchaseItem{},
		&model.StockMovement{},
	)
}
