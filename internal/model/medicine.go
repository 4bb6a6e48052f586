package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Medicine is a sellable catalog item. Stock is tracked in the unit of
// measure stored in Unit (piece, box or strip).
type Medicine struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Barcode     string    `gorm:"uniqueIndex;not null"`
	Name        string    `gorm:"index;not null"`
	GenericName *string
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	// VATPct is the value-added tax percentage applied at sale time.
	VATPct     decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Stock      int             `gorm:"not null;default:0"`
	MinStock   int             `gorm:"not null;default:10"`
	Unit       string          `gorm:"not null;default:'piece'"`
	SupplierID *uuid.UUID      `gorm:"type:uuid;index"`
	ExpiryDate *time.Time
	Active     bool `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Category *Category `gorm:"foreignKey:CategoryID"`
	Supplier *Supplier `gorm:"foreignKey:SupplierID"`
}
