package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is a finalized checkout. Totals are derived server-side from the
// items; each line total follows qty × unit_price × (1 + vat/100).
type Sale struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InvoiceNumber int        `gorm:"uniqueIndex;not null"`
	CustomerID    *uuid.UUID `gorm:"type:uuid;index"`
	// CashierName comes from the injected session profile, never a literal.
	CashierName string          `gorm:"not null"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	VATTotal    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Total       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status      string          `gorm:"not null;default:'completed'"` // completed | voided
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Customer *Customer  `gorm:"foreignKey:CustomerID"`
	Items    []SaleItem `gorm:"foreignKey:SaleID"`
}

// SaleItem is one cart line frozen at checkout time.
type SaleItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID     uuid.UUID       `gorm:"type:uuid;index;not null"`
	MedicineID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Quantity   int             `gorm:"not null"`
	Unit       string          `gorm:"not null;default:'piece'"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	VATPct     decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	LineTotal  decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Medicine *Medicine `gorm:"foreignKey:MedicineID"`
}
