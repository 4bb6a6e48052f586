package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Purchase records a goods receipt from a supplier; receiving it
// increments stock for every item.
type Purchase struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SupplierID  uuid.UUID `gorm:"type:uuid;index;not null"`
	ReferenceNo string    `gorm:"index;not null"`
	Status      string    `gorm:"not null;default:'received'"`
	Total       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Supplier *Supplier      `gorm:"foreignKey:SupplierID"`
	Items    []PurchaseItem `gorm:"foreignKey:PurchaseID"`
}

type PurchaseItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PurchaseID uuid.UUID       `gorm:"type:uuid;index;not null"`
	MedicineID uuid.UUID       `gorm:"type:uuid;index;not null"`
	Quantity   int             `gorm:"not null"`
	UnitCost   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	LineTotal  decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Medicine *Medicine `gorm:"foreignKey:MedicineID"`
}
