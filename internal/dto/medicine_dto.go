package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CreateMedicineRequest struct {
	Barcode     string          `json:"barcode"      validate:"required,min=8,max=18"`
	Name        string          `json:"name"         validate:"required,min=2,max=120"`
	GenericName *string         `json:"generic_name"`
	CategoryID  *string         `json:"category_id"  validate:"omitempty,uuid"`
	UnitPrice   decimal.Decimal `json:"unit_price"   validate:"required"`
	VATPct      decimal.Decimal `json:"vat_pct"      validate:"min=0"`
	Stock       int             `json:"stock"        validate:"min=0"`
	MinStock    int             `json:"min_stock"    validate:"min=0"`
	Unit        string          `json:"unit"         validate:"omitempty,oneof=piece box strip"`
	SupplierID  *string         `json:"supplier_id"  validate:"omitempty,uuid"`
	ExpiryDate  *time.Time      `json:"expiry_date"`
}

type UpdateMedicineRequest struct {
	Name        *string          `json:"name"         validate:"omitempty,min=2,max=120"`
	GenericName *string          `json:"generic_name"`
	CategoryID  *string          `json:"category_id"  validate:"omitempty,uuid"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	VATPct      *decimal.Decimal `json:"vat_pct"`
	MinStock    *int             `json:"min_stock"    validate:"omitempty,min=0"`
	Unit        *string          `json:"unit"         validate:"omitempty,oneof=piece box strip"`
	SupplierID  *string          `json:"supplier_id"  validate:"omitempty,uuid"`
	ExpiryDate  *time.Time       `json:"expiry_date"`
}

type AdjustStockRequest struct {
	Delta  int    `json:"delta"  validate:"required"`
	Reason string `json:"reason" validate:"required,min=3"`
}

// ─── Filter ──────────────────────────────────────────────────────────────────

type MedicineFilter struct {
	ListFilter
	Barcode    string `form:"barcode"`
	CategoryID string `form:"category_id"`
	SupplierID string `form:"supplier_id"`
	Active     string `form:"active"` // "false" = inactive, "all" = everything, default active only
	LowStock   bool   `form:"low_stock"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type MedicineResponse struct {
	ID          string          `json:"id"`
	Barcode     string          `json:"barcode"`
	Name        string          `json:"name"`
	GenericName *string         `json:"generic_name"`
	CategoryID  *string         `json:"category_id"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	VATPct      decimal.Decimal `json:"vat_pct"`
	Stock       int             `json:"stock"`
	MinStock    int             `json:"min_stock"`
	Unit        string          `json:"unit"`
	SupplierID  *string         `json:"supplier_id"`
	ExpiryDate  *time.Time      `json:"expiry_date"`
	Active      bool            `json:"active"`
}
