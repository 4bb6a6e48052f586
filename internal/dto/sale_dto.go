package dto

import (
	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// SaleItemRequest is one cart line submitted at checkout. Unit price and VAT
// are re-resolved server-side from the catalog; the submitted unit price is
// honored when the cashier overrode it (never below zero).
type SaleItemRequest struct {
	MedicineID string           `json:"medicine_id" validate:"required,uuid"`
	Quantity   int              `json:"quantity"    validate:"required,min=1"`
	Unit       string           `json:"unit"        validate:"omitempty,oneof=piece box strip"`
	UnitPrice  *decimal.Decimal `json:"unit_price"`
}

type RegisterSaleRequest struct {
	CustomerID    *string           `json:"customer_id"    validate:"omitempty,uuid"`
	CustomerEmail *string           `json:"customer_email" validate:"omitempty,email"`
	Items         []SaleItemRequest `json:"items"          validate:"required,min=1,dive"`
}

type VoidSaleRequest struct {
	Reason string `json:"reason" validate:"required,min=3"`
}

// ─── Filter ──────────────────────────────────────────────────────────────────

type SaleFilter struct {
	ListFilter
	Status   string `form:"status"`
	DateFrom string `form:"date_from"` // YYYY-MM-DD
	DateTo   string `form:"date_to"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SaleItemResponse struct {
	MedicineID string          `json:"medicine_id"`
	Medicine   string          `json:"medicine"`
	Quantity   int             `json:"quantity"`
	Unit       string          `json:"unit"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	VATPct     decimal.Decimal `json:"vat_pct"`
	LineTotal  decimal.Decimal `json:"line_total"`
}

type SaleResponse struct {
	ID            string             `json:"id"`
	InvoiceNumber int                `json:"invoice_number"`
	CustomerID    *string            `json:"customer_id"`
	CashierName   string             `json:"cashier_name"`
	Items         []SaleItemResponse `json:"items"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	VATTotal      decimal.Decimal    `json:"vat_total"`
	Total         decimal.Decimal    `json:"total"`
	Status        string             `json:"status"`
	CreatedAt     string             `json:"created_at"`
}

// SalesReportResponse aggregates sales over a date range.
type SalesReportResponse struct {
	DateFrom   string          `json:"date_from"`
	DateTo     string          `json:"date_to"`
	SaleCount  int64           `json:"sale_count"`
	GrossTotal decimal.Decimal `json:"gross_total"`
	VATTotal   decimal.Decimal `json:"vat_total"`
}
