package dto

import (
	"github.com/shopspring/decimal"
)

type PurchaseItemRequest struct {
	MedicineID string          `json:"medicine_id" validate:"required,uuid"`
	Quantity   int             `json:"quantity"    validate:"required,min=1"`
	UnitCost   decimal.Decimal `json:"unit_cost"   validate:"required"`
}

type ReceivePurchaseRequest struct {
	SupplierID  string                `json:"supplier_id"  validate:"required,uuid"`
	ReferenceNo string                `json:"reference_no" validate:"required,min=1,max=60"`
	Items       []PurchaseItemRequest `json:"items"        validate:"required,min=1,dive"`
}

type PurchaseFilter struct {
	ListFilter
	SupplierID string `form:"supplier_id"`
}

type PurchaseItemResponse struct {
	MedicineID string          `json:"medicine_id"`
	Medicine   string          `json:"medicine"`
	Quantity   int             `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	LineTotal  decimal.Decimal `json:"line_total"`
}

type PurchaseResponse struct {
	ID          string                 `json:"id"`
	SupplierID  string                 `json:"supplier_id"`
	ReferenceNo string                 `json:"reference_no"`
	Status      string                 `json:"status"`
	Items       []PurchaseItemResponse `json:"items"`
	Total       decimal.Decimal        `json:"total"`
	CreatedAt   string                 `json:"created_at"`
}
