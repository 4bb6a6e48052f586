package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/frogshopping/PharmaCare-POS-sub001/internal/dto"
	"github.com/frogshopping/PharmaCare-POS-sub001/internal/model"
)

type SaleRepository interface {
	Create(ctx context.Context, tx *gorm.DB, s *model.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error)
	UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string) error
	NextInvoiceNumber(ctx context.Context, tx *gorm.DB) (int, error)

	// Aggregates for the dashboard and the sales report
	CountSince(ctx context.Context, since time.Time) (int64, error)
	RevenueSince(ctx context.Context, since time.Time) (decimal.Decimal, error)
	Aggregate(ctx context.Context, from, to time.Time) (count int64, gross, vat decimal.Decimal, err error)

	DB() *gorm.DB // exposes the DB for transaction creation in the service layer
}

type saleRepo struct{ db *gorm.DB }

func NewSaleRepository(db *gorm.DB) SaleRepository { return &saleRepo{db: db} }

func (r *saleRepo) DB() *gorm.DB { return r.db }

func (r *saleRepo) Create(ctx context.Context, tx *gorm.DB, s *model.Sale) error {
	return tx.WithContext(ctx).Create(s).Error
}

func (r *saleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var s model.Sale
	err := r.db.WithContext(ctx).Preload("Items.Medicine").Preload("Customer").First(&s, id).Error
	return &s, err
}

func (r *saleRepo) List(ctx context.Context, filter dto.SaleFilter) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Sale{})

	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.DateFrom != "" {
		q = q.Where("DATE(created_at) >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		q = q.Where("DATE(created_at) <= ?", filter.DateTo)
	}
	if filter.Search != "" {
		// Search matches the invoice number as entered on the sales list.
		q = q.Where("CAST(invoice_number AS TEXT) LIKE ?", filter.Search+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items.Medicine").Preload("Customer").
		Order("created_at DESC").
		Limit(filter.Limit).Offset(offset).
		Find(&sales).Error
	return sales, total, err
}

func (r *saleRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string) error {
	return tx.WithContext(ctx).Model(&model.Sale{}).Where("id = ?", id).Update("status", status).Error
}

func (r *saleRepo) NextInvoiceNumber(ctx context.Context, tx *gorm.DB) (int, error) {
	// Uses a PostgreSQL sequence for atomic invoice number generation
	var num int
	err := tx.WithContext(ctx).Raw("SELECT nextval('sales_invoice_number_seq')").Scan(&num).Error
	return num, err
}

func (r *saleRepo) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Where("status = 'completed' AND created_at >= ?", since).Count(&n).Error
	return n, err
}

func (r *saleRepo) RevenueSince(ctx context.Context, since time.Time) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Where("status = 'completed' AND created_at >= ?", since).
		Select("COALESCE(SUM(total), 0)").Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	return total.Decimal, nil
}

func (r *saleRepo) Aggregate(ctx context.Context, from, to time.Time) (int64, decimal.Decimal, decimal.Decimal, error) {
	var row struct {
		Count int64
		Gross decimal.Decimal
		VAT   decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&model.Sale{}).
		Where("status = 'completed' AND created_at >= ? AND created_at < ?", from, to).
		Select("COUNT(*) AS count, COALESCE(SUM(total), 0) AS gross, COALESCE(SUM(vat_total), 0) AS vat").
		Scan(&row).Error
	return row.Count, row.Gross, row.VAT, err
}
