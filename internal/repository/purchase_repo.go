package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/frogshopping/PharmaCare-POS-sub001/internal/dto"
	"github.com/frogshopping/PharmaCare-POS-sub001/internal/model"
)

type PurchaseRepository interface {
	Create(ctx context.Context, tx *gorm.DB, p *model.Purchase) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Purchase, error)
	List(ctx context.Context, filter dto.PurchaseFilter) ([]model.Purchase, int64, error)
	DB() *gorm.DB
}

type purchaseRepo struct{ db *gorm.DB }

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository { return &purchaseRepo{db: db} }

func (r *purchaseRepo) DB() *gorm.DB { return r.db }

func (r *purchaseRepo) Create(ctx context.Context, tx *gorm.DB, p *model.Purchase) error {
	return tx.WithContext(ctx).Create(p).Error
}

func (r *purchaseRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Purchase, error) {
	var p model.Purchase
	err := r.db.WithContext(ctx).Preload("Items.Medicine").Preload("Supplier").First(&p, id).Error
	return &p, err
}

func (r *purchaseRepo) List(ctx context.Context, filter dto.PurchaseFilter) ([]model.Purchase, int64, error) {
	var purchases []model.Purchase
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Purchase{})

	if filter.SupplierID != "" {
		q = q.Where("supplier_id = ?", filter.SupplierID)
	}
	if filter.Search != "" {
		q = q.Where("reference_no ILIKE ?", "%"+filter.Search+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Items.Medicine").Preload("Supplier").
		Order("created_at DESC").
		Limit(filter.Limit).Offset(offset).
		Find(&purchases).Error
	return purchases, total, err
}
