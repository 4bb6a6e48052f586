package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/frogshopping/PharmaCare-POS-sub001/internal/model"
)

type StockMovementRepository interface {
	CreateTx(tx *gorm.DB, m *model.StockMovement) error
	ListByMedicine(ctx context.Context, medicineID uuid.UUID, limit int) ([]model.StockMovement, error)
}

type stockMovementRepo struct{ db *gorm.DB }

func NewStockMovementRepository(db *gorm.DB) StockMovementRepository {
	return &stockMovementRepo{db: db}
}

func (r *stockMovementRepo) CreateTx(tx *gorm.DB, m *model.StockMovement) error {
	return tx.Create(m).Error
}

func (r *stockMovementRepo) ListByMedicine(ctx context.Context, medicineID uuid.UUID, limit int) ([]model.StockMovement, error) {
	if limit <= 0 {
		limit = 50
	}
	var movements []model.StockMovement
	err := r.db.WithContext(ctx).
		Where("medicine_id = ?", medicineID).
		Order("created_at DESC").
		Limit(limit).
		Find(&movements).Error
	return movements, err
}
