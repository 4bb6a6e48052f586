package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/frogshopping/PharmaCare-POS-sub001/internal/dto"
	"github.com/frogshopping/PharmaCare-POS-sub001/internal/model"
)

// MedicineRepository defines the data access contract for the catalog.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type MedicineRepository interface {
	Create(ctx context.Context, m *model.Medicine) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Medicine, error)
	FindByBarcode(ctx context.Context, barcode string) (*model.Medicine, error)
	List(ctx context.Context, filter dto.MedicineFilter) ([]model.Medicine, int64, error)
	ListLowStock(ctx context.Context) ([]model.Medicine, error)
	Update(ctx context.Context, m *model.Medicine) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error

	// Used inside transactions — callers must pass the tx instance
	UpdateStockTx(tx *gorm.DB, id uuid.UUID, delta int) error
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Medicine, error)

	// Counts for the dashboard
	CountActive(ctx context.Context) (int64, error)
	CountLowStock(ctx context.Context) (int64, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type medicineRepo struct{ db *gorm.DB }

func NewMedicineRepository(db *gorm.DB) MedicineRepository { return &medicineRepo{db: db} }

func (r *medicineRepo) DB() *gorm.DB { return r.db }

func (r *medicineRepo) Create(ctx context.Context, m *model.Medicine) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *medicineRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Medicine, error) {
	var m model.Medicine
	err := r.db.WithContext(ctx).Preload("Category").Preload("Supplier").First(&m, id).Error
	return &m, err
}

func (r *medicineRepo) FindByBarcode(ctx context.Context, barcode string) (*model.Medicine, error) {
	var m model.Medicine
	err := r.db.WithContext(ctx).Where("barcode = ? AND active = true", barcode).First(&m).Error
	return &m, err
}

func (r *medicineRepo) List(ctx context.Context, filter dto.MedicineFilter) ([]model.Medicine, int64, error) {
	var medicines []model.Medicine
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Medicine{})

	// Active filter: "false" = inactive, "all" = everything, anything else = active (default)
	switch filter.Active {
	case "false":
		q = q.Where("active = false")
	case "all":
		// no filter
	default:
		q = q.Where("active = true")
	}

	if filter.Barcode != "" {
		q = q.Where("barcode = ?", filter.Barcode)
	}
	if filter.Search != "" {
		q = q.Where("name ILIKE ? OR generic_name ILIKE ?", "%"+filter.Search+"%", "%"+filter.Search+"%")
	}
	if filter.CategoryID != "" {
		q = q.Where("category_id = ?", filter.CategoryID)
	}
	if filter.SupplierID != "" {
		q = q.Where("supplier_id = ?", filter.SupplierID)
	}
	if filter.LowStock {
		q = q.Where("stock <= min_stock")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("name ASC").Limit(filter.Limit).Offset(offset).Find(&medicines).Error
	return medicines, total, err
}

func (r *medicineRepo) ListLowStock(ctx context.Context) ([]model.Medicine, error) {
	var medicines []model.Medicine
	err := r.db.WithContext(ctx).
		Where("active = true AND stock <= min_stock").
		Order("stock ASC").
		Find(&medicines).Error
	return medicines, err
}

func (r *medicineRepo) Update(ctx context.Context, m *model.Medicine) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *medicineRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Medicine{}).Where("id = ?", id).Update("active", false).Error
}

func (r *medicineRepo) Reactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Medicine{}).Where("id = ?", id).Update("active", true).Error
}

func (r *medicineRepo) UpdateStockTx(tx *gorm.DB, id uuid.UUID, delta int) error {
	return tx.Model(&model.Medicine{}).Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", delta)).Error
}

func (r *medicineRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Medicine, error) {
	var m model.Medicine
	err := tx.First(&m, id).Error
	return &m, err
}

func (r *medicineRepo) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Medicine{}).Where("active = true").Count(&n).Error
	return n, err
}

func (r *medicineRepo) CountLowStock(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Medicine{}).
		Where("active = true AND stock <= min_stock").Count(&n).Error
	return n, err
}
