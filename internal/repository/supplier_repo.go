package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/frogshopping/PharmaCare-POS-sub001/internal/dto"
	"github.com/frogshopping/PharmaCare-POS-sub001/internal/model"
)

type SupplierRepository interface {
	Create(ctx context.Context, s *model.Supplier) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Supplier, error)
	FindByName(ctx context.Context, name string) (*model.Supplier, error)
	List(ctx context.Context, filter dto.ListFilter) ([]model.Supplier, int64, error)
	Update(ctx context.Context, s *model.Supplier) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	CountActive(ctx context.Context) (int64, error)
}

type supplierRepo struct{ db *gorm.DB }

func NewSupplierRepository(db *gorm.DB) SupplierRepository { return &supplierRepo{db: db} }

func (r *supplierRepo) Create(ctx context.Context, s *model.Supplier) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *supplierRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Supplier, error) {
	var s model.Supplier
	err := r.db.WithContext(ctx).First(&s, id).Error
	return &s, err
}

func (r *supplierRepo) FindByName(ctx context.Context, name string) (*model.Supplier, error) {
	var s model.Supplier
	err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&s).Error
	return &s, err
}

func (r *supplierRepo) List(ctx context.Context, filter dto.ListFilter) ([]model.Supplier, int64, error) {
	var suppliers []model.Supplier
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Supplier{}).Where("active = true")
	if filter.Search != "" {
		q = q.Where("name ILIKE ? OR contact_person ILIKE ?", "%"+filter.Search+"%", "%"+filter.Search+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("name ASC").Limit(filter.Limit).Offset(offset).Find(&suppliers).Error
	return suppliers, total, err
}

func (r *supplierRepo) Update(ctx context.Context, s *model.Supplier) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *supplierRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Supplier{}).Where("id = ?", id).Update("active", false).Error
}

func (r *supplierRepo) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Supplier{}).Where("active = true").Count(&n).Error
	return n, err
}
