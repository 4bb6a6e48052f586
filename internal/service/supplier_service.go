package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/frogshopping/PharmaCare-POS-sub001/internal/dto"
	"github.com/frogshopping/PharmaCare-POS-sub001/internal/model"
	"github.com/frogshopping/PharmaCare-POS-sub001/internal/repository"
)

type SupplierService interface {
	Create(ctx context.Context, req dto.CreateSupplierRequest) (*dto.SupplierResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.SupplierResponse, error)
	List(ctx context.Context, filter dto.ListFilter) ([]dto.SupplierResponse, int64, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateSupplierRequest) (*dto.SupplierResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type supplierService struct {
	repo repository.SupplierRepository
}

func NewSupplierService(repo repository.SupplierRepository) SupplierService {
	return &supplierService{repo: repo}
}

func mapSupplier(s *model.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:            s.ID.String(),
		Name:          s.Name,
		ContactPerson: s.ContactPerson,
		Phone:         s.Phone,
		Email:         s.Email,
		Address:       s.Address,
		Active:        s.Active,
	}
}

func (s *supplierService) Create(ctx context.Context, req dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	existing, err := s.repo.FindByName(ctx, req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err == nil && existing != nil {
		return nil, errors.New("a supplier with that name already exists")
	}

	sup := &model.Supplier{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		Active:        true,
	}
	if err := s.repo.Create(ctx, sup); err != nil {
		return nil, err
	}
	return mapSupplier(sup), nil
}

func (s *supplierService) GetByID(ctx context.Context, id uuid.UUID) (*dto.SupplierResponse, error) {
	sup, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("supplier not found")
		}
		return nil, err
	}
	return mapSupplier(sup), nil
}

func (s *supplierService) List(ctx context.Context, filter dto.ListFilter) ([]dto.SupplierResponse, int64, error) {
	suppliers, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.SupplierResponse, 0, len(suppliers))
	for i := range suppliers {
		result = append(result, *mapSupplier(&suppliers[i]))
	}
	return result, total, nil
}

func (s *supplierService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	sup, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("supplier not found")
		}
		return nil, err
	}

	if req.Name != nil {
		sup.Name = *req.Name
	}
	if req.ContactPerson != nil {
		sup.ContactPerson = req.ContactPerson
	}
	if req.Phone != nil {
		sup.Phone = req.Phone
	}
	if req.Email != nil {
		sup.Email = req.Email
	}
	if req.Address != nil {
		sup.Address = req.Address
	}
	if req.Active != nil {
		sup.Active = *req.Active
	}

	if err := s.repo.Update(ctx, sup); err != nil {
		return nil, err
	}
	return mapSupplier(sup), nil
}

func (s *supplierService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("supplier not found")
		}
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}
