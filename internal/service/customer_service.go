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

type CustomerService interface {
	Create(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error)
	List(ctx context.Context, filter dto.ListFilter) ([]dto.CustomerResponse, int64, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type customerService struct {
	repo repository.CustomerRepository
}

func NewCustomerService(repo repository.CustomerRepository) CustomerService {
	return &customerService{repo: repo}
}

func mapCustomer(c *model.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:      c.ID.String(),
		Name:    c.Name,
		Phone:   c.Phone,
		Email:   c.Email,
		Address: c.Address,
		Active:  c.Active,
	}
}

func (s *customerService) Create(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	c := &model.Customer{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
		Active:  true,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return mapCustomer(c), nil
}

func (s *customerService) GetByID(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("customer not found")
		}
		return nil, err
	}
	return mapCustomer(c), nil
}

func (s *customerService) List(ctx context.Context, filter dto.ListFilter) ([]dto.CustomerResponse, int64, error) {
	customers, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		result = append(result, *mapCustomer(&customers[i]))
	}
	return result, total, nil
}

func (s *customerService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("customer not found")
		}
		return nil, err
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Phone != nil {
		c.Phone = req.Phone
	}
	if req.Email != nil {
		c.Email = req.Email
	}
	if req.Address != nil {
		c.Address = req.Address
	}
	if req.Active != nil {
		c.Active = *req.Active
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return mapCustomer(c), nil
}

func (s *customerService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("customer not found")
		}
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}
