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

// CategoryService defines business operations for medicine categories.
type CategoryService interface {
	Create(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error)
	List(ctx context.Context, filter dto.ListFilter) ([]dto.CategoryResponse, int64, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func mapCategory(c *model.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		Active:      c.Active,
	}
}

func (s *categoryService) Create(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	// Check for duplicate name
	existing, err := s.repo.FindByName(ctx, req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if err == nil && existing != nil {
		return nil, errors.New("a category with that name already exists")
	}

	c := &model.Category{
		Name:        req.Name,
		Description: req.Description,
		Active:      true,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return mapCategory(c), nil
}

func (s *categoryService) List(ctx context.Context, filter dto.ListFilter) ([]dto.CategoryResponse, int64, error) {
	categories, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		result = append(result, *mapCategory(&categories[i]))
	}
	return result, total, nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("category not found")
		}
		return nil, err
	}

	if req.Name != nil && *req.Name != c.Name {
		existing, err := s.repo.FindByName(ctx, *req.Name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if err == nil && existing != nil {
			return nil, errors.New("a category with that name already exists")
		}
		c.Name = *req.Name
	}
	if req.Description != nil {
		c.Description = req.Description
	}
	if req.Active != nil {
		c.Active = *req.Active
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return mapCategory(c), nil
}

func (s *categoryService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("category not found")
		}
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}
