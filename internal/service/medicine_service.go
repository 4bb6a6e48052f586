package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/frogshopping/PharmaCare-POS-sub001/internal/dto"
	"github.com/frogshopping/PharmaCare-POS-sub001/internal/model"
	"github.com/frogshopping/PharmaCare-POS-sub001/internal/repository"
)

// MedicineService defines business operations for the catalog.
type MedicineService interface {
	Create(ctx context.Context, req dto.CreateMedicineRequest) (*dto.MedicineResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.MedicineResponse, error)
	GetByBarcode(ctx context.Context, barcode string) (*dto.MedicineResponse, error)
	List(ctx context.Context, filter dto.MedicineFilter) ([]dto.MedicineResponse, int64, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateMedicineRequest) (*dto.MedicineResponse, error)
	AdjustStock(ctx context.Context, id uuid.UUID, req dto.AdjustStockRequest) (*dto.MedicineResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type medicineService struct {
	repo         repository.MedicineRepository
	movementRepo repository.StockMovementRepository
}

func NewMedicineService(repo repository.MedicineRepository, movementRepo repository.StockMovementRepository) MedicineService {
	return &medicineService{repo: repo, movementRepo: movementRepo}
}

func mapMedicine(m *model.Medicine) *dto.MedicineResponse {
	resp := &dto.MedicineResponse{
		ID:          m.ID.String(),
		Barcode:     m.Barcode,
		Name:        m.Name,
		GenericName: m.GenericName,
		UnitPrice:   m.UnitPrice,
		VATPct:      m.VATPct,
		Stock:       m.Stock,
		MinStock:    m.MinStock,
		Unit:        m.Unit,
		ExpiryDate:  m.ExpiryDate,
		Active:      m.Active,
	}
	if m.CategoryID != nil {
		id := m.CategoryID.String()
		resp.CategoryID = &id
	}
	if m.SupplierID != nil {
		id := m.SupplierID.String()
		resp.SupplierID = &id
	}
	return resp
}

func parseOptionalUUID(s *string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func (s *medicineService) Create(ctx context.Context, req dto.CreateMedicineRequest) (*dto.MedicineResponse, error) {
	if existing, err := s.repo.FindByBarcode(ctx, req.Barcode); err == nil && existing != nil {
		return nil, fmt.Errorf("a medicine with barcode %s already exists", req.Barcode)
	}

	categoryID, err := parseOptionalUUID(req.CategoryID)
	if err != nil {
		return nil, errors.New("invalid category_id")
	}
	supplierID, err := parseOptionalUUID(req.SupplierID)
	if err != nil {
		return nil, errors.New("invalid supplier_id")
	}

	unit := req.Unit
	if unit == "" {
		unit = "piece"
	}

	m := &model.Medicine{
		Barcode:     req.Barcode,
		Name:        req.Name,
		GenericName: req.GenericName,
		CategoryID:  categoryID,
		UnitPrice:   req.UnitPrice,
		VATPct:      req.VATPct,
		Stock:       req.Stock,
		MinStock:    req.MinStock,
		Unit:        unit,
		SupplierID:  supplierID,
		ExpiryDate:  req.ExpiryDate,
		Active:      true,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return mapMedicine(m), nil
}

func (s *medicineService) GetByID(ctx context.Context, id uuid.UUID) (*dto.MedicineResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("medicine not found")
		}
		return nil, err
	}
	return mapMedicine(m), nil
}

func (s *medicineService) GetByBarcode(ctx context.Context, barcode string) (*dto.MedicineResponse, error) {
	m, err := s.repo.FindByBarcode(ctx, barcode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("medicine not found")
		}
		return nil, err
	}
	return mapMedicine(m), nil
}

func (s *medicineService) List(ctx context.Context, filter dto.MedicineFilter) ([]dto.MedicineResponse, int64, error) {
	medicines, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.MedicineResponse, 0, len(medicines))
	for i := range medicines {
		result = append(result, *mapMedicine(&medicines[i]))
	}
	return result, total, nil
}

func (s *medicineService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateMedicineRequest) (*dto.MedicineResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("medicine not found")
		}
		return nil, err
	}

	if req.Name != nil {
		m.Name = *req.Name
	}
	if req.GenericName != nil {
		m.GenericName = req.GenericName
	}
	if req.CategoryID != nil {
		categoryID, err := parseOptionalUUID(req.CategoryID)
		if err != nil {
			return nil, errors.New("invalid category_id")
		}
		m.CategoryID = categoryID
	}
	if req.UnitPrice != nil {
		m.UnitPrice = *req.UnitPrice
	}
	if req.VATPct != nil {
		m.VATPct = *req.VATPct
	}
	if req.MinStock != nil {
		m.MinStock = *req.MinStock
	}
	if req.Unit != nil {
		m.Unit = *req.Unit
	}
	if req.SupplierID != nil {
		supplierID, err := parseOptionalUUID(req.SupplierID)
		if err != nil {
			return nil, errors.New("invalid supplier_id")
		}
		m.SupplierID = supplierID
	}
	if req.ExpiryDate != nil {
		m.ExpiryDate = req.ExpiryDate
	}

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return mapMedicine(m), nil
}

// AdjustStock applies a manual signed stock correction and records the
// movement for the audit trail. Stock never goes below zero.
func (s *medicineService) AdjustStock(ctx context.Context, id uuid.UUID, req dto.AdjustStockRequest) (*dto.MedicineResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("medicine not found")
		}
		return nil, err
	}
	if m.Stock+req.Delta < 0 {
		return nil, fmt.Errorf("adjustment would leave %s with negative stock", m.Name)
	}

	stockBefore := m.Stock
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.UpdateStockTx(tx, id, req.Delta); err != nil {
			return err
		}
		return s.movementRepo.CreateTx(tx, &model.StockMovement{
			MedicineID:  id,
			Type:        "adjustment",
			Quantity:    req.Delta,
			StockBefore: stockBefore,
			StockAfter:  stockBefore + req.Delta,
			Reason:      req.Reason,
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	m.Stock = stockBefore + req.Delta
	return mapMedicine(m), nil
}

func (s *medicineService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("medicine not found")
		}
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}
