package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/frogshopping/PharmaCare-POS-sub001/internal/dto"
	"github.com/frogshopping/PharmaCare-POS-sub001/internal/model"
	"github.com/frogshopping/PharmaCare-POS-sub001/internal/repository"
)

type PurchaseService interface {
	ReceivePurchase(ctx context.Context, req dto.ReceivePurchaseRequest) (*dto.PurchaseResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.PurchaseResponse, error)
	List(ctx context.Context, filter dto.PurchaseFilter) ([]dto.PurchaseResponse, int64, error)
}

type purchaseService struct {
	repo         repository.PurchaseRepository
	medicineRepo repository.MedicineRepository
	supplierRepo repository.SupplierRepository
	movementRepo repository.StockMovementRepository
}

func NewPurchaseService(
	repo repository.PurchaseRepository,
	medicineRepo repository.MedicineRepository,
	supplierRepo repository.SupplierRepository,
	movementRepo repository.StockMovementRepository,
) PurchaseService {
	return &purchaseService{
		repo:         repo,
		medicineRepo: medicineRepo,
		supplierRepo: supplierRepo,
		movementRepo: movementRepo,
	}
}

// ReceivePurchase books a goods receipt: creates the purchase with its items
// and increments stock for every line inside one transaction.
func (s *purchaseService) ReceivePurchase(ctx context.Context, req dto.ReceivePurchaseRequest) (*dto.PurchaseResponse, error) {
	supplierID, err := uuid.Parse(req.SupplierID)
	if err != nil {
		return nil, errors.New("invalid supplier_id")
	}
	if _, err := s.supplierRepo.FindByID(ctx, supplierID); err != nil {
		return nil, errors.New("supplier not found")
	}

	type resolvedItem struct {
		medicineID uuid.UUID
		name       string
		quantity   int
		unitCost   decimal.Decimal
		lineTotal  decimal.Decimal
	}

	var resolved []resolvedItem
	total := decimal.Zero
	for _, item := range req.Items {
		mid, err := uuid.Parse(item.MedicineID)
		if err != nil {
			return nil, errors.New("invalid medicine_id")
		}
		m, err := s.medicineRepo.FindByID(ctx, mid)
		if err != nil {
			return nil, fmt.Errorf("medicine %s not found", item.MedicineID)
		}
		lineTotal := item.UnitCost.Mul(decimal.NewFromInt(int64(item.Quantity))).Round(2)
		total = total.Add(lineTotal)
		resolved = append(resolved, resolvedItem{
			medicineID: mid,
			name:       m.Name,
			quantity:   item.Quantity,
			unitCost:   item.UnitCost,
			lineTotal:  lineTotal,
		})
	}

	var purchase model.Purchase
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		purchase = model.Purchase{
			SupplierID:  supplierID,
			ReferenceNo: req.ReferenceNo,
			Status:      "received",
			Total:       total,
		}
		for _, r := range resolved {
			purchase.Items = append(purchase.Items, model.PurchaseItem{
				MedicineID: r.medicineID,
				Quantity:   r.quantity,
				UnitCost:   r.unitCost,
				LineTotal:  r.lineTotal,
			})
		}

		if err := s.repo.Create(ctx, tx, &purchase); err != nil {
			return err
		}

		for _, r := range resolved {
			stockBefore := 0
			if before, err := s.medicineRepo.FindByIDTx(tx, r.medicineID); err == nil && before != nil {
				stockBefore = before.Stock
			}

			if err := s.medicineRepo.UpdateStockTx(tx, r.medicineID, r.quantity); err != nil {
				return fmt.Errorf("incrementing stock for %s: %w", r.name, err)
			}

			purchaseRef := purchase.ID
			mov := &model.StockMovement{
				MedicineID:  r.medicineID,
				Type:        "purchase",
				Quantity:    r.quantity,
				StockBefore: stockBefore,
				StockAfter:  stockBefore + r.quantity,
				Reason:      fmt.Sprintf("Purchase %s", req.ReferenceNo),
				ReferenceID: &purchaseRef,
			}
			if err := s.movementRepo.CreateTx(tx, mov); err != nil {
				return err
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := mapPurchase(&purchase)
	for i, r := range resolved {
		resp.Items[i].Medicine = r.name
	}
	return resp, nil
}

func (s *purchaseService) GetByID(ctx context.Context, id uuid.UUID) (*dto.PurchaseResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("purchase not found")
		}
		return nil, err
	}
	return mapPurchase(p), nil
}

func (s *purchaseService) List(ctx context.Context, filter dto.PurchaseFilter) ([]dto.PurchaseResponse, int64, error) {
	purchases, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.PurchaseResponse, 0, len(purchases))
	for i := range purchases {
		result = append(result, *mapPurchase(&purchases[i]))
	}
	return result, total, nil
}

func mapPurchase(p *model.Purchase) *dto.PurchaseResponse {
	resp := &dto.PurchaseResponse{
		ID:          p.ID.String(),
		SupplierID:  p.SupplierID.String(),
		ReferenceNo: p.ReferenceNo,
		Status:      p.Status,
		Total:       p.Total,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
	for _, item := range p.Items {
		name := ""
		if item.Medicine != nil {
			name = item.Medicine.Name
		}
		resp.Items = append(resp.Items, dto.PurchaseItemResponse{
			MedicineID: item.MedicineID.String(),
			Medicine:   name,
			Quantity:   item.Quantity,
			UnitCost:   item.UnitCost,
			LineTotal:  item.LineTotal,
		})
	}
	return resp
}
