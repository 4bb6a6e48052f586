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
	"github.com/frogshopping/PharmaCare-POS-sub001/internal/session"
	"github.com/frogshopping/PharmaCare-POS-sub001/internal/worker"
)

type SaleService interface {
	RegisterSale(ctx context.Context, profile session.Profile, req dto.RegisterSaleRequest) (*dto.SaleResponse, error)
	VoidSale(ctx context.Context, id uuid.UUID, reason string) error
	GetByID(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error)
	List(ctx context.Context, filter dto.SaleFilter) ([]dto.SaleResponse, int64, error)
	Report(ctx context.Context, dateFrom, dateTo string) (*dto.SalesReportResponse, error)
}

type saleService struct {
	repo         repository.SaleRepository
	medicineRepo repository.MedicineRepository
	movementRepo repository.StockMovementRepository
	dispatcher   *worker.Dispatcher
}

func NewSaleService(
	repo repository.SaleRepository,
	medicineRepo repository.MedicineRepository,
	movementRepo repository.StockMovementRepository,
	dispatcher *worker.Dispatcher,
) SaleService {
	return &saleService{
		repo:         repo,
		medicineRepo: medicineRepo,
		movementRepo: movementRepo,
		dispatcher:   dispatcher,
	}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── RegisterSale ──────────────────────────────────────────────────────────────
// Full ACID transaction:
//   1. Resolve every item against the catalog (price, VAT, stock pre-check)
//   2. BEGIN TX: nextval invoice, create sale+items, decrement stock,
//      record one stock movement per line
//   3. COMMIT
//   4. (async) dispatch receipt job — PDF generation and optional email

func (s *saleService) RegisterSale(ctx context.Context, profile session.Profile, req dto.RegisterSaleRequest) (*dto.SaleResponse, error) {
	customerID, err := parseOptionalUUID(req.CustomerID)
	if err != nil {
		return nil, errors.New("invalid customer_id")
	}

	// 1. Resolve items and calculate totals (pre-flight, outside TX).
	// Line total follows qty × unit_price × (1 + vat/100).
	type resolvedItem struct {
		medicineID uuid.UUID
		name       string
		quantity   int
		unit       string
		unitPrice  decimal.Decimal
		vatPct     decimal.Decimal
		lineNet    decimal.Decimal
		lineTotal  decimal.Decimal
	}

	hundred := decimal.NewFromInt(100)
	var resolved []resolvedItem
	subtotal := decimal.Zero
	vatTotal := decimal.Zero

	for _, item := range req.Items {
		mid, err := uuid.Parse(item.MedicineID)
		if err != nil {
			return nil, errors.New("invalid medicine_id")
		}
		m, err := s.medicineRepo.FindByID(ctx, mid)
		if err != nil {
			return nil, fmt.Errorf("medicine %s not found", item.MedicineID)
		}
		if !m.Active {
			return nil, fmt.Errorf("medicine %s is inactive and cannot be sold", m.Name)
		}
		if m.Stock < item.Quantity {
			return nil, fmt.Errorf("insufficient stock for %s: have %d, requested %d", m.Name, m.Stock, item.Quantity)
		}

		// Cashier price override is honored but never below zero.
		price := m.UnitPrice
		if item.UnitPrice != nil {
			price = *item.UnitPrice
			if price.IsNegative() {
				price = decimal.Zero
			}
		}
		unit := item.Unit
		if unit == "" {
			unit = m.Unit
		}

		qty := decimal.NewFromInt(int64(item.Quantity))
		lineNet := price.Mul(qty)
		lineTotal := lineNet.Mul(decimal.NewFromInt(1).Add(m.VATPct.Div(hundred))).Round(2)

		subtotal = subtotal.Add(lineNet)
		vatTotal = vatTotal.Add(lineTotal.Sub(lineNet))
		resolved = append(resolved, resolvedItem{
			medicineID: mid,
			name:       m.Name,
			quantity:   item.Quantity,
			unit:       unit,
			unitPrice:  price,
			vatPct:     m.VATPct,
			lineNet:    lineNet,
			lineTotal:  lineTotal,
		})
	}

	total := subtotal.Add(vatTotal)

	// 2. ACID transaction
	var sale model.Sale
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		invoiceNum, err := s.repo.NextInvoiceNumber(ctx, tx)
		if err != nil {
			return err
		}

		sale = model.Sale{
			InvoiceNumber: invoiceNum,
			CustomerID:    customerID,
			CashierName:   profile.Name,
			Subtotal:      subtotal,
			VATTotal:      vatTotal,
			Total:         total,
			Status:        "completed",
		}
		for _, r := range resolved {
			sale.Items = append(sale.Items, model.SaleItem{
				MedicineID: r.medicineID,
				Quantity:   r.quantity,
				Unit:       r.unit,
				UnitPrice:  r.unitPrice,
				VATPct:     r.vatPct,
				LineTotal:  r.lineTotal,
			})
		}

		if err := s.repo.Create(ctx, tx, &sale); err != nil {
			return err
		}

		// Decrement stock and record one movement per line
		for _, r := range resolved {
			stockBefore := 0
			if before, err := s.medicineRepo.FindByIDTx(tx, r.medicineID); err == nil && before != nil {
				stockBefore = before.Stock
			}

			if err := s.medicineRepo.UpdateStockTx(tx, r.medicineID, -r.quantity); err != nil {
				return fmt.Errorf("decrementing stock for %s: %w", r.name, err)
			}

			saleRef := sale.ID
			mov := &model.StockMovement{
				MedicineID:  r.medicineID,
				Type:        "sale",
				Quantity:    -r.quantity,
				StockBefore: stockBefore,
				StockAfter:  stockBefore - r.quantity,
				Reason:      fmt.Sprintf("Sale #%d", invoiceNum),
				ReferenceID: &saleRef,
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

	// 3. Async receipt job (best-effort — fire & forget)
	if s.dispatcher != nil {
		payload := worker.ReceiptJobPayload{SaleID: sale.ID.String()}
		if req.CustomerEmail != nil && *req.CustomerEmail != "" {
			payload.CustomerEmail = req.CustomerEmail
		}
		_ = s.dispatcher.EnqueueReceipt(ctx, payload)
	}

	resp := mapSale(&sale)
	for i, r := range resolved {
		resp.Items[i].Medicine = r.name
	}
	return resp, nil
}

// ── VoidSale ──────────────────────────────────────────────────────────────────

func (s *saleService) VoidSale(ctx context.Context, id uuid.UUID, reason string) error {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errors.New("sale not found")
	}
	if sale.Status == "voided" {
		return errors.New("sale is already voided")
	}

	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// Restore stock for each item and record the movement
		for _, item := range sale.Items {
			stockBefore := 0
			if before, err := s.medicineRepo.FindByIDTx(tx, item.MedicineID); err == nil && before != nil {
				stockBefore = before.Stock
			}

			if err := s.medicineRepo.UpdateStockTx(tx, item.MedicineID, item.Quantity); err != nil {
				return err
			}

			saleRef := sale.ID
			mov := &model.StockMovement{
				MedicineID:  item.MedicineID,
				Type:        "void_restore",
				Quantity:    item.Quantity,
				StockBefore: stockBefore,
				StockAfter:  stockBefore + item.Quantity,
				Reason:      fmt.Sprintf("Void sale #%d — %s", sale.InvoiceNumber, reason),
				ReferenceID: &saleRef,
			}
			if err := s.movementRepo.CreateTx(tx, mov); err != nil {
				return err
			}
		}
		return s.repo.UpdateStatus(ctx, tx, id, "voided")
	})
}

func (s *saleService) GetByID(ctx context.Context, id uuid.UUID) (*dto.SaleResponse, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("sale not found")
		}
		return nil, err
	}
	return mapSale(sale), nil
}

func (s *saleService) List(ctx context.Context, filter dto.SaleFilter) ([]dto.SaleResponse, int64, error) {
	sales, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	result := make([]dto.SaleResponse, 0, len(sales))
	for i := range sales {
		result = append(result, *mapSale(&sales[i]))
	}
	return result, total, nil
}

// Report aggregates completed sales over [dateFrom, dateTo] inclusive.
func (s *saleService) Report(ctx context.Context, dateFrom, dateTo string) (*dto.SalesReportResponse, error) {
	from, err := time.Parse("2006-01-02", dateFrom)
	if err != nil {
		return nil, errors.New("invalid date_from, expected YYYY-MM-DD")
	}
	to, err := time.Parse("2006-01-02", dateTo)
	if err != nil {
		return nil, errors.New("invalid date_to, expected YYYY-MM-DD")
	}
	if to.Before(from) {
		return nil, errors.New("date_to is before date_from")
	}

	count, gross, vat, err := s.repo.Aggregate(ctx, from, to.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	return &dto.SalesReportResponse{
		DateFrom:   dateFrom,
		DateTo:     dateTo,
		SaleCount:  count,
		GrossTotal: gross,
		VATTotal:   vat,
	}, nil
}

func mapSale(sale *model.Sale) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:            sale.ID.String(),
		InvoiceNumber: sale.InvoiceNumber,
		CashierName:   sale.CashierName,
		Subtotal:      sale.Subtotal,
		VATTotal:      sale.VATTotal,
		Total:         sale.Total,
		Status:        sale.Status,
		CreatedAt:     sale.CreatedAt.Format(time.RFC3339),
	}
	if sale.CustomerID != nil {
		id := sale.CustomerID.String()
		resp.CustomerID = &id
	}
	for _, item := range sale.Items {
		name := ""
		if item.Medicine != nil {
			name = item.Medicine.Name
		}
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			MedicineID: item.MedicineID.String(),
			Medicine:   name,
			Quantity:   item.Quantity,
			Unit:       item.Unit,
			UnitPrice:  item.UnitPrice,
			VATPct:     item.VATPct,
			LineTotal:  item.LineTotal,
		})
	}
	return resp
}
