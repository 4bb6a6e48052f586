package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/frogshopping/PharmaCare-POS-sub001/internal/dto"
	"github.com/frogshopping/PharmaCare-POS-sub001/internal/model"
	"github.com/frogshopping/PharmaCare-POS-sub001/internal/repository"
	"github.com/frogshopping/PharmaCare-POS-sub001/internal/service"
	"github.com/frogshopping/PharmaCare-POS-sub001/internal/session"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubMedicineRepo is an in-memory MedicineRepository for testing.
type stubMedicineRepo struct {
	medicines map[uuid.UUID]*model.Medicine
}

func newStubMedicineRepo() *stubMedicineRepo {
	return &stubMedicineRepo{medicines: make(map[uuid.UUID]*model.Medicine)}
}

func (r *stubMedicineRepo) Create(_ context.Context, m *model.Medicine) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.medicines[m.ID] = m
	return nil
}

func (r *stubMedicineRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Medicine, error) {
	m, ok := r.medicines[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (r *stubMedicineRepo) FindByBarcode(_ context.Context, barcode string) (*model.Medicine, error) {
	for _, m := range r.medicines {
		if m.Barcode == barcode && m.Active {
			return m, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubMedicineRepo) List(_ context.Context, _ dto.MedicineFilter) ([]model.Medicine, int64, error) {
	return nil, 0, nil
}

func (r *stubMedicineRepo) ListLowStock(_ context.Context) ([]model.Medicine, error) { return nil, nil }

func (r *stubMedicineRepo) Update(_ context.Context, m *model.Medicine) error {
	r.medicines[m.ID] = m
	return nil
}

func (r *stubMedicineRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if m, ok := r.medicines[id]; ok {
		m.Active = false
	}
	return nil
}

func (r *stubMedicineRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	if m, ok := r.medicines[id]; ok {
		m.Active = true
	}
	return nil
}

func (r *stubMedicineRepo) UpdateStockTx(_ *gorm.DB, id uuid.UUID, delta int) error {
	m, ok := r.medicines[id]
	if !ok {
		return errors.New("not found")
	}
	m.Stock += delta
	return nil
}

func (r *stubMedicineRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Medicine, error) {
	m, ok := r.medicines[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (r *stubMedicineRepo) CountActive(_ context.Context) (int64, error)   { return 0, nil }
func (r *stubMedicineRepo) CountLowStock(_ context.Context) (int64, error) { return 0, nil }
func (r *stubMedicineRepo) DB() *gorm.DB                                   { return nil }

var _ repository.MedicineRepository = (*stubMedicineRepo)(nil)

// stubSaleRepo is an in-memory SaleRepository for testing.
type stubSaleRepo struct {
	sales      map[uuid.UUID]*model.Sale
	invoiceSeq int
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{sales: make(map[uuid.UUID]*model.Sale)}
}

func (r *stubSaleRepo) Create(_ context.Context, _ *gorm.DB, s *model.Sale) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.sales[s.ID] = s
	return nil
}

func (r *stubSaleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Sale, error) {
	s, ok := r.sales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *stubSaleRepo) List(_ context.Context, _ dto.SaleFilter) ([]model.Sale, int64, error) {
	return nil, 0, nil
}

func (r *stubSaleRepo) UpdateStatus(_ context.Context, _ *gorm.DB, id uuid.UUID, status string) error {
	s, ok := r.sales[id]
	if !ok {
		return errors.New("not found")
	}
	s.Status = status
	return nil
}

func (r *stubSaleRepo) NextInvoiceNumber(_ context.Context, _ *gorm.DB) (int, error) {
	r.invoiceSeq++
	return r.invoiceSeq, nil
}

func (r *stubSaleRepo) CountSince(_ context.Context, _ time.Time) (int64, error) { return 0, nil }

func (r *stubSaleRepo) RevenueSince(_ context.Context, _ time.Time) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (r *stubSaleRepo) Aggregate(_ context.Context, _, _ time.Time) (int64, decimal.Decimal, decimal.Decimal, error) {
	return 0, decimal.Zero, decimal.Zero, nil
}

func (r *stubSaleRepo) DB() *gorm.DB { return nil }

var _ repository.SaleRepository = (*stubSaleRepo)(nil)

// stubMovementRepo captures stock movements for assertion.
type stubMovementRepo struct {
	movements []model.StockMovement
}

func (r *stubMovementRepo) CreateTx(_ *gorm.DB, m *model.StockMovement) error {
	r.movements = append(r.movements, *m)
	return nil
}

func (r *stubMovementRepo) ListByMedicine(_ context.Context, _ uuid.UUID, _ int) ([]model.StockMovement, error) {
	return r.movements, nil
}

var _ repository.StockMovementRepository = (*stubMovementRepo)(nil)

// ── Helpers ───────────────────────────────────────────────────────────────────

func seedMedicine(repo *stubMedicineRepo, name string, price string, vat string, stock int) *model.Medicine {
	m := &model.Medicine{
		ID:        uuid.New(),
		Barcode:   uuid.NewString()[:13],
		Name:      name,
		UnitPrice: decimal.RequireFromString(price),
		VATPct:    decimal.RequireFromString(vat),
		Stock:     stock,
		MinStock:  5,
		Unit:      "piece",
		Active:    true,
	}
	repo.medicines[m.ID] = m
	return m
}

func buildSaleSvc() (service.SaleService, *stubSaleRepo, *stubMedicineRepo, *stubMovementRepo) {
	medicineRepo := newStubMedicineRepo()
	saleRepo := newStubSaleRepo()
	movementRepo := &stubMovementRepo{}
	svc := service.NewSaleService(saleRepo, medicineRepo, movementRepo, nil)
	return svc, saleRepo, medicineRepo, movementRepo
}

var testProfile = session.Profile{Name: "Maria Lopez", Role: "Pharmacist"}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestRegisterSale_TotalsFollowVATFormula(t *testing.T) {
	svc, _, medicineRepo, _ := buildSaleSvc()
	m := seedMedicine(medicineRepo, "Paracetamol 500mg", "10.00", "15", 50)

	resp, err := svc.RegisterSale(context.Background(), testProfile, dto.RegisterSaleRequest{
		Items: []dto.SaleItemRequest{
			{MedicineID: m.ID.String(), Quantity: 3},
		},
	})
	require.NoError(t, err)

	// 3 × 10.00 × 1.15 = 34.50
	assert.Equal(t, "34.50", resp.Items[0].LineTotal.StringFixed(2))
	assert.Equal(t, "30.00", resp.Subtotal.StringFixed(2))
	assert.Equal(t, "4.50", resp.VATTotal.StringFixed(2))
	assert.Equal(t, "34.50", resp.Total.StringFixed(2))
	assert.Equal(t, "Maria Lopez", resp.CashierName)
	assert.Equal(t, 1, resp.InvoiceNumber)
}

func TestRegisterSale_DecrementsStockAndRecordsMovement(t *testing.T) {
	svc, _, medicineRepo, movementRepo := buildSaleSvc()
	m := seedMedicine(medicineRepo, "Ibuprofen 400mg", "8.00", "0", 20)

	_, err := svc.RegisterSale(context.Background(), testProfile, dto.RegisterSaleRequest{
		Items: []dto.SaleItemRequest{
			{MedicineID: m.ID.String(), Quantity: 4},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 16, medicineRepo.medicines[m.ID].Stock)
	require.Len(t, movementRepo.movements, 1)
	mov := movementRepo.movements[0]
	assert.Equal(t, "sale", mov.Type)
	assert.Equal(t, -4, mov.Quantity)
	assert.Equal(t, 20, mov.StockBefore)
	assert.Equal(t, 16, mov.StockAfter)
}

func TestRegisterSale_InsufficientStockRejected(t *testing.T) {
	svc, saleRepo, medicineRepo, _ := buildSaleSvc()
	m := seedMedicine(medicineRepo, "Amoxicillin 250mg", "12.00", "10", 2)

	_, err := svc.RegisterSale(context.Background(), testProfile, dto.RegisterSaleRequest{
		Items: []dto.SaleItemRequest{
			{MedicineID: m.ID.String(), Quantity: 5},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient stock")
	assert.Empty(t, saleRepo.sales)
	assert.Equal(t, 2, medicineRepo.medicines[m.ID].Stock, "stock must be untouched on rejection")
}

func TestRegisterSale_InactiveMedicineRejected(t *testing.T) {
	svc, _, medicineRepo, _ := buildSaleSvc()
	m := seedMedicine(medicineRepo, "Old Syrup", "5.00", "0", 10)
	m.Active = false

	_, err := svc.RegisterSale(context.Background(), testProfile, dto.RegisterSaleRequest{
		Items: []dto.SaleItemRequest{
			{MedicineID: m.ID.String(), Quantity: 1},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inactive")
}

func TestRegisterSale_NegativePriceOverrideClampedToZero(t *testing.T) {
	svc, _, medicineRepo, _ := buildSaleSvc()
	m := seedMedicine(medicineRepo, "Bandages", "3.00", "21", 10)

	neg := decimal.RequireFromString("-5")
	resp, err := svc.RegisterSale(context.Background(), testProfile, dto.RegisterSaleRequest{
		Items: []dto.SaleItemRequest{
			{MedicineID: m.ID.String(), Quantity: 2, UnitPrice: &neg},
		},
	})
	require.NoError(t, err)
	assert.True(t, resp.Total.IsZero())
	assert.True(t, resp.Items[0].UnitPrice.IsZero())
}

func TestVoidSale_RestoresStockAndFlagsSale(t *testing.T) {
	svc, saleRepo, medicineRepo, movementRepo := buildSaleSvc()
	m := seedMedicine(medicineRepo, "Vitamin C", "6.00", "0", 30)

	resp, err := svc.RegisterSale(context.Background(), testProfile, dto.RegisterSaleRequest{
		Items: []dto.SaleItemRequest{
			{MedicineID: m.ID.String(), Quantity: 10},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 20, medicineRepo.medicines[m.ID].Stock)

	saleID := uuid.MustParse(resp.ID)
	require.NoError(t, svc.VoidSale(context.Background(), saleID, "customer returned items"))

	assert.Equal(t, 30, medicineRepo.medicines[m.ID].Stock)
	assert.Equal(t, "voided", saleRepo.sales[saleID].Status)

	// sale decrement + void restore
	require.Len(t, movementRepo.movements, 2)
	assert.Equal(t, "void_restore", movementRepo.movements[1].Type)
	assert.Equal(t, 10, movementRepo.movements[1].Quantity)
}

func TestVoidSale_AlreadyVoidedRejected(t *testing.T) {
	svc, _, medicineRepo, _ := buildSaleSvc()
	m := seedMedicine(medicineRepo, "Aspirin", "4.00", "0", 10)

	resp, err := svc.RegisterSale(context.Background(), testProfile, dto.RegisterSaleRequest{
		Items: []dto.SaleItemRequest{{MedicineID: m.ID.String(), Quantity: 1}},
	})
	require.NoError(t, err)

	saleID := uuid.MustParse(resp.ID)
	require.NoError(t, svc.VoidSale(context.Background(), saleID, "mistake"))

	err = svc.VoidSale(context.Background(), saleID, "again")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already voided")
}

func TestRegisterSale_InvoiceNumbersAreSequential(t *testing.T) {
	svc, _, medicineRepo, _ := buildSaleSvc()
	m := seedMedicine(medicineRepo, "Cough Drops", "2.50", "0", 100)

	for want := 1; want <= 3; want++ {
		resp, err := svc.RegisterSale(context.Background(), testProfile, dto.RegisterSaleRequest{
			Items: []dto.SaleItemRequest{{MedicineID: m.ID.String(), Quantity: 1}},
		})
		require.NoError(t, err)
		assert.Equal(t, want, resp.InvoiceNumber)
	}
}
