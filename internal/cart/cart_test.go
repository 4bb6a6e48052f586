package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProduct(name string, stock int, price float64, vat float64) Product {
	return Product{
		ID:        uuid.New(),
		Name:      name,
		Stock:     stock,
		UnitPrice: decimal.NewFromFloat(price),
		VATPct:    decimal.NewFromFloat(vat),
		Unit:      UnitPiece,
	}
}

func TestAddItem_NewLine(t *testing.T) {
	c := New()
	p := seedProduct("Paracetamol 500mg", 5, 12.50, 15)

	l := c.AddItem(p)

	require.Equal(t, 1, c.Len())
	assert.Equal(t, 1, l.Quantity)
	assert.Equal(t, UnitPiece, l.Unit)
	// total = 1 × 12.50 × 1.15 = 14.375
	assert.Equal(t, "14.375", l.Total.String())
	assert.Equal(t, "14.375", c.Total().String())
}

func TestAddItem_DuplicateMerges(t *testing.T) {
	c := New()
	p := seedProduct("Ibuprofen 400mg", 10, 20, 0)

	c.AddItem(p)
	c.AddItem(p)

	require.Equal(t, 1, c.Len())
	assert.Equal(t, 2, c.Lines()[0].Quantity)
	assert.Equal(t, "40", c.Total().String())
}

func TestAddItem_MergeCapsAtStock(t *testing.T) {
	c := New()
	p := seedProduct("Amoxicillin 250mg", 2, 30, 0)

	c.AddItem(p)
	c.AddItem(p)
	c.AddItem(p) // would be 3, stock is 2

	assert.Equal(t, 2, c.Lines()[0].Quantity)
}

func TestUpdateQuantity_Clamping(t *testing.T) {
	c := New()
	p := seedProduct("Cetirizine 10mg", 8, 5, 0)
	l := c.AddItem(p)

	cases := []struct {
		in   int
		want int
	}{
		{0, 1},   // floor
		{-4, 1},  // negative coerced to floor
		{3, 3},   // in range
		{99, 8},  // capped at stock
	}
	for _, tc := range cases {
		c.UpdateQuantity(l.ID, tc.in)
		assert.Equal(t, tc.want, c.Lines()[0].Quantity, "input %d", tc.in)
	}
}

func TestUpdateQuantity_ZeroStockPinnedAtFloor(t *testing.T) {
	c := New()
	p := seedProduct("Insulin Pen", 0, 25, 0)

	l := c.AddItem(p)
	require.Equal(t, 1, l.Quantity)

	// Neither an explicit bump nor a duplicate-add merge may outgrow a
	// product that has nothing left in stock.
	c.UpdateQuantity(l.ID, 50)
	assert.Equal(t, 1, c.Lines()[0].Quantity)

	c.AddItem(p)
	assert.Equal(t, 1, c.Lines()[0].Quantity)
}

func TestUpdateQuantity_UnknownLineIgnored(t *testing.T) {
	c := New()
	c.AddItem(seedProduct("Omeprazole 20mg", 5, 9, 0))

	c.UpdateQuantity("no-such-line", 4)

	assert.Equal(t, 1, c.Lines()[0].Quantity)
}

func TestUpdateUnitPrice_NegativeClampedToZero(t *testing.T) {
	c := New()
	l := c.AddItem(seedProduct("Vitamin C", 5, 7, 10))

	c.UpdateUnitPrice(l.ID, decimal.NewFromFloat(-3))

	line := c.Lines()[0]
	assert.True(t, line.UnitPrice.IsZero())
	assert.True(t, line.Total.IsZero())
}

func TestUpdateUnit_NoReprice(t *testing.T) {
	c := New()
	l := c.AddItem(seedProduct("ORS Sachet", 5, 4, 5))
	before := c.Lines()[0].Total

	require.NoError(t, c.UpdateUnit(l.ID, UnitStrip))

	after := c.Lines()[0]
	assert.Equal(t, UnitStrip, after.Unit)
	assert.True(t, before.Equal(after.Total))
}

func TestUpdateUnit_InvalidRejected(t *testing.T) {
	c := New()
	l := c.AddItem(seedProduct("Saline 500ml", 5, 50, 0))

	err := c.UpdateUnit(l.ID, Unit("bottle"))

	assert.Error(t, err)
	assert.Equal(t, UnitPiece, c.Lines()[0].Unit)
}

func TestRemoveItem_AbsentIsNoop(t *testing.T) {
	c := New()
	c.AddItem(seedProduct("Metformin 500mg", 5, 6, 0))

	c.RemoveItem("missing")

	assert.Equal(t, 1, c.Len())
}

func TestTotal_EqualsSumOfLines(t *testing.T) {
	c := New()
	c.AddItem(seedProduct("Aspirin 100mg", 10, 3.30, 15))
	l2 := c.AddItem(seedProduct("Losartan 50mg", 10, 11.75, 5))
	c.UpdateQuantity(l2.ID, 4)

	sum := decimal.Zero
	for _, l := range c.Lines() {
		sum = sum.Add(l.Total)
	}
	assert.True(t, c.Total().Equal(sum))
}

func TestTotal_EmptyCartIsZero(t *testing.T) {
	assert.True(t, New().Total().IsZero())
}

func TestClear(t *testing.T) {
	c := New()
	c.AddItem(seedProduct("Azithromycin 500mg", 5, 45, 15))
	c.Clear()

	assert.Equal(t, 0, c.Len())
	assert.True(t, c.Total().IsZero())
}

func TestCheckoutItems(t *testing.T) {
	c := New()
	p := seedProduct("Diclofenac gel", 5, 18, 15)
	l := c.AddItem(p)
	c.UpdateQuantity(l.ID, 2)

	items := c.CheckoutItems()
	require.Len(t, items, 1)
	assert.Equal(t, p.ID.String(), items[0].MedicineID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, "piece", items[0].Unit)
	assert.Equal(t, "18", items[0].UnitPrice.String())
}
