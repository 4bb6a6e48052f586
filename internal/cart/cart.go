// Package cart implements the in-memory sales cart for one active checkout
// session: line items, quantity/price clamping and VAT-inclusive totals.
// All money math uses shopspring/decimal; float arithmetic never touches a
// price.
package cart

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/frogshopping/PharmaCare-POS-sub001/internal/dto"
)

// Unit is the fixed unit-of-measure enumeration. The unit is informational
// only: switching a line between piece/box/strip never reprices it.
type Unit string

const (
	UnitPiece Unit = "piece"
	UnitBox   Unit = "box"
	UnitStrip Unit = "strip"
)

// ParseUnit validates a unit string against the enumeration.
func ParseUnit(s string) (Unit, error) {
	switch Unit(s) {
	case UnitPiece, UnitBox, UnitStrip:
		return Unit(s), nil
	}
	return "", fmt.Errorf("cart: unknown unit %q", s)
}

var oneHundred = decimal.NewFromInt(100)

// Product is the catalog view a line is created from.
type Product struct {
	ID        uuid.UUID
	Name      string
	Stock     int
	UnitPrice decimal.Decimal
	VATPct    decimal.Decimal
	Unit      Unit
}

// Line is one sellable row in the cart. Total is recomputed on every
// mutation and always equals Quantity × UnitPrice × (1 + VATPct/100).
type Line struct {
	ID        string
	ProductID uuid.UUID
	Name      string
	Stock     int
	Quantity  int
	Unit      Unit
	UnitPrice decimal.Decimal
	VATPct    decimal.Decimal
	Total     decimal.Decimal
}

func (l *Line) recompute() {
	vatFactor := decimal.NewFromInt(1).Add(l.VATPct.Div(oneHundred))
	l.Total = l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))).Mul(vatFactor)
}

// clampQuantity keeps the quantity inside [1, stock]. Malformed input
// (zero or negative, the coercion default for unparseable entry) lands on
// the floor rather than erroring — a deliberate best-effort policy. A line
// whose product has no stock left stays pinned at the floor of 1 so the
// quantity can never outgrow availability.
func (l *Line) clampQuantity(q int) {
	if q < 1 || l.Stock < 1 {
		q = 1
	}
	if l.Stock >= 1 && q > l.Stock {
		q = l.Stock
	}
	l.Quantity = q
}

// Cart holds the ordered line items of an in-progress sale. Display order
// equals entry order; line IDs are unique within the cart. A Cart is not
// safe for concurrent use — it is owned by a single checkout session.
type Cart struct {
	lines []*Line
}

func New() *Cart {
	return &Cart{}
}

func (c *Cart) find(lineID string) *Line {
	for _, l := range c.lines {
		if l.ID == lineID {
			return l
		}
	}
	return nil
}

// AddItem appends a new line with quantity 1, defaulting price/VAT/unit from
// the product. Adding a product already in the cart merges: the existing
// line's quantity is incremented by 1, capped at stock.
func (c *Cart) AddItem(p Product) *Line {
	if existing := c.find(p.ID.String()); existing != nil {
		existing.clampQuantity(existing.Quantity + 1)
		existing.recompute()
		return existing
	}

	unit := p.Unit
	if _, err := ParseUnit(string(unit)); err != nil {
		unit = UnitPiece
	}
	l := &Line{
		ID:        p.ID.String(),
		ProductID: p.ID,
		Name:      p.Name,
		Stock:     p.Stock,
		Unit:      unit,
		UnitPrice: p.UnitPrice,
		VATPct:    p.VATPct,
	}
	l.clampQuantity(1)
	l.recompute()
	c.lines = append(c.lines, l)
	return l
}

// UpdateQuantity clamps q into [1, stock] and recomputes the line total.
// Unknown line IDs are silently ignored.
func (c *Cart) UpdateQuantity(lineID string, q int) {
	l := c.find(lineID)
	if l == nil {
		return
	}
	l.clampQuantity(q)
	l.recompute()
}

// UpdateUnitPrice rejects negative values by clamping to zero, then
// recomputes the line total.
func (c *Cart) UpdateUnitPrice(lineID string, price decimal.Decimal) {
	l := c.find(lineID)
	if l == nil {
		return
	}
	if price.IsNegative() {
		price = decimal.Zero
	}
	l.UnitPrice = price
	l.recompute()
}

// UpdateUnit switches the unit of measure. The line total is NOT recomputed:
// the unit is logistics metadata in this design.
func (c *Cart) UpdateUnit(lineID string, unit Unit) error {
	if _, err := ParseUnit(string(unit)); err != nil {
		return err
	}
	if l := c.find(lineID); l != nil {
		l.Unit = unit
	}
	return nil
}

// RemoveItem deletes the line; removing an absent ID is a no-op.
func (c *Cart) RemoveItem(lineID string) {
	for i, l := range c.lines {
		if l.ID == lineID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Total sums all line totals; an empty cart totals zero.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Total)
	}
	return total
}

// Lines returns a copy of the lines in entry order.
func (c *Cart) Lines() []Line {
	out := make([]Line, 0, len(c.lines))
	for _, l := range c.lines {
		out = append(out, *l)
	}
	return out
}

func (c *Cart) Len() int { return len(c.lines) }

// Clear resets the cart after checkout completion or explicit reset.
func (c *Cart) Clear() {
	c.lines = nil
}

// CheckoutItems converts the cart into the sale registration payload.
func (c *Cart) CheckoutItems() []dto.SaleItemRequest {
	items := make([]dto.SaleItemRequest, 0, len(c.lines))
	for _, l := range c.lines {
		price := l.UnitPrice
		items = append(items, dto.SaleItemRequest{
			MedicineID: l.ProductID.String(),
			Quantity:   l.Quantity,
			Unit:       string(l.Unit),
			UnitPrice:  &price,
		})
	}
	return items
}
