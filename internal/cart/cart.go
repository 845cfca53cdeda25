// Package cart implements the session shopping cart: a small set of
// lines keyed by product id, with quantity clamping and derived totals.
package cart

import "github.com/kenpro-automation/kenpro-web/internal/catalog"

// Line is one cart entry. Display fields are captured from the catalog
// at add time, so a later catalog price change does not retroactively
// change an existing line.
type Line struct {
	ProductID int64  `json:"id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"price"`
	ImageURL  string `json:"image,omitempty"`
	Quantity  int    `json:"qty"`
}

// LineTotal returns unit price times quantity in minor units.
func (l Line) LineTotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// Cart holds lines in insertion order. No two lines share a product id;
// a line whose quantity would drop to zero is removed rather than kept.
// The zero value is an empty cart ready for use. Cart is JSON-friendly
// so it can ride inside the signed session cookie.
type Cart struct {
	Lines []Line `json:"lines,omitempty"`
}

// Add puts one unit of p in the cart: an existing line is incremented,
// otherwise a new line with quantity 1 is created. Add never fails.
func (c *Cart) Add(p catalog.Product) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == p.ID {
			c.Lines[i].Quantity++
			return
		}
	}
	c.Lines = append(c.Lines, Line{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.PriceCents,
		ImageURL:  p.ImageURL,
		Quantity:  1,
	})
}

// SetQuantity sets the quantity for productID. A quantity of zero or
// below removes the line. Unknown ids are a no-op.
func (c *Cart) SetQuantity(productID int64, quantity int) {
	if quantity <= 0 {
		c.Remove(productID)
		return
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity = quantity
			return
		}
	}
}

// Remove deletes the line for productID if present.
func (c *Cart) Remove(productID int64) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = nil
}

// Subtotal sums price times quantity over all lines, in minor units.
// It is recomputed on every call; carts never outgrow the catalog.
func (c *Cart) Subtotal() int64 {
	var total int64
	for _, l := range c.Lines {
		total += l.LineTotal()
	}
	return total
}

// Count is the badge count: the sum of quantities across all lines,
// not the number of distinct lines.
func (c *Cart) Count() int {
	var n int
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return len(c.Lines) == 0
}

// Line returns the line for productID.
func (c *Cart) Line(productID int64) (Line, bool) {
	for _, l := range c.Lines {
		if l.ProductID == productID {
			return l, true
		}
	}
	return Line{}, false
}
