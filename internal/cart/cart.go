// Package cart holds a terminal's uncommitted selection.
package cart

import (
	"sort"
	"sync"

	"github.com/fekuna/omnipos-booth-service/internal/model"
	"github.com/shopspring/decimal"
)

// StockReader reports the current on-hand quantity of a product.
type StockReader interface {
	Current(productID int64) (int, bool)
}

type Pricer interface {
	Price(productID int64, quantity int) decimal.Decimal
}

// Cart maps product IDs to quantities; a present key always holds a
// quantity above zero. Safe for concurrent use.
type Cart struct {
	mu    sync.Mutex
	lines map[int64]int
}

func New() *Cart {
	return &Cart{lines: make(map[int64]int)}
}

// Increment adds one unit of productID. It is a no-op, returning false, when
// the stock level is unknown or the cart already holds all of it. The cap
// reads a snapshot, so it does not stop two terminals selling the same unit.
func (c *Cart) Increment(productID int64, stock StockReader) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	current, ok := stock.Current(productID)
	if !ok {
		return false
	}
	q := c.lines[productID]
	if q >= current {
		return false
	}
	c.lines[productID] = q + 1
	return true
}

// Decrement removes one unit; the line disappears when it reaches zero.
func (c *Cart) Decrement(productID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	q, ok := c.lines[productID]
	if !ok {
		return false
	}
	if q > 1 {
		c.lines[productID] = q - 1
	} else {
		delete(c.lines, productID)
	}
	return true
}

// Lines returns the cart ordered by product ID.
func (c *Cart) Lines() []model.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()

	lines := make([]model.CartLine, 0, len(c.lines))
	for id, q := range c.lines {
		lines = append(lines, model.CartLine{ProductID: id, Quantity: q})
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ProductID < lines[j].ProductID })
	return lines
}

// Total prices every line with p; it is never cached.
func (c *Cart) Total(p Pricer) decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines() {
		total = total.Add(p.Price(l.ProductID, l.Quantity))
	}
	return total
}

func (c *Cart) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, q := range c.lines {
		n += q
	}
	return n
}

func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = make(map[int64]int)
}
