package engine

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CartView is the read-only, already-normalized cart snapshot the engine
// evaluates. Producers exclude bundled child lines before building it.
type CartView struct {
	// Subtotal is the pre-discount merchandise total.
	Subtotal decimal.Decimal
	// ItemCount is the total unit quantity across all lines.
	ItemCount int
	// Lines in cart order.
	Lines []CartLine
}

// CartLine is one product position in the cart.
type CartLine struct {
	ProductID string
	UnitPrice decimal.Decimal
	Quantity  int
}

// NewCartView derives subtotal and unit count from the given lines, for
// hosts that do not track those separately.
func NewCartView(lines ...CartLine) *CartView {
	cart := &CartView{Lines: lines, Subtotal: decimal.Zero}
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		cart.ItemCount += line.Quantity
		cart.Subtotal = cart.Subtotal.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return cart
}

// unitPrices expands every line into one entry per unit of quantity,
// skipping unpriced units, sorted ascending.
func (c *CartView) unitPrices() []decimal.Decimal {
	var prices []decimal.Decimal
	for _, line := range c.Lines {
		if line.Quantity <= 0 || !line.UnitPrice.IsPositive() {
			continue
		}
		for i := 0; i < line.Quantity; i++ {
			prices = append(prices, line.UnitPrice)
		}
	}
	sort.Slice(prices, func(i, j int) bool {
		return prices[i].LessThan(prices[j])
	})
	return prices
}

// productQuantity sums the quantity of every line for the given product.
func (c *CartView) productQuantity(productID string) int {
	total := 0
	for _, line := range c.Lines {
		if line.ProductID == productID && line.Quantity > 0 {
			total += line.Quantity
		}
	}
	return total
}

// distinctProducts counts unique product ids present with quantity > 0.
func (c *CartView) distinctProducts() int {
	seen := make(map[string]struct{}, len(c.Lines))
	for _, line := range c.Lines {
		if line.ProductID == "" || line.Quantity <= 0 {
			continue
		}
		seen[line.ProductID] = struct{}{}
	}
	return len(seen)
}
