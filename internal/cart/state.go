// Package cart is the shopper-side cart: an immutable State value and a
// Session that holds the current State and runs checkouts.
package cart

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/Design-Arena-Gens/agentic-a37cca32/internal/domain"
)

// State is one snapshot of the cart UI. Every operation returns a new State
// and leaves the receiver untouched, so a State can be shared freely.
type State struct {
	lines       []domain.Line
	open        bool
	checkingOut bool
	result      *domain.CheckoutResult
}

// NewState returns a closed cart holding lines. Lines with a non-positive
// quantity are dropped and repeated products are merged.
func NewState(lines ...domain.Line) State {
	var s State
	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		if i := s.index(l.Product.ID); i >= 0 {
			s.lines[i].Quantity += l.Quantity
			continue
		}
		s.lines = append(s.lines, l)
	}
	return s
}

// Lines returns the cart lines in the order products were first added.
func (s State) Lines() []domain.Line {
	return slices.Clone(s.lines)
}

// IsEmpty reports whether the cart has no lines.
func (s State) IsEmpty() bool {
	return len(s.lines) == 0
}

// IsOpen reports whether the cart drawer is shown.
func (s State) IsOpen() bool {
	return s.open
}

// CheckingOut reports whether a checkout is in flight.
func (s State) CheckingOut() bool {
	return s.checkingOut
}

// Result returns the outcome of the last checkout, if any.
func (s State) Result() (domain.CheckoutResult, bool) {
	if s.result == nil {
		return domain.CheckoutResult{}, false
	}
	return *s.result, true
}

// Quantity returns how many of the product are in the cart.
func (s State) Quantity(productID int) int {
	if i := s.index(productID); i >= 0 {
		return s.lines[i].Quantity
	}
	return 0
}

// Total is the sum of price times quantity over all lines.
func (s State) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// ItemCount is the sum of quantities, shown on the cart badge.
func (s State) ItemCount() int {
	n := 0
	for _, l := range s.lines {
		n += l.Quantity
	}
	return n
}

// AddToCart adds one unit of p, merging with an existing line for the same
// product, and opens the drawer.
func (s State) AddToCart(p domain.Product) State {
	next := s.withLines()
	if i := next.index(p.ID); i >= 0 {
		next.lines[i].Quantity++
	} else {
		next.lines = append(next.lines, domain.Line{Product: p, Quantity: 1})
	}
	next.open = true
	return next
}

// UpdateQuantity adds delta to the product's quantity, flooring at zero.
// A line that reaches zero is removed. Unknown products leave the state
// unchanged.
func (s State) UpdateQuantity(productID, delta int) State {
	i := s.index(productID)
	if i < 0 {
		return s
	}

	next := s.withLines()
	q := max(0, next.lines[i].Quantity+delta)
	if q == 0 {
		next.lines = slices.Delete(next.lines, i, i+1)
	} else {
		next.lines[i].Quantity = q
	}
	return next
}

// SetQuantity sets the product's quantity to q, flooring at zero. Zero
// removes the line. Unknown products leave the state unchanged.
func (s State) SetQuantity(productID, q int) State {
	return s.UpdateQuantity(productID, q-s.Quantity(productID))
}

// Clear empties the cart.
func (s State) Clear() State {
	s.lines = nil
	return s
}

// OpenCart shows the drawer.
func (s State) OpenCart() State {
	s.open = true
	return s
}

// CloseCart hides the drawer.
func (s State) CloseCart() State {
	s.open = false
	return s
}

// beginCheckout marks a checkout as pending and forgets the previous result.
func (s State) beginCheckout() State {
	s.checkingOut = true
	s.result = nil
	return s
}

// finishCheckout records res. A successful result also clears the cart.
func (s State) finishCheckout(res domain.CheckoutResult) State {
	if res.Success {
		s = s.Clear()
	}
	s.checkingOut = false
	s.result = &res
	return s
}

func (s State) index(productID int) int {
	return slices.IndexFunc(s.lines, func(l domain.Line) bool {
		return l.Product.ID == productID
	})
}

// withLines returns s with its own copy of the lines slice.
func (s State) withLines() State {
	s.lines = slices.Clone(s.lines)
	return s
}
