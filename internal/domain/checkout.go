package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/shopspring/decimal"
)

// Fixed checkout messages shared by the server and the shop client.
const (
	MessageInvalidRequest   = "Invalid request"
	MessageMethodNotAllowed = "Method Not Allowed"
	MessageCheckoutFailed   = "Checkout failed. Try again."
)

// Contact is the shopper's checkout form.
type Contact struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// CheckoutSubmission is what the cart sends at checkout: the contact form,
// the lines in the cart at that moment and their total.
type CheckoutSubmission struct {
	Contact Contact
	Lines   []Line
	Total   decimal.Decimal
}

// CheckoutRequest is a checkout payload that passed validation. Items are
// counted but never inspected, and Total is taken as sent.
type CheckoutRequest struct {
	Contact
	Items []json.RawMessage
	Total float64
}

// ItemCount is the number of entries in the items array, not the sum of
// quantities.
func (r CheckoutRequest) ItemCount() int {
	return len(r.Items)
}

// CheckoutResult is the outcome of a checkout as reported to the shopper.
type CheckoutResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	OrderID string `json:"orderId,omitempty"`
}

// FailedResult builds an unsuccessful result carrying message.
func FailedResult(message string) CheckoutResult {
	return CheckoutResult{Success: false, Message: message}
}

// OrderPlacedMessage renders the confirmation shown after a successful
// checkout. The total is printed with exactly two decimals.
func OrderPlacedMessage(name string, itemCount int, total float64) string {
	return fmt.Sprintf("Thanks %s! Your order (%d items, total $%s) has been placed.",
		name, itemCount, FormatTotal(total))
}

// FormatTotal renders total with two decimals, rounding the exact binary
// value half away from zero. Magnitudes of 1e21 and above switch to
// exponent form.
func FormatTotal(total float64) string {
	switch {
	case math.IsNaN(total):
		return "NaN"
	case math.IsInf(total, 1):
		return "Infinity"
	case math.IsInf(total, -1):
		return "-Infinity"
	}

	abs := math.Abs(total)
	if abs >= 1e21 {
		return strconv.FormatFloat(total, 'g', -1, 64)
	}

	sign := ""
	if total < 0 {
		sign = "-"
	}
	// 1074 fractional digits hold any float64 exactly.
	exact := decimal.RequireFromString(new(big.Float).SetFloat64(abs).Text('f', 1074))
	return sign + exact.StringFixed(2)
}
