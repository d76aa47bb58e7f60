package pricing

import (
	"errors"
	"math"
)

// Rates applied on top of a vehicle's base price.
const (
	markupRate     = 0.10
	deliveryRate   = 0.01
	processingRate = 0.02
	taxRate        = 0.08

	cancellationRate   = 0.20
	minCancellationFee = 500
)

// ErrNegativeRefund indicates a stored order total below the cancellation
// fee floor. Callers must treat this as a data problem, not clamp it.
var ErrNegativeRefund = errors.New("refund amount is negative")

// OrderTotal returns the contracted total for a base vehicle price: the
// price plus a flat 10% covering tax and processing. Full float precision
// is kept; use Round2 at presentation time.
func OrderTotal(basePrice float64) float64 {
	return basePrice * (1 + markupRate)
}

// Round2 rounds a currency amount to two decimal places for display.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Invoice is the fee breakdown printed on invoices. Each line is derived
// from the base price independently; the subtotal is the sum of those lines
// and is not reconciled against the stored order total, which uses the flat
// markup in OrderTotal.
type Invoice struct {
	BasePrice     float64 `json:"basePrice"`
	DeliveryFee   float64 `json:"deliveryFee"`
	ProcessingFee float64 `json:"processingFee"`
	Tax           float64 `json:"tax"`
	Subtotal      float64 `json:"subtotal"`
}

// Breakdown builds the display breakdown for a base vehicle price.
func Breakdown(basePrice float64) Invoice {
	delivery := basePrice * deliveryRate
	processing := basePrice * processingRate
	tax := basePrice * taxRate
	return Invoice{
		BasePrice:     basePrice,
		DeliveryFee:   delivery,
		ProcessingFee: processing,
		Tax:           tax,
		Subtotal:      basePrice + delivery + processing + tax,
	}
}

// CancellationFee is 20% of the order total with a 500 floor.
func CancellationFee(totalAmount float64) float64 {
	fee := totalAmount * cancellationRate
	if fee < minCancellationFee {
		return minCancellationFee
	}
	return fee
}

// Refund returns the amount owed back after a cancellation fee is applied.
// A negative result means the total is below the fee floor and is reported
// as ErrNegativeRefund.
func Refund(totalAmount, fee float64) (float64, error) {
	refund := totalAmount - fee
	if refund < 0 {
		return 0, ErrNegativeRefund
	}
	return refund, nil
}
