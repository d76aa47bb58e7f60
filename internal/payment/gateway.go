package payment

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Supported payment methods. Anything else is rejected, never silently
// accepted through a fallback path.
const (
	MethodCreditCard   = "credit_card"
	MethodPayPal       = "paypal"
	MethodBankTransfer = "bank_transfer"
	MethodCash         = "cash"
)

// Result is the outcome of one gateway attempt. Declines are expected
// outcomes and travel in the value; only faults (context cancellation,
// randomness failure) come back as errors.
type Result struct {
	Approved      bool   `json:"approved"`
	TransactionID string `json:"transactionId,omitempty"`
	Message       string `json:"message"`
}

// Gateway simulates a payment processor. It performs no network I/O; the
// configured delay stands in for the round-trip a real gateway would take.
// The delay runs before any state is touched and holds no locks.
type Gateway struct {
	log   *zap.Logger
	delay time.Duration
	now   func() time.Time
}

// NewGateway returns a gateway with the default 1.5s simulated latency.
func NewGateway(log *zap.Logger) *Gateway {
	return NewGatewayWithDelay(log, 1500*time.Millisecond)
}

// NewGatewayWithDelay allows tuning or disabling the simulated latency.
func NewGatewayWithDelay(log *zap.Logger, delay time.Duration) *Gateway {
	return &Gateway{log: log, delay: delay, now: time.Now}
}

// Attempt runs one simulated payment. Card details are only consulted for
// the credit_card method.
func (g *Gateway) Attempt(ctx context.Context, method string, details CardDetails) (Result, error) {
	method = strings.ToLower(strings.TrimSpace(method))

	switch method {
	case MethodCreditCard, MethodPayPal, MethodBankTransfer, MethodCash:
	default:
		g.log.Warn("unsupported payment method", zap.String("method", method))
		return Result{Message: "Unsupported payment method."}, nil
	}

	// simulated network round-trip
	if err := wait(ctx, g.delay); err != nil {
		return Result{}, err
	}

	switch method {
	case MethodCreditCard:
		return g.attemptCreditCard(details)
	case MethodPayPal:
		// paypal takes a little longer, simulating the provider redirect
		if err := wait(ctx, g.delay/3); err != nil {
			return Result{}, err
		}
		return Result{Approved: true, TransactionID: NewTransactionID(MethodPayPal), Message: "PayPal payment approved"}, nil
	case MethodBankTransfer:
		return Result{Approved: true, TransactionID: NewTransactionID(MethodBankTransfer), Message: "Bank transfer confirmed"}, nil
	default: // cash
		return Result{Approved: true, TransactionID: NewTransactionID(MethodCash), Message: "Cash payment recorded"}, nil
	}
}

func (g *Gateway) attemptCreditCard(details CardDetails) (Result, error) {
	if err := ValidateCard(details, g.now()); err != nil {
		var vErr *ValidationError
		if errors.As(err, &vErr) {
			return Result{Message: vErr.Message}, nil
		}
		return Result{}, err
	}

	card := strings.ReplaceAll(details.Number, " ", "")
	if !LuhnValid(card) {
		// warn only: synthetic test card numbers are allowed through
		g.log.Warn("card number failed checksum", zap.String("card", maskCard(card)))
	}
	if strings.HasSuffix(card, "0000") {
		return Result{Message: "Card declined by issuer."}, nil
	}
	return Result{Approved: true, TransactionID: NewTransactionID(MethodCreditCard), Message: "Approved"}, nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NewTransactionID builds a method-specific transaction id with a
// crypto-random hex suffix. Invoice and report tooling depends on these
// exact formats. Unknown methods get the generic TXN_ form.
func NewTransactionID(method string) string {
	switch method {
	case MethodCreditCard:
		return "CC_" + randomHex(12)
	case MethodPayPal:
		return "PP_" + randomHex(12)
	case MethodBankTransfer:
		return "BT_" + randomHex(12)
	case MethodCash:
		return "CASH_" + randomHex(8)
	default:
		return "TXN_" + randomHex(8)
	}
}

func randomHex(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return hex.EncodeToString(buf)
}
