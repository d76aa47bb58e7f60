package order

import "errors"

// Payment status values.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

// Order status values. pending is the only state that permits a transition:
// to processing on payment success, or to cancelled on explicit
// cancellation. processing and cancelled are terminal here.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCancelled  = "cancelled"
)

var (
	ErrNotFound          = errors.New("order not found")
	ErrVehicleNotFound   = errors.New("vehicle not found")
	ErrNotOwner          = errors.New("order does not belong to this user")
	ErrAlreadyCancelled  = errors.New("order is already cancelled")
	ErrCannotCancel      = errors.New("order can no longer be cancelled")
	ErrConflict          = errors.New("order was changed by a concurrent request")
	ErrBillingIncomplete = errors.New("billing details are incomplete")
)

// Order represents a purchase of one vehicle at a contracted total.
// TotalAmount is fixed at creation and never decremented; the cancellation
// fee is tracked separately. The billing fields are a snapshot taken at
// order time so invoices reflect what was billed, not the profile as it
// looks later.
type Order struct {
	ID              int     `json:"orderId"`
	UserID          int     `json:"userId"`
	VehicleID       int     `json:"vehicleId"`
	TotalAmount     float64 `json:"totalAmount"`
	CancellationFee float64 `json:"cancellationFee"`
	PaymentStatus   string  `json:"paymentStatus"`
	OrderStatus     string  `json:"orderStatus"`
	PaymentMethod   string  `json:"paymentMethod"`
	TransactionID   *string `json:"transactionId,omitempty"`
	BillingName     string  `json:"billingName"`
	BillingEmail    string  `json:"billingEmail"`
	BillingPhone    string  `json:"billingPhone"`
	BillingAddress  string  `json:"billingAddress"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// BillingDetails is the snapshot captured from the checkout form. All
// fields are required.
type BillingDetails struct {
	Name    string `json:"billingName"`
	Email   string `json:"billingEmail"`
	Phone   string `json:"billingPhone"`
	Address string `json:"billingAddress"`
}

func (b BillingDetails) complete() bool {
	return b.Name != "" && b.Email != "" && b.Phone != "" && b.Address != ""
}
