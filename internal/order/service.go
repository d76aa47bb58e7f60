package order

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/carhubteam/carhub-backend/internal/activity"
	"github.com/carhubteam/carhub-backend/internal/catalog"
	"github.com/carhubteam/carhub-backend/internal/payment"
	"github.com/carhubteam/carhub-backend/internal/pricing"
)

// VehicleCatalog is the read-only catalog lookup the order flow needs.
type VehicleCatalog interface {
	GetBySlug(ctx context.Context, slug string) (catalog.Vehicle, error)
	GetByID(id int) (catalog.Vehicle, error)
}

// PaymentGateway runs one simulated payment attempt.
type PaymentGateway interface {
	Attempt(ctx context.Context, method string, details payment.CardDetails) (payment.Result, error)
}

// ActivityRecorder appends audit records and never fails the caller.
type ActivityRecorder interface {
	Record(userID int, activityType, description string, metadata map[string]any, origin activity.Origin)
}

// Service owns the order lifecycle: creation, applying payment outcomes
// and cancellation with penalty.
type Service struct {
	repo     Repository
	catalog  VehicleCatalog
	gateway  PaymentGateway
	recorder ActivityRecorder
	log      *zap.Logger
}

func NewService(repo Repository, cat VehicleCatalog, gw PaymentGateway, rec ActivityRecorder, log *zap.Logger) *Service {
	return &Service{repo: repo, catalog: cat, gateway: gw, recorder: rec, log: log}
}

// Create opens a pending order for the vehicle identified by slug. The
// total is the contracted price, stored to the cent, and never changes
// afterwards.
func (s *Service) Create(ctx context.Context, userID int, vehicleSlug string, billing BillingDetails, paymentMethod string, origin activity.Origin) (Order, error) {
	if userID <= 0 {
		return Order{}, errors.New("invalid user")
	}
	if !billing.complete() {
		return Order{}, ErrBillingIncomplete
	}

	vehicle, err := s.catalog.GetBySlug(ctx, vehicleSlug)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return Order{}, ErrVehicleNotFound
		}
		return Order{}, err
	}

	created, err := s.repo.Create(Order{
		UserID:         userID,
		VehicleID:      vehicle.ID,
		TotalAmount:    pricing.Round2(pricing.OrderTotal(vehicle.Price)),
		PaymentStatus:  PaymentPending,
		OrderStatus:    StatusPending,
		PaymentMethod:  paymentMethod,
		BillingName:    billing.Name,
		BillingEmail:   billing.Email,
		BillingPhone:   billing.Phone,
		BillingAddress: billing.Address,
	})
	if err != nil {
		return Order{}, err
	}

	s.recorder.Record(userID, activity.TypePurchaseInitiated,
		fmt.Sprintf("Initiated purchase of %s", vehicle.Name),
		map[string]any{
			"order_id":       created.ID,
			"vehicle_id":     vehicle.ID,
			"amount":         created.TotalAmount,
			"payment_method": paymentMethod,
		}, origin)

	return created, nil
}

// Pay runs the gateway for a pending order and applies the outcome. A
// decline travels back in the Result with the order left pending so the
// purchaser can retry; concurrent or repeated terminal transitions come
// back as ErrConflict.
func (s *Service) Pay(ctx context.Context, orderID, userID int, details payment.CardDetails, origin activity.Origin) (Order, payment.Result, error) {
	ord, err := s.repo.GetByID(orderID)
	if err != nil {
		return Order{}, payment.Result{}, err
	}
	if ord.UserID != userID {
		return Order{}, payment.Result{}, ErrNotOwner
	}
	if ord.OrderStatus != StatusPending {
		return Order{}, payment.Result{}, ErrConflict
	}

	res, err := s.gateway.Attempt(ctx, ord.PaymentMethod, details)
	if err != nil {
		return Order{}, payment.Result{}, err
	}

	if res.Approved {
		txn := res.TransactionID
		if txn == "" {
			txn = payment.NewTransactionID("")
		}
		updated, err := s.repo.MarkPaymentCompleted(orderID, txn)
		if err != nil {
			return Order{}, payment.Result{}, err
		}
		s.recorder.Record(userID, activity.TypePaymentSuccessful,
			fmt.Sprintf("Successfully processed payment for order #%d", orderID),
			map[string]any{
				"order_id":       orderID,
				"vehicle_id":     ord.VehicleID,
				"amount":         ord.TotalAmount,
				"payment_method": ord.PaymentMethod,
			}, origin)
		return updated, res, nil
	}

	updated, err := s.repo.MarkPaymentFailed(orderID)
	if err != nil {
		return Order{}, payment.Result{}, err
	}
	s.recorder.Record(userID, activity.TypePaymentFailed,
		fmt.Sprintf("Payment failed for order #%d: %s", orderID, res.Message),
		map[string]any{
			"order_id":       orderID,
			"vehicle_id":     ord.VehicleID,
			"amount":         ord.TotalAmount,
			"payment_method": ord.PaymentMethod,
			"error":          res.Message,
		}, origin)
	return updated, res, nil
}

// CancelResult reports the financial outcome of a cancellation.
type CancelResult struct {
	Order           Order   `json:"order"`
	CancellationFee float64 `json:"cancellationFee"`
	RefundAmount    float64 `json:"refundAmount"`
}

// Cancel applies the cancellation penalty to a pending order. Only the
// purchaser may cancel, and only while the order has not started
// processing; a paid order cannot be cancelled through this path.
func (s *Service) Cancel(orderID, requesterID int, origin activity.Origin) (CancelResult, error) {
	ord, err := s.repo.GetByID(orderID)
	if err != nil {
		return CancelResult{}, err
	}
	if ord.UserID != requesterID {
		return CancelResult{}, ErrNotOwner
	}
	if ord.OrderStatus == StatusCancelled {
		return CancelResult{}, ErrAlreadyCancelled
	}
	if ord.OrderStatus != StatusPending {
		return CancelResult{}, ErrCannotCancel
	}

	fee := pricing.Round2(pricing.CancellationFee(ord.TotalAmount))
	refund, err := pricing.Refund(ord.TotalAmount, fee)
	if err != nil {
		// total below the fee floor: a data problem, not a business outcome
		s.log.Error("refund would be negative",
			zap.Int("orderId", orderID),
			zap.Float64("totalAmount", ord.TotalAmount),
			zap.Float64("fee", fee))
		return CancelResult{}, err
	}

	updated, err := s.repo.Cancel(orderID, fee)
	if err != nil {
		return CancelResult{}, err
	}

	s.recorder.Record(requesterID, activity.TypeOrderCancelled,
		fmt.Sprintf("Cancelled order #%d with $%.2f fine", orderID, fee),
		map[string]any{
			"order_id":         orderID,
			"original_amount":  ord.TotalAmount,
			"cancellation_fee": fee,
			"refund_amount":    refund,
		}, origin)

	return CancelResult{Order: updated, CancellationFee: fee, RefundAmount: pricing.Round2(refund)}, nil
}

// GetForUser loads one order, enforcing ownership.
func (s *Service) GetForUser(orderID, userID int) (Order, error) {
	ord, err := s.repo.GetByID(orderID)
	if err != nil {
		return Order{}, err
	}
	if ord.UserID != userID {
		return Order{}, ErrNotOwner
	}
	return ord, nil
}

func (s *Service) ListByUser(userID int) ([]Order, error) {
	return s.repo.ListByUser(userID)
}

func (s *Service) ListRecent(limit int) ([]Order, error) {
	return s.repo.ListRecent(limit)
}

func (s *Service) ListByIDs(ids []int) ([]Order, error) {
	return s.repo.ListByIDs(ids)
}

// InvoiceView is the JSON shape consumed by invoice rendering.
type InvoiceView struct {
	Order     Order           `json:"order"`
	Vehicle   catalog.Vehicle `json:"vehicle"`
	Breakdown pricing.Invoice `json:"breakdown"`
	Total     float64         `json:"total"`
}

// Invoice builds the invoice view for an order the requester owns. The fee
// breakdown is derived from the vehicle's base price for display; the
// authoritative charge stays Order.TotalAmount.
func (s *Service) Invoice(orderID, userID int) (InvoiceView, error) {
	ord, err := s.GetForUser(orderID, userID)
	if err != nil {
		return InvoiceView{}, err
	}

	vehicle, err := s.catalog.GetByID(ord.VehicleID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return InvoiceView{}, ErrVehicleNotFound
		}
		return InvoiceView{}, err
	}

	inv := pricing.Breakdown(vehicle.Price)
	inv.DeliveryFee = pricing.Round2(inv.DeliveryFee)
	inv.ProcessingFee = pricing.Round2(inv.ProcessingFee)
	inv.Tax = pricing.Round2(inv.Tax)
	inv.Subtotal = pricing.Round2(inv.Subtotal)

	return InvoiceView{
		Order:     ord,
		Vehicle:   vehicle,
		Breakdown: inv,
		Total:     pricing.Round2(ord.TotalAmount),
	}, nil
}
