package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/bistro/app/models"
	"github.com/shashiranjanraj/bistro/pkg/event"
	"github.com/shashiranjanraj/bistro/pkg/logger"
	"github.com/shashiranjanraj/bistro/pkg/metrics"
)

// Currency is the fixed settlement currency.
const Currency = "usd"

// EventPaymentRecorded is fired after a payment document is persisted.
// The payload is the *models.Payment that was stored.
const EventPaymentRecorded = "payment.recorded"

var (
	// ErrInvalidAmount rejects non-positive intent amounts before the
	// processor sees them.
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrInvalidCartID rejects malformed cart item ids in a settlement.
	ErrInvalidCartID = errors.New("invalid cart item id")
)

// Gateway is the external payment processor surface the service depends on.
type Gateway interface {
	CreateIntent(ctx context.Context, amountCents int64, currency string) (clientSecret string, err error)
}

// PaymentStore persists payment records.
type PaymentStore interface {
	Insert(ctx context.Context, payment *models.Payment) (primitive.ObjectID, error)
}

// CartCleaner removes settled cart items.
type CartCleaner interface {
	DeleteByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error)
}

// SettlementResult carries both step outcomes of a recorded payment back to
// the caller, mirroring the insert result and delete result pair.
type SettlementResult struct {
	PaymentID    primitive.ObjectID `json:"insertedId"`
	DeletedCount int64              `json:"deletedCount"`
}

// PaymentService orchestrates intent creation and the two-step settlement:
// persist the payment record, then bulk-delete the cart items it references.
// The two steps are deliberately not transactional, matching the observed
// checkout flow: a delete failure after a successful insert leaves the
// payment in place and surfaces the error to the caller.
type PaymentService struct {
	gateway  Gateway
	payments PaymentStore
	carts    CartCleaner
}

func NewPaymentService(gateway Gateway, payments PaymentStore, carts CartCleaner) *PaymentService {
	return &PaymentService{gateway: gateway, payments: payments, carts: carts}
}

// CreateIntent converts amount (currency units) to the smallest unit,
// truncating, and asks the processor for a card-only payment intent.
// Processor failures propagate to the caller.
func (s *PaymentService) CreateIntent(ctx context.Context, amount float64) (string, error) {
	if amount <= 0 {
		return "", ErrInvalidAmount
	}

	cents := int64(amount * 100)
	secret, err := s.gateway.CreateIntent(ctx, cents, Currency)
	if err != nil {
		metrics.PaymentIntents.WithLabelValues("error").Inc()
		return "", err
	}

	metrics.PaymentIntents.WithLabelValues("ok").Inc()
	return secret, nil
}

// RecordPayment inserts the payment document, then deletes the cart items
// it settles. Step 2 only runs after step 1 succeeds. There is no rollback:
// if the delete fails the result still carries the inserted payment id
// together with the error.
func (s *PaymentService) RecordPayment(ctx context.Context, payment *models.Payment) (SettlementResult, error) {
	cartIDs, err := parseObjectIDs(payment.CartIDs)
	if err != nil {
		return SettlementResult{}, err
	}

	if payment.Currency == "" {
		payment.Currency = Currency
	}

	paymentID, err := s.payments.Insert(ctx, payment)
	if err != nil {
		return SettlementResult{}, fmt.Errorf("record payment: %w", err)
	}

	result := SettlementResult{PaymentID: paymentID}
	metrics.PaymentsRecorded.Inc()

	deleted, err := s.carts.DeleteByIDs(ctx, cartIDs)
	if err != nil {
		// Accepted inconsistency: the payment document stays behind.
		logger.WithCtx(ctx).Error("cart cleanup failed after payment insert",
			"payment_id", paymentID.Hex(), "email", payment.Email, "error", err)
		return result, fmt.Errorf("clear settled cart items: %w", err)
	}

	result.DeletedCount = deleted
	metrics.CartItemsSettled.Add(float64(deleted))

	event.FireAsync(EventPaymentRecorded, payment)
	return result, nil
}

func parseObjectIDs(hexes []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(hexes))
	for _, h := range hexes {
		id, err := primitive.ObjectIDFromHex(h)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidCartID, h)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
