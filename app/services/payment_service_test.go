package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/bistro/app/models"
)

type fakeGateway struct {
	lastAmount   int64
	lastCurrency string
	secret       string
	err          error
}

func (g *fakeGateway) CreateIntent(_ context.Context, amountCents int64, currency string) (string, error) {
	g.lastAmount = amountCents
	g.lastCurrency = currency
	return g.secret, g.err
}

type fakePaymentStore struct {
	inserted *models.Payment
	id       primitive.ObjectID
	err      error
}

func (s *fakePaymentStore) Insert(_ context.Context, p *models.Payment) (primitive.ObjectID, error) {
	if s.err != nil {
		return primitive.NilObjectID, s.err
	}
	s.inserted = p
	return s.id, nil
}

type fakeCartCleaner struct {
	ids     []primitive.ObjectID
	deleted int64
	err     error
}

func (c *fakeCartCleaner) DeleteByIDs(_ context.Context, ids []primitive.ObjectID) (int64, error) {
	c.ids = ids
	return c.deleted, c.err
}

func TestCreateIntentConvertsToCents(t *testing.T) {
	gw := &fakeGateway{secret: "pi_secret"}
	svc := NewPaymentService(gw, &fakePaymentStore{}, &fakeCartCleaner{})

	secret, err := svc.CreateIntent(context.Background(), 25.00)

	require.NoError(t, err)
	assert.Equal(t, "pi_secret", secret)
	assert.Equal(t, int64(2500), gw.lastAmount)
	assert.Equal(t, "usd", gw.lastCurrency)
}

func TestCreateIntentTruncatesFractionalCents(t *testing.T) {
	gw := &fakeGateway{secret: "pi_secret"}
	svc := NewPaymentService(gw, &fakePaymentStore{}, &fakeCartCleaner{})

	_, err := svc.CreateIntent(context.Background(), 10.999)

	require.NoError(t, err)
	assert.Equal(t, int64(1099), gw.lastAmount)
}

func TestCreateIntentRejectsNonPositiveAmount(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewPaymentService(gw, &fakePaymentStore{}, &fakeCartCleaner{})

	for _, amount := range []float64{0, -4.20} {
		_, err := svc.CreateIntent(context.Background(), amount)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	}
	assert.Zero(t, gw.lastAmount, "gateway must not be called")
}

func TestCreateIntentPropagatesGatewayError(t *testing.T) {
	gw := &fakeGateway{err: errors.New("stripe is down")}
	svc := NewPaymentService(gw, &fakePaymentStore{}, &fakeCartCleaner{})

	_, err := svc.CreateIntent(context.Background(), 12.50)
	assert.ErrorContains(t, err, "stripe is down")
}

func TestRecordPaymentSettlesCart(t *testing.T) {
	cartID := primitive.NewObjectID()
	paymentID := primitive.NewObjectID()
	store := &fakePaymentStore{id: paymentID}
	carts := &fakeCartCleaner{deleted: 1}
	svc := NewPaymentService(&fakeGateway{}, store, carts)

	payment := &models.Payment{
		Email:         "diner@example.com",
		Amount:        25.00,
		TransactionID: "pi_123",
		CartIDs:       []string{cartID.Hex()},
		Status:        "pending",
	}
	result, err := svc.RecordPayment(context.Background(), payment)

	require.NoError(t, err)
	assert.Equal(t, paymentID, result.PaymentID)
	assert.Equal(t, int64(1), result.DeletedCount)
	assert.Equal(t, []primitive.ObjectID{cartID}, carts.ids)
	require.NotNil(t, store.inserted)
	assert.Equal(t, "usd", store.inserted.Currency)
}

func TestRecordPaymentRejectsMalformedCartID(t *testing.T) {
	store := &fakePaymentStore{id: primitive.NewObjectID()}
	svc := NewPaymentService(&fakeGateway{}, store, &fakeCartCleaner{})

	_, err := svc.RecordPayment(context.Background(), &models.Payment{
		CartIDs: []string{"not-an-object-id"},
	})

	assert.ErrorIs(t, err, ErrInvalidCartID)
	assert.Nil(t, store.inserted, "nothing may be persisted for a bad request")
}

func TestRecordPaymentInsertFailureSkipsCartDelete(t *testing.T) {
	carts := &fakeCartCleaner{}
	svc := NewPaymentService(&fakeGateway{}, &fakePaymentStore{err: errors.New("write concern")}, carts)

	_, err := svc.RecordPayment(context.Background(), &models.Payment{
		CartIDs: []string{primitive.NewObjectID().Hex()},
	})

	require.Error(t, err)
	assert.Nil(t, carts.ids, "cart delete must not run when the insert fails")
}

func TestRecordPaymentKeepsPaymentWhenCartDeleteFails(t *testing.T) {
	paymentID := primitive.NewObjectID()
	store := &fakePaymentStore{id: paymentID}
	carts := &fakeCartCleaner{err: errors.New("connection reset")}
	svc := NewPaymentService(&fakeGateway{}, store, carts)

	result, err := svc.RecordPayment(context.Background(), &models.Payment{
		CartIDs: []string{primitive.NewObjectID().Hex()},
	})

	require.Error(t, err)
	assert.Equal(t, paymentID, result.PaymentID, "inserted payment id is still reported")
	assert.NotNil(t, store.inserted, "payment record stays behind")
}
