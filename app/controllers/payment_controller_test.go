package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/bistro/app/models"
	"github.com/shashiranjanraj/bistro/app/services"
	"github.com/shashiranjanraj/bistro/pkg/auth"
	"github.com/shashiranjanraj/bistro/pkg/middleware"
)

type stubGateway struct {
	amount int64
	secret string
}

func (g *stubGateway) CreateIntent(_ context.Context, amountCents int64, _ string) (string, error) {
	g.amount = amountCents
	return g.secret, nil
}

type stubPaymentStore struct {
	inserted *models.Payment
	id       primitive.ObjectID
}

func (s *stubPaymentStore) Insert(_ context.Context, p *models.Payment) (primitive.ObjectID, error) {
	s.inserted = p
	return s.id, nil
}

type stubCartCleaner struct{}

func (c *stubCartCleaner) DeleteByIDs(_ context.Context, ids []primitive.ObjectID) (int64, error) {
	return int64(len(ids)), nil
}

func authedPost(t *testing.T, handler http.HandlerFunc, path, email string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(buf))
	ctx := middleware.WithClaims(req.Context(), &auth.Claims{Email: email})
	rec := httptest.NewRecorder()
	handler(rec, req.WithContext(ctx))
	return rec
}

func TestCreateIntentReturnsClientSecret(t *testing.T) {
	gw := &stubGateway{secret: "pi_secret_abc"}
	svc := services.NewPaymentService(gw, &stubPaymentStore{}, &stubCartCleaner{})
	ctrl := NewPaymentController(svc, nil)

	rec := authedPost(t, ctrl.CreateIntent, "/create-payment-intent", "diner@example.com",
		map[string]interface{}{"price": 25.00})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(2500), gw.amount)
	body := decodeEnvelope(t, rec)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "pi_secret_abc", data["clientSecret"])
}

func TestCreateIntentRejectsMissingPrice(t *testing.T) {
	svc := services.NewPaymentService(&stubGateway{}, &stubPaymentStore{}, &stubCartCleaner{})
	ctrl := NewPaymentController(svc, nil)

	rec := authedPost(t, ctrl.CreateIntent, "/create-payment-intent", "diner@example.com",
		map[string]interface{}{})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestRecordPaymentForOwnIdentity(t *testing.T) {
	store := &stubPaymentStore{id: primitive.NewObjectID()}
	svc := services.NewPaymentService(&stubGateway{}, store, &stubCartCleaner{})
	ctrl := NewPaymentController(svc, nil)

	payload := map[string]interface{}{
		"email":         "diner@example.com",
		"amount":        25.00,
		"transactionId": "pi_123",
		"cartIds":       []string{primitive.NewObjectID().Hex(), primitive.NewObjectID().Hex()},
	}

	rec := authedPost(t, ctrl.Record, "/payments", "diner@example.com", payload)

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeEnvelope(t, rec)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, store.id.Hex(), data["insertedId"])
	assert.Equal(t, float64(2), data["deletedCount"])
}

func TestHistoryForAnotherUserIsForbidden(t *testing.T) {
	svc := services.NewPaymentService(&stubGateway{}, &stubPaymentStore{}, &stubCartCleaner{})
	ctrl := NewPaymentController(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/payments/victim@example.com", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("email", "victim@example.com")
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	ctx = middleware.WithClaims(ctx, &auth.Claims{Email: "nosy@example.com"})

	rec := httptest.NewRecorder()
	ctrl.History(rec, req.WithContext(ctx))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRecordPaymentBadCartID(t *testing.T) {
	svc := services.NewPaymentService(&stubGateway{}, &stubPaymentStore{}, &stubCartCleaner{})
	ctrl := NewPaymentController(svc, nil)

	payload := map[string]interface{}{
		"email":         "diner@example.com",
		"amount":        25.00,
		"transactionId": "pi_123",
		"cartIds":       []string{"nope"},
	}

	rec := authedPost(t, ctrl.Record, "/payments", "diner@example.com", payload)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
