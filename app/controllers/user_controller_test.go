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
	"github.com/shashiranjanraj/bistro/pkg/auth"
	"github.com/shashiranjanraj/bistro/pkg/middleware"
)

type fakeUserStore struct {
	byEmail  map[string]*models.User
	inserted *models.User
	insertID primitive.ObjectID
	promoted primitive.ObjectID
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return s.byEmail[email], nil
}

func (s *fakeUserStore) Insert(_ context.Context, u *models.User) (primitive.ObjectID, error) {
	s.inserted = u
	return s.insertID, nil
}

func (s *fakeUserStore) All(context.Context) ([]models.User, error) {
	users := make([]models.User, 0, len(s.byEmail))
	for _, u := range s.byEmail {
		users = append(users, *u)
	}
	return users, nil
}

func (s *fakeUserStore) DeleteByID(context.Context, primitive.ObjectID) (int64, error) {
	return 1, nil
}

func (s *fakeUserStore) PromoteToAdmin(_ context.Context, id primitive.ObjectID) (int64, error) {
	s.promoted = id
	return 1, nil
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(buf))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestRegisterNewUser(t *testing.T) {
	store := &fakeUserStore{byEmail: map[string]*models.User{}, insertID: primitive.NewObjectID()}
	ctrl := NewUserController(store)

	rec := postJSON(t, ctrl.Register, "/users", map[string]interface{}{
		"name":     "Diner",
		"email":    "diner@example.com",
		"password": "hunter22",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, store.inserted)
	assert.Equal(t, "diner@example.com", store.inserted.Email)
	assert.NotEqual(t, "hunter22", store.inserted.Password, "password must be stored hashed")
	assert.True(t, auth.CheckPassword(store.inserted.Password, "hunter22"))
}

func TestRegisterDuplicateEmailDoesNotInsert(t *testing.T) {
	store := &fakeUserStore{byEmail: map[string]*models.User{
		"diner@example.com": {Email: "diner@example.com", Name: "Diner"},
	}}
	ctrl := NewUserController(store)

	rec := postJSON(t, ctrl.Register, "/users", map[string]interface{}{
		"name":  "Diner",
		"email": "diner@example.com",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, store.inserted, "duplicate registration must not insert")

	body := decodeEnvelope(t, rec)
	assert.Equal(t, "user already exist", body["message"])
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Nil(t, data["insertedId"])
}

func TestRegisterValidation(t *testing.T) {
	ctrl := NewUserController(&fakeUserStore{byEmail: map[string]*models.User{}})

	rec := postJSON(t, ctrl.Register, "/users", map[string]interface{}{
		"name":  "Diner",
		"email": "not-an-email",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCheckAdminSelfMatch(t *testing.T) {
	store := &fakeUserStore{byEmail: map[string]*models.User{
		"boss@example.com": {Email: "boss@example.com", Role: models.RoleAdmin},
	}}
	ctrl := NewUserController(store)

	get := func(pathEmail, tokenEmail string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/users/admin/"+pathEmail, nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("email", pathEmail)
		ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
		ctx = middleware.WithClaims(ctx, &auth.Claims{Email: tokenEmail})
		rec := httptest.NewRecorder()
		ctrl.CheckAdmin(rec, req.WithContext(ctx))
		return rec
	}

	rec := get("boss@example.com", "boss@example.com")
	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeEnvelope(t, rec)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, true, data["admin"])

	// Asking about someone else is forbidden, no matter the answer.
	rec = get("boss@example.com", "nosy@example.com")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// A non-admin self-lookup answers false rather than failing.
	store.byEmail["diner@example.com"] = &models.User{Email: "diner@example.com"}
	rec = get("diner@example.com", "diner@example.com")
	assert.Equal(t, http.StatusOK, rec.Code)
	data = decodeEnvelope(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, false, data["admin"])
}
