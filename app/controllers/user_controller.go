package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/bistro/app/models"
	"github.com/shashiranjanraj/bistro/pkg/auth"
	"github.com/shashiranjanraj/bistro/pkg/bind"
	"github.com/shashiranjanraj/bistro/pkg/logger"
	"github.com/shashiranjanraj/bistro/pkg/middleware"
	"github.com/shashiranjanraj/bistro/pkg/response"
)

// UserStore is the user persistence surface the controller needs.
// Satisfied by repositories.UserRepository.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error)
	All(ctx context.Context) ([]models.User, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error)
	PromoteToAdmin(ctx context.Context, id primitive.ObjectID) (int64, error)
}

type UserController struct {
	users UserStore
}

func NewUserController(users UserStore) *UserController {
	return &UserController{users: users}
}

type registerInput struct {
	Name     string `json:"name" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"nullable,min=6"`
	Photo    string `json:"photo" validate:"nullable,url"`
}

// Register stores a new user. Re-registering an existing email is not an
// error: the response says so and carries a null insertedId, so social
// logins can post unconditionally.
func (c *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var in registerInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "malformed request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	existing, err := c.users.FindByEmail(r.Context(), in.Email)
	if err != nil {
		logger.WithCtx(r.Context()).Error("user lookup failed", "email", in.Email, "error", err)
		response.Internal(w)
		return
	}
	if existing != nil {
		response.SuccessMessage(w, "user already exist", map[string]interface{}{"insertedId": nil})
		return
	}

	user := &models.User{Name: in.Name, Email: in.Email, Photo: in.Photo}
	if in.Password != "" {
		hash, err := auth.HashPassword(in.Password)
		if err != nil {
			response.Internal(w)
			return
		}
		user.Password = hash
	}

	id, err := c.users.Insert(r.Context(), user)
	if err != nil {
		logger.WithCtx(r.Context()).Error("user insert failed", "email", in.Email, "error", err)
		response.Internal(w)
		return
	}

	response.Created(w, map[string]interface{}{"insertedId": id.Hex()})
}

// List returns every registered user. Admin only.
func (c *UserController) List(w http.ResponseWriter, r *http.Request) {
	users, err := c.users.All(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("user list failed", "error", err)
		response.Internal(w)
		return
	}
	response.Success(w, users)
}

// Delete removes a user by id. Admin only.
func (c *UserController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	deleted, err := c.users.DeleteByID(r.Context(), id)
	if err != nil {
		response.Internal(w)
		return
	}
	response.Success(w, map[string]int64{"deletedCount": deleted})
}

// Promote grants the admin role to a user by id. Admin only.
func (c *UserController) Promote(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	modified, err := c.users.PromoteToAdmin(r.Context(), id)
	if err != nil {
		response.Internal(w)
		return
	}
	response.Success(w, map[string]int64{"modifiedCount": modified})
}

// CheckAdmin reports whether the given email carries the admin role. The
// email in the path must match the token identity; asking about anyone
// else is forbidden.
func (c *UserController) CheckAdmin(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	tokenEmail, ok := middleware.EmailFromCtx(r.Context())
	if !ok || tokenEmail != email {
		response.Forbidden(w)
		return
	}

	user, err := c.users.FindByEmail(r.Context(), email)
	if err != nil {
		logger.WithCtx(r.Context()).Error("user lookup failed", "email", email, "error", err)
		response.Internal(w)
		return
	}

	response.Success(w, map[string]bool{"admin": user.IsAdmin()})
}
