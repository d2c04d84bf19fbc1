package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/bistro/app/models"
	"github.com/shashiranjanraj/bistro/app/repositories"
	"github.com/shashiranjanraj/bistro/pkg/bind"
	"github.com/shashiranjanraj/bistro/pkg/logger"
	"github.com/shashiranjanraj/bistro/pkg/response"
)

type CartController struct {
	carts *repositories.CartRepository
}

func NewCartController(carts *repositories.CartRepository) *CartController {
	return &CartController{carts: carts}
}

type cartInput struct {
	Email  string  `json:"email" validate:"required,email"`
	MenuID string  `json:"menuId" validate:"required"`
	Name   string  `json:"name" validate:"required,max=120"`
	Price  float64 `json:"price" validate:"required,gt=0"`
	Image  string  `json:"image" validate:"nullable,url"`
}

// List returns the cart items for the email in the query string. An empty
// email simply matches nothing.
func (c *CartController) List(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	items, err := c.carts.FindByEmail(r.Context(), email)
	if err != nil {
		logger.WithCtx(r.Context()).Error("cart list failed", "email", email, "error", err)
		response.Internal(w)
		return
	}
	response.Success(w, items)
}

// Add puts a menu item in the caller's cart.
func (c *CartController) Add(w http.ResponseWriter, r *http.Request) {
	var in cartInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "malformed request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	id, err := c.carts.Insert(r.Context(), &models.CartItem{
		Email:  in.Email,
		MenuID: in.MenuID,
		Name:   in.Name,
		Price:  in.Price,
		Image:  in.Image,
	})
	if err != nil {
		logger.WithCtx(r.Context()).Error("cart insert failed", "email", in.Email, "error", err)
		response.Internal(w)
		return
	}
	response.Created(w, map[string]interface{}{"insertedId": id.Hex()})
}

// Remove deletes one cart item by id.
func (c *CartController) Remove(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid cart item id")
		return
	}

	deleted, err := c.carts.DeleteByID(r.Context(), id)
	if err != nil {
		response.Internal(w)
		return
	}
	response.Success(w, map[string]int64{"deletedCount": deleted})
}
