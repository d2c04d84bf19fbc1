package controllers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/bistro/app/models"
	"github.com/shashiranjanraj/bistro/app/repositories"
	"github.com/shashiranjanraj/bistro/app/services"
	"github.com/shashiranjanraj/bistro/pkg/bind"
	"github.com/shashiranjanraj/bistro/pkg/logger"
	"github.com/shashiranjanraj/bistro/pkg/middleware"
	"github.com/shashiranjanraj/bistro/pkg/response"
)

type PaymentController struct {
	service  *services.PaymentService
	payments *repositories.PaymentRepository
}

func NewPaymentController(service *services.PaymentService, payments *repositories.PaymentRepository) *PaymentController {
	return &PaymentController{service: service, payments: payments}
}

type intentInput struct {
	Price float64 `json:"price" validate:"required,gt=0"`
}

type paymentInput struct {
	Email         string   `json:"email" validate:"required,email"`
	Amount        float64  `json:"amount" validate:"required,gt=0"`
	TransactionID string   `json:"transactionId" validate:"required"`
	CartIDs       []string `json:"cartIds" validate:"required"`
	MenuIDs       []string `json:"menuIds" validate:"nullable"`
	Status        string   `json:"status" validate:"nullable,in=pending,succeeded"`
}

// CreateIntent asks the processor for a payment intent and hands the
// client secret back for the card form.
func (c *PaymentController) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var in intentInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "malformed request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	secret, err := c.service.CreateIntent(r.Context(), in.Price)
	if errors.Is(err, services.ErrInvalidAmount) {
		response.Error(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		logger.WithCtx(r.Context()).Error("payment intent failed", "error", err)
		response.BadGateway(w, "payment processor unavailable")
		return
	}

	response.Success(w, map[string]string{"clientSecret": secret})
}

// Record persists a confirmed payment and clears the settled cart items.
func (c *PaymentController) Record(w http.ResponseWriter, r *http.Request) {
	var in paymentInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "malformed request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	result, err := c.service.RecordPayment(r.Context(), &models.Payment{
		Email:         in.Email,
		Amount:        in.Amount,
		TransactionID: in.TransactionID,
		CartIDs:       in.CartIDs,
		MenuIDs:       in.MenuIDs,
		Status:        in.Status,
	})
	if errors.Is(err, services.ErrInvalidCartID) {
		response.Error(w, http.StatusBadRequest, "invalid cart item id")
		return
	}
	if err != nil {
		if !result.PaymentID.IsZero() {
			// Insert succeeded, cleanup did not. The payment stands.
			response.Error(w, http.StatusInternalServerError, "payment recorded but cart cleanup failed")
			return
		}
		response.Internal(w)
		return
	}

	response.Created(w, result)
}

// History returns the caller's payments, newest first. The email in the
// path must match the token identity.
func (c *PaymentController) History(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	tokenEmail, ok := middleware.EmailFromCtx(r.Context())
	if !ok || tokenEmail != email {
		response.Forbidden(w)
		return
	}

	payments, err := c.payments.FindByEmail(r.Context(), email)
	if err != nil {
		logger.WithCtx(r.Context()).Error("payment history failed", "email", email, "error", err)
		response.Internal(w)
		return
	}
	response.Success(w, payments)
}
