package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/bistro/app/models"
	"github.com/shashiranjanraj/bistro/app/repositories"
	"github.com/shashiranjanraj/bistro/pkg/bind"
	"github.com/shashiranjanraj/bistro/pkg/logger"
	"github.com/shashiranjanraj/bistro/pkg/response"
)

type ReviewController struct {
	reviews *repositories.ReviewRepository
}

func NewReviewController(reviews *repositories.ReviewRepository) *ReviewController {
	return &ReviewController{reviews: reviews}
}

type reviewInput struct {
	Name    string  `json:"name" validate:"required,max=120"`
	Details string  `json:"details" validate:"required,max=2000"`
	Rating  float64 `json:"rating" validate:"required,between=1,5"`
}

// List returns all reviews. Public.
func (c *ReviewController) List(w http.ResponseWriter, r *http.Request) {
	reviews, err := c.reviews.All(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("review list failed", "error", err)
		response.Internal(w)
		return
	}
	response.Success(w, reviews)
}

// Create stores a review from a signed-in customer.
func (c *ReviewController) Create(w http.ResponseWriter, r *http.Request) {
	var in reviewInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "malformed request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	id, err := c.reviews.Insert(r.Context(), &models.Review{
		Name:    in.Name,
		Details: in.Details,
		Rating:  in.Rating,
	})
	if err != nil {
		logger.WithCtx(r.Context()).Error("review insert failed", "error", err)
		response.Internal(w)
		return
	}
	response.Created(w, map[string]interface{}{"insertedId": id.Hex()})
}
