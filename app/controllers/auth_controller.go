package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/bistro/app/services"
	"github.com/shashiranjanraj/bistro/pkg/bind"
	"github.com/shashiranjanraj/bistro/pkg/logger"
	"github.com/shashiranjanraj/bistro/pkg/response"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

type tokenInput struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"nullable,max=120"`
}

// IssueToken signs a session token for the posted identity. Any caller may
// request one; the token only carries identity, authorization happens on
// the stored role at request time.
func (c *AuthController) IssueToken(w http.ResponseWriter, r *http.Request) {
	var in tokenInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "malformed request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	token, err := c.auth.IssueToken(in.Email, in.Name)
	if err != nil {
		logger.WithCtx(r.Context()).Error("token signing failed", "error", err)
		response.Internal(w)
		return
	}

	response.Success(w, map[string]string{"token": token})
}
