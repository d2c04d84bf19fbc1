package controllers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/bistro/app/models"
	"github.com/shashiranjanraj/bistro/app/repositories"
	"github.com/shashiranjanraj/bistro/pkg/bind"
	"github.com/shashiranjanraj/bistro/pkg/cache"
	"github.com/shashiranjanraj/bistro/pkg/logger"
	"github.com/shashiranjanraj/bistro/pkg/response"
	"github.com/shashiranjanraj/bistro/pkg/storage"
)

const (
	menuCacheKey = "menu:all"
	menuCacheTTL = 5 * time.Minute
)

type MenuController struct {
	menu *repositories.MenuRepository
}

func NewMenuController(menu *repositories.MenuRepository) *MenuController {
	return &MenuController{menu: menu}
}

type menuInput struct {
	Name     string  `json:"name" validate:"required,max=120"`
	Category string  `json:"category" validate:"required,max=60"`
	Recipe   string  `json:"recipe" validate:"nullable"`
	Price    float64 `json:"price" validate:"required,gt=0"`
	Image    string  `json:"image" validate:"nullable,url"`
}

// List returns the full menu. Public, served from cache when warm.
func (c *MenuController) List(w http.ResponseWriter, r *http.Request) {
	var items []models.MenuItem
	if cache.Get(r.Context(), menuCacheKey, &items) {
		response.Success(w, items)
		return
	}

	items, err := c.menu.All(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("menu list failed", "error", err)
		response.Internal(w)
		return
	}

	if err := cache.Set(r.Context(), menuCacheKey, items, menuCacheTTL); err != nil {
		logger.WithCtx(r.Context()).Warn("menu cache write failed", "error", err)
	}
	response.Success(w, items)
}

// Show returns one menu item. Public.
func (c *MenuController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid menu id")
		return
	}

	item, err := c.menu.FindByID(r.Context(), id)
	if err != nil {
		response.Internal(w)
		return
	}
	if item == nil {
		response.NotFound(w)
		return
	}
	response.Success(w, item)
}

// Create adds a dish to the menu. Admin only.
func (c *MenuController) Create(w http.ResponseWriter, r *http.Request) {
	var in menuInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "malformed request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	id, err := c.menu.Insert(r.Context(), &models.MenuItem{
		Name:     in.Name,
		Category: in.Category,
		Recipe:   in.Recipe,
		Price:    in.Price,
		Image:    in.Image,
	})
	if err != nil {
		logger.WithCtx(r.Context()).Error("menu insert failed", "error", err)
		response.Internal(w)
		return
	}

	cache.Forget(r.Context(), menuCacheKey)
	response.Created(w, map[string]interface{}{"insertedId": id.Hex()})
}

// Update overwrites a dish's fields. Admin only.
func (c *MenuController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid menu id")
		return
	}

	var in menuInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "malformed request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	modified, err := c.menu.Update(r.Context(), id, &models.MenuItem{
		Name:     in.Name,
		Category: in.Category,
		Recipe:   in.Recipe,
		Price:    in.Price,
		Image:    in.Image,
	})
	if err != nil {
		response.Internal(w)
		return
	}

	cache.Forget(r.Context(), menuCacheKey)
	response.Success(w, map[string]int64{"modifiedCount": modified})
}

// Delete removes a dish. Admin only.
func (c *MenuController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid menu id")
		return
	}

	deleted, err := c.menu.DeleteByID(r.Context(), id)
	if err != nil {
		response.Internal(w)
		return
	}

	cache.Forget(r.Context(), menuCacheKey)
	response.Success(w, map[string]int64{"deletedCount": deleted})
}

// UploadImage stores a dish photo on the configured disk and points the
// menu document at it. Admin only. Multipart field name: "image".
func (c *MenuController) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid menu id")
		return
	}

	if err := r.ParseMultipartForm(8 << 20); err != nil {
		response.Error(w, http.StatusBadRequest, "malformed upload")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "image file missing")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		response.Error(w, http.StatusUnprocessableEntity, "unsupported image type")
		return
	}

	path := fmt.Sprintf("menu/%s%s", id.Hex(), ext)
	if err := storage.PutStream(path, file); err != nil {
		logger.WithCtx(r.Context()).Error("image store failed", "path", path, "error", err)
		response.Internal(w)
		return
	}

	url := storage.URL(path)
	if _, err := c.menu.SetImage(r.Context(), id, url); err != nil {
		response.Internal(w)
		return
	}

	cache.Forget(r.Context(), menuCacheKey)
	response.Success(w, map[string]string{"image": url})
}
