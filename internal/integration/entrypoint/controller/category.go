// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/timeflow/backend/internal/application/usecase/category"
	domainerror "github.com/timeflow/backend/internal/domain/error"
	"github.com/timeflow/backend/internal/integration/entrypoint/dto"
)

// CategoryController handles category endpoints.
type CategoryController struct {
	store *category.Store
}

// NewCategoryController creates a new category controller instance.
func NewCategoryController(store *category.Store) *CategoryController {
	return &CategoryController{store: store}
}

// List handles GET /categories requests.
func (c *CategoryController) List(ctx *gin.Context) {
	categories, err := c.store.List(ctx.Request.Context())
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryListResponse(categories))
}

// Get handles GET /categories/:id requests.
func (c *CategoryController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	cat, err := c.store.Get(ctx.Request.Context(), id)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryResponse(cat))
}

// GetByName handles GET /categories/by-name/:name requests.
func (c *CategoryController) GetByName(ctx *gin.Context) {
	cat, err := c.store.GetByName(ctx.Request.Context(), ctx.Param("name"))
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryResponse(cat))
}

// Create handles POST /categories requests.
func (c *CategoryController) Create(ctx *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Invalid request body",
			Code:    string(domainerror.ErrCodeMissingCategoryFields),
			Details: err.Error(),
		})
		return
	}

	cat, err := c.store.Create(ctx.Request.Context(), category.CreateCategoryInput{
		Name:        req.Name,
		DisplayName: req.DisplayName,
		Color:       req.Color,
		Icon:        req.Icon,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCategoryResponse(cat))
}

// Update handles PATCH /categories/:id requests.
func (c *CategoryController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
			Code:  string(domainerror.ErrCodeMissingCategoryFields),
		})
		return
	}

	cat, err := c.store.Update(ctx.Request.Context(), id, category.UpdateCategoryInput{
		Name:        req.Name,
		DisplayName: req.DisplayName,
		Color:       req.Color,
		Icon:        req.Icon,
	})
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryResponse(cat))
}

// Delete handles DELETE /categories/:id requests.
// It responds with the removed category.
func (c *CategoryController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx)
	if !ok {
		return
	}

	cat, err := c.store.Delete(ctx.Request.Context(), id)
	if err != nil {
		handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryResponse(cat))
}
