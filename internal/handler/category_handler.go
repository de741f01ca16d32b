package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/openagora/agora-backend/internal/common"
	"github.com/openagora/agora-backend/internal/domain"
	"github.com/openagora/agora-backend/internal/service"
)

// CategoryHandler category tree endpoints
type CategoryHandler struct {
	categoryService service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// List handles GET /api/categories
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.List()
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, categories, nil)
}

// GetByID handles GET /api/categories/:id
func (h *CategoryHandler) GetByID(c *gin.Context) {
	category, err := h.categoryService.GetByID(c.Param("id"))
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, category, nil)
}

// Create handles POST /api/categories (admin)
func (h *CategoryHandler) Create(c *gin.Context) {
	var req domain.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	category, err := h.categoryService.Create(&req)
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	common.CreatedResponse(c, category)
}

// Update handles PUT /api/categories/:id (admin)
func (h *CategoryHandler) Update(c *gin.Context) {
	var req domain.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	category, err := h.categoryService.Update(c.Param("id"), &req)
	if err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	common.SuccessResponse(c, category, nil)
}

// Delete handles DELETE /api/categories/:id (admin). Categories that still
// hold threads or child categories come back as 400 with code CONFLICT.
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.categoryService.Delete(c.Param("id")); err != nil {
		common.DomainErrorResponse(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
