package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/subscription_tracker/internal/core/ports/services"
	"github.com/SscSPs/subscription_tracker/internal/dto"
	"github.com/SscSPs/subscription_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// categoryHandler handles HTTP requests related to categories.
type categoryHandler struct {
	categoryService portssvc.CategorySvcFacade
}

// RegisterCategoryRoutes registers routes related to categories.
func RegisterCategoryRoutes(rg *gin.RouterGroup, categoryService portssvc.CategorySvcFacade) {
	h := &categoryHandler{categoryService: categoryService}

	categories := rg.Group("/categories")
	{
		categories.GET("", h.listCategories)
		categories.POST("", h.createCategory)
		categories.POST("/defaults", h.seedDefaults)
		categories.GET("/:categoryID", h.getCategory)
		categories.PUT("/:categoryID", h.updateCategory)
		categories.DELETE("/:categoryID", h.deleteCategory)
	}
}

// listCategories godoc
// @Summary List categories
// @Tags categories
// @Produce  json
// @Success 200 {array} dto.CategoryResponse
// @Security BearerAuth
// @Router /categories [get]
func (h *categoryHandler) listCategories(c *gin.Context) {
	cats, err := h.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err, "Category not found", "Failed to list categories")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCategoryResponse(cats))
}

// getCategory godoc
// @Summary Get a category
// @Tags categories
// @Produce  json
// @Param   categoryID path string true "Category ID"
// @Success 200 {object} dto.CategoryResponse
// @Failure 404 {object} handlers.ErrorResponse "Category not found"
// @Security BearerAuth
// @Router /categories/{categoryID} [get]
func (h *categoryHandler) getCategory(c *gin.Context) {
	cat, err := h.categoryService.GetCategory(c.Request.Context(), c.Param("categoryID"))
	if err != nil {
		respondError(c, err, "Category not found", "Failed to retrieve category")
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryResponse(cat))
}

// createCategory godoc
// @Summary Create a category
// @Tags categories
// @Accept  json
// @Produce  json
// @Param   category body dto.CreateCategoryRequest true "Category details"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} handlers.ErrorResponse "Validation failed"
// @Failure 409 {object} handlers.ErrorResponse "Category name already exists"
// @Security BearerAuth
// @Router /categories [post]
func (h *categoryHandler) createCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	cat, err := h.categoryService.CreateCategory(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Category not found", "Failed to create category")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Category created", slog.String("category_id", cat.CategoryID))
	c.JSON(http.StatusCreated, dto.ToCategoryResponse(cat))
}

// updateCategory godoc
// @Summary Update a category
// @Tags categories
// @Accept  json
// @Produce  json
// @Param   categoryID path string true "Category ID"
// @Param   category body dto.UpdateCategoryRequest true "Fields to update"
// @Success 200 {object} dto.CategoryResponse
// @Failure 400 {object} handlers.ErrorResponse "Validation failed"
// @Failure 404 {object} handlers.ErrorResponse "Category not found"
// @Security BearerAuth
// @Router /categories/{categoryID} [put]
func (h *categoryHandler) updateCategory(c *gin.Context) {
	var req dto.UpdateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	cat, err := h.categoryService.UpdateCategory(c.Request.Context(), c.Param("categoryID"), req)
	if err != nil {
		respondError(c, err, "Category not found", "Failed to update category")
		return
	}
	c.JSON(http.StatusOK, dto.ToCategoryResponse(cat))
}

// deleteCategory godoc
// @Summary Delete a category
// @Description Subscriptions in the category become uncategorized
// @Tags categories
// @Param   categoryID path string true "Category ID"
// @Success 204 "No Content"
// @Failure 404 {object} handlers.ErrorResponse "Category not found"
// @Security BearerAuth
// @Router /categories/{categoryID} [delete]
func (h *categoryHandler) deleteCategory(c *gin.Context) {
	if err := h.categoryService.DeleteCategory(c.Request.Context(), c.Param("categoryID")); err != nil {
		respondError(c, err, "Category not found", "Failed to delete category")
		return
	}
	c.Status(http.StatusNoContent)
}

// seedDefaults godoc
// @Summary Create the default categories
// @Description Creates the built-in categories that do not exist yet
// @Tags categories
// @Produce  json
// @Success 200 {array} dto.CategoryResponse
// @Security BearerAuth
// @Router /categories/defaults [post]
func (h *categoryHandler) seedDefaults(c *gin.Context) {
	created, err := h.categoryService.SeedDefaultCategories(c.Request.Context())
	if err != nil {
		respondError(c, err, "Category not found", "Failed to create default categories")
		return
	}
	c.JSON(http.StatusOK, dto.ToListCategoryResponse(created))
}
