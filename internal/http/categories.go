package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mrlokans/bookshelf/internal/audit"
	"github.com/mrlokans/bookshelf/internal/entities"
)

// CategoryStore defines the database operations needed for category management.
type CategoryStore interface {
	List(skip, limit int) ([]entities.Category, error)
	GetByID(id uint) (*entities.Category, error)
	Create(category *entities.Category) error
	Update(category *entities.Category) error
	Delete(id uint) error
}

// CategoryCreateRequest is the payload for creating a category.
type CategoryCreateRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CategoryUpdateRequest is the payload for partially updating a category.
// Nil fields keep their stored values.
type CategoryUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type CategoriesController struct {
	store CategoryStore
	audit *audit.Service
}

func NewCategoriesController(store CategoryStore, auditService *audit.Service) *CategoriesController {
	return &CategoriesController{store: store, audit: auditService}
}

// ListCategories returns a page of categories.
// GET /categories?skip&limit
func (cc *CategoriesController) ListCategories(c *gin.Context) {
	skip, limit := parsePagination(c)

	categories, err := cc.store.List(skip, limit)
	if err != nil {
		respondInternalError(c, err, "list categories")
		return
	}

	c.JSON(http.StatusOK, categories)
}

// GetCategory returns a single category by ID.
// GET /categories/:id
func (cc *CategoriesController) GetCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	category, err := cc.store.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Category")
			return
		}
		respondInternalError(c, err, "get category")
		return
	}

	c.JSON(http.StatusOK, category)
}

// CreateCategory creates a new category.
// POST /categories
func (cc *CategoriesController) CreateCategory(c *gin.Context) {
	var req CategoryCreateRequest
	if !bindAndValidateJSON(c, &req) {
		return
	}

	category := &entities.Category{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := cc.store.Create(category); err != nil {
		respondInternalError(c, err, "create category")
		return
	}

	if cc.audit != nil {
		cc.audit.LogCreate("category", category.ID, category.Name, c.ClientIP())
	}

	respondCreated(c, category)
}

// UpdateCategory applies a partial update to a category.
// PUT /categories/:id
func (cc *CategoriesController) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	category, err := cc.store.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Category")
			return
		}
		respondInternalError(c, err, "get category")
		return
	}

	var req CategoryUpdateRequest
	if !bindAndValidateJSON(c, &req) {
		return
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}

	if err := cc.store.Update(category); err != nil {
		respondInternalError(c, err, "update category")
		return
	}

	if cc.audit != nil {
		cc.audit.LogUpdate("category", category.ID, category.Name, c.ClientIP())
	}

	c.JSON(http.StatusOK, category)
}

// DeleteCategory removes a category permanently.
// DELETE /categories/:id
func (cc *CategoriesController) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	category, err := cc.store.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Category")
			return
		}
		respondInternalError(c, err, "get category")
		return
	}

	if err := cc.store.Delete(category.ID); err != nil {
		respondInternalError(c, err, "delete category")
		return
	}

	if cc.audit != nil {
		cc.audit.LogDelete("category", category.ID, category.Name, c.ClientIP())
	}

	c.Status(http.StatusNoContent)
}
