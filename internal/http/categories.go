package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/wordbook/internal/auth"
	"github.com/mrlokans/wordbook/internal/storage"
)

const invalidCategoryData = "invalid category data"

type CategoriesController struct {
	store storage.CategoryStore
}

func NewCategoriesController(store storage.CategoryStore) *CategoriesController {
	return &CategoriesController{store: store}
}

// CreateCategoryRequest is the body of POST /api/categories.
type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

// UpdateCategoryRequest is the body of PATCH /api/categories/:id. Omitted
// fields are left unchanged; "description": null clears the description.
type UpdateCategoryRequest struct {
	Name        *string                  `json:"name"`
	Description storage.Nullable[string] `json:"description"`
}

// ListCategories handles GET /api/categories
func (cc *CategoriesController) ListCategories(c *gin.Context) {
	categories, err := cc.store.ListCategories(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "list categories")
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetCategory handles GET /api/categories/:id
func (cc *CategoriesController) GetCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	category, err := cc.store.GetCategory(c.Request.Context(), id, auth.GetUserID(c))
	if err != nil {
		respondInternalError(c, err, "get category")
		return
	}
	if category == nil {
		respondNotFound(c, "category")
		return
	}
	c.JSON(http.StatusOK, category)
}

// CreateCategory handles POST /api/categories
func (cc *CategoriesController) CreateCategory(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil || isBlank(req.Name) {
		respondBadRequest(c, invalidCategoryData)
		return
	}

	category, err := cc.store.CreateCategory(c.Request.Context(), auth.GetUserID(c), storage.NewCategory{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondStoreError(c, err, "category", "create category")
		return
	}
	c.JSON(http.StatusCreated, category)
}

// UpdateCategory handles PATCH /api/categories/:id
func (cc *CategoriesController) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil || (req.Name != nil && isBlank(*req.Name)) {
		respondBadRequest(c, invalidCategoryData)
		return
	}

	category, err := cc.store.UpdateCategory(c.Request.Context(), id, auth.GetUserID(c), storage.CategoryUpdate{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondStoreError(c, err, "category", "update category")
		return
	}
	c.JSON(http.StatusOK, category)
}

// DeleteCategory handles DELETE /api/categories/:id
// Words in the category stay and lose their category reference.
func (cc *CategoriesController) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := cc.store.DeleteCategory(c.Request.Context(), id, auth.GetUserID(c)); err != nil {
		respondStoreError(c, err, "category", "delete category")
		return
	}
	c.Status(http.StatusNoContent)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
