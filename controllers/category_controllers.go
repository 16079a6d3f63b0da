package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/littlelemon/services"
	"github.com/yeremiapane/littlelemon/utils"
)

type CategoryController struct {
	Catalog *services.CatalogService
}

func NewCategoryController(catalog *services.CatalogService) *CategoryController {
	return &CategoryController{Catalog: catalog}
}

// GetAllCategories lists categories; ?with_items=true hides empty ones.
func (cc *CategoryController) GetAllCategories(c *gin.Context) {
	categories, err := cc.Catalog.ListCategories(c.Request.Context(), c.Query("with_items") == "true")
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "All menu categories", categories)
}

func (cc *CategoryController) GetCategoryByID(c *gin.Context) {
	id, ok := idParam(c, "cat_id")
	if !ok {
		return
	}
	category, err := cc.Catalog.GetCategory(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Category detail", category)
}

func (cc *CategoryController) CreateCategory(c *gin.Context) {
	var body services.CategoryInput
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBadRequest(c, err)
		return
	}
	category, err := cc.Catalog.CreateCategory(c.Request.Context(), body)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Category created", category)
}

func (cc *CategoryController) UpdateCategory(c *gin.Context) {
	id, ok := idParam(c, "cat_id")
	if !ok {
		return
	}
	var body services.CategoryInput
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBadRequest(c, err)
		return
	}
	category, err := cc.Catalog.UpdateCategory(c.Request.Context(), id, body)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Category updated", category)
}

// DeleteCategory removes the category and its menu items.
func (cc *CategoryController) DeleteCategory(c *gin.Context) {
	id, ok := idParam(c, "cat_id")
	if !ok {
		return
	}
	if err := cc.Catalog.DeleteCategory(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.InfoLogger.WithField("category_id", id).Info("category deleted")
	utils.RespondJSON(c, http.StatusOK, "Category deleted", gin.H{"id": id})
}
