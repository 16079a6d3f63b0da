package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/littlelemon/models"
	"github.com/yeremiapane/littlelemon/services"
	"github.com/yeremiapane/littlelemon/utils"
)

type MenuController struct {
	Catalog *services.CatalogService
}

func NewMenuController(catalog *services.CatalogService) *MenuController {
	return &MenuController{Catalog: catalog}
}

type menuView struct {
	models.Menu
	PriceLabel string `json:"price_label"`
}

func toMenuView(m models.Menu) menuView {
	return menuView{Menu: m, PriceLabel: utils.FormatPrice(m.Price)}
}

func toMenuViews(menus []models.Menu) []menuView {
	views := make([]menuView, 0, len(menus))
	for _, m := range menus {
		views = append(views, toMenuView(m))
	}
	return views
}

func (mc *MenuController) GetAllMenus(c *gin.Context) {
	menus, err := mc.Catalog.ListMenu(c.Request.Context(), 0)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menus", toMenuViews(menus))
}

// GetMenusByCategory requires ?category=<id>.
func (mc *MenuController) GetMenusByCategory(c *gin.Context) {
	raw := c.Query("category")
	if raw == "" {
		utils.RespondReason(c, http.StatusBadRequest, services.ReasonInvalidRequest, "category parameter is required")
		return
	}
	categoryID, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || categoryID == 0 {
		utils.RespondReason(c, http.StatusBadRequest, services.ReasonInvalidRequest, "invalid category")
		return
	}

	category, err := mc.Catalog.GetCategory(c.Request.Context(), uint(categoryID))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	menus, err := mc.Catalog.ListMenu(c.Request.Context(), category.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menus in "+category.Name, toMenuViews(menus))
}

func (mc *MenuController) GetMenuByID(c *gin.Context) {
	id, ok := idParam(c, "menu_id")
	if !ok {
		return
	}
	menu, err := mc.Catalog.GetMenu(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu detail", toMenuView(menu))
}

func (mc *MenuController) CreateMenu(c *gin.Context) {
	var body services.MenuInput
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBadRequest(c, err)
		return
	}
	menu, err := mc.Catalog.CreateMenu(c.Request.Context(), body)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.InfoLogger.WithField("menu_id", menu.ID).Info("menu item created")
	utils.RespondJSON(c, http.StatusCreated, "Menu created", toMenuView(menu))
}

func (mc *MenuController) UpdateMenu(c *gin.Context) {
	id, ok := idParam(c, "menu_id")
	if !ok {
		return
	}
	var body services.MenuInput
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBadRequest(c, err)
		return
	}
	menu, err := mc.Catalog.UpdateMenu(c.Request.Context(), id, body)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu updated", toMenuView(menu))
}

func (mc *MenuController) DeleteMenu(c *gin.Context) {
	id, ok := idParam(c, "menu_id")
	if !ok {
		return
	}
	if err := mc.Catalog.DeleteMenu(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu deleted", gin.H{"id": id})
}
