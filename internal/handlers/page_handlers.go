package handlers

import (
	"errors"
	"net/http"

	"github.com/menucat/menu-service/internal/menu"
	"github.com/menucat/menu-service/internal/services"
	"github.com/menucat/menu-service/pkg/utils"

	"github.com/gin-gonic/gin"
)

// PageHandler serves the server-rendered browsing views.
type PageHandler struct {
	catalogService services.CatalogService
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(cs services.CatalogService) *PageHandler {
	return &PageHandler{catalogService: cs}
}

// MenuPage renders the grouped menu listing. Categories without any
// currently-available food do not appear.
func (h *PageHandler) MenuPage(c *gin.Context) {
	sections, err := h.catalogService.GetMenu(c.Request.Context(), menu.Now())
	if err != nil {
		utils.LogError(err, "MenuPage: Error from catalogService.GetMenu")
		c.String(http.StatusInternalServerError, "failed to load menu")
		return
	}
	c.HTML(http.StatusOK, "menu_list.html", gin.H{
		"Sections": sections,
	})
}

// FoodDetailPage renders a single food with its currently-available toppings.
func (h *PageHandler) FoodDetailPage(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		c.String(http.StatusBadRequest, "invalid food id")
		return
	}
	detail, err := h.catalogService.GetFoodDetail(c.Request.Context(), id, menu.Now())
	if err != nil {
		if errors.Is(err, services.ErrFoodNotFound) {
			c.String(http.StatusNotFound, "food not found")
			return
		}
		utils.LogError(err, "FoodDetailPage: Error from catalogService.GetFoodDetail")
		c.String(http.StatusInternalServerError, "failed to load food")
		return
	}
	c.HTML(http.StatusOK, "food_detail.html", gin.H{
		"Food": detail,
	})
}
