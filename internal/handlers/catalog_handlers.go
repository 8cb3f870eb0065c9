package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/menucat/menu-service/internal/menu"
	"github.com/menucat/menu-service/internal/services"
	"github.com/menucat/menu-service/pkg/utils"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the public read-only catalog API.
type CatalogHandler struct {
	catalogService services.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(cs services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: cs}
}

func parsePagination(c *gin.Context) (int, int, bool) {
	page, pageSize := 1, 20
	if pageStr := c.Query("page"); pageStr != "" {
		p, err := strconv.Atoi(pageStr)
		if err != nil || p <= 0 {
			utils.RespondValidationFailed(c, "page must be a positive integer")
			return 0, 0, false
		}
		page = p
	}
	if pageSizeStr := c.Query("page_size"); pageSizeStr != "" {
		ps, err := strconv.Atoi(pageSizeStr)
		if err != nil || ps <= 0 {
			utils.RespondValidationFailed(c, "page_size must be a positive integer")
			return 0, 0, false
		}
		pageSize = ps
	}
	return page, pageSize, true
}

// availableOnly reads the available_only toggle, defaulting to true the way
// the public API always has.
func availableOnly(c *gin.Context) bool {
	return strings.ToLower(c.DefaultQuery("available_only", "true")) == "true"
}

// GetMenu returns the grouped menu listing: categories with their
// currently-available foods, empty categories omitted.
func (h *CatalogHandler) GetMenu(c *gin.Context) {
	sections, err := h.catalogService.GetMenu(c.Request.Context(), menu.Now())
	if err != nil {
		utils.LogError(err, "GetMenu: Error from catalogService.GetMenu")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch menu.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"menu": sections})
}

// ListCategories returns paginated categories with their available-food counts.
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	page, pageSize, ok := parsePagination(c)
	if !ok {
		return
	}
	categories, totalCount, err := h.catalogService.ListCategories(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.LogError(err, "ListCategories: Error from catalogService.ListCategories")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch categories.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":      categories,
		"total":     totalCount,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetCategoryByID returns a single category.
func (h *CatalogHandler) GetCategoryByID(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondValidationFailed(c, "invalid category id")
		return
	}
	category, err := h.catalogService.GetCategory(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Category not found.", err.Error()))
			return
		}
		utils.LogError(err, "GetCategoryByID: Error from catalogService.GetCategory")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch category.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, category)
}

// ListFoods returns foods, optionally narrowed to a category, filtered to
// currently-available items unless available_only=false.
func (h *CatalogHandler) ListFoods(c *gin.Context) {
	page, pageSize, ok := parsePagination(c)
	if !ok {
		return
	}

	filters := services.FoodFilters{
		AvailableOnly: availableOnly(c),
		Page:          page,
		PageSize:      pageSize,
	}
	if categoryStr := c.Query("category"); categoryStr != "" {
		categoryID, err := utils.StrToInt64(categoryStr)
		if err != nil {
			utils.RespondValidationFailed(c, "invalid category filter")
			return
		}
		filters.CategoryID = &categoryID
	}

	foods, totalCount, err := h.catalogService.ListFoods(c.Request.Context(), filters, menu.Now())
	if err != nil {
		utils.LogError(err, "ListFoods: Error from catalogService.ListFoods")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch foods.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":      foods,
		"total":     totalCount,
		"page":      filters.Page,
		"page_size": filters.PageSize,
	})
}

// FoodsByCategory requires an explicit category_id query parameter.
func (h *CatalogHandler) FoodsByCategory(c *gin.Context) {
	categoryIDStr := c.Query("category_id")
	if categoryIDStr == "" {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "category_id parameter is required", ""))
		return
	}
	categoryID, err := utils.StrToInt64(categoryIDStr)
	if err != nil {
		utils.RespondValidationFailed(c, "invalid category_id")
		return
	}

	filters := services.FoodFilters{
		CategoryID:    &categoryID,
		AvailableOnly: availableOnly(c),
		Page:          1,
		PageSize:      100,
	}
	foods, _, err := h.catalogService.ListFoods(c.Request.Context(), filters, menu.Now())
	if err != nil {
		utils.LogError(err, "FoodsByCategory: Error from catalogService.ListFoods")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch foods.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, foods)
}

// GetFoodByID returns the detail payload including the all_toppings variant.
func (h *CatalogHandler) GetFoodByID(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondValidationFailed(c, "invalid food id")
		return
	}
	detail, err := h.catalogService.GetFoodDetail(c.Request.Context(), id, menu.Now())
	if err != nil {
		if errors.Is(err, services.ErrFoodNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Food not found.", err.Error()))
			return
		}
		utils.LogError(err, "GetFoodByID: Error from catalogService.GetFoodDetail")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch food.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, detail)
}

// ListToppings returns toppings, filtered to currently-available items
// unless available_only=false.
func (h *CatalogHandler) ListToppings(c *gin.Context) {
	page, pageSize, ok := parsePagination(c)
	if !ok {
		return
	}
	toppings, totalCount, err := h.catalogService.ListToppings(c.Request.Context(), availableOnly(c), page, pageSize, menu.Now())
	if err != nil {
		utils.LogError(err, "ListToppings: Error from catalogService.ListToppings")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch toppings.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":      toppings,
		"total":     totalCount,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetToppingByID returns a single topping with derived pricing.
func (h *CatalogHandler) GetToppingByID(c *gin.Context) {
	id, err := utils.StrToInt64(c.Param("id"))
	if err != nil {
		utils.RespondValidationFailed(c, "invalid topping id")
		return
	}
	topping, err := h.catalogService.GetTopping(c.Request.Context(), id, menu.Now())
	if err != nil {
		if errors.Is(err, services.ErrToppingNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Topping not found.", err.Error()))
			return
		}
		utils.LogError(err, "GetToppingByID: Error from catalogService.GetTopping")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch topping.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, topping)
}
