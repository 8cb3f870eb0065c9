package handlers

import (
	"errors"
	"net/http"

	"github.com/menucat/menu-service/internal/menu"
	"github.com/menucat/menu-service/internal/services"
	"github.com/menucat/menu-service/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the administrative CRUD surface.
type AdminHandler struct {
	adminService services.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(as services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: as}
}

// respondAdminError maps service sentinel errors onto the API envelope.
func respondAdminError(c *gin.Context, err error, context string) {
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Input validation failed.", err.Error()))
	case errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrFoodNotFound),
		errors.Is(err, services.ErrToppingNotFound),
		errors.Is(err, services.ErrImageNotFound),
		errors.Is(err, services.ErrLinkNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Record not found.", err.Error()))
	case errors.Is(err, services.ErrNameConflict), errors.Is(err, services.ErrLinkExists):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Conflict with existing record.", err.Error()))
	case errors.Is(err, services.ErrInUse):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Record is referenced by other records.", err.Error()))
	default:
		utils.LogError(err, context)
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Internal error.", ""))
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := utils.StrToInt64(c.Param(name))
	if err != nil {
		utils.RespondValidationFailed(c, "invalid "+name)
		return 0, false
	}
	return id, true
}

// --- Categories ---

func (h *AdminHandler) CreateCategory(c *gin.Context) {
	var req services.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	category, err := h.adminService.CreateCategory(c.Request.Context(), req)
	if err != nil {
		respondAdminError(c, err, "CreateCategory: Error from adminService.CreateCategory")
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *AdminHandler) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	category, err := h.adminService.UpdateCategory(c.Request.Context(), id, req)
	if err != nil {
		respondAdminError(c, err, "UpdateCategory: Error from adminService.UpdateCategory")
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *AdminHandler) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.adminService.DeleteCategory(c.Request.Context(), id); err != nil {
		respondAdminError(c, err, "DeleteCategory: Error from adminService.DeleteCategory")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}

// --- Foods ---

func (h *AdminHandler) CreateFood(c *gin.Context) {
	var req services.CreateFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	food, err := h.adminService.CreateFood(c.Request.Context(), req)
	if err != nil {
		respondAdminError(c, err, "CreateFood: Error from adminService.CreateFood")
		return
	}
	c.JSON(http.StatusCreated, food)
}

func (h *AdminHandler) UpdateFood(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.UpdateFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	food, err := h.adminService.UpdateFood(c.Request.Context(), id, req)
	if err != nil {
		respondAdminError(c, err, "UpdateFood: Error from adminService.UpdateFood")
		return
	}
	c.JSON(http.StatusOK, food)
}

func (h *AdminHandler) DeleteFood(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.adminService.DeleteFood(c.Request.Context(), id); err != nil {
		respondAdminError(c, err, "DeleteFood: Error from adminService.DeleteFood")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Food deleted successfully"})
}

// FoodStatus returns the availability badge and price pair for admin display.
func (h *AdminHandler) FoodStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	status, err := h.adminService.FoodStatus(c.Request.Context(), id, menu.Now())
	if err != nil {
		respondAdminError(c, err, "FoodStatus: Error from adminService.FoodStatus")
		return
	}
	c.JSON(http.StatusOK, status)
}

// --- Toppings ---

func (h *AdminHandler) CreateTopping(c *gin.Context) {
	var req services.CreateToppingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	topping, err := h.adminService.CreateTopping(c.Request.Context(), req)
	if err != nil {
		respondAdminError(c, err, "CreateTopping: Error from adminService.CreateTopping")
		return
	}
	c.JSON(http.StatusCreated, topping)
}

func (h *AdminHandler) UpdateTopping(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.UpdateToppingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	topping, err := h.adminService.UpdateTopping(c.Request.Context(), id, req)
	if err != nil {
		respondAdminError(c, err, "UpdateTopping: Error from adminService.UpdateTopping")
		return
	}
	c.JSON(http.StatusOK, topping)
}

func (h *AdminHandler) DeleteTopping(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.adminService.DeleteTopping(c.Request.Context(), id); err != nil {
		respondAdminError(c, err, "DeleteTopping: Error from adminService.DeleteTopping")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Topping deleted successfully"})
}

// ToppingStatus returns the availability badge and price pair for admin display.
func (h *AdminHandler) ToppingStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	status, err := h.adminService.ToppingStatus(c.Request.Context(), id, menu.Now())
	if err != nil {
		respondAdminError(c, err, "ToppingStatus: Error from adminService.ToppingStatus")
		return
	}
	c.JSON(http.StatusOK, status)
}

// --- Images ---

func (h *AdminHandler) AddFoodImage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req services.AddFoodImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	image, err := h.adminService.AddFoodImage(c.Request.Context(), id, req)
	if err != nil {
		respondAdminError(c, err, "AddFoodImage: Error from adminService.AddFoodImage")
		return
	}
	c.JSON(http.StatusCreated, image)
}

func (h *AdminHandler) DeleteFoodImage(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.adminService.DeleteFoodImage(c.Request.Context(), id); err != nil {
		respondAdminError(c, err, "DeleteFoodImage: Error from adminService.DeleteFoodImage")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Image deleted successfully"})
}

// --- Topping links ---

type linkToppingRequest struct {
	ToppingID int64 `json:"topping_id" binding:"required"`
}

func (h *AdminHandler) LinkTopping(c *gin.Context) {
	foodID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req linkToppingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	link, err := h.adminService.LinkTopping(c.Request.Context(), foodID, req.ToppingID)
	if err != nil {
		respondAdminError(c, err, "LinkTopping: Error from adminService.LinkTopping")
		return
	}
	c.JSON(http.StatusCreated, link)
}

func (h *AdminHandler) UnlinkTopping(c *gin.Context) {
	foodID, ok := pathID(c, "id")
	if !ok {
		return
	}
	toppingID, ok := pathID(c, "toppingID")
	if !ok {
		return
	}
	if err := h.adminService.UnlinkTopping(c.Request.Context(), foodID, toppingID); err != nil {
		respondAdminError(c, err, "UnlinkTopping: Error from adminService.UnlinkTopping")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Topping unlinked successfully"})
}
