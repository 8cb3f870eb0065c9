package router

import (
	"github.com/menucat/menu-service/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupCatalogRoutes sets up the public read-only catalog routes.
func SetupCatalogRoutes(apiGroup *gin.RouterGroup, catalogHandler *handlers.CatalogHandler) {
	apiGroup.GET("/menu", catalogHandler.GetMenu)

	categoryRoutes := apiGroup.Group("/categories")
	{
		categoryRoutes.GET("", catalogHandler.ListCategories)
		categoryRoutes.GET("/:id", catalogHandler.GetCategoryByID)
	}

	foodRoutes := apiGroup.Group("/foods")
	{
		foodRoutes.GET("", catalogHandler.ListFoods)
		foodRoutes.GET("/by-category", catalogHandler.FoodsByCategory)
		foodRoutes.GET("/:id", catalogHandler.GetFoodByID)
	}

	toppingRoutes := apiGroup.Group("/toppings")
	{
		toppingRoutes.GET("", catalogHandler.ListToppings)
		toppingRoutes.GET("/:id", catalogHandler.GetToppingByID)
	}
}

// SetupAdminRoutes sets up the authenticated administrative CRUD routes.
func SetupAdminRoutes(adminGroup *gin.RouterGroup, adminHandler *handlers.AdminHandler) {
	categoryRoutes := adminGroup.Group("/categories")
	{
		categoryRoutes.POST("", adminHandler.CreateCategory)
		categoryRoutes.PUT("/:id", adminHandler.UpdateCategory)
		categoryRoutes.DELETE("/:id", adminHandler.DeleteCategory)
	}

	foodRoutes := adminGroup.Group("/foods")
	{
		foodRoutes.POST("", adminHandler.CreateFood)
		foodRoutes.PUT("/:id", adminHandler.UpdateFood)
		foodRoutes.DELETE("/:id", adminHandler.DeleteFood)
		foodRoutes.GET("/:id/status", adminHandler.FoodStatus)
		foodRoutes.POST("/:id/images", adminHandler.AddFoodImage)
		foodRoutes.POST("/:id/toppings", adminHandler.LinkTopping)
		foodRoutes.DELETE("/:id/toppings/:toppingID", adminHandler.UnlinkTopping)
	}

	toppingRoutes := adminGroup.Group("/toppings")
	{
		toppingRoutes.POST("", adminHandler.CreateTopping)
		toppingRoutes.PUT("/:id", adminHandler.UpdateTopping)
		toppingRoutes.DELETE("/:id", adminHandler.DeleteTopping)
		toppingRoutes.GET("/:id/status", adminHandler.ToppingStatus)
	}

	adminGroup.DELETE("/images/:id", adminHandler.DeleteFoodImage)
}

// SetupPageRoutes sets up the server-rendered browsing views.
func SetupPageRoutes(engine *gin.Engine, pageHandler *handlers.PageHandler) {
	pages := engine.Group("/menu")
	{
		pages.GET("/", pageHandler.MenuPage)
		pages.GET("/food/:id", pageHandler.FoodDetailPage)
	}
}
