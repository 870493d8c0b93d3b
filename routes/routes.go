package routes

import (
	"github.com/Devika-314/CraftSphere/controllers"
	"github.com/Devika-314/CraftSphere/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter() *gin.Engine {
	router := gin.Default()

	api := router.Group("/v1")
	{
		// Public catalog surface
		api.GET("/shops", controllers.ListShops)
		api.GET("/shops/:id", controllers.GetShop)
		api.GET("/products", controllers.ListProducts)
		api.GET("/products/:id", controllers.GetProduct)
		api.GET("/events", controllers.ListEvents)
		api.GET("/events/:id", controllers.GetEvent)
		api.POST("/events/:id/click", controllers.TrackEventClick)

		// Cart preview quote: read-only, no auth needed
		api.POST("/discounts/validate", controllers.ValidateDiscount)

		// Buyer routes
		buyer := api.Group("")
		buyer.Use(middleware.AuthMiddleware())
		{
			buyer.POST("/discounts/redeem", controllers.RedeemDiscount)
		}

		// Seller routes
		seller := api.Group("/seller")
		seller.Use(middleware.AuthMiddleware(), middleware.SellerMiddleware())
		{
			seller.POST("/discounts", controllers.CreateDiscountCode)
			seller.GET("/discounts", controllers.ListDiscountCodes)
			seller.PUT("/discounts/:id", controllers.UpdateDiscountCode)
			seller.DELETE("/discounts/:id", controllers.DeleteDiscountCode)
			seller.GET("/discounts/:id/usages", controllers.ListDiscountUsages)

			seller.POST("/events", controllers.CreateEvent)
			seller.PUT("/events/:id", controllers.UpdateEvent)
			seller.DELETE("/events/:id", controllers.DeleteEvent)
			seller.PUT("/events/:id/products", controllers.SetEventProducts)

			seller.GET("/products/:id/pricing-history", controllers.GetProductPricingHistory)

			seller.GET("/reports/promotions/excel", controllers.DownloadPromotionReportExcel)
			seller.GET("/reports/promotions/pdf", controllers.DownloadPromotionReportPDF)
		}
	}

	return router
}
