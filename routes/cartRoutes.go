package routes

import (
	"github.com/aiaero/shopsite-api/controllers"
	"github.com/aiaero/shopsite-api/middlewares"
	"github.com/gin-gonic/gin"
)

func CartRoutes(server *gin.Engine) {
	group := server.Group("/cart", middlewares.OptionalAuth())
	{
		group.GET("", controllers.GetCart)
		group.POST("", controllers.AddToCart)
		group.PUT("/:productId", controllers.UpdateCartItem)
		group.DELETE("/:productId", controllers.RemoveFromCart)
		group.DELETE("", controllers.ClearCart)
	}
}
