package routes

import (
	"github.com/aiaero/shopsite-api/controllers"
	"github.com/aiaero/shopsite-api/middlewares"
	"github.com/gin-gonic/gin"
)

func OrderRoutes(server *gin.Engine) {
	server.POST("/checkout", middlewares.RequireAuth(), controllers.Checkout)
	server.GET("/orders", middlewares.RequireAuth(), controllers.MyOrders)
	server.GET("/orders/:orderId", middlewares.RequireAuth(), controllers.GetOrderByID)

	server.POST("/pay", middlewares.RequireAuth(), controllers.Pay)
	// Gateway callback carries its own signature; no session auth here.
	server.POST("/pay/verify", controllers.VerifyPayment)
}
