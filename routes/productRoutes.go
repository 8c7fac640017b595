package routes

import (
	"github.com/aiaero/shopsite-api/controllers"
	"github.com/aiaero/shopsite-api/middlewares"
	"github.com/gin-gonic/gin"
)

func ProductRoutes(server *gin.Engine) {
	server.POST("/product", middlewares.RequireAuth(), middlewares.RequireAdmin(), controllers.CreateProduct)
	server.PUT("/product/:id", middlewares.RequireAuth(), middlewares.RequireAdmin(), controllers.UpdateProduct)
	server.GET("/product", controllers.GetProducts)
	server.GET("/product/:id", controllers.GetProduct)
}
