package routes

import (
	"github.com/aiaero/shopsite-api/controllers"
	"github.com/aiaero/shopsite-api/middlewares"
	"github.com/gin-gonic/gin"
)

func AddressRoutes(server *gin.Engine) {
	group := server.Group("/address", middlewares.RequireAuth())
	{
		group.GET("", controllers.ListAddresses)
		group.POST("", controllers.CreateAddress)
		group.PUT("/:addressId", controllers.UpdateAddress)
		group.DELETE("/:addressId", controllers.DeleteAddress)
		group.POST("/:addressId/default", controllers.SetDefaultAddress)
	}
}
