package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the Shopsite API.

The following are the endpoints for this API:

AUTH
- POST "/auth/signup" - Create user account
- POST "/auth/login" - Access user account (merges the anonymous cart)

PRODUCT
- POST "/product" - Create new product (admin)
- PUT "/product/:id" - Update product (admin)
- GET "/product" - Get all products
- GET "/product/:id" - Get product by ID

CART
- GET "/cart" - View cart
- POST "/cart" - Add item to cart
- PUT "/cart/:productId" - Set item quantity
- DELETE "/cart/:productId" - Remove item
- DELETE "/cart" - Clear cart

ADDRESS
- GET "/address" - List addresses
- POST "/address" - Create address
- PUT "/address/:addressId" - Update address
- DELETE "/address/:addressId" - Delete address
- POST "/address/:addressId/default" - Set default address

ORDER & PAYMENT
- POST "/checkout" - Create an order from the cart
- GET "/orders" - Get my orders
- GET "/orders/:orderId" - Get order by ID
- POST "/pay" - Start payment for the current order
- POST "/pay/verify" - Payment gateway callback`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
