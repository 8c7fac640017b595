package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/aiaero/shopsite-api/initializers"
	"github.com/aiaero/shopsite-api/models"
	"github.com/aiaero/shopsite-api/orders"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func checkoutPolicy() orders.Policy {
	return orders.PolicyFromEnv()
}

type checkoutInput struct {
	AddressID uint `json:"addressId"`
}

// Checkout snapshots the cart into an order and points the session at it for
// the payment step.
func Checkout(ctx *gin.Context) {
	var input checkoutInput
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&input); err != nil {
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
			return
		}
	}

	var user models.User
	if err := initializers.DB.First(&user, currentUserID(ctx)).Error; err != nil {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found")
		return
	}

	sessionCart := sessionCartFor(ctx)
	lines, err := sessionCart.Items(initializers.DB)
	if err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	checkoutLines := make([]orders.CheckoutLine, 0, len(lines))
	for _, line := range lines {
		checkoutLines = append(checkoutLines, orders.CheckoutLine{
			ProductID: line.ProductID,
			Qty:       line.Qty,
		})
	}

	order, err := orders.Checkout(initializers.DB, checkoutPolicy(), &user, input.AddressID, checkoutLines)
	if err != nil {
		switch {
		case errors.Is(err, orders.ErrEmptyCart):
			sendErrorResponse(ctx, http.StatusBadRequest, "Your cart is empty.")
		case errors.Is(err, orders.ErrNoAddress):
			sendErrorResponse(ctx, http.StatusBadRequest, "Please add a shipping address first.")
		case errors.Is(err, orders.ErrAddressNotFound):
			sendErrorResponse(ctx, http.StatusNotFound, "Address not found")
		default:
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to create order")
		}
		return
	}

	sessionCart.SetCurrentOrderID(order.ID)

	sendJSONResponse(ctx, http.StatusCreated, gin.H{"order": order})
}

func MyOrders(ctx *gin.Context) {
	var userOrders []models.Order
	result := initializers.DB.Preload("OrderItems").
		Where("user_id = ?", currentUserID(ctx)).
		Order("created_at desc").
		Find(&userOrders)
	if result.Error != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch orders.")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": userOrders})
}

func GetOrderByID(ctx *gin.Context) {
	orderID, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	var order models.Order
	result := initializers.DB.Preload("OrderItems").Preload("Address").
		Where("id = ? AND user_id = ?", orderID, currentUserID(ctx)).
		First(&order)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		return
	}
	if result.Error != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch order.")
		return
	}

	// Legacy rows may predate stored totals; recompute from items then.
	totals := checkoutPolicy().TotalsForOrder(&order, order.OrderItems)

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"order":  order,
		"totals": totals,
	})
}
