package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/aiaero/shopsite-api/cart"
	"github.com/aiaero/shopsite-api/initializers"
	"github.com/aiaero/shopsite-api/invoice"
	"github.com/aiaero/shopsite-api/models"
	"github.com/aiaero/shopsite-api/payments"
	"github.com/aiaero/shopsite-api/utils"
	"github.com/gin-gonic/gin"
)

// Pay registers the session's current order with the gateway and hands the
// client everything the payment widget needs.
func Pay(ctx *gin.Context) {
	sessionCart := cart.FromContext(ctx)
	orderID := sessionCart.CurrentOrderID()
	if orderID == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, "No order in progress")
		return
	}

	var order models.Order
	result := initializers.DB.Preload("Address").
		Where("id = ? AND status = ?", orderID, models.OrderStatusCreated).
		First(&order)
	if result.Error != nil {
		sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		return
	}

	client, err := payments.NewClient()
	if err != nil {
		log.Println("Payment client setup failed:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Payment configuration missing")
		return
	}

	gatewayOrderID, err := client.CreateOrder(&order)
	if err != nil {
		log.Println("Gateway order creation failed:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to initiate payment")
		return
	}

	order.RazorpayOrderID = gatewayOrderID
	if err := initializers.DB.Model(&order).Update("razorpay_order_id", gatewayOrderID).Error; err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	response := gin.H{
		"orderId":         order.ID,
		"razorpayKey":     client.KeyID(),
		"razorpayOrderId": gatewayOrderID,
		"amount":          payments.MinorUnits(order.Total),
		"currency":        "INR",
		"customerEmail":   order.Email,
	}
	if order.Address != nil {
		response["customerName"] = order.Address.FullName
		response["customerContact"] = order.Address.Phone
	}
	sendJSONResponse(ctx, http.StatusOK, response)
}

// VerifyPayment handles the gateway callback. A valid signature marks the
// order paid; an invalid one cancels it. Retries against a terminal order
// change nothing.
func VerifyPayment(ctx *gin.Context) {
	var params payments.CallbackParams
	if err := ctx.ShouldBind(&params); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	client, err := payments.NewClient()
	if err != nil {
		log.Println("Payment client setup failed:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Payment configuration missing")
		return
	}

	outcome, err := payments.Confirm(initializers.DB, client, params)
	if err != nil {
		if errors.Is(err, payments.ErrOrderNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Order not found")
		} else {
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	order := outcome.Order

	if outcome.Transitioned && outcome.Paid {
		clearCartsAfterPayment(ctx, order)

		// Notification failure must not undo a successful payment.
		if err := sendConfirmation(order); err != nil {
			log.Printf("Failed to send order email/invoice for order #%d: %v", order.ID, err)
		}
	}

	if outcome.Paid {
		sendJSONResponse(ctx, http.StatusOK, gin.H{
			"status":  "paid",
			"orderId": order.ID,
		})
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"status":  string(order.Status),
		"orderId": order.ID,
	})
}

// clearCartsAfterPayment empties both cart forms, best-effort.
func clearCartsAfterPayment(ctx *gin.Context, order *models.Order) {
	sessionCart := cart.FromContext(ctx)
	sessionCart.Clear()
	sessionCart.ClearCurrentOrderID()

	if err := cart.ClearRows(initializers.DB, cart.Owner{UserID: order.UserID}); err != nil {
		log.Println("Cart rows clear after payment failed:", err)
	}
	if sid := sessionCart.SessionKey(); sid != "" {
		if err := cart.ClearRows(initializers.DB, cart.Owner{SessionKey: sid}); err != nil {
			log.Println("Anonymous cart rows clear after payment failed:", err)
		}
	}
}

// sendConfirmation renders the invoice through the engine chain and mails
// the confirmation. A rendering failure only drops the attachment.
func sendConfirmation(order *models.Order) error {
	var items []models.OrderItem
	if err := initializers.DB.Where("order_id = ?", order.ID).Find(&items).Error; err != nil {
		return err
	}
	if order.Address == nil && order.AddressID != nil {
		var address models.Address
		if err := initializers.DB.First(&address, *order.AddressID).Error; err == nil {
			order.Address = &address
		}
	}

	policy := checkoutPolicy()
	totals := policy.TotalsForOrder(order, items)
	inv := invoice.FromOrder(order, items, totals, policy.TaxRatePct.StringFixed(0))

	pdf, err := invoice.Generate(context.Background(), inv)
	if err != nil {
		log.Printf("Invoice generation failed for order #%d: %v", order.ID, err)
		pdf = nil
	} else {
		invoice.Archive(context.Background(), order.ID, pdf)
	}

	toEmail := order.Email
	if toEmail == "" && order.Address != nil {
		toEmail = order.Address.Email
	}
	if toEmail == "" {
		return nil
	}
	return utils.SendOrderConfirmation(toEmail, inv, pdf)
}
