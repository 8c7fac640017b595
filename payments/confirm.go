package payments

import (
	"errors"

	"github.com/aiaero/shopsite-api/models"
	"gorm.io/gorm"
)

var ErrOrderNotFound = errors.New("order not found for gateway order id")

// Verifier validates a payment callback signature.
type Verifier interface {
	VerifySignature(gatewayOrderID, paymentID, signature string) bool
}

// CallbackParams is what the gateway posts back after a payment attempt.
type CallbackParams struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

// Outcome reports what Confirm did. Side effects (cart clearing, email) must
// key off Transitioned so a gateway retry against a terminal order re-runs
// nothing.
type Outcome struct {
	Order        *models.Order
	Paid         bool
	Transitioned bool
}

// Confirm drives the created -> paid | cancelled edge. An order already in a
// terminal state is returned unchanged.
func Confirm(db *gorm.DB, verifier Verifier, params CallbackParams) (Outcome, error) {
	var order models.Order
	err := db.Where("razorpay_order_id = ?", params.RazorpayOrderID).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Outcome{}, ErrOrderNotFound
	}
	if err != nil {
		return Outcome{}, err
	}

	if order.Status != models.OrderStatusCreated {
		return Outcome{Order: &order, Paid: order.Status == models.OrderStatusPaid}, nil
	}

	if !verifier.VerifySignature(params.RazorpayOrderID, params.RazorpayPaymentID, params.RazorpaySignature) {
		order.Status = models.OrderStatusCancelled
		if err := db.Model(&order).Update("status", order.Status).Error; err != nil {
			return Outcome{}, err
		}
		return Outcome{Order: &order, Transitioned: true}, nil
	}

	order.Status = models.OrderStatusPaid
	order.PaymentID = params.RazorpayPaymentID
	if err := db.Model(&order).Updates(map[string]any{
		"status":     order.Status,
		"payment_id": order.PaymentID,
	}).Error; err != nil {
		return Outcome{}, err
	}
	return Outcome{Order: &order, Paid: true, Transitioned: true}, nil
}
