package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusCreated   OrderStatus = "created"   // Awaiting payment
	OrderStatusPaid      OrderStatus = "paid"      // Payment confirmed
	OrderStatusCancelled OrderStatus = "cancelled" // Payment failed or rejected
)

type Order struct {
	gorm.Model
	UserID  uint     `json:"userId" gorm:"index"`
	Email   string   `json:"email"`
	Address *Address `json:"address" gorm:"foreignKey:AddressID"`
	// Nullable for legacy rows; normal checkout always sets it.
	AddressID *uint `json:"addressId"`

	// Totals are captured at checkout time and never recomputed from live prices.
	Subtotal decimal.Decimal `json:"subtotal" gorm:"type:decimal(10,2)"`
	Shipping decimal.Decimal `json:"shipping" gorm:"type:decimal(10,2)"`
	Tax      decimal.Decimal `json:"tax" gorm:"type:decimal(10,2)"`
	Total    decimal.Decimal `json:"total" gorm:"type:decimal(10,2)"`

	RazorpayOrderID string      `json:"razorpayOrderId" gorm:"size:100;index"`
	PaymentID       string      `json:"paymentId" gorm:"size:100"`
	Status          OrderStatus `json:"status" gorm:"type:varchar(20);default:'created'"`

	OrderItems []OrderItem `json:"orderItems" gorm:"foreignKey:OrderID"`
}

// OrderItem stores the price at time of purchase, not a live product reference.
type OrderItem struct {
	gorm.Model
	OrderID   uint            `json:"orderId" gorm:"index"`
	ProductID uint            `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	Quantity  int             `json:"quantity" gorm:"default:1"`
}
