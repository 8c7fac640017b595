package models

import "gorm.io/gorm"

// CartItem is the persistent mirror of the session cart. A row belongs to
// either an authenticated user or an anonymous session key, never both.
type CartItem struct {
	gorm.Model
	UserID     *uint  `json:"userId" gorm:"index"`
	SessionKey string `json:"sessionKey" gorm:"size:40;index"`
	ProductID  uint   `json:"productId"`
	Quantity   int    `json:"quantity" gorm:"default:1"`
}
