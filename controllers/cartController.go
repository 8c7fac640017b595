package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/aiaero/shopsite-api/cart"
	"github.com/aiaero/shopsite-api/initializers"
	"github.com/aiaero/shopsite-api/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const msgFailedToUpdateCart = "Failed to update cart"

type cartItemInput struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity"`
}

func currentUserID(ctx *gin.Context) uint {
	if id, ok := ctx.Get("userId"); ok {
		if uid, ok := id.(uint); ok {
			return uid
		}
	}
	return 0
}

func cartOwner(ctx *gin.Context, sessionCart *cart.Cart) cart.Owner {
	if uid := currentUserID(ctx); uid != 0 {
		return cart.Owner{UserID: uid}
	}
	return cart.Owner{SessionKey: sessionCart.SessionKey()}
}

// sessionCartFor loads the session cart and, for an authenticated shopper
// with an empty session, repopulates it from the persisted rows.
func sessionCartFor(ctx *gin.Context) *cart.Cart {
	sessionCart := cart.FromContext(ctx)
	if uid := currentUserID(ctx); uid != 0 {
		if err := sessionCart.Reconcile(initializers.DB, uid); err != nil {
			log.Println("Cart reconcile failed:", err)
		}
	}
	return sessionCart
}

func AddToCart(ctx *gin.Context) {
	var input cartItemInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}
	qty := input.Quantity
	if qty < 1 {
		qty = 1
	}

	var product models.Product
	if err := initializers.DB.First(&product, input.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, "Product not found")
		} else {
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	sessionCart := sessionCartFor(ctx)
	sessionCart.Add(input.ProductID, qty, false)

	if err := cart.SaveRow(initializers.DB, cartOwner(ctx, sessionCart), input.ProductID, qty, false); err != nil {
		log.Println("Cart row save failed:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToUpdateCart)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": product.Name + " added to cart",
		"count":   sessionCart.Count(),
	})
}

func UpdateCartItem(ctx *gin.Context) {
	productID, err := strconv.Atoi(ctx.Param("productId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse productId")
		return
	}

	var input struct {
		Quantity int `json:"quantity" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&input); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	sessionCart := sessionCartFor(ctx)
	sessionCart.Add(uint(productID), input.Quantity, true)

	if err := cart.SaveRow(initializers.DB, cartOwner(ctx, sessionCart), uint(productID), input.Quantity, true); err != nil {
		log.Println("Cart row save failed:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToUpdateCart)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"count": sessionCart.Count()})
}

func RemoveFromCart(ctx *gin.Context) {
	productID, err := strconv.Atoi(ctx.Param("productId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse productId")
		return
	}

	sessionCart := sessionCartFor(ctx)
	sessionCart.Remove(uint(productID))

	if err := cart.DeleteRow(initializers.DB, cartOwner(ctx, sessionCart), uint(productID)); err != nil {
		log.Println("Cart row delete failed:", err)
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"count": sessionCart.Count()})
}

func ClearCart(ctx *gin.Context) {
	sessionCart := cart.FromContext(ctx)
	sessionCart.Clear()

	if err := cart.ClearRows(initializers.DB, cartOwner(ctx, sessionCart)); err != nil {
		log.Println("Cart rows clear failed:", err)
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"count": 0})
}

func GetCart(ctx *gin.Context) {
	sessionCart := sessionCartFor(ctx)

	lines, err := sessionCart.Items(initializers.DB)
	if err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}

	items := make([]gin.H, 0, len(lines))
	for _, line := range lines {
		items = append(items, gin.H{
			"productId": line.ProductID,
			"name":      line.Product.Name,
			"qty":       line.Qty,
			"price":     line.Price,
			"subtotal":  line.Subtotal,
		})
	}

	total, err := sessionCart.Total(initializers.DB)
	if err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"items": items,
		"count": sessionCart.Count(),
		"lines": sessionCart.Len(),
		"total": total,
	})
}
