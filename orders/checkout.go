package orders

import (
	"errors"
	"log"

	"github.com/aiaero/shopsite-api/models"
	"gorm.io/gorm"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrNoAddress       = errors.New("no shipping address on file")
	ErrAddressNotFound = errors.New("address not found")
	ErrOrderNotFound   = errors.New("order not found")
)

// CheckoutLine is one cart row handed to the orchestrator. Products are
// re-resolved against the catalog so prices are captured at purchase time.
type CheckoutLine struct {
	ProductID uint
	Qty       int
}

// Checkout snapshots the cart into a persisted order with status "created".
// addressID zero means "use the default address". Stock decrement is
// best-effort and never fails the checkout.
func Checkout(db *gorm.DB, policy Policy, user *models.User, addressID uint, lines []CheckoutLine) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	address, err := resolveAddress(db, user.ID, addressID)
	if err != nil {
		return nil, err
	}

	products, err := resolveProducts(db, lines)
	if err != nil {
		return nil, err
	}

	calcLines := make([]Line, 0, len(lines))
	for _, line := range lines {
		product, ok := products[line.ProductID]
		if !ok {
			continue
		}
		qty := line.Qty
		if qty < 1 {
			qty = 1
		}
		calcLines = append(calcLines, Line{Price: product.Price, Qty: qty})
	}
	if len(calcLines) == 0 {
		return nil, ErrEmptyCart
	}

	totals := policy.Calculate(calcLines)

	order := models.Order{
		UserID:    user.ID,
		Email:     user.Email,
		AddressID: &address.ID,
		Subtotal:  totals.Subtotal,
		Shipping:  totals.Shipping,
		Tax:       totals.Tax,
		Total:     totals.Total,
		Status:    models.OrderStatusCreated,
	}
	if err := db.Create(&order).Error; err != nil {
		return nil, err
	}

	for _, line := range lines {
		product, ok := products[line.ProductID]
		if !ok {
			continue
		}
		qty := line.Qty
		if qty < 1 {
			qty = 1
		}

		item := models.OrderItem{
			OrderID:   order.ID,
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  qty,
		}
		if err := db.Create(&item).Error; err != nil {
			return nil, err
		}
		order.OrderItems = append(order.OrderItems, item)

		newStock := product.Stock - qty
		if newStock < 0 {
			newStock = 0
		}
		if err := db.Model(&models.Product{}).Where("id = ?", product.ID).
			UpdateColumn("stock", newStock).Error; err != nil {
			log.Printf("Order %d: stock update for product %d failed: %v", order.ID, product.ID, err)
		}
	}

	order.Address = address
	return &order, nil
}

func resolveAddress(db *gorm.DB, userID, addressID uint) (*models.Address, error) {
	var address models.Address

	if addressID != 0 {
		err := db.Where("id = ? AND user_id = ?", addressID, userID).First(&address).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAddressNotFound
		}
		if err != nil {
			return nil, err
		}
		return &address, nil
	}

	err := db.Where("user_id = ?", userID).Order("is_default desc, id asc").First(&address).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoAddress
	}
	if err != nil {
		return nil, err
	}
	return &address, nil
}

func resolveProducts(db *gorm.DB, lines []CheckoutLine) (map[uint]*models.Product, error) {
	ids := make([]uint, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}

	var products []models.Product
	if err := db.Where("id IN ? AND active = ?", ids, true).Find(&products).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	return byID, nil
}
