package cart

import (
	"encoding/gob"
	"log"
	"strconv"

	"github.com/aiaero/shopsite-api/models"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	sessionKeyCart  = "cart"
	sessionKeySID   = "sid"
	sessionKeyOrder = "current_order_id"
)

func init() {
	gob.Register(map[string]Entry{})
}

// Entry is one stored cart line, keyed by product id string.
type Entry struct {
	Qty int
}

// Line is a cart row resolved against the catalog.
type Line struct {
	Product   *models.Product
	ProductID uint
	Qty       int
	Price     decimal.Decimal
	Subtotal  decimal.Decimal
}

// Cart is the session-backed view of the shopper's selections.
type Cart struct {
	session sessions.Session
}

func New(session sessions.Session) *Cart {
	c := &Cart{session: session}
	c.sanitize()
	return c
}

func FromContext(ctx *gin.Context) *Cart {
	return New(sessions.Default(ctx))
}

func (c *Cart) store() map[string]Entry {
	raw := c.session.Get(sessionKeyCart)
	if raw == nil {
		return map[string]Entry{}
	}
	store, ok := raw.(map[string]Entry)
	if !ok {
		// Corrupt session payload: start over rather than raise.
		c.save(map[string]Entry{})
		return map[string]Entry{}
	}
	return store
}

func (c *Cart) save(store map[string]Entry) {
	c.session.Set(sessionKeyCart, store)
	if err := c.session.Save(); err != nil {
		log.Println("Failed to save cart session:", err)
	}
}

// sanitize purges keys that are not positive integer product ids and entries
// with a non-positive quantity.
func (c *Cart) sanitize() {
	store := c.store()
	changed := false
	for key, entry := range store {
		if parseProductID(key) == 0 || entry.Qty < 1 {
			delete(store, key)
			changed = true
		}
	}
	if changed {
		c.save(store)
	}
}

func parseProductID(key string) uint {
	id, err := strconv.ParseUint(key, 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}

// Add creates the line if absent. With overwrite the quantity is replaced,
// otherwise it is added to the existing quantity; both floor at 1.
func (c *Cart) Add(productID uint, qty int, overwrite bool) {
	store := c.store()
	key := strconv.FormatUint(uint64(productID), 10)

	current := store[key].Qty
	next := current + qty
	if overwrite {
		next = qty
	}
	if next < 1 {
		next = 1
	}
	store[key] = Entry{Qty: next}
	c.save(store)
}

// Remove deletes the line; no-op when absent.
func (c *Cart) Remove(productID uint) {
	store := c.store()
	key := strconv.FormatUint(uint64(productID), 10)
	if _, ok := store[key]; !ok {
		return
	}
	delete(store, key)
	c.save(store)
}

func (c *Cart) Clear() {
	c.save(map[string]Entry{})
}

// Count is the total quantity across all lines.
func (c *Cart) Count() int {
	total := 0
	for _, entry := range c.store() {
		total += entry.Qty
	}
	return total
}

// Len is the number of distinct product lines.
func (c *Cart) Len() int {
	return len(c.store())
}

// Items resolves the stored lines against the catalog in one batch lookup.
// Lines whose product no longer exists or is inactive are silently skipped.
func (c *Cart) Items(db *gorm.DB) ([]Line, error) {
	store := c.store()
	if len(store) == 0 {
		return nil, nil
	}

	ids := make([]uint, 0, len(store))
	for key := range store {
		ids = append(ids, parseProductID(key))
	}

	var products []models.Product
	if err := db.Where("id IN ? AND active = ?", ids, true).Find(&products).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	lines := make([]Line, 0, len(store))
	for key, entry := range store {
		product, ok := byID[parseProductID(key)]
		if !ok {
			continue
		}
		qty := entry.Qty
		if qty < 1 {
			qty = 1
		}
		subtotal := product.Price.Mul(decimal.NewFromInt(int64(qty)))
		lines = append(lines, Line{
			Product:   product,
			ProductID: product.ID,
			Qty:       qty,
			Price:     product.Price,
			Subtotal:  subtotal,
		})
	}
	return lines, nil
}

// Total is the sum of line subtotals.
func (c *Cart) Total(db *gorm.DB) (decimal.Decimal, error) {
	lines, err := c.Items(db)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal)
	}
	return total, nil
}

// SessionKey returns the anonymous owner token, creating it on first use.
func (c *Cart) SessionKey() string {
	if sid, ok := c.session.Get(sessionKeySID).(string); ok && sid != "" {
		return sid
	}
	sid := uuid.NewString()
	c.session.Set(sessionKeySID, sid)
	if err := c.session.Save(); err != nil {
		log.Println("Failed to save session key:", err)
	}
	return sid
}

// CurrentOrderID is the "current order" pointer consumed by the payment step.
func (c *Cart) CurrentOrderID() uint {
	if id, ok := c.session.Get(sessionKeyOrder).(uint); ok {
		return id
	}
	return 0
}

func (c *Cart) SetCurrentOrderID(id uint) {
	c.session.Set(sessionKeyOrder, id)
	if err := c.session.Save(); err != nil {
		log.Println("Failed to save current order pointer:", err)
	}
}

func (c *Cart) ClearCurrentOrderID() {
	c.session.Delete(sessionKeyOrder)
	if err := c.session.Save(); err != nil {
		log.Println("Failed to clear current order pointer:", err)
	}
}
