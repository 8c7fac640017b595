package cart

import (
	"errors"
	"strconv"

	"github.com/aiaero/shopsite-api/models"
	"gorm.io/gorm"
)

// Owner identifies whose rows we are touching: an authenticated user or an
// anonymous session token, never both.
type Owner struct {
	UserID     uint
	SessionKey string
}

func (o Owner) scope(db *gorm.DB) *gorm.DB {
	if o.UserID != 0 {
		return db.Where("user_id = ?", o.UserID)
	}
	return db.Where("session_key = ?", o.SessionKey)
}

// SaveRow upserts the persistent mirror of one cart line. With overwrite the
// quantity is replaced, otherwise added; both floor at 1.
func SaveRow(db *gorm.DB, owner Owner, productID uint, qty int, overwrite bool) error {
	var row models.CartItem
	err := owner.scope(db).Where("product_id = ?", productID).First(&row).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		if qty < 1 {
			qty = 1
		}
		row = models.CartItem{ProductID: productID, Quantity: qty}
		if owner.UserID != 0 {
			uid := owner.UserID
			row.UserID = &uid
		} else {
			row.SessionKey = owner.SessionKey
		}
		return db.Create(&row).Error
	}
	if err != nil {
		return err
	}

	if overwrite {
		row.Quantity = qty
	} else {
		row.Quantity += qty
	}
	if row.Quantity < 1 {
		row.Quantity = 1
	}
	return db.Save(&row).Error
}

// DeleteRow removes the persistent line; no-op when absent.
func DeleteRow(db *gorm.DB, owner Owner, productID uint) error {
	return owner.scope(db).Where("product_id = ?", productID).Delete(&models.CartItem{}).Error
}

// ClearRows removes every persistent line for the owner.
func ClearRows(db *gorm.DB, owner Owner) error {
	return owner.scope(db).Delete(&models.CartItem{}).Error
}

// MergeOnLogin folds the anonymous session rows into the user's rows: a
// matching product sums quantities and drops the anonymous row, anything else
// is reassigned to the user.
func MergeOnLogin(db *gorm.DB, sessionKey string, userID uint) error {
	if sessionKey == "" {
		return nil
	}

	var anonRows []models.CartItem
	if err := db.Where("session_key = ?", sessionKey).Find(&anonRows).Error; err != nil {
		return err
	}
	if len(anonRows) == 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, anon := range anonRows {
			var existing models.CartItem
			err := tx.Where("user_id = ? AND product_id = ?", userID, anon.ProductID).
				First(&existing).Error

			if err == nil {
				existing.Quantity += anon.Quantity
				if err := tx.Save(&existing).Error; err != nil {
					return err
				}
				if err := tx.Delete(&anon).Error; err != nil {
					return err
				}
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			uid := userID
			anon.UserID = &uid
			anon.SessionKey = ""
			if err := tx.Save(&anon).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Reconcile repopulates an empty session cart from the user's persistent rows
// so the two views agree after login.
func (c *Cart) Reconcile(db *gorm.DB, userID uint) error {
	if c.Len() > 0 || userID == 0 {
		return nil
	}

	var rows []models.CartItem
	if err := db.Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	store := map[string]Entry{}
	for _, row := range rows {
		qty := row.Quantity
		if qty < 1 {
			qty = 1
		}
		store[strconv.FormatUint(uint64(row.ProductID), 10)] = Entry{Qty: qty}
	}
	c.save(store)
	return nil
}
