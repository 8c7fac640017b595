package accounts

import (
	"errors"

	"github.com/aiaero/shopsite-api/models"
	"gorm.io/gorm"
)

var ErrAddressNotFound = errors.New("address not found")

// ListAddresses returns the user's addresses, default first.
func ListAddresses(db *gorm.DB, userID uint) ([]models.Address, error) {
	var addresses []models.Address
	err := db.Where("user_id = ?", userID).
		Order("is_default desc, id asc").
		Find(&addresses).Error
	return addresses, err
}

func GetAddress(db *gorm.DB, userID, addressID uint) (*models.Address, error) {
	var address models.Address
	err := db.Where("id = ? AND user_id = ?", addressID, userID).First(&address).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAddressNotFound
	}
	if err != nil {
		return nil, err
	}
	return &address, nil
}

// CreateAddress saves a new address. It becomes the default when requested or
// when the user has no default yet.
func CreateAddress(db *gorm.DB, userID uint, address *models.Address) error {
	wantDefault := address.IsDefault
	address.UserID = userID
	address.IsDefault = false

	if err := db.Create(address).Error; err != nil {
		return err
	}

	if wantDefault || !hasDefault(db, userID, address.ID) {
		return setDefault(db, userID, address.ID)
	}
	return ensureDefault(db, userID)
}

// UpdateAddress overwrites an owned address. Unsetting the default flag keeps
// the address default anyway when no other default exists.
func UpdateAddress(db *gorm.DB, userID uint, address *models.Address) error {
	existing, err := GetAddress(db, userID, address.ID)
	if err != nil {
		return err
	}

	wantDefault := address.IsDefault
	address.UserID = userID
	address.IsDefault = existing.IsDefault

	if err := db.Save(address).Error; err != nil {
		return err
	}

	if wantDefault {
		return setDefault(db, userID, address.ID)
	}
	return ensureDefault(db, userID)
}

// DeleteAddress removes an owned address and promotes another one to default
// when the deleted address held the flag.
func DeleteAddress(db *gorm.DB, userID, addressID uint) error {
	address, err := GetAddress(db, userID, addressID)
	if err != nil {
		return err
	}
	if err := db.Delete(address).Error; err != nil {
		return err
	}
	return ensureDefault(db, userID)
}

// SetDefaultAddress marks one owned address default, unsetting the others.
func SetDefaultAddress(db *gorm.DB, userID, addressID uint) error {
	if _, err := GetAddress(db, userID, addressID); err != nil {
		return err
	}
	return setDefault(db, userID, addressID)
}

// DefaultAddress returns the default address, falling back to the first one.
func DefaultAddress(db *gorm.DB, userID uint) (*models.Address, error) {
	var address models.Address
	err := db.Where("user_id = ?", userID).
		Order("is_default desc, id asc").
		First(&address).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAddressNotFound
	}
	if err != nil {
		return nil, err
	}
	return &address, nil
}

func hasDefault(db *gorm.DB, userID, excludeID uint) bool {
	var count int64
	db.Model(&models.Address{}).
		Where("user_id = ? AND is_default = ? AND id <> ?", userID, true, excludeID).
		Count(&count)
	return count > 0
}

// setDefault applies the unconditional unset-others-then-set-one pattern.
func setDefault(db *gorm.DB, userID, addressID uint) error {
	if err := db.Model(&models.Address{}).
		Where("user_id = ? AND id <> ?", userID, addressID).
		Update("is_default", false).Error; err != nil {
		return err
	}
	return db.Model(&models.Address{}).
		Where("user_id = ? AND id = ?", userID, addressID).
		Update("is_default", true).Error
}

// ensureDefault self-heals the invariant: when the user still has addresses
// but none is default, the first by insertion order is promoted.
func ensureDefault(db *gorm.DB, userID uint) error {
	var count int64
	if err := db.Model(&models.Address{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var first models.Address
	err := db.Where("user_id = ?", userID).Order("id asc").First(&first).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return setDefault(db, userID, first.ID)
}
