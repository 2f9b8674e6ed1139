package repository

import (
	"github.com/dark-store/bukafresh/app/models"
	"gorm.io/gorm"
)

// addressRepository implements the AddressRepository interface
type addressRepository struct {
	db *gorm.DB
}

// NewAddressRepository creates a new address repository instance
func NewAddressRepository(db *gorm.DB) AddressRepository {
	return &addressRepository{db: db}
}

func (r *addressRepository) Create(address *models.Address) error {
	return r.db.Create(address).Error
}

func (r *addressRepository) GetByID(id uint) (*models.Address, error) {
	var address models.Address
	err := r.db.First(&address, id).Error
	if err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *addressRepository) GetByUserID(userID uint) ([]models.Address, error) {
	var addresses []models.Address
	err := r.db.Where("user_id = ?", userID).Order("is_default DESC, id ASC").Find(&addresses).Error
	return addresses, err
}

// GetDefaultForUser returns the default address, falling back to the oldest
// one when no default is flagged.
func (r *addressRepository) GetDefaultForUser(userID uint) (*models.Address, error) {
	var address models.Address
	err := r.db.Where("user_id = ? AND is_default = ?", userID, true).First(&address).Error
	if err == nil {
		return &address, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	err = r.db.Where("user_id = ?", userID).Order("id ASC").First(&address).Error
	if err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *addressRepository) Update(address *models.Address) error {
	return r.db.Save(address).Error
}

// ClearDefaultForUser unsets the default flag on all of the user's addresses.
func (r *addressRepository) ClearDefaultForUser(userID uint) error {
	return r.db.Model(&models.Address{}).
		Where("user_id = ? AND is_default = ?", userID, true).
		Update("is_default", false).Error
}
