package repository

import (
	"github.com/dark-store/bukafresh/app/models"
	"gorm.io/gorm"
)

// deliveryRepository implements the DeliveryRepository interface
type deliveryRepository struct {
	db *gorm.DB
}

// NewDeliveryRepository creates a new delivery repository instance
func NewDeliveryRepository(db *gorm.DB) DeliveryRepository {
	return &deliveryRepository{db: db}
}

func (r *deliveryRepository) Create(delivery *models.Delivery) error {
	return r.db.Create(delivery).Error
}

func (r *deliveryRepository) GetByID(id uint) (*models.Delivery, error) {
	var delivery models.Delivery
	err := r.db.Preload("Items").First(&delivery, id).Error
	if err != nil {
		return nil, err
	}
	return &delivery, nil
}

func (r *deliveryRepository) GetByTrackingNumber(trackingNumber string) (*models.Delivery, error) {
	var delivery models.Delivery
	err := r.db.Preload("Items").Where("tracking_number = ?", trackingNumber).First(&delivery).Error
	if err != nil {
		return nil, err
	}
	return &delivery, nil
}

func (r *deliveryRepository) GetByUserID(userID uint) ([]models.Delivery, error) {
	var deliveries []models.Delivery
	err := r.db.Preload("Items").Where("user_id = ?", userID).
		Order("scheduled_date DESC").Find(&deliveries).Error
	return deliveries, err
}

func (r *deliveryRepository) Update(delivery *models.Delivery) error {
	return r.db.Save(delivery).Error
}
