package repository

import (
	"time"

	"github.com/dark-store/bukafresh/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	TouchLastLogin(id uint, at time.Time) error
}

// AddressRepository defines the interface for delivery address operations
type AddressRepository interface {
	Create(address *models.Address) error
	GetByID(id uint) (*models.Address, error)
	GetByUserID(userID uint) ([]models.Address, error)
	GetDefaultForUser(userID uint) (*models.Address, error)
	Update(address *models.Address) error
	ClearDefaultForUser(userID uint) error
}

// ProductRepository defines the interface for add-on shop products
type ProductRepository interface {
	Create(product *models.Product) error
	GetByID(id uint) (*models.Product, error)
	GetByIDs(ids []uint) ([]models.Product, error)
	List(category string, inStockOnly bool) ([]models.Product, error)
	GetPopular(limit int) ([]models.Product, error)
	Count() (int64, error)
}

// SubscriptionRepository defines the interface for subscription records
type SubscriptionRepository interface {
	Create(sub *models.Subscription) error
	GetByID(id uint) (*models.Subscription, error)
	GetByUserID(userID uint) ([]models.Subscription, error)
	GetBlockingByUserID(userID uint) (*models.Subscription, error)
	GetDueForBilling(day time.Time) ([]models.Subscription, error)
	Update(sub *models.Subscription) error
	UpdateStatusFrom(id uint, fromStatus, toStatus string, updates map[string]interface{}) (bool, error)
	Delete(id uint) error
}

// PaymentRepository defines the interface for mandate payment records
type PaymentRepository interface {
	Create(payment *models.Payment) error
	GetByID(id uint) (*models.Payment, error)
	GetByIdempotencyKey(key string) (*models.Payment, error)
	GetByPaymentReference(ref string) (*models.Payment, error)
	GetByUserID(userID uint) ([]models.Payment, error)
	GetBySubscriptionID(subscriptionID uint) ([]models.Payment, error)
	SettleFromPending(ref string, updates map[string]interface{}) (*models.Payment, error)
}

// OrderRepository defines the interface for one-off and subscription orders
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	GetByUserID(userID uint) ([]models.Order, error)
	Update(order *models.Order) error
}

// DeliveryRepository defines the interface for scheduled deliveries
type DeliveryRepository interface {
	Create(delivery *models.Delivery) error
	GetByID(id uint) (*models.Delivery, error)
	GetByTrackingNumber(trackingNumber string) (*models.Delivery, error)
	GetByUserID(userID uint) ([]models.Delivery, error)
	Update(delivery *models.Delivery) error
}

// Repositories struct holds all repository instances
type Repositories struct {
	User         UserRepository
	Address      AddressRepository
	Product      ProductRepository
	Subscription SubscriptionRepository
	Payment      PaymentRepository
	Order        OrderRepository
	Delivery     DeliveryRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Address:      NewAddressRepository(db),
		Product:      NewProductRepository(db),
		Subscription: NewSubscriptionRepository(db),
		Payment:      NewPaymentRepository(db),
		Order:        NewOrderRepository(db),
		Delivery:     NewDeliveryRepository(db),
	}
}
