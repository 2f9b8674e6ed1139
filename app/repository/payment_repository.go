package repository

import (
	"time"

	"github.com/dark-store/bukafresh/app/models"
	"gorm.io/gorm"
)

// paymentRepository implements the PaymentRepository interface
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository instance
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

func (r *paymentRepository) GetByID(id uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.First(&payment, id).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) GetByIdempotencyKey(key string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.Where("idempotency_key = ?", key).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) GetByPaymentReference(ref string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.Where("payment_reference = ?", ref).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) GetByUserID(userID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) GetBySubscriptionID(subscriptionID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Where("subscription_id = ?", subscriptionID).Order("created_at DESC").Find(&payments).Error
	return payments, err
}

// SettleFromPending applies the webhook outcome to a payment that is still
// PENDING. Late or duplicate callbacks find zero matching rows and get nil
// back, which callers treat as "already settled".
func (r *paymentRepository) SettleFromPending(ref string, updates map[string]interface{}) (*models.Payment, error) {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["updated_at"] = time.Now()

	tx := r.db.Model(&models.Payment{}).
		Where("payment_reference = ? AND status = ?", ref, models.PaymentStatusPending).
		Updates(updates)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, nil
	}

	var payment models.Payment
	if err := r.db.Where("payment_reference = ?", ref).First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}
