package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Address is a customer delivery address. One per customer may be flagged
// default; the default one is snapshotted into orders and deliveries.
type Address struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	Label        string    `gorm:"type:varchar(50);default:'home'" json:"label" validate:"max=50"`
	Street       string    `gorm:"type:varchar(200);not null" json:"street" validate:"required,max=200"`
	City         string    `gorm:"type:varchar(100);not null" json:"city" validate:"required,max=100"`
	State        string    `gorm:"type:varchar(100);not null" json:"state" validate:"required,max=100"`
	PostalCode   string    `gorm:"type:varchar(20);default:''" json:"postal_code" validate:"max=20"`
	Instructions string    `gorm:"type:text" json:"instructions,omitempty" validate:"max=500"`
	IsDefault    bool      `gorm:"default:false;index" json:"is_default"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (a *Address) Validate() error {
	v := validator.New()

	return v.Struct(a)
}
