package models

import "time"

// Delivery statuses.
const (
	DeliveryStatusScheduled      = "SCHEDULED"
	DeliveryStatusPreparing      = "PREPARING"
	DeliveryStatusOutForDelivery = "OUT_FOR_DELIVERY"
	DeliveryStatusDelivered      = "DELIVERED"
	DeliveryStatusCancelled      = "CANCELLED"
	DeliveryStatusFailed         = "FAILED"
)

// Delivery is a scheduled drop-off created after a successful payment or a
// subscription renewal. The address is snapshotted at scheduling time.
type Delivery struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	UserID             uint           `gorm:"not null;index" json:"user_id"`
	SubscriptionID     uint           `gorm:"not null;index" json:"subscription_id"`
	OrderID            uint           `gorm:"default:0" json:"order_id,omitempty"`
	PaymentID          uint           `gorm:"default:0" json:"payment_id,omitempty"`
	ScheduledDate      time.Time      `gorm:"type:date;not null;index" json:"scheduled_date"`
	ActualDeliveryDate *time.Time     `gorm:"type:timestamp;default:null" json:"actual_delivery_date,omitempty"`
	Status             string         `gorm:"type:varchar(20);not null;default:'SCHEDULED';index" json:"status"`
	TrackingNumber     string         `gorm:"type:varchar(20);not null;uniqueIndex" json:"tracking_number"`
	Street             string         `gorm:"type:varchar(200)" json:"street"`
	City               string         `gorm:"type:varchar(100)" json:"city"`
	State              string         `gorm:"type:varchar(100)" json:"state"`
	PostalCode         string         `gorm:"type:varchar(20)" json:"postal_code"`
	Items              []DeliveryItem `gorm:"foreignKey:DeliveryID" json:"items"`
	DriverName         string         `gorm:"type:varchar(100);default:''" json:"driver_name,omitempty"`
	DriverPhone        string         `gorm:"type:varchar(20);default:''" json:"driver_phone,omitempty"`
	DeliveryNotes      string         `gorm:"type:text" json:"delivery_notes,omitempty"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// DeliveryItem is a line in the delivery manifest.
type DeliveryItem struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	DeliveryID uint   `gorm:"not null;index" json:"-"`
	Name       string `gorm:"type:varchar(150);not null" json:"name"`
	Quantity   int    `gorm:"not null" json:"quantity"`
	Unit       string `gorm:"type:varchar(30)" json:"unit"`
	Price      int64  `gorm:"default:0" json:"price"`
}

// InTransit reports whether the delivery is still moving toward the customer.
func (d *Delivery) InTransit() bool {
	switch d.Status {
	case DeliveryStatusScheduled, DeliveryStatusPreparing, DeliveryStatusOutForDelivery:
		return true
	default:
		return false
	}
}

// SnapshotAddress copies the delivery address onto the record.
func (d *Delivery) SnapshotAddress(a *Address) {
	d.Street = a.Street
	d.City = a.City
	d.State = a.State
	d.PostalCode = a.PostalCode
}
