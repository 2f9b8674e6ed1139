package models

import "time"

// Order types. Subscription orders belong to the recurring charge and carry
// no delivery fee. Add-on orders are billed and fulfilled independently; the
// two must never be merged.
const (
	OrderTypeSubscription = "subscription"
	OrderTypeAddon        = "addon"
)

// Order statuses.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// AddonDeliveryFee is the flat per-order fee for add-on orders, in naira.
// Subscription orders always carry a zero fee.
const AddonDeliveryFee int64 = 500

// Order is a one-off purchase (type addon) or a materialized monthly
// subscription bill (type subscription). The delivery address is snapshotted
// so later edits to the address book do not rewrite order history.
type Order struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	UserID         uint        `gorm:"not null;index" json:"user_id"`
	SubscriptionID uint        `gorm:"default:0;index" json:"subscription_id,omitempty"`
	Type           string      `gorm:"type:varchar(20);not null;index" json:"type"`
	Items          []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	Subtotal       int64       `gorm:"not null" json:"subtotal"`
	DeliveryFee    int64       `gorm:"not null;default:0" json:"delivery_fee"`
	Total          int64       `gorm:"not null" json:"total"`
	Status         string      `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Street         string      `gorm:"type:varchar(200)" json:"street"`
	City           string      `gorm:"type:varchar(100)" json:"city"`
	State          string      `gorm:"type:varchar(100)" json:"state"`
	PostalCode     string      `gorm:"type:varchar(20)" json:"postal_code"`
	DeliveredAt    *time.Time  `gorm:"type:timestamp;default:null" json:"delivered_at,omitempty"`
	CreatedAt      time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
}

// OrderItem is a priced line within an order. Price is the unit price at
// order time, copied from the product catalog.
type OrderItem struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	OrderID   uint   `gorm:"not null;index" json:"-"`
	ProductID uint   `gorm:"not null" json:"product_id"`
	Name      string `gorm:"type:varchar(150);not null" json:"name"`
	Quantity  int    `gorm:"not null" json:"quantity"`
	Unit      string `gorm:"type:varchar(30)" json:"unit"`
	Price     int64  `gorm:"not null" json:"price"`
}

// CanCancel is true while the order has not been handed to fulfilment.
func (o *Order) CanCancel() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusConfirmed
}

// SnapshotAddress copies the delivery address onto the order.
func (o *Order) SnapshotAddress(a *Address) {
	o.Street = a.Street
	o.City = a.City
	o.State = a.State
	o.PostalCode = a.PostalCode
}
