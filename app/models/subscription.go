package models

import "time"

// Subscription statuses. PENDING is never re-entered once left; CANCELLED
// is terminal.
const (
	SubscriptionStatusPending   = "PENDING"
	SubscriptionStatusActive    = "ACTIVE"
	SubscriptionStatusPaused    = "PAUSED"
	SubscriptionStatusCancelled = "CANCELLED"
	SubscriptionStatusInactive  = "INACTIVE"
)

// Subscription is a customer's plan enrollment. Created PENDING at the end
// of checkout; moves to ACTIVE only after the payment mandate is confirmed
// by the provider webhook.
type Subscription struct {
	ID                    uint       `gorm:"primaryKey" json:"id"`
	UserID                uint       `gorm:"not null;index" json:"user_id"`
	Tier                  string     `gorm:"type:varchar(30);not null" json:"tier"`
	Status                string     `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	Price                 int64      `gorm:"not null" json:"price"`
	BillingCycle          string     `gorm:"type:varchar(10);not null" json:"billing_cycle"`
	DeliveryDay           string     `gorm:"type:varchar(10);not null;default:'saturday'" json:"delivery_day"`
	NextBillingDate       *time.Time `gorm:"type:date;default:null;index" json:"next_billing_date,omitempty"`
	NextDeliveryDate      *time.Time `gorm:"type:date;default:null" json:"next_delivery_date,omitempty"`
	DeliveriesThisMonth   int        `gorm:"default:0" json:"deliveries_this_month"`
	MaxDeliveriesPerMonth int        `gorm:"default:0" json:"max_deliveries_per_month"`
	MandateID             string     `gorm:"type:varchar(100);default:''" json:"mandate_id,omitempty"`
	CancelReason          string     `gorm:"type:text" json:"cancel_reason,omitempty"`
	StartedAt             *time.Time `gorm:"type:timestamp;default:null" json:"started_at,omitempty"`
	CancelledAt           *time.Time `gorm:"type:timestamp;default:null" json:"cancelled_at,omitempty"`
	CreatedAt             time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// Blocking reports whether this record prevents the user from creating
// another subscription. Cancelled records do not block.
func (s *Subscription) Blocking() bool {
	switch s.Status {
	case SubscriptionStatusPending, SubscriptionStatusActive, SubscriptionStatusInactive:
		return true
	default:
		return false
	}
}

// CanDelete is true only for records that never became billable.
func (s *Subscription) CanDelete() bool {
	return s.Status == SubscriptionStatusPending || s.Status == SubscriptionStatusInactive
}

// CanCancel is true from ACTIVE or PAUSED; cancellation is terminal.
func (s *Subscription) CanCancel() bool {
	return s.Status == SubscriptionStatusActive || s.Status == SubscriptionStatusPaused
}

// CanPause is true only from ACTIVE.
func (s *Subscription) CanPause() bool {
	return s.Status == SubscriptionStatusActive
}

// CanResume is true only from PAUSED.
func (s *Subscription) CanResume() bool {
	return s.Status == SubscriptionStatusPaused
}

// CanActivate is true only from PENDING; no transition re-enters PENDING.
func (s *Subscription) CanActivate() bool {
	return s.Status == SubscriptionStatusPending
}

func (s *Subscription) IncrementDeliveriesThisMonth() {
	s.DeliveriesThisMonth++
}

func (s *Subscription) ResetDeliveriesThisMonth() {
	s.DeliveriesThisMonth = 0
}
