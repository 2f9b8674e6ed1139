package models

import "time"

// Payment statuses. The PENDING -> PAID/FAILED transition happens exactly
// once, driven by the provider webhook.
const (
	PaymentStatusPending = "PENDING"
	PaymentStatusPaid    = "PAID"
	PaymentStatusFailed  = "FAILED"
)

// Payment records a mandate setup attempt for a pending subscription. The
// idempotency key carries a unique index so a replayed submission resolves
// to the original row instead of creating a second charge.
type Payment struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	UserID           uint       `gorm:"not null;index" json:"user_id"`
	SubscriptionID   uint       `gorm:"not null;index" json:"subscription_id"`
	Amount           int64      `gorm:"not null" json:"amount"`
	Currency         string     `gorm:"type:varchar(3);not null;default:'NGN'" json:"currency"`
	BVN              string     `gorm:"type:varchar(11)" json:"-"`
	AccountNumber    string     `gorm:"type:varchar(10)" json:"-"`
	BankCode         string     `gorm:"type:varchar(10)" json:"-"`
	BankName         string     `gorm:"type:varchar(100)" json:"bank_name,omitempty"`
	PhoneNumber      string     `gorm:"type:varchar(20)" json:"-"`
	ActivationMethod string     `gorm:"type:varchar(20);default:'transfer'" json:"activation_method"`
	IdempotencyKey   string     `gorm:"type:varchar(100);not null;uniqueIndex" json:"-"`
	Status           string     `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	PaymentReference string     `gorm:"type:varchar(40);not null;uniqueIndex" json:"payment_reference"`
	ProviderRef      string     `gorm:"type:varchar(100);default:''" json:"-"`
	ProviderResponse string     `gorm:"type:text" json:"-"`
	FailureReason    string     `gorm:"type:text" json:"failure_reason,omitempty"`
	PaidAt           *time.Time `gorm:"type:timestamp;default:null" json:"paid_at,omitempty"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// MaskedAccountNumber hides all but the last four digits for display.
func (p *Payment) MaskedAccountNumber() string {
	if len(p.AccountNumber) < 4 {
		return "****"
	}
	return "******" + p.AccountNumber[len(p.AccountNumber)-4:]
}

// Settled reports whether the payment reached a terminal state.
func (p *Payment) Settled() bool {
	return p.Status == PaymentStatusPaid || p.Status == PaymentStatusFailed
}
