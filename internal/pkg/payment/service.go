package payment

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dark-store/bukafresh/app/models"
	"github.com/dark-store/bukafresh/app/repository"
	"github.com/dark-store/bukafresh/internal/pkg/apperr"
	"github.com/dark-store/bukafresh/internal/pkg/banks"
	"github.com/dark-store/bukafresh/internal/pkg/delivery"
	"github.com/dark-store/bukafresh/internal/pkg/onepipe"
	"github.com/dark-store/bukafresh/internal/pkg/subscription"
)

var (
	bvnPattern     = regexp.MustCompile(`^\d{11}$`)
	accountPattern = regexp.MustCompile(`^\d{10}$`)
)

// MandateProvider is the slice of the provider client the service needs.
type MandateProvider interface {
	SetupMandate(ctx context.Context, req onepipe.MandateRequest) (*onepipe.MandateResponse, error)
}

// DeliveryScheduler books the first drop-off once a payment activates a
// subscription.
type DeliveryScheduler interface {
	ScheduleForSubscription(sub *models.Subscription, paymentID uint) (*models.Delivery, error)
}

// ActivateInput carries the account details submitted on the activation form.
type ActivateInput struct {
	UserID           uint
	SubscriptionID   uint
	BVN              string
	AccountNumber    string
	BankCode         string
	PhoneNumber      string
	ActivationMethod string // "transfer" (default) or "live_check"
	IdempotencyKey   string
}

// Receipt is what activation hands back to the client: everything sensitive
// is masked or omitted.
type Receipt struct {
	PaymentID        uint   `json:"payment_id"`
	PaymentReference string `json:"payment_reference"`
	Status           string `json:"status"`
	Amount           int64  `json:"amount"`
	Currency         string `json:"currency"`
	BankName         string `json:"bank_name"`
	AccountNumber    string `json:"account_number"`
	Replayed         bool   `json:"-"`
}

// Service drives mandate setup and webhook settlement. Retried submissions
// carrying the same Idempotency-Key resolve to the original payment instead
// of registering a second mandate.
type Service struct {
	payments  repository.PaymentRepository
	subs      repository.SubscriptionRepository
	users     repository.UserRepository
	provider  MandateProvider
	lifecycle *subscription.Service
	scheduler DeliveryScheduler
}

// NewService creates a payment service from injected collaborators. The
// scheduler may be nil when delivery booking happens elsewhere.
func NewService(payments repository.PaymentRepository, subs repository.SubscriptionRepository, users repository.UserRepository, provider MandateProvider, lifecycle *subscription.Service, scheduler DeliveryScheduler) *Service {
	return &Service{payments: payments, subs: subs, users: users, provider: provider, lifecycle: lifecycle, scheduler: scheduler}
}

// NewServiceFromDB wires the service against GORM repositories and the
// environment-configured provider client.
func NewServiceFromDB(db *gorm.DB) *Service {
	repos := repository.NewRepositories(db)
	return NewService(repos.Payment, repos.Subscription, repos.User, onepipe.NewClientFromEnv(),
		subscription.NewServiceFromDB(db), delivery.NewServiceFromDB(db))
}

// NewPaymentReference mints the public reference for a payment attempt.
func NewPaymentReference() string {
	return "PAY_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:20]
}

// Activate validates the submitted account details, registers a mandate with
// the provider and records a PENDING payment. A request replaying an already
// seen Idempotency-Key returns the original receipt untouched.
func (s *Service) Activate(ctx context.Context, in ActivateInput) (*Receipt, error) {
	key := strings.TrimSpace(in.IdempotencyKey)
	if key == "" {
		return nil, apperr.Validation("Idempotency-Key header is required")
	}

	if existing, err := s.payments.GetByIdempotencyKey(key); err == nil && existing != nil {
		if existing.UserID != in.UserID {
			return nil, apperr.Business("Idempotency key belongs to another user")
		}
		return receiptFor(existing, true), nil
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user, err := s.users.GetByID(in.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, err
	}

	if err := validateAccountDetails(in, user); err != nil {
		return nil, err
	}

	sub, err := s.subs.GetByID(in.SubscriptionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Subscription not found")
		}
		return nil, err
	}
	if sub.UserID != in.UserID {
		return nil, apperr.Business("You can only activate your own subscription")
	}
	if !sub.CanActivate() {
		return nil, apperr.InvalidState("Subscription is not awaiting payment")
	}

	bank, _ := banks.ByCode(in.BankCode)
	phone := strings.TrimSpace(in.PhoneNumber)
	if phone == "" {
		phone = user.Phone
	}
	method := strings.ToLower(strings.TrimSpace(in.ActivationMethod))
	if method == "" {
		method = "transfer"
	}

	ref := NewPaymentReference()
	record := &models.Payment{
		UserID:           in.UserID,
		SubscriptionID:   sub.ID,
		Amount:           sub.Price,
		Currency:         "NGN",
		BVN:              strings.TrimSpace(in.BVN),
		AccountNumber:    strings.TrimSpace(in.AccountNumber),
		BankCode:         strings.TrimSpace(in.BankCode),
		BankName:         bank.Name,
		PhoneNumber:      phone,
		ActivationMethod: method,
		IdempotencyKey:   key,
		Status:           models.PaymentStatusPending,
		PaymentReference: ref,
	}

	resp, err := s.provider.SetupMandate(ctx, onepipe.MandateRequest{
		RequestRef:    ref,
		Amount:        sub.Price,
		CustomerRef:   fmt.Sprintf("user-%d", in.UserID),
		CustomerName:  user.FullName(),
		CustomerEmail: user.Email,
		CustomerPhone: phone,
		BVN:           record.BVN,
		AccountNumber: record.AccountNumber,
		BankCode:      record.BankCode,
		Narration:     "BukaFresh " + sub.Tier + " subscription",
	})
	if err != nil {
		return nil, fmt.Errorf("mandate setup failed: %w", err)
	}
	record.ProviderRef = resp.ProviderRef
	record.ProviderResponse = resp.Message

	if err := s.payments.Create(record); err != nil {
		// A concurrent retry may have won the unique-index race on the key.
		if existing, lookupErr := s.payments.GetByIdempotencyKey(key); lookupErr == nil && existing != nil {
			return receiptFor(existing, true), nil
		}
		return nil, err
	}

	log.Printf("registered mandate payment %s for subscription %d (user %d)", ref, sub.ID, in.UserID)
	return receiptFor(record, false), nil
}

func validateAccountDetails(in ActivateInput, user *models.User) error {
	if !bvnPattern.MatchString(strings.TrimSpace(in.BVN)) {
		return apperr.Validation("BVN must be exactly 11 digits")
	}
	if !accountPattern.MatchString(strings.TrimSpace(in.AccountNumber)) {
		return apperr.Validation("Account number must be exactly 10 digits")
	}
	if !banks.IsValidCode(in.BankCode) {
		return apperr.Validation("Unknown bank code: " + strings.TrimSpace(in.BankCode))
	}
	switch strings.ToLower(strings.TrimSpace(in.ActivationMethod)) {
	case "", "transfer", "live_check":
	default:
		return apperr.Validation("Activation method must be transfer or live_check")
	}
	if strings.TrimSpace(in.PhoneNumber) == "" && !user.HasPhone() {
		return apperr.Validation("A phone number is required for mandate setup")
	}
	return nil
}

func receiptFor(p *models.Payment, replayed bool) *Receipt {
	return &Receipt{
		PaymentID:        p.ID,
		PaymentReference: p.PaymentReference,
		Status:           p.Status,
		Amount:           p.Amount,
		Currency:         p.Currency,
		BankName:         p.BankName,
		AccountNumber:    p.MaskedAccountNumber(),
		Replayed:         replayed,
	}
}

// Settle applies a provider webhook to the referenced payment. The guarded
// PENDING -> PAID/FAILED update makes duplicate deliveries no-ops; a paid
// settlement activates the subscription.
func (s *Service) Settle(ref string, success bool, providerRef, message string) (*models.Payment, error) {
	updates := map[string]interface{}{
		"provider_ref":      providerRef,
		"provider_response": message,
	}
	if success {
		now := time.Now()
		updates["status"] = models.PaymentStatusPaid
		updates["paid_at"] = &now
	} else {
		updates["status"] = models.PaymentStatusFailed
		updates["failure_reason"] = message
	}

	settled, err := s.payments.SettleFromPending(ref, updates)
	if err != nil {
		return nil, err
	}
	if settled == nil {
		log.Printf("webhook for %s ignored: payment already settled or unknown", ref)
		return nil, nil
	}

	if success {
		mandateID := providerRef
		if mandateID == "" {
			mandateID = "MND_" + ref
		}
		sub, err := s.lifecycle.Activate(settled.SubscriptionID, mandateID)
		if err != nil {
			if apperr.KindOf(err) != apperr.KindInvalidState {
				log.Printf("payment %s settled but activation of subscription %d failed: %v", ref, settled.SubscriptionID, err)
			}
			return settled, nil
		}
		if s.scheduler != nil {
			if _, err := s.scheduler.ScheduleForSubscription(sub, settled.ID); err != nil {
				log.Printf("failed to schedule first delivery for subscription %d: %v", sub.ID, err)
			}
		}
	}
	return settled, nil
}

// History returns the user's payment attempts, sensitive fields masked by
// the model's JSON tags.
func (s *Service) History(userID uint) ([]models.Payment, error) {
	return s.payments.GetByUserID(userID)
}

// ByReference loads a payment for status polling, enforcing ownership.
func (s *Service) ByReference(userID uint, ref string) (*models.Payment, error) {
	p, err := s.payments.GetByPaymentReference(ref)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Payment not found")
		}
		return nil, err
	}
	if p.UserID != userID {
		return nil, apperr.NotFound("Payment not found")
	}
	return p, nil
}
