package subscription

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/dark-store/bukafresh/app/models"
	"github.com/dark-store/bukafresh/app/repository"
	"github.com/dark-store/bukafresh/internal/pkg/apperr"
	"github.com/dark-store/bukafresh/internal/pkg/cache"
	"github.com/dark-store/bukafresh/internal/pkg/catalog"
)

// CreateInput carries the fields collected by the checkout wizard.
type CreateInput struct {
	UserID       uint
	Tier         string
	BillingCycle string
	DeliveryDay  string
	Address      *models.Address
}

// Service orchestrates the subscription status machine:
// PENDING -> ACTIVE (mandate success), ACTIVE <-> PAUSED,
// ACTIVE|PAUSED -> CANCELLED (terminal), PENDING|INACTIVE -> deleted.
// Every successful transition invalidates the cached subscription view so
// dependent screens re-fetch instead of trusting stale state.
type Service struct {
	subs       repository.SubscriptionRepository
	addrs      repository.AddressRepository
	orders     repository.OrderRepository
	invalidate func(userID uint)
}

// NewService creates a subscription service from injected repositories.
func NewService(subs repository.SubscriptionRepository, addrs repository.AddressRepository, orders repository.OrderRepository, invalidate func(userID uint)) *Service {
	if invalidate == nil {
		invalidate = func(uint) {}
	}
	return &Service{subs: subs, addrs: addrs, orders: orders, invalidate: invalidate}
}

// NewServiceFromDB creates a subscription service from a GORM DB handle,
// wired to the Redis view cache.
func NewServiceFromDB(db *gorm.DB) *Service {
	repos := repository.NewRepositories(db)
	return NewService(repos.Subscription, repos.Address, repos.Order, InvalidateView)
}

// ViewCacheKey is the cache key for a user's subscription view.
func ViewCacheKey(userID uint) string {
	return fmt.Sprintf("subscription:view:%d", userID)
}

// InvalidateView drops the cached subscription view for a user.
func InvalidateView(userID uint) {
	if err := cache.Delete(ViewCacheKey(userID)); err != nil {
		log.Printf("subscription view invalidation failed for user %d: %v", userID, err)
	}
}

// Create opens a PENDING subscription for the user and stores the delivery
// address as the new default. Fails with a validation error when required
// fields are absent and with a conflict when the user already holds a
// pending, active or inactive record.
func (s *Service) Create(in CreateInput) (*models.Subscription, error) {
	if in.UserID == 0 {
		return nil, apperr.Validation("user is required")
	}
	if strings.TrimSpace(in.Tier) == "" {
		return nil, apperr.Validation("subscription tier is required")
	}
	if !catalog.IsValidTier(in.Tier) {
		return nil, apperr.Validation("invalid subscription tier: " + in.Tier)
	}
	if !catalog.IsValidCycle(in.BillingCycle) {
		return nil, apperr.Validation("billing cycle must be weekly or monthly")
	}
	if in.Address == nil || strings.TrimSpace(in.Address.Street) == "" || strings.TrimSpace(in.Address.City) == "" || strings.TrimSpace(in.Address.State) == "" {
		return nil, apperr.Validation("delivery address is required")
	}

	existing, err := s.subs.GetBlockingByUserID(in.UserID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Conflict("User already has a subscription. Please complete payment for your existing subscription or delete it before creating a new one.")
	}

	cycle := catalog.NormalizeCycle(in.BillingCycle)
	price, _ := catalog.PriceFor(in.Tier, cycle)

	now := time.Now()
	billing := nextBillingDate(now)
	sub := &models.Subscription{
		UserID:          in.UserID,
		Tier:            strings.ToLower(strings.TrimSpace(in.Tier)),
		Status:          models.SubscriptionStatusPending,
		Price:           price,
		BillingCycle:    cycle,
		DeliveryDay:     catalog.DeliveryDay,
		NextBillingDate: &billing,
	}
	if err := s.subs.Create(sub); err != nil {
		return nil, err
	}

	if err := s.saveDefaultAddress(in.UserID, in.Address); err != nil {
		log.Printf("failed to store delivery address for user %d: %v", in.UserID, err)
	}

	s.invalidate(in.UserID)
	log.Printf("created PENDING subscription %d for user %d (tier %s) - requires payment to activate", sub.ID, in.UserID, sub.Tier)
	return sub, nil
}

func (s *Service) saveDefaultAddress(userID uint, addr *models.Address) error {
	if err := s.addrs.ClearDefaultForUser(userID); err != nil {
		return err
	}
	addr.UserID = userID
	addr.IsDefault = true
	if addr.Label == "" {
		addr.Label = "home"
	}
	return s.addrs.Create(addr)
}

// GetCurrent returns the user's most recent subscription. Absence is a calm
// not-found condition, not an alarm.
func (s *Service) GetCurrent(userID uint) (*models.Subscription, error) {
	subs, err := s.subs.GetByUserID(userID)
	if err != nil {
		return nil, err
	}
	if len(subs) == 0 {
		return nil, apperr.NotFound("No subscription found for user")
	}
	return &subs[0], nil
}

// List returns all of the user's subscriptions, newest first.
func (s *Service) List(userID uint) ([]models.Subscription, error) {
	return s.subs.GetByUserID(userID)
}

// Delete removes a subscription that never became billable. Only PENDING
// and INACTIVE records may be deleted; active and cancelled ones are
// rejected without touching any state.
func (s *Service) Delete(userID, subscriptionID uint) error {
	sub, err := s.owned(userID, subscriptionID)
	if err != nil {
		return err
	}
	if !sub.CanDelete() {
		return apperr.InvalidState("Cannot delete an active subscription. Please cancel it first.")
	}
	if err := s.subs.Delete(sub.ID); err != nil {
		return err
	}
	s.invalidate(userID)
	log.Printf("deleted subscription %d for user %d", subscriptionID, userID)
	return nil
}

// Cancel moves an ACTIVE or PAUSED subscription to the terminal CANCELLED
// state, recording the optional reason.
func (s *Service) Cancel(userID, subscriptionID uint, reason string) (*models.Subscription, error) {
	sub, err := s.owned(userID, subscriptionID)
	if err != nil {
		return nil, err
	}
	if !sub.CanCancel() {
		return nil, apperr.InvalidState("Only active or paused subscriptions can be cancelled")
	}

	now := time.Now()
	ok, err := s.subs.UpdateStatusFrom(sub.ID, sub.Status, models.SubscriptionStatusCancelled, map[string]interface{}{
		"cancel_reason": strings.TrimSpace(reason),
		"cancelled_at":  &now,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.InvalidState("Subscription changed state, please refresh and retry")
	}
	s.invalidate(userID)
	return s.subs.GetByID(sub.ID)
}

// Pause suspends an ACTIVE subscription.
func (s *Service) Pause(userID, subscriptionID uint) (*models.Subscription, error) {
	return s.toggle(userID, subscriptionID, models.SubscriptionStatusActive, models.SubscriptionStatusPaused,
		"Only active subscriptions can be paused")
}

// Resume reactivates a PAUSED subscription.
func (s *Service) Resume(userID, subscriptionID uint) (*models.Subscription, error) {
	return s.toggle(userID, subscriptionID, models.SubscriptionStatusPaused, models.SubscriptionStatusActive,
		"Only paused subscriptions can be resumed")
}

func (s *Service) toggle(userID, subscriptionID uint, from, to, guardMsg string) (*models.Subscription, error) {
	sub, err := s.owned(userID, subscriptionID)
	if err != nil {
		return nil, err
	}
	if sub.Status != from {
		return nil, apperr.InvalidState(guardMsg)
	}
	ok, err := s.subs.UpdateStatusFrom(sub.ID, from, to, nil)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.InvalidState("Subscription changed state, please refresh and retry")
	}
	s.invalidate(userID)
	return s.subs.GetByID(sub.ID)
}

// Activate moves a PENDING subscription to ACTIVE after a confirmed mandate
// and schedules the first delivery window. Called from the payment webhook
// path, never directly by a client. The guarded update makes duplicate
// webhook deliveries a no-op.
func (s *Service) Activate(subscriptionID uint, mandateID string) (*models.Subscription, error) {
	sub, err := s.subs.GetByID(subscriptionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Subscription not found")
		}
		return nil, err
	}
	if !sub.CanActivate() {
		return nil, apperr.InvalidState("Only pending subscriptions can be activated")
	}

	now := time.Now()
	delivery := firstDeliveryDate(sub.BillingCycle, now)
	ok, err := s.subs.UpdateStatusFrom(sub.ID, models.SubscriptionStatusPending, models.SubscriptionStatusActive, map[string]interface{}{
		"mandate_id":               mandateID,
		"max_deliveries_per_month": catalog.DeliveriesPerMonth(sub.BillingCycle),
		"next_delivery_date":       &delivery,
		"started_at":               &now,
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.InvalidState("Only pending subscriptions can be activated")
	}
	s.invalidate(sub.UserID)
	log.Printf("activated subscription %d for user %d", sub.ID, sub.UserID)
	return s.subs.GetByID(sub.ID)
}

// ProcessDue advances billing for all active subscriptions due on or before
// now: the next billing date moves one month forward and a subscription-type
// order (zero delivery fee) is materialized for the cycle. Returns how many
// records were processed.
func (s *Service) ProcessDue(now time.Time) (int, error) {
	due, err := s.subs.GetDueForBilling(now)
	if err != nil {
		return 0, err
	}

	processed := 0
	for i := range due {
		sub := &due[i]
		if err := s.renew(sub, now); err != nil {
			log.Printf("failed to process subscription %d for user %d: %v", sub.ID, sub.UserID, err)
			continue
		}
		processed++
	}
	return processed, nil
}

func (s *Service) renew(sub *models.Subscription, now time.Time) error {
	pkg, ok := catalog.ByTier(sub.Tier)
	if !ok {
		return fmt.Errorf("unknown tier %q on subscription %d", sub.Tier, sub.ID)
	}

	order := &models.Order{
		UserID:         sub.UserID,
		SubscriptionID: sub.ID,
		Type:           models.OrderTypeSubscription,
		Items: []models.OrderItem{{
			Name:     pkg.Name,
			Quantity: 1,
			Unit:     "month",
			Price:    sub.Price,
		}},
		Subtotal:    sub.Price,
		DeliveryFee: 0,
		Total:       sub.Price,
		Status:      models.OrderStatusPending,
	}
	if addr, err := s.addrs.GetDefaultForUser(sub.UserID); err == nil {
		order.SnapshotAddress(addr)
	}
	if err := s.orders.Create(order); err != nil {
		return err
	}

	billing := nextBillingDate(now)
	sub.NextBillingDate = &billing
	sub.ResetDeliveriesThisMonth()
	if err := s.subs.Update(sub); err != nil {
		return err
	}
	s.invalidate(sub.UserID)
	return nil
}

func (s *Service) owned(userID, subscriptionID uint) (*models.Subscription, error) {
	sub, err := s.subs.GetByID(subscriptionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Subscription not found")
		}
		return nil, err
	}
	if sub.UserID != userID {
		return nil, apperr.Business("You can only manage your own subscriptions")
	}
	return sub, nil
}
