package delivery

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dark-store/bukafresh/app/models"
	"github.com/dark-store/bukafresh/app/repository"
	"github.com/dark-store/bukafresh/internal/pkg/apperr"
	"github.com/dark-store/bukafresh/internal/pkg/catalog"
	"github.com/dark-store/bukafresh/internal/pkg/jobqueue"
)

// Service schedules and tracks deliveries for active subscriptions. Every
// freshly scheduled drop-off is announced through the notify hook so the
// customer hears about it by mail.
type Service struct {
	deliveries repository.DeliveryRepository
	addrs      repository.AddressRepository
	subs       repository.SubscriptionRepository
	notify     func(d *models.Delivery)
}

// NewService creates a delivery service from injected repositories.
func NewService(deliveries repository.DeliveryRepository, addrs repository.AddressRepository, subs repository.SubscriptionRepository, notify func(d *models.Delivery)) *Service {
	if notify == nil {
		notify = func(*models.Delivery) {}
	}
	return &Service{deliveries: deliveries, addrs: addrs, subs: subs, notify: notify}
}

// NewServiceFromDB wires the service against GORM repositories and the
// reminder mail queue.
func NewServiceFromDB(db *gorm.DB) *Service {
	repos := repository.NewRepositories(db)
	return NewService(repos.Delivery, repos.Address, repos.Subscription, EnqueueReminder)
}

// EnqueueReminder queues the scheduled-delivery mail for a drop-off.
// Failures are logged, not returned; the delivery itself is already booked.
func EnqueueReminder(d *models.Delivery) {
	payload := jobqueue.DeliveryReminderJobPayload{DeliveryID: d.ID}
	if _, err := jobqueue.GetManager().GetQueue().EnqueueJob(jobqueue.JobTypeDeliveryReminder, payload.ToMap()); err != nil {
		log.Printf("failed to enqueue delivery reminder for %s: %v", d.TrackingNumber, err)
	}
}

// NewTrackingNumber mints a customer-facing tracking number.
func NewTrackingNumber() string {
	return "BF-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}

// ScheduleForSubscription creates the next drop-off for an active
// subscription, dated to its next delivery date, with the package manifest
// as the delivery items.
func (s *Service) ScheduleForSubscription(sub *models.Subscription, paymentID uint) (*models.Delivery, error) {
	if sub.Status != models.SubscriptionStatusActive {
		return nil, apperr.InvalidState("Deliveries are only scheduled for active subscriptions")
	}
	if sub.NextDeliveryDate == nil {
		return nil, apperr.InvalidState("Subscription has no delivery date scheduled")
	}

	pkg, ok := catalog.ByTier(sub.Tier)
	if !ok {
		return nil, apperr.Business("Unknown package tier: " + sub.Tier)
	}

	d := &models.Delivery{
		UserID:         sub.UserID,
		SubscriptionID: sub.ID,
		PaymentID:      paymentID,
		ScheduledDate:  *sub.NextDeliveryDate,
		Status:         models.DeliveryStatusScheduled,
		TrackingNumber: NewTrackingNumber(),
		Items: []models.DeliveryItem{{
			Name:     pkg.Name + " box",
			Quantity: 1,
			Unit:     "box",
		}},
	}
	if addr, err := s.addrs.GetDefaultForUser(sub.UserID); err == nil {
		d.SnapshotAddress(addr)
	}

	if err := s.deliveries.Create(d); err != nil {
		return nil, err
	}
	log.Printf("scheduled delivery %s for subscription %d on %s", d.TrackingNumber, sub.ID, d.ScheduledDate.Format("2006-01-02"))
	s.notify(d)
	return d, nil
}

// List returns the user's deliveries.
func (s *Service) List(userID uint) ([]models.Delivery, error) {
	return s.deliveries.GetByUserID(userID)
}

// Track resolves a tracking number. Tracking is ownership-checked; the
// number alone is not a capability.
func (s *Service) Track(userID uint, trackingNumber string) (*models.Delivery, error) {
	d, err := s.deliveries.GetByTrackingNumber(strings.TrimSpace(trackingNumber))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Delivery not found")
		}
		return nil, err
	}
	if d.UserID != userID {
		return nil, apperr.NotFound("Delivery not found")
	}
	return d, nil
}

// MarkDelivered completes a delivery and bumps the subscription's
// per-month delivery counter.
func (s *Service) MarkDelivered(deliveryID uint, at time.Time) (*models.Delivery, error) {
	d, err := s.deliveries.GetByID(deliveryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Delivery not found")
		}
		return nil, err
	}
	if !d.InTransit() {
		return nil, apperr.InvalidState("Delivery is already finalized")
	}

	d.Status = models.DeliveryStatusDelivered
	d.ActualDeliveryDate = &at
	if err := s.deliveries.Update(d); err != nil {
		return nil, err
	}

	if sub, err := s.subs.GetByID(d.SubscriptionID); err == nil {
		sub.IncrementDeliveriesThisMonth()
		if sub.Status == models.SubscriptionStatusActive && sub.DeliveriesThisMonth < sub.MaxDeliveriesPerMonth {
			// Deliveries stay on Saturdays even when this one ran late.
			next := catalog.NextDeliveryDate(at.AddDate(0, 0, 1))
			sub.NextDeliveryDate = &next
		}
		if err := s.subs.Update(sub); err != nil {
			log.Printf("failed to update subscription %d after delivery %d: %v", sub.ID, d.ID, err)
		}
	}
	return d, nil
}
