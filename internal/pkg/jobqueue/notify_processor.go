package jobqueue

import (
	"fmt"

	"github.com/dark-store/bukafresh/app/models"
	"github.com/dark-store/bukafresh/app/repository"
	"github.com/dark-store/bukafresh/internal/pkg/database"
	"github.com/dark-store/bukafresh/internal/pkg/mail"
)

// processPaymentNoticeJob mails the customer the outcome of a settled
// mandate payment.
func (q *Queue) processPaymentNoticeJob(job *Job) error {
	payload, err := PaymentNoticeJobPayloadFromMap(job.Payload)
	if err != nil {
		return fmt.Errorf("invalid payment notice payload: %w", err)
	}

	repos := repository.NewRepositories(database.GetDB())
	payment, err := repos.Payment.GetByID(payload.PaymentID)
	if err != nil {
		return fmt.Errorf("payment %d not found: %w", payload.PaymentID, err)
	}
	user, err := repos.User.GetByID(payment.UserID)
	if err != nil {
		return fmt.Errorf("user %d not found: %w", payment.UserID, err)
	}

	if !payload.Paid {
		return mail.SendPaymentFailed(user.Email, payment)
	}

	sub, err := repos.Subscription.GetByID(payment.SubscriptionID)
	if err != nil {
		return fmt.Errorf("subscription %d not found: %w", payment.SubscriptionID, err)
	}
	tracking := ""
	if deliveries, err := repos.Delivery.GetByUserID(payment.UserID); err == nil {
		for _, d := range deliveries {
			if d.PaymentID == payment.ID {
				tracking = d.TrackingNumber
				break
			}
		}
	}
	return mail.SendSubscriptionActivated(user.Email, sub, tracking)
}

// processDeliveryReminderJob mails the customer about an upcoming drop-off.
func (q *Queue) processDeliveryReminderJob(job *Job) error {
	payload, err := DeliveryReminderJobPayloadFromMap(job.Payload)
	if err != nil {
		return fmt.Errorf("invalid delivery reminder payload: %w", err)
	}

	repos := repository.NewRepositories(database.GetDB())
	d, err := repos.Delivery.GetByID(payload.DeliveryID)
	if err != nil {
		return fmt.Errorf("delivery %d not found: %w", payload.DeliveryID, err)
	}
	if d.Status != models.DeliveryStatusScheduled {
		// Moved on while the job sat in the queue; nothing to announce.
		return nil
	}
	user, err := repos.User.GetByID(d.UserID)
	if err != nil {
		return fmt.Errorf("user %d not found: %w", d.UserID, err)
	}
	return mail.SendDeliveryScheduled(user.Email, d)
}
