package mail

import (
	"fmt"

	"github.com/dark-store/bukafresh/app/models"
)

// SendSubscriptionActivated tells the customer their mandate went through
// and when the first box arrives.
func SendSubscriptionActivated(to string, sub *models.Subscription, trackingNumber string) error {
	date := ""
	if sub.NextDeliveryDate != nil {
		date = sub.NextDeliveryDate.Format("Monday, 2 January 2006")
	}
	body := fmt.Sprintf(
		"<h2>Your BukaFresh subscription is active!</h2>"+
			"<p>Your <strong>%s</strong> package is confirmed at ₦%d per month.</p>"+
			"<p>First delivery: <strong>%s</strong><br>Tracking number: <strong>%s</strong></p>",
		sub.Tier, sub.Price, date, trackingNumber)
	return SendMail(to, "Your BukaFresh subscription is active", body)
}

// SendPaymentFailed tells the customer the mandate setup bounced.
func SendPaymentFailed(to string, payment *models.Payment) error {
	body := fmt.Sprintf(
		"<h2>Payment setup failed</h2>"+
			"<p>We could not set up the direct debit for your subscription "+
			"(reference %s).</p><p>Reason: %s</p>"+
			"<p>Please try again with a different account.</p>",
		payment.PaymentReference, payment.FailureReason)
	return SendMail(to, "BukaFresh payment setup failed", body)
}

// SendDeliveryScheduled announces an upcoming drop-off.
func SendDeliveryScheduled(to string, d *models.Delivery) error {
	body := fmt.Sprintf(
		"<h2>Your box is on the schedule</h2>"+
			"<p>Delivery <strong>%s</strong> is planned for <strong>%s</strong>.</p>"+
			"<p>Address: %s, %s, %s</p>",
		d.TrackingNumber, d.ScheduledDate.Format("Monday, 2 January 2006"),
		d.Street, d.City, d.State)
	return SendMail(to, "Your BukaFresh delivery is scheduled", body)
}
