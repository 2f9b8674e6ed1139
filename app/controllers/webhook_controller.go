package controllers

import (
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/dark-store/bukafresh/internal/pkg/database"
	"github.com/dark-store/bukafresh/internal/pkg/env"
	"github.com/dark-store/bukafresh/internal/pkg/jobqueue"
	"github.com/dark-store/bukafresh/internal/pkg/onepipe"
	"github.com/dark-store/bukafresh/internal/pkg/payment"
)

// HandlePaymentWebhook receives settlement callbacks from the payment
// provider. Always answers 200 once the signature checks out: the guarded
// settle makes retries and duplicates harmless, and a non-200 would only
// provoke more retries.
func HandlePaymentWebhook(c *fiber.Ctx) error {
	body := c.Body()

	secret := env.GetEnv("ONEPIPE_SECRET", "")
	if secret != "" && !onepipe.VerifyWebhookSignature(body, c.Get("Signature"), secret) {
		log.Printf("payment webhook rejected: bad signature from %s", c.IP())
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status":  "failed",
			"message": "Invalid signature",
		})
	}

	var event onepipe.WebhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "failed",
			"message": "Invalid payload",
		})
	}

	svc := payment.NewServiceFromDB(database.GetDB())
	settled, err := svc.Settle(event.Details.TransactionRef, event.Successful(), event.Details.MandateID, event.Details.Message)
	if err != nil {
		log.Printf("payment webhook settle error for %s: %v", event.Details.TransactionRef, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "failed",
			"message": "Settlement failed",
		})
	}

	if settled != nil {
		payload := jobqueue.PaymentNoticeJobPayload{PaymentID: settled.ID, Paid: event.Successful()}
		if _, err := jobqueue.GetManager().GetQueue().EnqueueJob(jobqueue.JobTypePaymentNotice, payload.ToMap()); err != nil {
			log.Printf("failed to enqueue payment notice for %s: %v", settled.PaymentReference, err)
		}
	}

	return c.JSON(fiber.Map{"status": "success", "message": "ok"})
}
