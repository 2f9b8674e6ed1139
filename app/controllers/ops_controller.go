package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dark-store/bukafresh/internal/pkg/apperr"
	"github.com/dark-store/bukafresh/internal/pkg/database"
	"github.com/dark-store/bukafresh/internal/pkg/delivery"
	"github.com/dark-store/bukafresh/internal/pkg/jobqueue"
)

// HandleTriggerBillingSweep queues an immediate billing sweep instead of
// waiting for the next ticker run.
func HandleTriggerBillingSweep(c *fiber.Ctx) error {
	job, err := jobqueue.GetManager().EnqueueBillingSweep(time.Now())
	if err != nil {
		return failure(c, err)
	}
	return success(c, fiber.StatusAccepted, fiber.Map{"job_id": job.ID}, "Billing sweep queued")
}

type markDeliveredRequest struct {
	DeliveredAt string `json:"delivered_at"`
}

// HandleMarkDeliveryDelivered records a drop-off reported by dispatch and
// advances the subscription's delivery schedule. delivered_at is optional
// and defaults to now.
func HandleMarkDeliveryDelivered(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return failure(c, err)
	}

	at := time.Now()
	if len(c.Body()) > 0 {
		var req markDeliveredRequest
		if err := c.BodyParser(&req); err != nil {
			return failure(c, apperr.Validation("Invalid request body"))
		}
		if req.DeliveredAt != "" {
			parsed, err := time.Parse(time.RFC3339, req.DeliveredAt)
			if err != nil {
				return failure(c, apperr.Validation("delivered_at must be an RFC3339 timestamp"))
			}
			at = parsed
		}
	}

	svc := delivery.NewServiceFromDB(database.GetDB())
	d, err := svc.MarkDelivered(id, at)
	if err != nil {
		return failure(c, err)
	}
	return success(c, fiber.StatusOK, d, "Delivery completed")
}
