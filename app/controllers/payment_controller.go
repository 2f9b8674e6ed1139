package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dark-store/bukafresh/internal/pkg/apperr"
	"github.com/dark-store/bukafresh/internal/pkg/banks"
	"github.com/dark-store/bukafresh/internal/pkg/database"
	"github.com/dark-store/bukafresh/internal/pkg/payment"
	"github.com/dark-store/bukafresh/internal/pkg/usercontext"
)

type activateRequest struct {
	SubscriptionID   uint   `json:"subscription_id"`
	BVN              string `json:"bvn"`
	AccountNumber    string `json:"account_number"`
	BankCode         string `json:"bank_code"`
	PhoneNumber      string `json:"phone_number"`
	ActivationMethod string `json:"activation_method"`
}

// HandleActivateSubscription submits the account details that fund the
// subscription. The Idempotency-Key header is mandatory; a retried request
// with the same key returns the original payment instead of charging twice.
func HandleActivateSubscription(c *fiber.Ctx) error {
	var req activateRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, apperr.Validation("Invalid request body"))
	}

	svc := payment.NewServiceFromDB(database.GetDB())
	receipt, err := svc.Activate(c.Context(), payment.ActivateInput{
		UserID:           usercontext.GetUserID(c),
		SubscriptionID:   req.SubscriptionID,
		BVN:              req.BVN,
		AccountNumber:    req.AccountNumber,
		BankCode:         req.BankCode,
		PhoneNumber:      req.PhoneNumber,
		ActivationMethod: req.ActivationMethod,
		IdempotencyKey:   c.Get("Idempotency-Key"),
	})
	if err != nil {
		return failure(c, err)
	}

	if receipt.Replayed {
		return success(c, fiber.StatusOK, receipt, "Payment already submitted")
	}
	return success(c, fiber.StatusCreated, receipt, "Payment submitted. You will be notified once the mandate is confirmed.")
}

// HandleListPayments returns the user's payment history.
func HandleListPayments(c *fiber.Ctx) error {
	svc := payment.NewServiceFromDB(database.GetDB())
	history, err := svc.History(usercontext.GetUserID(c))
	if err != nil {
		return failure(c, err)
	}
	return success(c, fiber.StatusOK, history, "")
}

// HandleGetPayment polls the status of one payment by reference.
func HandleGetPayment(c *fiber.Ctx) error {
	svc := payment.NewServiceFromDB(database.GetDB())
	p, err := svc.ByReference(usercontext.GetUserID(c), c.Params("reference"))
	if err != nil {
		return failure(c, err)
	}
	return success(c, fiber.StatusOK, fiber.Map{
		"payment_reference": p.PaymentReference,
		"status":            p.Status,
		"amount":            p.Amount,
		"currency":          p.Currency,
		"bank_name":         p.BankName,
		"account_number":    p.MaskedAccountNumber(),
		"paid_at":           p.PaidAt,
		"failure_reason":    p.FailureReason,
	}, "")
}

// HandleListBanks returns the supported bank registry for the account form.
func HandleListBanks(c *fiber.Ctx) error {
	return success(c, fiber.StatusOK, banks.All(), "")
}
