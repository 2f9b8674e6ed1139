package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dark-store/bukafresh/app/models"
	"github.com/dark-store/bukafresh/internal/pkg/catalog"
	"github.com/dark-store/bukafresh/internal/pkg/checkout"
	"github.com/dark-store/bukafresh/internal/pkg/database"
	"github.com/dark-store/bukafresh/internal/pkg/subscription"
	"github.com/dark-store/bukafresh/internal/pkg/usercontext"
)

type createSubscriptionRequest struct {
	Tier         string `json:"tier"`
	BillingCycle string `json:"billing_cycle"`
	Address      struct {
		Street       string `json:"street"`
		City         string `json:"city"`
		State        string `json:"state"`
		PostalCode   string `json:"postal_code"`
		Instructions string `json:"instructions"`
	} `json:"address"`
}

// HandleCreateSubscription opens a PENDING subscription. The request body
// may carry the details directly; fields missing from the body fall back to
// the checkout wizard state so the normal flow needs no duplication.
func HandleCreateSubscription(c *fiber.Ctx) error {
	userID := usercontext.GetUserID(c)

	var req createSubscriptionRequest
	_ = c.BodyParser(&req)

	state := checkout.Load(c)
	in := subscription.CreateInput{
		UserID:       userID,
		Tier:         req.Tier,
		BillingCycle: req.BillingCycle,
	}
	if in.Tier == "" && state.SelectedPackage != nil {
		in.Tier = state.SelectedPackage.Tier
	}
	if in.BillingCycle == "" {
		in.BillingCycle = state.DeliveryFrequency
	}
	if req.Address.Street != "" {
		in.Address = &models.Address{
			Street:       req.Address.Street,
			City:         req.Address.City,
			State:        req.Address.State,
			PostalCode:   req.Address.PostalCode,
			Instructions: req.Address.Instructions,
		}
	} else if state.DeliveryAddress != nil {
		in.Address = state.DeliveryAddress
	}

	sub, err := subscription.NewServiceFromDB(database.GetDB()).Create(in)
	if err != nil {
		return failure(c, err)
	}

	// The wizard is finished; drop its state so the next visit starts clean.
	_ = checkout.Clear(c)
	return success(c, fiber.StatusCreated, sub, "Subscription created. Complete payment to activate it.")
}

// HandleGetSubscription returns the user's most recent subscription.
func HandleGetSubscription(c *fiber.Ctx) error {
	svc := subscription.NewServiceFromDB(database.GetDB())
	sub, err := svc.GetCurrent(usercontext.GetUserID(c))
	if err != nil {
		return failure(c, err)
	}
	return success(c, fiber.StatusOK, sub, "")
}

// HandleListSubscriptions returns all of the user's subscriptions.
func HandleListSubscriptions(c *fiber.Ctx) error {
	svc := subscription.NewServiceFromDB(database.GetDB())
	subs, err := svc.List(usercontext.GetUserID(c))
	if err != nil {
		return failure(c, err)
	}
	return success(c, fiber.StatusOK, subs, "")
}

// HandleDeleteSubscription removes a PENDING or INACTIVE subscription.
func HandleDeleteSubscription(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return failure(c, err)
	}
	svc := subscription.NewServiceFromDB(database.GetDB())
	if err := svc.Delete(usercontext.GetUserID(c), id); err != nil {
		return failure(c, err)
	}
	return success(c, fiber.StatusOK, nil, "Subscription deleted")
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

// HandleCancelSubscription cancels an ACTIVE or PAUSED subscription.
func HandleCancelSubscription(c *fiber.Ctx) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return failure(c, err)
	}
	var req cancelRequest
	_ = c.BodyParser(&req)

	svc := subscription.NewServiceFromDB(database.GetDB())
	sub, err := svc.Cancel(usercontext.GetUserID(c), id, req.Reason)
	if err != nil {
		return failure(c, err)
	}
	return success(c, fiber.StatusOK, sub, "Subscription cancelled")
}

// HandlePauseSubscription pauses an ACTIVE subscription.
func HandlePauseSubscription(c *fiber.Ctx) error {
	return handleToggle(c, func(svc *subscription.Service, userID, id uint) (*models.Subscription, error) {
		return svc.Pause(userID, id)
	}, "Subscription paused")
}

// HandleResumeSubscription resumes a PAUSED subscription.
func HandleResumeSubscription(c *fiber.Ctx) error {
	return handleToggle(c, func(svc *subscription.Service, userID, id uint) (*models.Subscription, error) {
		return svc.Resume(userID, id)
	}, "Subscription resumed")
}

func handleToggle(c *fiber.Ctx, op func(*subscription.Service, uint, uint) (*models.Subscription, error), message string) error {
	id, err := paramUint(c, "id")
	if err != nil {
		return failure(c, err)
	}
	svc := subscription.NewServiceFromDB(database.GetDB())
	sub, err := op(svc, usercontext.GetUserID(c), id)
	if err != nil {
		return failure(c, err)
	}
	return success(c, fiber.StatusOK, sub, message)
}

// HandleListPackages returns the package catalog with both cadence prices.
func HandleListPackages(c *fiber.Ctx) error {
	return success(c, fiber.StatusOK, catalog.Packages(), "")
}
