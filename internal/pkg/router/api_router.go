package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/dark-store/bukafresh/app/controllers"
	"github.com/dark-store/bukafresh/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "BukaFresh API",
		})
	})

	v1 := api.Group("/v1")

	// Auth
	auth := v1.Group("/auth")
	auth.Post("/register", controllers.HandleRegister)
	auth.Post("/login", controllers.HandleLogin)
	auth.Post("/logout", controllers.HandleLogout)
	auth.Get("/me", middleware.RequireAuth, controllers.HandleMe)

	// Public catalog
	v1.Get("/packages", controllers.HandleListPackages)
	v1.Get("/banks", controllers.HandleListBanks)
	v1.Get("/products", controllers.HandleListProducts)
	v1.Get("/products/popular", controllers.HandlePopularProducts)
	v1.Get("/products/:id", controllers.HandleGetProduct)

	// Checkout wizard (session-backed, works before login; the account
	// step gates progression on authentication)
	co := v1.Group("/checkout")
	co.Get("/", controllers.HandleGetCheckout)
	co.Delete("/", controllers.HandleResetCheckout)
	co.Post("/package", controllers.HandleSelectPackage)
	co.Post("/address", controllers.HandleSetCheckoutAddress)
	co.Post("/step", controllers.HandleCheckoutStep)
	co.Post("/step/:direction", controllers.HandleCheckoutStep)
	co.Post("/addons", controllers.HandleAddCheckoutAddOn)
	co.Put("/addons/:id", controllers.HandleUpdateCheckoutAddOn)
	co.Delete("/addons/:id", controllers.HandleRemoveCheckoutAddOn)

	// Subscriptions
	subs := v1.Group("/subscriptions", middleware.RequireAuth)
	subs.Post("/", controllers.HandleCreateSubscription)
	subs.Get("/", controllers.HandleListSubscriptions)
	subs.Get("/current", controllers.HandleGetSubscription)
	subs.Delete("/:id", controllers.HandleDeleteSubscription)
	subs.Post("/:id/cancel", controllers.HandleCancelSubscription)
	subs.Post("/:id/pause", controllers.HandlePauseSubscription)
	subs.Post("/:id/resume", controllers.HandleResumeSubscription)

	// Payments
	payments := v1.Group("/payments", middleware.RequireAuth)
	payments.Post("/activate", controllers.HandleActivateSubscription)
	payments.Get("/", controllers.HandleListPayments)
	payments.Get("/:reference", controllers.HandleGetPayment)

	// Add-on orders
	orders := v1.Group("/orders", middleware.RequireAuth)
	orders.Post("/", controllers.HandlePlaceOrder)
	orders.Get("/", controllers.HandleListOrders)
	orders.Get("/:id", controllers.HandleGetOrder)
	orders.Post("/:id/cancel", controllers.HandleCancelOrder)

	// Addresses
	addresses := v1.Group("/addresses", middleware.RequireAuth)
	addresses.Get("/", controllers.HandleListAddresses)
	addresses.Post("/", controllers.HandleCreateAddress)
	addresses.Put("/:id", controllers.HandleUpdateAddress)

	// Deliveries
	deliveries := v1.Group("/deliveries", middleware.RequireAuth)
	deliveries.Get("/", controllers.HandleListDeliveries)
	deliveries.Get("/track/:tracking_number", controllers.HandleTrackDelivery)

	// Provider callbacks (signature-verified, no session)
	v1.Post("/webhooks/payment", controllers.HandlePaymentWebhook)

	// Operational surface for the dispatch team (shared key, no session)
	ops := v1.Group("/ops", middleware.RequireOpsKey)
	ops.Post("/billing/sweep", controllers.HandleTriggerBillingSweep)
	ops.Post("/deliveries/:id/delivered", controllers.HandleMarkDeliveryDelivered)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
