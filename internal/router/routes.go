package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/adpulse/opensea-api/internal/auth"
	"github.com/adpulse/opensea-api/internal/config"
	"github.com/adpulse/opensea-api/internal/handler"
	middlewarepkg "github.com/adpulse/opensea-api/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Auth          *handler.AuthHandler
	Users         *handler.UserAdminHandler
	Chat          *handler.ChatHandler
	Services      *handler.ServicesHandler
	Feedback      *handler.FeedbackHandler
	Subscriptions *handler.SubscriptionHandler
	BillingHook   *handler.BillingWebhookHandler
	Checkout      *handler.CheckoutHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})

	e.POST("/auth/register", handlers.Auth.Register)
	e.POST("/auth/login", handlers.Auth.Login)

	// Chat and catalogue browsing serve guests too; a bearer token upgrades
	// them with the caller's plan.
	optional := e.Group("", middlewarepkg.OptionalJWT(jwtManager))
	optional.POST("/chat", handlers.Chat.Handle, middlewarepkg.ChatRateLimiter(cfg.RateLimitChat))
	optional.GET("/services", handlers.Services.List)
	optional.GET("/services/:id", handlers.Services.Get)
	optional.POST("/feedback", handlers.Feedback.Submit)

	if handlers.BillingHook != nil {
		e.POST("/webhooks/billing", handlers.BillingHook.Handle)
	}

	secured := e.Group("")
	secured.Use(middlewarepkg.JWT(jwtManager))

	secured.GET("/me/subscription", handlers.Subscriptions.Current)
	secured.POST("/me/subscription/cancel", handlers.Subscriptions.Cancel)
	if handlers.Checkout != nil {
		secured.POST("/checkout", handlers.Checkout.Create)
	}

	admin := secured.Group("/admin", middlewarepkg.RequireRole("admin"))
	admin.POST("/services", handlers.Services.AdminUpsert)
	admin.POST("/services/upload", handlers.Services.AdminImportCSV)
	admin.GET("/services/:id/score", handlers.Services.AdminScore)
	admin.GET("/users", handlers.Users.List)
	admin.POST("/users", handlers.Users.Create)
	admin.PATCH("/users/:id", handlers.Users.Update)
	admin.DELETE("/users/:id", handlers.Users.Delete)
}
