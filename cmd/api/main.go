package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/adpulse/opensea-api/internal/auth"
	"github.com/adpulse/opensea-api/internal/config"
	"github.com/adpulse/opensea-api/internal/database"
	"github.com/adpulse/opensea-api/internal/handler"
	"github.com/adpulse/opensea-api/internal/llm"
	middlewarepkg "github.com/adpulse/opensea-api/internal/middleware"
	"github.com/adpulse/opensea-api/internal/payments"
	"github.com/adpulse/opensea-api/internal/repository"
	"github.com/adpulse/opensea-api/internal/router"
	"github.com/adpulse/opensea-api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer pool.Close()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	usersRepo := repository.NewPGXUsersRepository(pool)
	servicesRepo := repository.NewPGXServicesRepository(pool)
	interactionsRepo := repository.NewPGXInteractionsRepository(pool)
	subscriptionsRepo := repository.NewPGXSubscriptionsRepository(pool)
	feedbackRepo := repository.NewPGXFeedbackRepository(pool)

	normalizer := service.NewContactNormalizer(cfg.DefaultRegion)
	responder := llm.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)

	authService := service.NewAuthService(usersRepo, jwtManager)
	userService := service.NewUserService(usersRepo)
	entitlementService := service.NewEntitlementService(subscriptionsRepo)
	chatService := service.NewChatService(servicesRepo, interactionsRepo, responder, entitlementService, cfg.ChatPageSize)
	catalogService := service.NewCatalogService(servicesRepo, normalizer)
	feedbackService := service.NewFeedbackService(feedbackRepo)
	billingService := service.NewBillingService(subscriptionsRepo)

	handlers := router.Handlers{
		Auth:          handler.NewAuthHandler(authService),
		Users:         handler.NewUserAdminHandler(userService),
		Chat:          handler.NewChatHandler(chatService),
		Services:      handler.NewServicesHandler(catalogService, entitlementService),
		Feedback:      handler.NewFeedbackHandler(feedbackService),
		Subscriptions: handler.NewSubscriptionHandler(entitlementService),
		BillingHook:   handler.NewBillingWebhookHandler(billingService, cfg.BillingWebhookSecret),
	}
	if cfg.PaymentsWorkerURL != "" {
		handlers.Checkout = handler.NewCheckoutHandler(payments.NewClient(nil, cfg.PaymentsWorkerURL))
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging())
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, jwtManager, handlers)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	// let in-flight audit writes drain before the process exits
	chatService.WaitAudits()
}
