package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/juud-8/ContractorPro02-sub000/cmd/docs"
	portssvc "github.com/juud-8/ContractorPro02-sub000/internal/core/ports/services"
	"github.com/juud-8/ContractorPro02-sub000/internal/middleware"
	"github.com/juud-8/ContractorPro02-sub000/internal/platform/config"
	"github.com/juud-8/ContractorPro02-sub000/internal/utils"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
) error {
	if err := RegisterValidators(); err != nil {
		return err
	}

	r.GET("/health", getHealth)

	webhookLimiter, err := middleware.NewRateLimiter(cfg.WebhookRateLimit)
	if err != nil {
		return fmt.Errorf("webhook rate limit: %w", err)
	}
	webhooks := r.Group("", middleware.RateLimit(webhookLimiter))
	RegisterWebhookRoutes(webhooks, services.Payment, posthogClient)

	if err := setupAPIV1Routes(r, cfg, services, posthogClient); err != nil {
		return err
	}

	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
) error {
	apiLimiter, err := middleware.NewRateLimiter(cfg.RateLimit)
	if err != nil {
		return fmt.Errorf("api rate limit: %w", err)
	}
	v1 := r.Group("/api/v1", middleware.RateLimit(apiLimiter))

	RegisterCustomerRoutes(v1, services.Customer)
	invoices := RegisterInvoiceRoutes(v1, services.Document, posthogClient)
	RegisterPaymentRoutes(invoices, services.Payment, posthogClient)
	RegisterQuoteRoutes(v1, services.Document, posthogClient)
	RegisterSettingsRoutes(v1, services.Settings)
	RegisterMaintenanceRoutes(v1, services.Document)
	return nil
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		// no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
