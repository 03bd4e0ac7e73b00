package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/temidayo/currency-exchange-service/cmd/docs"
	"github.com/temidayo/currency-exchange-service/internal/core/domain"
	portsproviders "github.com/temidayo/currency-exchange-service/internal/core/ports/providers"
	portssvc "github.com/temidayo/currency-exchange-service/internal/core/ports/services"
	"github.com/temidayo/currency-exchange-service/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	registry *domain.CurrencyRegistry,
	source portsproviders.RateSource,
	services *portssvc.ServiceContainer,
) {
	registerHomeRoutes(r)
	registerHealthRoutes(r, source)

	// Prometheus scrape endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Setup API v1 routes, passing service interfaces
	setupAPIV1Routes(r, cfg, registry, services)

	// Swagger routes (conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	registry *domain.CurrencyRegistry,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1")

	// Delegate route registration to specific handlers, passing required services
	registerRateRoutes(v1, services.Rate, cfg.ConversionMargin)
	registerConversionRoutes(v1, services.Conversion, cfg.ConversionRateLimit)
	registerCurrencyRoutes(v1, registry)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
