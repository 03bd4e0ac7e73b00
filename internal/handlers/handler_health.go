package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portsproviders "github.com/temidayo/currency-exchange-service/internal/core/ports/providers"
	"github.com/temidayo/currency-exchange-service/internal/middleware"
)

const providerHealthTimeout = 3 * time.Second

// healthHandler reports service liveness and provider reachability.
type healthHandler struct {
	source portsproviders.RateSource
}

// registerHealthRoutes registers the health check route.
func registerHealthRoutes(r *gin.Engine, source portsproviders.RateSource) {
	h := &healthHandler{source: source}

	r.GET("/health", h.getHealth)
}

// getHealth godoc
// @Summary Health check
// @Description Reports liveness and whether the upstream rate provider is reachable
// @Tags health
// @Produce  json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *healthHandler) getHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), providerHealthTimeout)
	defer cancel()

	providerStatus := "ok"
	if err := h.source.CheckHealth(ctx); err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Provider health check failed", slog.String("provider", h.source.Name()), slog.String("error", err.Error()))
		providerStatus = "unreachable"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"provider": providerStatus,
	})
}
