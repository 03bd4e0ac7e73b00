package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/temidayo/currency-exchange-service/internal/apperrors"
	"github.com/temidayo/currency-exchange-service/internal/core/domain"
	portssvc "github.com/temidayo/currency-exchange-service/internal/core/ports/services"
	"github.com/temidayo/currency-exchange-service/internal/dto"
	"github.com/temidayo/currency-exchange-service/internal/middleware"
)

// rateHandler handles HTTP requests related to exchange rates.
type rateHandler struct {
	rateService portssvc.RateSvcFacade
	margin      decimal.Decimal
}

// newRateHandler creates a new rateHandler.
func newRateHandler(rs portssvc.RateSvcFacade, margin decimal.Decimal) *rateHandler {
	return &rateHandler{
		rateService: rs,
		margin:      margin,
	}
}

// registerRateRoutes registers routes related to rate lookups.
func registerRateRoutes(rg *gin.RouterGroup, rateService portssvc.RateSvcFacade, margin decimal.Decimal) {
	h := newRateHandler(rateService, margin)

	rates := rg.Group("/rates")
	{
		rates.GET("/latest", h.getLatestRate)
		rates.GET("/history", h.listRateHistory)
	}
}

// getLatestRate godoc
// @Summary Get the latest rate for a currency pair
// @Description Resolves the current base to target rate through the pivot currency, reporting the margin that a conversion would apply
// @Tags rates
// @Produce  json
// @Param   base   query string true "Base currency code (3 letters)" MinLength(3) MaxLength(3)
// @Param   target query string true "Target currency code (3 letters)" MinLength(3) MaxLength(3)
// @Success 200 {object} dto.LatestRateResponse
// @Failure 400 {object} map[string]string "Invalid or unsupported currency code"
// @Failure 404 {object} map[string]string "No stored rate for the pair"
// @Failure 500 {object} map[string]string "Failed to resolve rate"
// @Router /rates/latest [get]
func (h *rateHandler) getLatestRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var query dto.LatestRateQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Failed to bind query for GetLatestRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	base, err := domain.ParseCurrencyCode(query.Base)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	target, err := domain.ParseCurrencyCode(query.Target)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logger = logger.With(slog.String("base", string(base)), slog.String("target", string(target)))

	resolved, err := h.rateService.ResolveRate(c.Request.Context(), base, target)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrUnsupportedCurrency), errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Rejected rate lookup", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrRateUnavailable), errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("No rate available for pair")
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to resolve rate", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve rate"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToLatestRateResponse(resolved, h.margin))
}

// listRateHistory godoc
// @Summary List stored rate snapshots for a quote currency
// @Description Returns snapshots of the pivot to quote rate, newest first
// @Tags rates
// @Produce  json
// @Param   quote query string true "Quote currency code (3 letters)" MinLength(3) MaxLength(3)
// @Param   limit query int false "Maximum snapshots to return (default 50, max 500)"
// @Success 200 {array} dto.RateSnapshotResponse
// @Failure 400 {object} map[string]string "Invalid or unsupported currency code"
// @Failure 500 {object} map[string]string "Failed to list rate history"
// @Router /rates/history [get]
func (h *rateHandler) listRateHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var query dto.RateHistoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Failed to bind query for ListRateHistory", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	quote, err := domain.ParseCurrencyCode(query.Quote)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snapshots, err := h.rateService.ListRateHistory(c.Request.Context(), quote, query.Limit)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrUnsupportedCurrency), errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Rejected history listing", slog.String("quote", string(quote)), slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to list rate history", slog.String("quote", string(quote)), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list rate history"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToListRateSnapshotResponse(snapshots))
}
