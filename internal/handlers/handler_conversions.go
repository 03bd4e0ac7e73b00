package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/temidayo/currency-exchange-service/internal/apperrors"
	portssvc "github.com/temidayo/currency-exchange-service/internal/core/ports/services"
	"github.com/temidayo/currency-exchange-service/internal/dto"
	"github.com/temidayo/currency-exchange-service/internal/middleware"
)

// conversionHandler handles HTTP requests related to conversions.
type conversionHandler struct {
	conversionService portssvc.ConversionSvcFacade
}

// newConversionHandler creates a new conversionHandler.
func newConversionHandler(cs portssvc.ConversionSvcFacade) *conversionHandler {
	return &conversionHandler{
		conversionService: cs,
	}
}

// registerConversionRoutes registers routes related to conversions. The POST
// route is rate limited per client IP using the configured format.
func registerConversionRoutes(rg *gin.RouterGroup, conversionService portssvc.ConversionSvcFacade, rateLimitFormat string) {
	h := newConversionHandler(conversionService)

	rate, _ := limiter.NewRateFromFormatted(rateLimitFormat)
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)

	conversions := rg.Group("/conversions")
	{
		conversions.POST("", middleware.RateLimit(ipLimiter), h.createConversion)
		conversions.GET("", h.listConversions)
		conversions.GET("/:conversionID", h.getConversionByID)
	}
}

// createConversion godoc
// @Summary Convert an amount between currencies
// @Description Converts the amount at the margin-adjusted rate and records an immutable audit entry
// @Tags conversions
// @Accept  json
// @Produce  json
// @Param   conversion body dto.CreateConversionRequest true "Conversion details"
// @Success 201 {object} dto.ConversionResponse
// @Failure 400 {object} map[string]string "Invalid amount or unsupported currency"
// @Failure 404 {object} map[string]string "No current rate for the pair"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 500 {object} map[string]string "Conversion could not be audited"
// @Router /conversions [post]
func (h *conversionHandler) createConversion(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateConversionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateConversion", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("base", req.BaseCurrency), slog.String("target", req.TargetCurrency))

	record, err := h.conversionService.Convert(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation),
			errors.Is(err, apperrors.ErrInvalidAmount),
			errors.Is(err, apperrors.ErrUnsupportedCurrency):
			logger.Warn("Rejected conversion request", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrRateUnavailable):
			logger.Warn("No rate available for conversion")
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrAuditWriteFailed):
			logger.Error("Conversion failed at audit write", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Conversion could not be audited"})
		default:
			logger.Error("Failed to perform conversion", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to perform conversion"})
		}
		return
	}

	logger.Info("Conversion created successfully", slog.String("conversion_id", record.ConversionID))
	c.JSON(http.StatusCreated, dto.ToConversionResponse(record))
}

// getConversionByID godoc
// @Summary Get a conversion audit record
// @Description Retrieves a single conversion by its id, including the rate snapshots it referenced
// @Tags conversions
// @Produce  json
// @Param   conversionID path string true "Conversion ID"
// @Success 200 {object} dto.ConversionDetailResponse
// @Failure 404 {object} map[string]string "Conversion not found"
// @Failure 500 {object} map[string]string "Failed to retrieve conversion"
// @Router /conversions/{conversionID} [get]
func (h *conversionHandler) getConversionByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	conversionID := c.Param("conversionID")

	record, snapshots, err := h.conversionService.GetConversionByID(c.Request.Context(), conversionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Conversion not found", slog.String("conversion_id", conversionID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Conversion not found"})
		} else {
			logger.Error("Failed to get conversion", slog.String("conversion_id", conversionID), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve conversion"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToConversionDetailResponse(record, snapshots))
}

// listConversions godoc
// @Summary List conversion audit records
// @Description Returns a page of conversions, newest first
// @Tags conversions
// @Produce  json
// @Param   page     query int false "Page number (default 1)"
// @Param   pageSize query int false "Page size (default 20, max 100)"
// @Success 200 {object} dto.ListConversionsResponse
// @Failure 400 {object} map[string]string "Invalid pagination parameters"
// @Failure 500 {object} map[string]string "Failed to list conversions"
// @Router /conversions [get]
func (h *conversionHandler) listConversions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var query dto.ListConversionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Failed to bind query for ListConversions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if query.Page == 0 {
		query.Page = 1
	}
	if query.PageSize == 0 {
		query.PageSize = 20
	}

	records, total, err := h.conversionService.ListConversions(c.Request.Context(), query.Page, query.PageSize)
	if err != nil {
		logger.Error("Failed to list conversions", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list conversions"})
		return
	}

	c.JSON(http.StatusOK, dto.ListConversionsResponse{
		Conversions: dto.ToListConversionResponse(records),
		Page:        query.Page,
		PageSize:    query.PageSize,
		Total:       total,
	})
}
