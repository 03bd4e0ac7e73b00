package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/temidayo/currency-exchange-service/internal/core/domain"
	"github.com/temidayo/currency-exchange-service/internal/dto"
)

// currencyHandler serves the supported currency set.
type currencyHandler struct {
	registry *domain.CurrencyRegistry
}

// registerCurrencyRoutes registers routes related to supported currencies.
func registerCurrencyRoutes(rg *gin.RouterGroup, registry *domain.CurrencyRegistry) {
	h := &currencyHandler{registry: registry}

	rg.GET("/currencies", h.listCurrencies)
}

// listCurrencies godoc
// @Summary List supported currencies
// @Description Returns the supported currency codes with their minor units and the pivot currency
// @Tags currencies
// @Produce  json
// @Success 200 {object} dto.ListCurrenciesResponse
// @Router /currencies [get]
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ToListCurrenciesResponse(h.registry))
}
