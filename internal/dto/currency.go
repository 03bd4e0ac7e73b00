package dto

import (
	"github.com/temidayo/currency-exchange-service/internal/core/domain"
)

// CurrencyResponse defines the data returned for a supported currency.
type CurrencyResponse struct {
	CurrencyCode string `json:"currencyCode"`
	MinorUnits   int32  `json:"minorUnits"`
	IsPivot      bool   `json:"isPivot"`
}

// ListCurrenciesResponse wraps the supported currency set with the pivot.
type ListCurrenciesResponse struct {
	PivotCurrency string             `json:"pivotCurrency"`
	Currencies    []CurrencyResponse `json:"currencies"`
}

// ToListCurrenciesResponse builds the supported-currency listing from the registry.
func ToListCurrenciesResponse(registry *domain.CurrencyRegistry) ListCurrenciesResponse {
	codes := registry.Codes()
	currencies := make([]CurrencyResponse, len(codes))
	for i, code := range codes {
		currencies[i] = CurrencyResponse{
			CurrencyCode: string(code),
			MinorUnits:   domain.MinorUnits(code),
			IsPivot:      code == registry.Pivot(),
		}
	}
	return ListCurrenciesResponse{
		PivotCurrency: string(registry.Pivot()),
		Currencies:    currencies,
	}
}
