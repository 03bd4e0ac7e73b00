package domain

import (
	"fmt"
	"sort"
	"strings"
)

// CurrencyCode is a 3-letter ISO 4217 style currency code (e.g., "USD").
type CurrencyCode string

// ParseCurrencyCode normalizes and validates a raw currency code.
// Input is uppercased before validation so "usd" and "USD" are equivalent.
func ParseCurrencyCode(raw string) (CurrencyCode, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if len(code) != 3 {
		return "", fmt.Errorf("currency code must be exactly 3 letters, got %q", raw)
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", fmt.Errorf("currency code must contain only letters, got %q", raw)
		}
	}
	return CurrencyCode(code), nil
}

// minorUnitOverrides lists the ISO 4217 currencies that do not use the
// common 2 fractional digits.
var minorUnitOverrides = map[CurrencyCode]int32{
	"BHD": 3,
	"CLP": 0,
	"ISK": 0,
	"JPY": 0,
	"KRW": 0,
	"KWD": 3,
	"OMR": 3,
	"TND": 3,
	"VND": 0,
	"XAF": 0,
	"XOF": 0,
}

// MinorUnits returns the number of fractional digits amounts of the given
// currency are rounded to (2 unless the currency is a known exception).
func MinorUnits(code CurrencyCode) int32 {
	if units, ok := minorUnitOverrides[code]; ok {
		return units
	}
	return 2
}

// CurrencyRegistry is the fixed set of currencies the engine serves,
// built once from configuration at startup. The pivot currency is always
// part of the set.
type CurrencyRegistry struct {
	pivot CurrencyCode
	codes map[CurrencyCode]struct{}
}

// NewCurrencyRegistry builds a registry from the pivot and the supported set.
func NewCurrencyRegistry(pivot CurrencyCode, supported []CurrencyCode) *CurrencyRegistry {
	codes := make(map[CurrencyCode]struct{}, len(supported)+1)
	codes[pivot] = struct{}{}
	for _, code := range supported {
		codes[code] = struct{}{}
	}
	return &CurrencyRegistry{pivot: pivot, codes: codes}
}

// Pivot returns the reference currency all snapshots are stored against.
func (r *CurrencyRegistry) Pivot() CurrencyCode {
	return r.pivot
}

// Supports reports whether the code is part of the configured set.
func (r *CurrencyRegistry) Supports(code CurrencyCode) bool {
	_, ok := r.codes[code]
	return ok
}

// Codes returns the full supported set in sorted order.
func (r *CurrencyRegistry) Codes() []CurrencyCode {
	out := make([]CurrencyCode, 0, len(r.codes))
	for code := range r.codes {
		out = append(out, code)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// QuoteCurrencies returns the supported set minus the pivot, i.e. the pairs
// ingestion fetches on every cycle.
func (r *CurrencyRegistry) QuoteCurrencies() []CurrencyCode {
	out := make([]CurrencyCode, 0, len(r.codes)-1)
	for _, code := range r.Codes() {
		if code != r.pivot {
			out = append(out, code)
		}
	}
	return out
}
