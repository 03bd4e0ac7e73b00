package mapping

import (
	"github.com/temidayo/currency-exchange-service/internal/core/domain"
	"github.com/temidayo/currency-exchange-service/internal/models"
)

// ToModelConversionRecord converts a domain ConversionRecord to a model
// ConversionRecord. Empty snapshot ids become NULLs.
func ToModelConversionRecord(d domain.ConversionRecord) models.ConversionRecord {
	return models.ConversionRecord{
		ConversionID:    d.ConversionID,
		BaseCurrency:    string(d.BaseCurrency),
		TargetCurrency:  string(d.TargetCurrency),
		InputAmount:     d.InputAmount,
		OutputAmount:    d.OutputAmount,
		RawRate:         d.RawRate,
		EffectiveRate:   d.EffectiveRate,
		MarginApplied:   d.MarginApplied,
		BaseSnapshotID:  nullableID(d.BaseSnapshotID),
		QuoteSnapshotID: nullableID(d.QuoteSnapshotID),
		CreatedAt:       d.CreatedAt,
	}
}

// ToDomainConversionRecord converts a model ConversionRecord to a domain
// ConversionRecord. NULL snapshot ids become empty strings.
func ToDomainConversionRecord(m models.ConversionRecord) domain.ConversionRecord {
	return domain.ConversionRecord{
		ConversionID:    m.ConversionID,
		BaseCurrency:    domain.CurrencyCode(m.BaseCurrency),
		TargetCurrency:  domain.CurrencyCode(m.TargetCurrency),
		InputAmount:     m.InputAmount,
		OutputAmount:    m.OutputAmount,
		RawRate:         m.RawRate,
		EffectiveRate:   m.EffectiveRate,
		MarginApplied:   m.MarginApplied,
		BaseSnapshotID:  derefID(m.BaseSnapshotID),
		QuoteSnapshotID: derefID(m.QuoteSnapshotID),
		CreatedAt:       m.CreatedAt,
	}
}

// ToDomainConversionRecordSlice converts a slice of model records.
func ToDomainConversionRecordSlice(ms []models.ConversionRecord) []domain.ConversionRecord {
	out := make([]domain.ConversionRecord, len(ms))
	for i, m := range ms {
		out[i] = ToDomainConversionRecord(m)
	}
	return out
}

func nullableID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

func derefID(id *string) string {
	if id == nil {
		return ""
	}
	return *id
}
