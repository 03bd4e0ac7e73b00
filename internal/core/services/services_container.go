package services

import (
	"github.com/temidayo/currency-exchange-service/internal/core/domain"
	portsproviders "github.com/temidayo/currency-exchange-service/internal/core/ports/providers"
	portsrepo "github.com/temidayo/currency-exchange-service/internal/core/ports/repositories"
	portssvc "github.com/temidayo/currency-exchange-service/internal/core/ports/services"
	"github.com/temidayo/currency-exchange-service/internal/platform/config"
	"github.com/temidayo/currency-exchange-service/internal/platform/metrics"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, registry *domain.CurrencyRegistry, repos portsrepo.RepositoryProvider, source portsproviders.RateSource, m *metrics.ExchangeMetrics) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Rate resolution comes first since conversion depends on it
	container.Rate = NewRateService(registry, repos.SnapshotRepo, repos.RateCache, m)
	container.Conversion = NewConversionService(cfg.ConversionMargin, container.Rate, repos.ConversionRepo, repos.SnapshotRepo, m)
	container.Ingestion = NewRateIngestionService(registry, source, repos.SnapshotRepo, repos.RateCache, m)

	return container
}
