package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/temidayo/currency-exchange-service/internal/apperrors"
	"github.com/temidayo/currency-exchange-service/internal/core/domain"
	portsproviders "github.com/temidayo/currency-exchange-service/internal/core/ports/providers"
	portssvc "github.com/temidayo/currency-exchange-service/internal/core/ports/services"
	"github.com/temidayo/currency-exchange-service/internal/core/services"
)

// --- Mock RateSource ---
type MockRateSource struct {
	mock.Mock
}

func (m *MockRateSource) FetchLatest(ctx context.Context, pivot domain.CurrencyCode) (map[domain.CurrencyCode]decimal.Decimal, error) {
	args := m.Called(ctx, pivot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.CurrencyCode]decimal.Decimal), args.Error(1)
}

func (m *MockRateSource) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockRateSource) CheckHealth(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portsproviders.RateSource = (*MockRateSource)(nil)

// --- Test Suite ---
type RateIngestionServiceTestSuite struct {
	suite.Suite
	mockSource       *MockRateSource
	mockSnapshotRepo *MockRateSnapshotRepository
	mockCache        *MockRateCache
	registry         *domain.CurrencyRegistry
	service          portssvc.IngestionSvcFacade
}

func (suite *RateIngestionServiceTestSuite) SetupTest() {
	suite.mockSource = new(MockRateSource)
	suite.mockSnapshotRepo = new(MockRateSnapshotRepository)
	suite.mockCache = new(MockRateCache)
	suite.registry = domain.NewCurrencyRegistry("EUR", []domain.CurrencyCode{"USD", "NGN"})
	suite.service = services.NewRateIngestionService(suite.registry, suite.mockSource, suite.mockSnapshotRepo, suite.mockCache, newTestMetrics())

	suite.mockSource.On("Name").Return("exchangeratesapi")
}

// --- Test Cases ---

func (suite *RateIngestionServiceTestSuite) TestFetchAndStore_StoresEverySupportedQuote() {
	ctx := context.Background()
	quotes := map[domain.CurrencyCode]decimal.Decimal{
		"NGN": decimal.RequireFromString("1823.20872274"),
		"USD": decimal.RequireFromString("1.1705"),
		// Not in the supported set, must be ignored.
		"CAD": decimal.RequireFromString("1.61"),
	}

	suite.mockSource.On("FetchLatest", ctx, domain.CurrencyCode("EUR")).Return(quotes, nil).Once()

	var appended []domain.RateSnapshot
	suite.mockSnapshotRepo.On("AppendSnapshot", ctx, mock.AnythingOfType("domain.RateSnapshot")).
		Run(func(args mock.Arguments) {
			appended = append(appended, args.Get(1).(domain.RateSnapshot))
		}).Return(nil).Times(2)
	suite.mockCache.On("Put", ctx, mock.AnythingOfType("domain.RateSnapshot")).Return(nil).Times(2)

	stored, err := suite.service.FetchAndStore(ctx)

	suite.Require().NoError(err)
	suite.Equal(2, stored)
	suite.Require().Len(appended, 2)
	// Quotes are processed in sorted order.
	suite.Equal(domain.CurrencyCode("NGN"), appended[0].QuoteCurrency)
	suite.Equal(domain.CurrencyCode("USD"), appended[1].QuoteCurrency)
	suite.True(appended[0].Rate.Equal(decimal.RequireFromString("1823.20872274")))
	suite.True(appended[1].Rate.Equal(decimal.RequireFromString("1.1705")))
	// All snapshots of one cycle share a fetch timestamp and source tag.
	suite.True(appended[0].FetchedAt.Equal(appended[1].FetchedAt))
	suite.Equal("exchangeratesapi", appended[0].SourceTag)
	suite.Equal(domain.CurrencyCode("EUR"), appended[0].PivotCurrency)
	suite.NotEmpty(appended[0].SnapshotID)
	suite.NotEqual(appended[0].SnapshotID, appended[1].SnapshotID)

	suite.mockSnapshotRepo.AssertExpectations(suite.T())
	suite.mockCache.AssertExpectations(suite.T())
}

func (suite *RateIngestionServiceTestSuite) TestFetchAndStore_SkipsMissingQuote() {
	ctx := context.Background()
	quotes := map[domain.CurrencyCode]decimal.Decimal{
		"USD": decimal.RequireFromString("1.1705"),
	}

	suite.mockSource.On("FetchLatest", ctx, domain.CurrencyCode("EUR")).Return(quotes, nil).Once()
	suite.mockSnapshotRepo.On("AppendSnapshot", ctx, mock.AnythingOfType("domain.RateSnapshot")).Return(nil).Once()
	suite.mockCache.On("Put", ctx, mock.AnythingOfType("domain.RateSnapshot")).Return(nil).Once()

	stored, err := suite.service.FetchAndStore(ctx)

	suite.Require().NoError(err)
	suite.Equal(1, stored)
	suite.mockSnapshotRepo.AssertNumberOfCalls(suite.T(), "AppendSnapshot", 1)
}

func (suite *RateIngestionServiceTestSuite) TestFetchAndStore_SkipsNonPositiveQuote() {
	ctx := context.Background()
	quotes := map[domain.CurrencyCode]decimal.Decimal{
		"NGN": decimal.Zero,
		"USD": decimal.RequireFromString("1.1705"),
	}

	suite.mockSource.On("FetchLatest", ctx, domain.CurrencyCode("EUR")).Return(quotes, nil).Once()

	var appended []domain.RateSnapshot
	suite.mockSnapshotRepo.On("AppendSnapshot", ctx, mock.AnythingOfType("domain.RateSnapshot")).
		Run(func(args mock.Arguments) {
			appended = append(appended, args.Get(1).(domain.RateSnapshot))
		}).Return(nil).Once()
	suite.mockCache.On("Put", ctx, mock.AnythingOfType("domain.RateSnapshot")).Return(nil).Once()

	stored, err := suite.service.FetchAndStore(ctx)

	suite.Require().NoError(err)
	suite.Equal(1, stored)
	suite.Require().Len(appended, 1)
	suite.Equal(domain.CurrencyCode("USD"), appended[0].QuoteCurrency)
}

func (suite *RateIngestionServiceTestSuite) TestFetchAndStore_ProviderError() {
	ctx := context.Background()

	suite.mockSource.On("FetchLatest", ctx, domain.CurrencyCode("EUR")).
		Return(nil, fmt.Errorf("%w: status 500", apperrors.ErrProvider)).Once()

	stored, err := suite.service.FetchAndStore(ctx)

	suite.Require().Error(err)
	suite.Zero(stored)
	suite.ErrorIs(err, apperrors.ErrProvider)
	suite.mockSnapshotRepo.AssertNotCalled(suite.T(), "AppendSnapshot")
	suite.mockCache.AssertNotCalled(suite.T(), "Put")
}

func (suite *RateIngestionServiceTestSuite) TestFetchAndStore_StoreFailureAbortsCycle() {
	ctx := context.Background()
	quotes := map[domain.CurrencyCode]decimal.Decimal{
		"NGN": decimal.RequireFromString("1823.20872274"),
		"USD": decimal.RequireFromString("1.1705"),
	}

	suite.mockSource.On("FetchLatest", ctx, domain.CurrencyCode("EUR")).Return(quotes, nil).Once()
	suite.mockSnapshotRepo.On("AppendSnapshot", ctx, mock.AnythingOfType("domain.RateSnapshot")).
		Return(errors.New("db down")).Once()

	stored, err := suite.service.FetchAndStore(ctx)

	suite.Require().Error(err)
	suite.Zero(stored)
	suite.Contains(err.Error(), "failed to store snapshot")
	suite.mockSnapshotRepo.AssertNumberOfCalls(suite.T(), "AppendSnapshot", 1)
	suite.mockCache.AssertNotCalled(suite.T(), "Put")
}

func (suite *RateIngestionServiceTestSuite) TestFetchAndStore_CacheFailureIsNotFatal() {
	ctx := context.Background()
	quotes := map[domain.CurrencyCode]decimal.Decimal{
		"NGN": decimal.RequireFromString("1823.20872274"),
		"USD": decimal.RequireFromString("1.1705"),
	}

	suite.mockSource.On("FetchLatest", ctx, domain.CurrencyCode("EUR")).Return(quotes, nil).Once()
	suite.mockSnapshotRepo.On("AppendSnapshot", ctx, mock.AnythingOfType("domain.RateSnapshot")).Return(nil).Times(2)
	suite.mockCache.On("Put", ctx, mock.AnythingOfType("domain.RateSnapshot")).
		Return(errors.New("redis down")).Times(2)

	stored, err := suite.service.FetchAndStore(ctx)

	suite.Require().NoError(err)
	suite.Equal(2, stored)
	suite.mockSnapshotRepo.AssertExpectations(suite.T())
}

func TestNewRateIngestionService(t *testing.T) {
	registry := domain.NewCurrencyRegistry("EUR", []domain.CurrencyCode{"USD"})
	service := services.NewRateIngestionService(registry, new(MockRateSource), new(MockRateSnapshotRepository), new(MockRateCache), newTestMetrics())

	assert.NotNil(t, service)

	var _ portssvc.IngestionSvcFacade = service
}

// --- Run Suite ---
func TestRateIngestionService(t *testing.T) {
	suite.Run(t, new(RateIngestionServiceTestSuite))
}
