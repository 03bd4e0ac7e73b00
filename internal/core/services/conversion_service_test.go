package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/temidayo/currency-exchange-service/internal/apperrors"
	"github.com/temidayo/currency-exchange-service/internal/core/domain"
	portsrepo "github.com/temidayo/currency-exchange-service/internal/core/ports/repositories"
	portssvc "github.com/temidayo/currency-exchange-service/internal/core/ports/services"
	"github.com/temidayo/currency-exchange-service/internal/core/services"
	"github.com/temidayo/currency-exchange-service/internal/dto"
)

// --- Mock RateReaderSvc ---
type MockRateReaderSvc struct {
	mock.Mock
}

func (m *MockRateReaderSvc) ResolveRate(ctx context.Context, base, target domain.CurrencyCode) (*domain.ResolvedRate, error) {
	args := m.Called(ctx, base, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResolvedRate), args.Error(1)
}

func (m *MockRateReaderSvc) ListRateHistory(ctx context.Context, quote domain.CurrencyCode, limit int) ([]domain.RateSnapshot, error) {
	args := m.Called(ctx, quote, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RateSnapshot), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.RateReaderSvc = (*MockRateReaderSvc)(nil)

// --- Mock ConversionRecordRepository ---
type MockConversionRecordRepository struct {
	mock.Mock
}

func (m *MockConversionRecordRepository) SaveConversionRecord(ctx context.Context, record domain.ConversionRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockConversionRecordRepository) FindConversionRecordByID(ctx context.Context, conversionID string) (*domain.ConversionRecord, error) {
	args := m.Called(ctx, conversionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConversionRecord), args.Error(1)
}

func (m *MockConversionRecordRepository) ListConversionRecords(ctx context.Context, page, pageSize int) ([]domain.ConversionRecord, int, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ConversionRecord), args.Int(1), args.Error(2)
}

// Ensure mock implements the interface
var _ portsrepo.ConversionRecordRepositoryFacade = (*MockConversionRecordRepository)(nil)

// --- Test Suite ---
type ConversionServiceTestSuite struct {
	suite.Suite
	mockRateSvc        *MockRateReaderSvc
	mockConversionRepo *MockConversionRecordRepository
	mockSnapshotRepo   *MockRateSnapshotRepository
	service            portssvc.ConversionSvcFacade
}

func (suite *ConversionServiceTestSuite) SetupTest() {
	suite.mockRateSvc = new(MockRateReaderSvc)
	suite.mockConversionRepo = new(MockConversionRecordRepository)
	suite.mockSnapshotRepo = new(MockRateSnapshotRepository)
	margin := decimal.RequireFromString("0.005")
	suite.service = services.NewConversionService(margin, suite.mockRateSvc, suite.mockConversionRepo, suite.mockSnapshotRepo, newTestMetrics())
}

func (suite *ConversionServiceTestSuite) resolvedRate(base, target domain.CurrencyCode, rate decimal.Decimal) *domain.ResolvedRate {
	now := time.Now().UTC()
	return &domain.ResolvedRate{
		BaseCurrency:    base,
		TargetCurrency:  target,
		Rate:            rate,
		BaseSnapshotID:  "snap-base",
		QuoteSnapshotID: "snap-quote",
		FetchedAt:       now.Add(-time.Minute),
		SourceTag:       "exchangeratesapi",
		ResolvedAt:      now,
	}
}

// --- Test Cases ---

func (suite *ConversionServiceTestSuite) TestConvert_AppliesMarginAndRoundsOnce() {
	ctx := context.Background()
	// Cross rate derived from the EUR legs 1.1705 (USD) and 1823.20872274 (NGN).
	rawRate := decimal.RequireFromString("1823.20872274").DivRound(decimal.RequireFromString("1.1705"), 12)
	resolved := suite.resolvedRate("USD", "NGN", rawRate)

	suite.mockRateSvc.On("ResolveRate", ctx, domain.CurrencyCode("USD"), domain.CurrencyCode("NGN")).
		Return(resolved, nil).Once()
	suite.mockConversionRepo.On("SaveConversionRecord", ctx, mock.AnythingOfType("domain.ConversionRecord")).
		Return(nil).Once()

	record, err := suite.service.Convert(ctx, dto.CreateConversionRequest{
		Amount:         decimal.NewFromInt(100),
		BaseCurrency:   "USD",
		TargetCurrency: "NGN",
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(record)
	suite.True(record.OutputAmount.Equal(decimal.RequireFromString("154984.42")), "expected 154984.42, got %s", record.OutputAmount)
	suite.True(record.RawRate.Equal(rawRate))
	suite.True(record.EffectiveRate.Equal(rawRate.Mul(decimal.RequireFromString("0.995"))))
	suite.True(record.MarginApplied.Equal(decimal.RequireFromString("0.005")))
	suite.True(record.InputAmount.Equal(decimal.NewFromInt(100)))
	suite.Equal("snap-base", record.BaseSnapshotID)
	suite.Equal("snap-quote", record.QuoteSnapshotID)
	suite.NotEmpty(record.ConversionID)
	suite.False(record.CreatedAt.IsZero())

	suite.mockRateSvc.AssertExpectations(suite.T())
	suite.mockConversionRepo.AssertExpectations(suite.T())
}

func (suite *ConversionServiceTestSuite) TestConvert_RoundsToTargetMinorUnits() {
	ctx := context.Background()
	// JPY has zero minor units: 100 * 162.5 * 0.995 = 16168.75 -> 16169.
	resolved := suite.resolvedRate("USD", "JPY", decimal.RequireFromString("162.5"))

	suite.mockRateSvc.On("ResolveRate", ctx, domain.CurrencyCode("USD"), domain.CurrencyCode("JPY")).
		Return(resolved, nil).Once()
	suite.mockConversionRepo.On("SaveConversionRecord", ctx, mock.AnythingOfType("domain.ConversionRecord")).
		Return(nil).Once()

	record, err := suite.service.Convert(ctx, dto.CreateConversionRequest{
		Amount:         decimal.NewFromInt(100),
		BaseCurrency:   "USD",
		TargetCurrency: "JPY",
	})

	suite.Require().NoError(err)
	suite.True(record.OutputAmount.Equal(decimal.NewFromInt(16169)), "expected 16169, got %s", record.OutputAmount)
}

func (suite *ConversionServiceTestSuite) TestConvert_IdentityPairStillPaysMargin() {
	ctx := context.Background()
	resolved := &domain.ResolvedRate{
		BaseCurrency:   "USD",
		TargetCurrency: "USD",
		Rate:           decimal.NewFromInt(1),
		FetchedAt:      time.Now().UTC(),
		ResolvedAt:     time.Now().UTC(),
	}

	suite.mockRateSvc.On("ResolveRate", ctx, domain.CurrencyCode("USD"), domain.CurrencyCode("USD")).
		Return(resolved, nil).Once()
	suite.mockConversionRepo.On("SaveConversionRecord", ctx, mock.AnythingOfType("domain.ConversionRecord")).
		Return(nil).Once()

	record, err := suite.service.Convert(ctx, dto.CreateConversionRequest{
		Amount:         decimal.NewFromInt(100),
		BaseCurrency:   "USD",
		TargetCurrency: "USD",
	})

	suite.Require().NoError(err)
	suite.True(record.OutputAmount.Equal(decimal.RequireFromString("99.50")))
	suite.Empty(record.BaseSnapshotID)
	suite.Empty(record.QuoteSnapshotID)
}

func (suite *ConversionServiceTestSuite) TestConvert_InvalidCurrencyCode() {
	ctx := context.Background()

	record, err := suite.service.Convert(ctx, dto.CreateConversionRequest{
		Amount:         decimal.NewFromInt(100),
		BaseCurrency:   "US",
		TargetCurrency: "NGN",
	})

	suite.Require().Error(err)
	suite.Nil(record)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRateSvc.AssertNotCalled(suite.T(), "ResolveRate")
	suite.mockConversionRepo.AssertNotCalled(suite.T(), "SaveConversionRecord")
}

func (suite *ConversionServiceTestSuite) TestConvert_NonPositiveAmount() {
	ctx := context.Background()

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-10)} {
		record, err := suite.service.Convert(ctx, dto.CreateConversionRequest{
			Amount:         amount,
			BaseCurrency:   "USD",
			TargetCurrency: "NGN",
		})

		suite.Require().Error(err)
		suite.Nil(record)
		suite.ErrorIs(err, apperrors.ErrInvalidAmount)
	}
	suite.mockRateSvc.AssertNotCalled(suite.T(), "ResolveRate")
}

func (suite *ConversionServiceTestSuite) TestConvert_AmountTooPrecise() {
	ctx := context.Background()

	record, err := suite.service.Convert(ctx, dto.CreateConversionRequest{
		Amount:         decimal.RequireFromString("10.999"),
		BaseCurrency:   "USD",
		TargetCurrency: "NGN",
	})

	suite.Require().Error(err)
	suite.Nil(record)
	suite.ErrorIs(err, apperrors.ErrInvalidAmount)
	suite.Contains(err.Error(), "precision")
	suite.mockRateSvc.AssertNotCalled(suite.T(), "ResolveRate")
}

func (suite *ConversionServiceTestSuite) TestConvert_ThreeMinorUnitBaseAcceptsThreeDecimals() {
	ctx := context.Background()
	// BHD carries three minor units, so 10.999 is a valid input amount.
	resolved := suite.resolvedRate("BHD", "USD", decimal.RequireFromString("2.65252"))

	suite.mockRateSvc.On("ResolveRate", ctx, domain.CurrencyCode("BHD"), domain.CurrencyCode("USD")).
		Return(resolved, nil).Once()
	suite.mockConversionRepo.On("SaveConversionRecord", ctx, mock.AnythingOfType("domain.ConversionRecord")).
		Return(nil).Once()

	record, err := suite.service.Convert(ctx, dto.CreateConversionRequest{
		Amount:         decimal.RequireFromString("10.999"),
		BaseCurrency:   "BHD",
		TargetCurrency: "USD",
	})

	suite.Require().NoError(err)
	suite.True(record.OutputAmount.Equal(decimal.RequireFromString("29.03")), "expected 29.03, got %s", record.OutputAmount)
}

func (suite *ConversionServiceTestSuite) TestConvert_RateUnavailable() {
	ctx := context.Background()

	suite.mockRateSvc.On("ResolveRate", ctx, domain.CurrencyCode("USD"), domain.CurrencyCode("NGN")).
		Return(nil, fmt.Errorf("%w: no stored rate for EUR/NGN", apperrors.ErrRateUnavailable)).Once()

	record, err := suite.service.Convert(ctx, dto.CreateConversionRequest{
		Amount:         decimal.NewFromInt(100),
		BaseCurrency:   "USD",
		TargetCurrency: "NGN",
	})

	suite.Require().Error(err)
	suite.Nil(record)
	suite.ErrorIs(err, apperrors.ErrRateUnavailable)
	suite.mockConversionRepo.AssertNotCalled(suite.T(), "SaveConversionRecord")
}

func (suite *ConversionServiceTestSuite) TestConvert_AuditWriteFailure() {
	ctx := context.Background()
	resolved := suite.resolvedRate("USD", "NGN", decimal.NewFromInt(1500))

	suite.mockRateSvc.On("ResolveRate", ctx, domain.CurrencyCode("USD"), domain.CurrencyCode("NGN")).
		Return(resolved, nil).Once()
	suite.mockConversionRepo.On("SaveConversionRecord", ctx, mock.AnythingOfType("domain.ConversionRecord")).
		Return(errors.New("connection reset")).Once()

	record, err := suite.service.Convert(ctx, dto.CreateConversionRequest{
		Amount:         decimal.NewFromInt(100),
		BaseCurrency:   "USD",
		TargetCurrency: "NGN",
	})

	suite.Require().Error(err)
	suite.Nil(record)
	suite.ErrorIs(err, apperrors.ErrAuditWriteFailed)
	suite.Contains(err.Error(), "connection reset")
}

func (suite *ConversionServiceTestSuite) TestConvert_GeneratesDistinctIDs() {
	ctx := context.Background()
	resolved := suite.resolvedRate("USD", "NGN", decimal.NewFromInt(1500))

	suite.mockRateSvc.On("ResolveRate", ctx, domain.CurrencyCode("USD"), domain.CurrencyCode("NGN")).
		Return(resolved, nil).Times(2)
	suite.mockConversionRepo.On("SaveConversionRecord", ctx, mock.AnythingOfType("domain.ConversionRecord")).
		Return(nil).Times(2)

	req := dto.CreateConversionRequest{
		Amount:         decimal.NewFromInt(100),
		BaseCurrency:   "USD",
		TargetCurrency: "NGN",
	}

	first, err := suite.service.Convert(ctx, req)
	suite.Require().NoError(err)
	second, err := suite.service.Convert(ctx, req)
	suite.Require().NoError(err)

	suite.NotEqual(first.ConversionID, second.ConversionID)
}

func (suite *ConversionServiceTestSuite) TestGetConversionByID_ResolvesSnapshotRefs() {
	ctx := context.Background()
	expected := &domain.ConversionRecord{
		ConversionID:    "conv-1",
		BaseCurrency:    "USD",
		TargetCurrency:  "NGN",
		BaseSnapshotID:  "snap-usd",
		QuoteSnapshotID: "snap-ngn",
	}
	storedSnapshots := []domain.RateSnapshot{
		{SnapshotID: "snap-usd", PivotCurrency: "EUR", QuoteCurrency: "USD", Rate: decimal.RequireFromString("1.1705")},
		{SnapshotID: "snap-ngn", PivotCurrency: "EUR", QuoteCurrency: "NGN", Rate: decimal.RequireFromString("1823.20872274")},
	}

	suite.mockConversionRepo.On("FindConversionRecordByID", ctx, "conv-1").Return(expected, nil).Once()
	suite.mockSnapshotRepo.On("FindSnapshotsByIDs", ctx, []string{"snap-usd", "snap-ngn"}).
		Return(storedSnapshots, nil).Once()

	record, snapshots, err := suite.service.GetConversionByID(ctx, "conv-1")

	suite.Require().NoError(err)
	suite.Equal(expected, record)
	suite.Equal(storedSnapshots, snapshots)
	suite.mockConversionRepo.AssertExpectations(suite.T())
	suite.mockSnapshotRepo.AssertExpectations(suite.T())
}

func (suite *ConversionServiceTestSuite) TestGetConversionByID_IdentityConversionHasNoRefs() {
	ctx := context.Background()
	expected := &domain.ConversionRecord{ConversionID: "conv-2", BaseCurrency: "USD", TargetCurrency: "USD"}

	suite.mockConversionRepo.On("FindConversionRecordByID", ctx, "conv-2").Return(expected, nil).Once()

	record, snapshots, err := suite.service.GetConversionByID(ctx, "conv-2")

	suite.Require().NoError(err)
	suite.Equal(expected, record)
	suite.NotNil(snapshots)
	suite.Empty(snapshots)
	suite.mockSnapshotRepo.AssertNotCalled(suite.T(), "FindSnapshotsByIDs")
}

func (suite *ConversionServiceTestSuite) TestGetConversionByID_MissingSnapshotIsIntegrityFault() {
	ctx := context.Background()
	expected := &domain.ConversionRecord{
		ConversionID:    "conv-3",
		BaseCurrency:    "USD",
		TargetCurrency:  "NGN",
		BaseSnapshotID:  "snap-usd",
		QuoteSnapshotID: "snap-gone",
	}

	suite.mockConversionRepo.On("FindConversionRecordByID", ctx, "conv-3").Return(expected, nil).Once()
	suite.mockSnapshotRepo.On("FindSnapshotsByIDs", ctx, []string{"snap-usd", "snap-gone"}).
		Return([]domain.RateSnapshot{{SnapshotID: "snap-usd"}}, nil).Once()

	record, snapshots, err := suite.service.GetConversionByID(ctx, "conv-3")

	suite.Require().Error(err)
	suite.Nil(record)
	suite.Nil(snapshots)
	suite.ErrorIs(err, apperrors.ErrDataIntegrity)
}

func (suite *ConversionServiceTestSuite) TestGetConversionByID_NotFound() {
	ctx := context.Background()

	suite.mockConversionRepo.On("FindConversionRecordByID", ctx, "missing").
		Return(nil, apperrors.NewNotFoundError("conversion record missing not found")).Once()

	record, snapshots, err := suite.service.GetConversionByID(ctx, "missing")

	suite.Require().Error(err)
	suite.Nil(record)
	suite.Nil(snapshots)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockSnapshotRepo.AssertNotCalled(suite.T(), "FindSnapshotsByIDs")
}

func (suite *ConversionServiceTestSuite) TestListConversions_ClampsPagination() {
	ctx := context.Background()

	suite.mockConversionRepo.On("ListConversionRecords", ctx, 1, 20).
		Return([]domain.ConversionRecord{}, 0, nil).Once()
	suite.mockConversionRepo.On("ListConversionRecords", ctx, 2, 100).
		Return([]domain.ConversionRecord{}, 0, nil).Once()

	_, _, err := suite.service.ListConversions(ctx, 0, 0)
	suite.Require().NoError(err)

	_, _, err = suite.service.ListConversions(ctx, 2, 1000)
	suite.Require().NoError(err)

	suite.mockConversionRepo.AssertExpectations(suite.T())
}

func (suite *ConversionServiceTestSuite) TestListConversions_NilBecomesEmpty() {
	ctx := context.Background()

	suite.mockConversionRepo.On("ListConversionRecords", ctx, 1, 20).
		Return(nil, 0, nil).Once()

	records, total, err := suite.service.ListConversions(ctx, 1, 20)

	suite.Require().NoError(err)
	suite.NotNil(records)
	suite.Empty(records)
	suite.Zero(total)
}

func (suite *ConversionServiceTestSuite) TestListConversions_RepoError() {
	ctx := context.Background()

	suite.mockConversionRepo.On("ListConversionRecords", ctx, 1, 20).
		Return(nil, 0, errors.New("db down")).Once()

	records, total, err := suite.service.ListConversions(ctx, 1, 20)

	suite.Require().Error(err)
	suite.Nil(records)
	suite.Zero(total)
	suite.Contains(err.Error(), "failed to list conversions")
}

func TestNewConversionService(t *testing.T) {
	service := services.NewConversionService(
		decimal.RequireFromString("0.005"),
		new(MockRateReaderSvc),
		new(MockConversionRecordRepository),
		new(MockRateSnapshotRepository),
		newTestMetrics(),
	)

	assert.NotNil(t, service)

	var _ portssvc.ConversionSvcFacade = service
}

// --- Run Suite ---
func TestConversionService(t *testing.T) {
	suite.Run(t, new(ConversionServiceTestSuite))
}
