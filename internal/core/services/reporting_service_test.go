package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/poolcost/pool-cost-tracker/internal/apperrors"
	"github.com/poolcost/pool-cost-tracker/internal/core/services"
	"github.com/poolcost/pool-cost-tracker/internal/dto"
	"github.com/poolcost/pool-cost-tracker/internal/models"
)

// MockReportingRepository is a mock type for the ReportingRepository interface
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) GetCostTotals(ctx context.Context, start, end *time.Time) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockReportingRepository) GetLedgerCounts(ctx context.Context) (int, int, int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Int(1), args.Int(2), args.Error(3)
}

func (m *MockReportingRepository) GetTopVendors(ctx context.Context, start, end *time.Time, limit int) ([]models.VendorTotal, error) {
	args := m.Called(ctx, start, end, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.VendorTotal), args.Error(1)
}

func (m *MockReportingRepository) GetCategoryTotals(ctx context.Context, start, end *time.Time) ([]models.CategoryTotal, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CategoryTotal), args.Error(1)
}

func (m *MockReportingRepository) GetAllCostRows(ctx context.Context, start, end *time.Time) ([]models.CostRow, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CostRow), args.Error(1)
}

type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo *MockReportingRepository
	service  *services.ReportingService
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReportingRepository)
	suite.service = services.NewReportingService(suite.mockRepo)
}

func (suite *ReportingServiceTestSuite) TestGetSummary_CombinesLedgerSources() {
	ctx := context.Background()
	paperless := decimal.RequireFromString("1500.50")
	manual := decimal.RequireFromString("249.50")

	suite.mockRepo.On("GetCostTotals", ctx, mock.Anything, mock.Anything).Return(paperless, manual, nil).Once()
	suite.mockRepo.On("GetLedgerCounts", ctx).Return(12, 4, 3, nil).Once()
	suite.mockRepo.On("GetTopVendors", ctx, mock.Anything, mock.Anything, 10).Return([]models.VendorTotal{
		{Name: "Acme Services GmbH", Amount: decimal.RequireFromString("900")},
	}, nil).Once()
	suite.mockRepo.On("GetCategoryTotals", ctx, mock.Anything, mock.Anything).Return([]models.CategoryTotal{
		{Category: "chemicals", Amount: manual},
	}, nil).Once()

	summary, err := suite.service.GetSummary(ctx, dto.DateRangeRequest{Range: "all"})

	suite.Require().NoError(err)
	suite.True(summary.TotalAmount.Equal(decimal.RequireFromString("1750.00")))
	suite.True(summary.PaperlessTotal.Equal(paperless))
	suite.True(summary.ManualTotal.Equal(manual))
	suite.Equal(12, summary.InvoiceCount)
	suite.Equal(4, summary.ManualCostCount)
	suite.Equal(3, summary.NeedsReviewCount)
	suite.Len(summary.TopVendors, 1)
	suite.Len(summary.CostsByCategory, 1)
}

func (suite *ReportingServiceTestSuite) TestGetSummary_MonthRangeBoundsQueries() {
	ctx := context.Background()

	suite.mockRepo.On("GetCostTotals", ctx, mock.MatchedBy(func(start *time.Time) bool {
		return start != nil && start.Day() == 1
	}), mock.MatchedBy(func(end *time.Time) bool {
		return end != nil
	})).Return(decimal.Zero, decimal.Zero, nil).Once()
	suite.mockRepo.On("GetLedgerCounts", ctx).Return(0, 0, 0, nil).Once()
	suite.mockRepo.On("GetTopVendors", ctx, mock.Anything, mock.Anything, 10).Return([]models.VendorTotal{}, nil).Once()
	suite.mockRepo.On("GetCategoryTotals", ctx, mock.Anything, mock.Anything).Return([]models.CategoryTotal{}, nil).Once()

	_, err := suite.service.GetSummary(ctx, dto.DateRangeRequest{Range: "month"})

	suite.NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestGetSummary_InvalidRange() {
	ctx := context.Background()

	_, err := suite.service.GetSummary(ctx, dto.DateRangeRequest{Range: "custom", From: "2026-01-01"})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "GetCostTotals", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestExportRows_PassesRange() {
	ctx := context.Background()
	source := "manual"
	suite.mockRepo.On("GetAllCostRows", ctx, (*time.Time)(nil), (*time.Time)(nil)).Return([]models.CostRow{
		{Source: source},
	}, nil).Once()

	rows, err := suite.service.ExportRows(ctx, dto.DateRangeRequest{Range: "all"})

	suite.Require().NoError(err)
	suite.Len(rows, 1)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
