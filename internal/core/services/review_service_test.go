package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/poolcost/pool-cost-tracker/internal/apperrors"
	portsrepo "github.com/poolcost/pool-cost-tracker/internal/core/ports/repositories"
	"github.com/poolcost/pool-cost-tracker/internal/core/services"
	"github.com/poolcost/pool-cost-tracker/internal/dto"
	"github.com/poolcost/pool-cost-tracker/internal/models"
)

type ReviewServiceTestSuite struct {
	suite.Suite
	mockRepo *MockInvoiceRepository
	service  *services.ReviewService
}

func (suite *ReviewServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockInvoiceRepository)
	suite.service = services.NewReviewService(suite.mockRepo)
}

func (suite *ReviewServiceTestSuite) TestListReviewQueue_DefaultsToAmountSort() {
	ctx := context.Background()
	suite.mockRepo.On("ListInvoices", ctx, mock.MatchedBy(func(filter portsrepo.InvoiceListFilter) bool {
		return filter.NeedsReview != nil && *filter.NeedsReview &&
			filter.Sort == portsrepo.InvoiceSortAmountDesc &&
			filter.Start == nil && filter.End == nil
	})).Return([]models.Invoice{}, nil).Once()

	_, err := suite.service.ListReviewQueue(ctx, dto.ReviewQueueRequest{
		DateRangeRequest: dto.DateRangeRequest{Range: "all"},
	})

	suite.NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReviewServiceTestSuite) TestListReviewQueue_CustomRangeBoundsQuery() {
	ctx := context.Background()
	suite.mockRepo.On("ListInvoices", ctx, mock.MatchedBy(func(filter portsrepo.InvoiceListFilter) bool {
		return filter.Start != nil && filter.End != nil && filter.Sort == portsrepo.InvoiceSortDateDesc
	})).Return([]models.Invoice{}, nil).Once()

	_, err := suite.service.ListReviewQueue(ctx, dto.ReviewQueueRequest{
		DateRangeRequest: dto.DateRangeRequest{Range: "custom", From: "2026-01-01", To: "2026-03-31"},
		Sort:             "date_desc",
	})

	suite.NoError(err)
}

func (suite *ReviewServiceTestSuite) TestListReviewQueue_InvalidRange() {
	ctx := context.Background()

	_, err := suite.service.ListReviewQueue(ctx, dto.ReviewQueueRequest{
		DateRangeRequest: dto.DateRangeRequest{Range: "custom"},
	})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListInvoices", mock.Anything, mock.Anything)
}

func (suite *ReviewServiceTestSuite) TestMarkReviewed_ClearsFlagOnly() {
	ctx := context.Background()
	vendor := "Acme Services GmbH"
	stored := &models.Invoice{
		ID:           42,
		Vendor:       &vendor,
		VendorSource: models.SourceAuto,
		Confidence:   0.3,
		NeedsReview:  true,
	}

	suite.mockRepo.On("FindInvoiceByID", ctx, int64(42)).Return(stored, nil).Once()
	var saved *models.Invoice
	suite.mockRepo.On("UpdateInvoice", ctx, mock.AnythingOfType("*models.Invoice")).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*models.Invoice)
	}).Return(nil).Once()

	reviewed, err := suite.service.MarkReviewed(ctx, 42)

	suite.Require().NoError(err)
	suite.False(reviewed.NeedsReview)
	suite.Equal(vendor, *reviewed.Vendor)
	suite.Equal(models.SourceAuto, reviewed.VendorSource)
	suite.InDelta(0.3, reviewed.Confidence, 0.0001)
	suite.Require().NotNil(saved)
	suite.False(saved.NeedsReview)
}

func (suite *ReviewServiceTestSuite) TestMarkReviewed_AlreadyClearIsNoOp() {
	ctx := context.Background()
	stored := &models.Invoice{ID: 42, NeedsReview: false}

	suite.mockRepo.On("FindInvoiceByID", ctx, int64(42)).Return(stored, nil).Once()

	reviewed, err := suite.service.MarkReviewed(ctx, 42)

	suite.Require().NoError(err)
	suite.False(reviewed.NeedsReview)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateInvoice", mock.Anything, mock.Anything)
}

func (suite *ReviewServiceTestSuite) TestMarkReviewed_NotFound() {
	ctx := context.Background()
	suite.mockRepo.On("FindInvoiceByID", ctx, int64(9)).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.MarkReviewed(ctx, 9)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestReviewServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReviewServiceTestSuite))
}
