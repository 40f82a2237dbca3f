package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/poolcost/pool-cost-tracker/internal/apperrors"
	portsrepo "github.com/poolcost/pool-cost-tracker/internal/core/ports/repositories"
	"github.com/poolcost/pool-cost-tracker/internal/core/services"
	"github.com/poolcost/pool-cost-tracker/internal/dto"
	"github.com/poolcost/pool-cost-tracker/internal/models"
)

type InvoiceServiceTestSuite struct {
	suite.Suite
	mockRepo *MockInvoiceRepository
	service  *services.InvoiceService
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockInvoiceRepository)
	suite.service = services.NewInvoiceService(suite.mockRepo, "EUR", 0.60)
}

// autoExtractedInvoice is an invoice as the sync pass would have stored it
// for goodInvoiceText: both fields automatic, high confidence.
func autoExtractedInvoice() *models.Invoice {
	vendor := "Acme Services GmbH"
	amount := decimal.RequireFromString("1234.56")
	return &models.Invoice{
		ID:             42,
		Source:         models.CostSourcePaperless,
		PaperlessDocID: 100,
		Vendor:         &vendor,
		VendorAuto:     &vendor,
		VendorSource:   models.SourceAuto,
		Amount:         &amount,
		AmountAuto:     &amount,
		AmountSource:   models.SourceAuto,
		Currency:       "EUR",
		Confidence:     0.90,
		NeedsReview:    false,
		OCRText:        goodInvoiceText,
	}
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_VendorOverrideBecomesManual() {
	ctx := context.Background()
	stored := autoExtractedInvoice()
	newVendor := "Acme Services GmbH & Co. KG"

	suite.mockRepo.On("FindInvoiceByID", ctx, int64(42)).Return(stored, nil).Once()
	var saved *models.Invoice
	suite.mockRepo.On("UpdateInvoice", ctx, mock.AnythingOfType("*models.Invoice")).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*models.Invoice)
	}).Return(nil).Once()

	updated, err := suite.service.UpdateInvoice(ctx, 42, dto.UpdateInvoiceRequest{Vendor: &newVendor})

	suite.Require().NoError(err)
	suite.Equal(newVendor, *updated.Vendor)
	suite.Equal(models.SourceManual, updated.VendorSource)
	suite.Equal("Acme Services GmbH", *updated.VendorAuto)
	suite.Equal(models.SourceAuto, updated.AmountSource)
	// manual vendor counts as fully trusted; the amount keeps its signal
	suite.InDelta(0.945, updated.Confidence, 0.0001)
	suite.False(updated.NeedsReview)
	suite.Require().NotNil(saved)
	suite.Equal(models.SourceManual, saved.VendorSource)
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_ValueEqualToAutoStaysAuto() {
	ctx := context.Background()
	stored := autoExtractedInvoice()
	sameAmount := decimal.RequireFromString("1234.56")

	suite.mockRepo.On("FindInvoiceByID", ctx, int64(42)).Return(stored, nil).Once()
	suite.mockRepo.On("UpdateInvoice", ctx, mock.AnythingOfType("*models.Invoice")).Return(nil).Once()

	updated, err := suite.service.UpdateInvoice(ctx, 42, dto.UpdateInvoiceRequest{Amount: &sameAmount})

	suite.Require().NoError(err)
	suite.Equal(models.SourceAuto, updated.AmountSource)
	suite.InDelta(0.90, updated.Confidence, 0.0001)
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_ResetVendorRevertsToAuto() {
	ctx := context.Background()
	stored := autoExtractedInvoice()
	manual := "Handwerker Schulz"
	stored.Vendor = &manual
	stored.VendorSource = models.SourceManual

	suite.mockRepo.On("FindInvoiceByID", ctx, int64(42)).Return(stored, nil).Once()
	suite.mockRepo.On("UpdateInvoice", ctx, mock.AnythingOfType("*models.Invoice")).Return(nil).Once()

	updated, err := suite.service.UpdateInvoice(ctx, 42, dto.UpdateInvoiceRequest{ResetVendor: true})

	suite.Require().NoError(err)
	suite.Equal("Acme Services GmbH", *updated.Vendor)
	suite.Equal(models.SourceAuto, updated.VendorSource)
	suite.InDelta(0.90, updated.Confidence, 0.0001)
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_RejectsNonPositiveAmount() {
	ctx := context.Background()
	zero := decimal.Zero

	_, err := suite.service.UpdateInvoice(ctx, 42, dto.UpdateInvoiceRequest{Amount: &zero})

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindInvoiceByID", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_RejectsSetAndResetTogether() {
	ctx := context.Background()
	vendor := "Some Vendor"

	_, err := suite.service.UpdateInvoice(ctx, 42, dto.UpdateInvoiceRequest{Vendor: &vendor, ResetVendor: true})

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_NotFound() {
	ctx := context.Background()
	suite.mockRepo.On("FindInvoiceByID", ctx, int64(9)).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.UpdateInvoice(ctx, 9, dto.UpdateInvoiceRequest{})

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_ExplicitNeedsReviewWins() {
	ctx := context.Background()
	stored := autoExtractedInvoice()
	flag := true

	suite.mockRepo.On("FindInvoiceByID", ctx, int64(42)).Return(stored, nil).Once()
	suite.mockRepo.On("UpdateInvoice", ctx, mock.AnythingOfType("*models.Invoice")).Return(nil).Once()

	updated, err := suite.service.UpdateInvoice(ctx, 42, dto.UpdateInvoiceRequest{NeedsReview: &flag})

	suite.Require().NoError(err)
	suite.True(updated.NeedsReview)
}

func (suite *InvoiceServiceTestSuite) TestListInvoices_PassesFilter() {
	ctx := context.Background()
	needsReview := true
	suite.mockRepo.On("ListInvoices", ctx, mock.MatchedBy(func(filter portsrepo.InvoiceListFilter) bool {
		return filter.NeedsReview != nil && *filter.NeedsReview &&
			filter.Search == "acme" && filter.Sort == portsrepo.InvoiceSortAmountDesc
	})).Return([]models.Invoice{}, nil).Once()

	_, err := suite.service.ListInvoices(ctx, dto.ListInvoicesRequest{NeedsReview: &needsReview, Search: " acme ", Sort: "amount_desc"})

	suite.NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestInvoiceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
