package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/poolcost/pool-cost-tracker/internal/apperrors"
	portssvc "github.com/poolcost/pool-cost-tracker/internal/core/ports/services"
	"github.com/poolcost/pool-cost-tracker/internal/dto"
	"github.com/poolcost/pool-cost-tracker/internal/handlers"
	"github.com/poolcost/pool-cost-tracker/internal/middleware"
	"github.com/poolcost/pool-cost-tracker/internal/models"
	"github.com/poolcost/pool-cost-tracker/internal/utils"
)

// --- Mock SyncService ---
type MockSyncService struct {
	mock.Mock
}

func (m *MockSyncService) RunSync(ctx context.Context) (*models.SyncRun, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SyncRun), args.Error(1)
}

func (m *MockSyncService) ListSyncRuns(ctx context.Context, limit int) ([]models.SyncRun, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SyncRun), args.Error(1)
}

func (m *MockSyncService) GetLastSyncRun(ctx context.Context) (*models.SyncRun, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SyncRun), args.Error(1)
}

var _ portssvc.SyncSvcFacade = (*MockSyncService)(nil)

// --- Test Suite ---
type SyncHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockSyncService *MockSyncService
	jwtSecret       string
}

func (suite *SyncHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockSyncService = new(MockSyncService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterSyncRoutes(v1, suite.mockSyncService)
}

func (suite *SyncHandlerTestSuite) authorizedRequest(method, url string) *http.Request {
	token, err := utils.GenerateJWT("admin", suite.jwtSecret, time.Hour, "poolcost-test")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	req, _ := http.NewRequest(method, url, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	return req
}

func completedRun() *models.SyncRun {
	started := time.Date(2026, 8, 30, 6, 0, 0, 0, time.UTC)
	return &models.SyncRun{
		ID:              7,
		Status:          models.SyncRunCompleted,
		StartedAt:       started,
		FinishedAt:      started.Add(3 * time.Second),
		DurationMS:      3000,
		CheckedDocs:     12,
		NewInvoices:     2,
		UpdatedInvoices: 1,
		SkippedInvoices: 9,
	}
}

// --- Test Cases ---

func (suite *SyncHandlerTestSuite) TestTriggerSync_Success() {
	suite.mockSyncService.On("RunSync", mock.Anything).Return(completedRun(), nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authorizedRequest(http.MethodPost, "/api/v1/sync"))

	suite.Equal(http.StatusOK, w.Code)

	var body dto.SyncRunResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("completed", body.Status)
	suite.Equal(2, body.NewInvoices)
	suite.Equal(9, body.SkippedInvoices)
	suite.Equal(0, body.Errors.Count)

	suite.mockSyncService.AssertExpectations(suite.T())
}

func (suite *SyncHandlerTestSuite) TestTriggerSync_ConflictWhenRunning() {
	suite.mockSyncService.On("RunSync", mock.Anything).
		Return(nil, apperrors.ErrSyncInProgress).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authorizedRequest(http.MethodPost, "/api/v1/sync"))

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockSyncService.AssertExpectations(suite.T())
}

func (suite *SyncHandlerTestSuite) TestTriggerSync_BadGatewayCarriesFailedRun() {
	msg := "archive request failed: connection refused"
	failed := completedRun()
	failed.Status = models.SyncRunFailed
	failed.NewInvoices = 0
	failed.UpdatedInvoices = 0
	failed.SkippedInvoices = 0
	failed.ErrorCount = 1
	failed.FirstErrorText = &msg

	suite.mockSyncService.On("RunSync", mock.Anything).
		Return(failed, apperrors.ErrTransport).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authorizedRequest(http.MethodPost, "/api/v1/sync"))

	suite.Equal(http.StatusBadGateway, w.Code)

	var body dto.SyncRunResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("failed", body.Status)
	suite.Equal(1, body.Errors.Count)
	if suite.NotNil(body.Errors.FirstError) {
		suite.Equal(msg, *body.Errors.FirstError)
	}

	suite.mockSyncService.AssertExpectations(suite.T())
}

func (suite *SyncHandlerTestSuite) TestTriggerSync_RequiresToken() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/sync", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockSyncService.AssertNotCalled(suite.T(), "RunSync")
}

func (suite *SyncHandlerTestSuite) TestListSyncRuns_PassesLimit() {
	runs := []models.SyncRun{*completedRun()}
	suite.mockSyncService.On("ListSyncRuns", mock.Anything, 5).Return(runs, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authorizedRequest(http.MethodGet, "/api/v1/sync/runs?limit=5"))

	suite.Equal(http.StatusOK, w.Code)

	var body []dto.SyncRunResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Len(body, 1)

	suite.mockSyncService.AssertExpectations(suite.T())
}

func (suite *SyncHandlerTestSuite) TestListSyncRuns_RejectsOutOfRangeLimit() {
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authorizedRequest(http.MethodGet, "/api/v1/sync/runs?limit=9999"))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockSyncService.AssertNotCalled(suite.T(), "ListSyncRuns")
}

func (suite *SyncHandlerTestSuite) TestGetLastSyncRun_NotFound() {
	suite.mockSyncService.On("GetLastSyncRun", mock.Anything).
		Return(nil, apperrors.ErrNotFound).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authorizedRequest(http.MethodGet, "/api/v1/sync/runs/last"))

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockSyncService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestSyncHandler(t *testing.T) {
	suite.Run(t, new(SyncHandlerTestSuite))
}
