package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/poolcost/pool-cost-tracker/internal/apperrors"
	portssvc "github.com/poolcost/pool-cost-tracker/internal/core/ports/services"
	"github.com/poolcost/pool-cost-tracker/internal/dto"
	"github.com/poolcost/pool-cost-tracker/internal/middleware"
)

// syncHandler handles HTTP requests for sync execution and run history.
type syncHandler struct {
	syncService portssvc.SyncSvcFacade
}

func newSyncHandler(ss portssvc.SyncSvcFacade) *syncHandler {
	return &syncHandler{syncService: ss}
}

// RegisterSyncRoutes registers routes related to archive synchronization.
func RegisterSyncRoutes(rg *gin.RouterGroup, syncService portssvc.SyncSvcFacade) {
	h := newSyncHandler(syncService)

	sync := rg.Group("/sync")
	{
		sync.POST("", h.triggerSync)
		sync.GET("/runs", h.listSyncRuns)
		sync.GET("/runs/last", h.getLastSyncRun)
	}
}

// triggerSync godoc
// @Summary Trigger a sync run
// @Description Pulls tagged documents from the archive and reconciles them into the invoice ledger. Only one run executes at a time.
// @Tags sync
// @Produce json
// @Success 200 {object} dto.SyncRunResponse
// @Failure 409 {object} ErrorResponse "A sync run is already active"
// @Failure 502 {object} dto.SyncRunResponse "Archive unreachable; the failed run record is returned"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /sync [post]
func (h *syncHandler) triggerSync(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	run, err := h.syncService.RunSync(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrSyncInProgress):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "A sync run is already in progress"})
		case run != nil:
			// tag or transport failure, recorded as a failed run
			c.JSON(http.StatusBadGateway, dto.ToSyncRunResponse(run))
		default:
			logger.Error("Sync run failed without a run record", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Sync failed"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToSyncRunResponse(run))
}

// listSyncRuns godoc
// @Summary List sync runs
// @Description Returns recorded sync runs, newest first.
// @Tags sync
// @Produce json
// @Param limit query int false "Maximum runs to return" default(20) minimum(1) maximum(200)
// @Success 200 {array} dto.SyncRunResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /sync/runs [get]
func (h *syncHandler) listSyncRuns(c *gin.Context) {
	var req dto.ListSyncRunsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + bindingErrorMessage(err)})
		return
	}

	runs, err := h.syncService.ListSyncRuns(c.Request.Context(), req.Limit)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to list sync runs", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list sync runs"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListSyncRunResponse(runs))
}

// getLastSyncRun godoc
// @Summary Last sync run
// @Description Returns the most recent sync run.
// @Tags sync
// @Produce json
// @Success 200 {object} dto.SyncRunResponse
// @Failure 404 {object} ErrorResponse "No sync has run yet"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /sync/runs/last [get]
func (h *syncHandler) getLastSyncRun(c *gin.Context) {
	run, err := h.syncService.GetLastSyncRun(c.Request.Context())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "No sync has run yet"})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to get last sync run", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to get last sync run"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSyncRunResponse(run))
}
