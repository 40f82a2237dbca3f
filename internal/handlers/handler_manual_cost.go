package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/poolcost/pool-cost-tracker/internal/apperrors"
	portssvc "github.com/poolcost/pool-cost-tracker/internal/core/ports/services"
	"github.com/poolcost/pool-cost-tracker/internal/dto"
	"github.com/poolcost/pool-cost-tracker/internal/middleware"
	"github.com/poolcost/pool-cost-tracker/internal/models"
)

// manualCostHandler handles HTTP requests for manual cost entries.
type manualCostHandler struct {
	manualCostService portssvc.ManualCostSvcFacade
}

func newManualCostHandler(ms portssvc.ManualCostSvcFacade) *manualCostHandler {
	return &manualCostHandler{manualCostService: ms}
}

// registerManualCostRoutes registers routes related to manual costs.
func registerManualCostRoutes(rg *gin.RouterGroup, manualCostService portssvc.ManualCostSvcFacade) {
	h := newManualCostHandler(manualCostService)

	costs := rg.Group("/manual-costs")
	{
		costs.POST("", h.createManualCost)
		costs.GET("", h.listManualCosts)
		costs.GET("/:id", h.getManualCostByID)
		costs.PATCH("/:id", h.updateManualCost)
		costs.POST("/:id/archive", h.archiveManualCost)
		costs.POST("/:id/restore", h.restoreManualCost)
	}
}

// createManualCost godoc
// @Summary Create manual cost
// @Description Records a hand-entered cost line.
// @Tags manual-costs
// @Accept json
// @Produce json
// @Param cost body dto.CreateManualCostRequest true "Cost details"
// @Success 201 {object} dto.ManualCostResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /manual-costs [post]
func (h *manualCostHandler) createManualCost(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateManualCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateManualCost", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + bindingErrorMessage(err)})
		return
	}

	cost, err := h.manualCostService.CreateManualCost(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to create manual cost", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create manual cost"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToManualCostResponse(cost))
}

// listManualCosts godoc
// @Summary List manual costs
// @Description Returns manual cost entries newest first. Archived entries are excluded unless requested.
// @Tags manual-costs
// @Produce json
// @Param include_archived query bool false "Include archived entries"
// @Success 200 {array} dto.ManualCostResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /manual-costs [get]
func (h *manualCostHandler) listManualCosts(c *gin.Context) {
	var req dto.ListManualCostsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + bindingErrorMessage(err)})
		return
	}

	costs, err := h.manualCostService.ListManualCosts(c.Request.Context(), req)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to list manual costs", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list manual costs"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListManualCostResponse(costs))
}

// getManualCostByID godoc
// @Summary Get manual cost
// @Tags manual-costs
// @Produce json
// @Param id path int true "Manual cost ID"
// @Success 200 {object} dto.ManualCostResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /manual-costs/{id} [get]
func (h *manualCostHandler) getManualCostByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	cost, err := h.manualCostService.GetManualCostByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Manual cost not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to get manual cost"})
		return
	}

	c.JSON(http.StatusOK, dto.ToManualCostResponse(cost))
}

// updateManualCost godoc
// @Summary Edit manual cost
// @Tags manual-costs
// @Accept json
// @Produce json
// @Param id path int true "Manual cost ID"
// @Param cost body dto.UpdateManualCostRequest true "Fields to change"
// @Success 200 {object} dto.ManualCostResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /manual-costs/{id} [patch]
func (h *manualCostHandler) updateManualCost(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateManualCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateManualCost", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + bindingErrorMessage(err)})
		return
	}

	cost, err := h.manualCostService.UpdateManualCost(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Manual cost not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			logger.Error("Failed to update manual cost", slog.Int64("manual_cost_id", id), slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update manual cost"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToManualCostResponse(cost))
}

// archiveManualCost godoc
// @Summary Archive manual cost
// @Description Soft-deletes an entry; it disappears from listings and totals but can be restored.
// @Tags manual-costs
// @Produce json
// @Param id path int true "Manual cost ID"
// @Success 200 {object} dto.ManualCostResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /manual-costs/{id}/archive [post]
func (h *manualCostHandler) archiveManualCost(c *gin.Context) {
	h.toggleArchived(c, h.manualCostService.ArchiveManualCost, "Failed to archive manual cost")
}

// restoreManualCost godoc
// @Summary Restore manual cost
// @Description Reverses an archive.
// @Tags manual-costs
// @Produce json
// @Param id path int true "Manual cost ID"
// @Success 200 {object} dto.ManualCostResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /manual-costs/{id}/restore [post]
func (h *manualCostHandler) restoreManualCost(c *gin.Context) {
	h.toggleArchived(c, h.manualCostService.RestoreManualCost, "Failed to restore manual cost")
}

func (h *manualCostHandler) toggleArchived(c *gin.Context, op func(ctx context.Context, id int64) (*models.ManualCost, error), failMsg string) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	cost, err := op(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Manual cost not found"})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error(failMsg, slog.Int64("manual_cost_id", id), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: failMsg})
		return
	}

	c.JSON(http.StatusOK, dto.ToManualCostResponse(cost))
}
