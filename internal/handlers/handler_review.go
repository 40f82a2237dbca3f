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

// reviewHandler handles HTTP requests for the review queue.
type reviewHandler struct {
	reviewService portssvc.ReviewQueueSvcFacade
}

func newReviewHandler(rs portssvc.ReviewQueueSvcFacade) *reviewHandler {
	return &reviewHandler{reviewService: rs}
}

// registerReviewRoutes registers routes related to the review queue.
func registerReviewRoutes(rg *gin.RouterGroup, reviewService portssvc.ReviewQueueSvcFacade) {
	h := newReviewHandler(reviewService)

	review := rg.Group("/review")
	{
		review.GET("", h.listReviewQueue)
		review.POST("/:id/mark-reviewed", h.markReviewed)
	}
}

// listReviewQueue godoc
// @Summary Review queue
// @Description Returns invoices flagged for review within the range, costliest first by default.
// @Tags review
// @Produce json
// @Param range query string false "Date range" Enums(month, last_month, year, all, custom) default(month)
// @Param from query string false "Custom range start (YYYY-MM-DD)"
// @Param to query string false "Custom range end (YYYY-MM-DD)"
// @Param sort query string false "Sort order" Enums(amount_desc, date_desc) default(amount_desc)
// @Success 200 {array} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /review [get]
func (h *reviewHandler) listReviewQueue(c *gin.Context) {
	var req dto.ReviewQueueRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + bindingErrorMessage(err)})
		return
	}

	invoices, err := h.reviewService.ListReviewQueue(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to list review queue", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list review queue"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListInvoiceResponse(invoices))
}

// markReviewed godoc
// @Summary Mark invoice reviewed
// @Description Clears the review flag without changing any field values.
// @Tags review
// @Produce json
// @Param id path int true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /review/{id}/mark-reviewed [post]
func (h *reviewHandler) markReviewed(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	invoice, err := h.reviewService.MarkReviewed(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Invoice not found"})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to mark invoice reviewed", slog.Int64("invoice_id", id), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to mark invoice reviewed"})
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}
