package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/poolcost/pool-cost-tracker/internal/apperrors"
	portssvc "github.com/poolcost/pool-cost-tracker/internal/core/ports/services"
	"github.com/poolcost/pool-cost-tracker/internal/dto"
	"github.com/poolcost/pool-cost-tracker/internal/middleware"
	"github.com/poolcost/pool-cost-tracker/internal/models"
)

// reportingHandler handles HTTP requests for summaries and exports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers routes related to reporting.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	rg.GET("/summary", h.getSummary)
	rg.GET("/export/csv", h.exportCSV)
}

// getSummary godoc
// @Summary Cost summary
// @Description Returns totals, counts, top vendors and category totals for the range.
// @Tags reporting
// @Produce json
// @Param range query string false "Date range" Enums(month, last_month, year, all, custom) default(month)
// @Param from query string false "Custom range start (YYYY-MM-DD)"
// @Param to query string false "Custom range end (YYYY-MM-DD)"
// @Success 200 {object} dto.SummaryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /summary [get]
func (h *reportingHandler) getSummary(c *gin.Context) {
	var req dto.DateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + bindingErrorMessage(err)})
		return
	}

	summary, err := h.reportingService.GetSummary(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to compute summary", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to compute summary"})
		return
	}

	c.JSON(http.StatusOK, dto.ToSummaryResponse(summary))
}

var csvHeader = []string{
	"date", "source", "vendor", "amount", "currency", "title",
	"category", "note", "paperless_doc_id", "confidence", "needs_review",
}

// exportCSV godoc
// @Summary Export costs as CSV
// @Description Streams every invoice and active manual cost in the range as CSV.
// @Tags reporting
// @Produce text/csv
// @Param range query string false "Date range" Enums(month, last_month, year, all, custom) default(month)
// @Param from query string false "Custom range start (YYYY-MM-DD)"
// @Param to query string false "Custom range end (YYYY-MM-DD)"
// @Success 200 {string} string "CSV data"
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /export/csv [get]
func (h *reportingHandler) exportCSV(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.DateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + bindingErrorMessage(err)})
		return
	}

	rows, err := h.reportingService.ExportRows(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		logger.Error("Failed to export cost rows", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to export costs"})
		return
	}

	filename := fmt.Sprintf("costs-%s.csv", time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	if err := w.Write(csvHeader); err != nil {
		logger.Error("Failed to write CSV header", slog.String("error", err.Error()))
		return
	}
	for _, row := range rows {
		if err := w.Write(costRowRecord(row)); err != nil {
			logger.Error("Failed to write CSV row", slog.String("error", err.Error()))
			return
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		logger.Error("Failed to flush CSV output", slog.String("error", err.Error()))
	}
}

func costRowRecord(row models.CostRow) []string {
	str := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	amount := ""
	if row.Amount != nil {
		amount = row.Amount.StringFixed(2)
	}
	docID := ""
	if row.PaperlessDocID != nil {
		docID = strconv.FormatInt(*row.PaperlessDocID, 10)
	}
	confidence := ""
	if row.Confidence != nil {
		confidence = strconv.FormatFloat(*row.Confidence, 'f', 2, 64)
	}
	needsReview := ""
	if row.NeedsReview != nil {
		needsReview = strconv.FormatBool(*row.NeedsReview)
	}
	return []string{
		str(row.Date), row.Source, str(row.Vendor), amount, str(row.Currency),
		str(row.Title), str(row.Category), str(row.Note), docID, confidence, needsReview,
	}
}
