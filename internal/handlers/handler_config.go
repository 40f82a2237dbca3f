package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/poolcost/pool-cost-tracker/internal/dto"
	"github.com/poolcost/pool-cost-tracker/internal/platform/config"
)

// configHandler echoes the non-secret deployment configuration.
type configHandler struct {
	cfg *config.Config
}

// registerConfigRoutes registers the configuration echo route.
func registerConfigRoutes(rg *gin.RouterGroup, cfg *config.Config) {
	h := &configHandler{cfg: cfg}

	rg.GET("/config", h.getConfig)
}

// getConfig godoc
// @Summary Deployment configuration
// @Description Returns the non-secret configuration the frontend needs. Tokens and credentials are never included.
// @Tags config
// @Produce json
// @Success 200 {object} dto.ConfigResponse
// @Security BearerAuth
// @Router /config [get]
func (h *configHandler) getConfig(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ConfigResponse{
		PaperlessBaseURL:         h.cfg.PaperlessBaseURL,
		ProjectName:              h.cfg.ProjectName,
		ProjectTagName:           h.cfg.ProjectTagName,
		DefaultCurrency:          h.cfg.DefaultCurrency,
		ReviewThreshold:          h.cfg.ReviewThreshold,
		SchedulerEnabled:         h.cfg.SchedulerEnabled,
		SchedulerIntervalMinutes: int(h.cfg.SchedulerInterval.Minutes()),
		SchedulerRunOnStartup:    h.cfg.SchedulerRunOnStartup,
	})
}
