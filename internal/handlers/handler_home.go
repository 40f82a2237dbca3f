package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/poolcost/pool-cost-tracker/internal/core/ports"
)

// homeHandler serves the health endpoints.
type homeHandler struct {
	archive ports.ArchiveClient
}

// registerHomeRoutes sets up the public health routes.
func registerHomeRoutes(r *gin.Engine, archive ports.ArchiveClient) {
	h := &homeHandler{archive: archive}

	r.GET("/health", h.health)
	r.GET("/health/paperless", h.paperlessHealth)
}

// health godoc
// @Summary Service health
// @Description Liveness check.
// @Tags health
// @Produce plain
// @Success 200 {string} string "OK"
// @Router /health [get]
func (h *homeHandler) health(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

// paperlessHealth godoc
// @Summary Archive reachability
// @Description Probes the configured Paperless instance and reports the round-trip time.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 502 {object} map[string]any
// @Router /health/paperless [get]
func (h *homeHandler) paperlessHealth(c *gin.Context) {
	rtt, err := h.archive.Probe(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"status": "unreachable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "round_trip_ms": rtt.Milliseconds()})
}
