package httpapi

import (
	"net/http"

	"cadence-platform/internal/cadence"

	"github.com/gin-gonic/gin"
)

// --- Cadence rules ---

// GetRules returns the active rule configuration. When no row was ever
// saved the defaults come back with persisted=false so the form can tell.
func (h Handlers) GetRules(c *gin.Context) {
	cfg, persisted, err := h.Cadence.ActiveRules(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"config": cfg, "persistido": persisted})
}

// PutRules upserts the single active configuration. Last write wins; there
// is no version check between concurrent editors.
func (h Handlers) PutRules(c *gin.Context) {
	var req cadence.RuleConfig
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	out, err := h.Cadence.SaveRules(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// ApproachesToday reports today's new-approach counter against the daily
// limit, for the dashboard gauge.
func (h Handlers) ApproachesToday(c *gin.Context) {
	used, limit, err := h.Cadence.ApproachesToday(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"usadas": used, "limite": limit})
}
