package httpapi

import (
	"net/http"
	"time"

	"cadence-platform/internal/analytics"
	"cadence-platform/internal/tracking"

	"github.com/gin-gonic/gin"
)

// --- Analytics ---

// parseRange reads from/to query parameters (RFC 3339). Absent values fall
// back to the trailing 30 days, matching the dashboard default.
func parseRange(c *gin.Context) (analytics.TimeRange, bool) {
	now := time.Now().UTC()
	rng := analytics.TimeRange{From: now.AddDate(0, 0, -30), To: now}
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid from"})
			return rng, false
		}
		rng.From = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid to"})
			return rng, false
		}
		rng.To = t
	}
	return rng, true
}

func (h Handlers) Funnel(c *gin.Context) {
	out, err := h.Analytics.Funnel(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h Handlers) ChannelPerformance(c *gin.Context) {
	rng, ok := parseRange(c)
	if !ok {
		return
	}
	out, err := h.Analytics.ChannelPerformance(c.Request.Context(), rng)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h Handlers) TemplatePerformance(c *gin.Context) {
	rng, ok := parseRange(c)
	if !ok {
		return
	}
	out, err := h.Analytics.TemplatePerformance(c.Request.Context(), rng)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": out})
}

func (h Handlers) AppointmentDistribution(c *gin.Context) {
	out, err := h.Analytics.AppointmentDistribution(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h Handlers) FollowUpDistribution(c *gin.Context) {
	out, err := h.Analytics.FollowUpDistribution(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h Handlers) ErrorEventDistribution(c *gin.Context) {
	out, err := h.Analytics.ErrorEventDistribution(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h Handlers) LinkEngagement(c *gin.Context) {
	out, err := h.Analytics.LinkEngagement(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"links": out})
}

func (h Handlers) MonthlyRollup(c *gin.Context) {
	out, err := h.Analytics.MonthlyRollup(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meses": out})
}

// --- Tracked links ---

func (h Handlers) ListTrackedLinks(c *gin.Context) {
	out, err := h.Tracking.List(c.Request.Context(), c.Query("dominio"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"links": out})
}

func (h Handlers) CreateTrackedLink(c *gin.Context) {
	var req tracking.TrackedLink
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	out, err := h.Tracking.Create(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// RedirectTrackedLink is the public click endpoint: record and bounce.
func (h Handlers) RedirectTrackedLink(c *gin.Context) {
	l, err := h.Tracking.Resolve(c.Request.Context(), c.Param("code"), c.Request.UserAgent())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.Redirect(http.StatusFound, l.TargetURL)
}
