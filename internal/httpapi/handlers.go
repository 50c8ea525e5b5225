package httpapi

import (
	"errors"
	"net/http"
	"time"

	"cadence-platform/internal/analytics"
	"cadence-platform/internal/appointments"
	"cadence-platform/internal/audit"
	"cadence-platform/internal/auth"
	"cadence-platform/internal/cadence"
	"cadence-platform/internal/chatlog"
	"cadence-platform/internal/companies"
	"cadence-platform/internal/events"
	"cadence-platform/internal/followups"
	"cadence-platform/internal/interactions"
	"cadence-platform/internal/templates"
	"cadence-platform/internal/tracking"

	"github.com/gin-gonic/gin"
)

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON.

type Handlers struct {
	Auth *auth.Manager

	Companies    *companies.Service
	Interactions *interactions.Service
	Appointments *appointments.Service
	FollowUps    *followups.Service
	Events       *events.Service
	Cadence      *cadence.Service
	Templates    *templates.Service
	Tracking     *tracking.Service
	Analytics    *analytics.Service
	Audit        *audit.Service
	Chat         chatlog.Repository
}

// respondErr maps service errors onto HTTP codes in one place so handlers
// stay uniform.
func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, companies.ErrNotFound),
		errors.Is(err, interactions.ErrNotFound),
		errors.Is(err, appointments.ErrNotFound),
		errors.Is(err, followups.ErrNotFound),
		errors.Is(err, events.ErrNotFound),
		errors.Is(err, templates.ErrNotFound),
		errors.Is(err, tracking.ErrNotFound),
		errors.Is(err, cadence.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, companies.ErrInvalidRequest),
		errors.Is(err, companies.ErrInvalidTransition),
		errors.Is(err, interactions.ErrInvalidRequest),
		errors.Is(err, appointments.ErrInvalidRequest),
		errors.Is(err, followups.ErrInvalidRequest),
		errors.Is(err, events.ErrInvalidRequest),
		errors.Is(err, templates.ErrInvalidRequest),
		errors.Is(err, tracking.ErrInvalidRequest),
		errors.Is(err, analytics.ErrInvalidRequest),
		errors.Is(err, audit.ErrInvalidEntry),
		errors.Is(err, cadence.ErrInvalidConfig):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func actor(c *gin.Context) (userID, role string) {
	userID, _ = auth.UserID(c.Request.Context())
	role, _ = auth.Role(c.Request.Context())
	return userID, role
}

// --- Auth ---

type loginRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// Login issues a JWT token pair.
//
// NOTE: This is a skeleton-only endpoint. Real systems must validate credentials.
func (h Handlers) Login(c *gin.Context) {
	if h.Auth == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "auth not configured"})
		return
	}
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.UserID == "" || req.Role == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "user_id, role required"})
		return
	}
	pair, err := h.Auth.IssuePair(time.Now(), req.UserID, req.Role)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "token issuance failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": pair.AccessToken, "refresh_token": pair.RefreshToken})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh exchanges a valid refresh token for a fresh pair.
func (h Handlers) Refresh(c *gin.Context) {
	if h.Auth == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "auth not configured"})
		return
	}
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "refresh_token required"})
		return
	}
	claims, err := h.Auth.Verify(req.RefreshToken, auth.TokenTypeRefresh, time.Now())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid refresh token"})
		return
	}
	pair, err := h.Auth.IssuePair(time.Now(), claims.UserID, claims.Role)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "token issuance failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": pair.AccessToken, "refresh_token": pair.RefreshToken})
}

func (h Handlers) Me(c *gin.Context) {
	uid, role := actor(c)
	c.JSON(http.StatusOK, gin.H{"user_id": uid, "role": role})
}
