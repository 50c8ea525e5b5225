package httpapi

import (
	"net/http"
	"time"

	"cadence-platform/internal/appointments"
	"cadence-platform/internal/chatlog"
	"cadence-platform/internal/events"
	"cadence-platform/internal/followups"
	"cadence-platform/internal/status"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// --- Interactions ---

func (h Handlers) ListInteractions(c *gin.Context) {
	out, err := h.Interactions.ListByCompany(c.Request.Context(), c.Param("domain"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"interacoes": out})
}

type interactionStatusRequest struct {
	Status  string     `json:"status"`
	EndedAt *time.Time `json:"ended_at,omitempty"`
}

func (h Handlers) ChangeInteractionStatus(c *gin.Context) {
	var req interactionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	err := h.Interactions.ChangeStatus(c.Request.Context(), c.Param("id"), status.InteractionStatus(req.Status), req.EndedAt)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// --- Chat history ---

// ChatSession renders the stored payloads of one conversation, resolving the
// mixed payload shapes into author-attributed views.
func (h Handlers) ChatSession(c *gin.Context) {
	msgs, err := h.Chat.ListBySession(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mensagens": chatlog.Render(msgs)})
}

// --- Appointments ---

func (h Handlers) ListAppointments(c *gin.Context) {
	out, err := h.Appointments.List(c.Request.Context(), c.Query("dominio"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"agendamentos": out})
}

func (h Handlers) CreateAppointment(c *gin.Context) {
	var req appointments.Appointment
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	out, err := h.Appointments.Create(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h Handlers) ChangeAppointmentStatus(c *gin.Context) {
	var req changeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if err := h.Appointments.ChangeStatus(c.Request.Context(), c.Param("id"), status.AppointmentStatus(req.Status)); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// --- Follow-ups ---

func (h Handlers) ListFollowUps(c *gin.Context) {
	out, err := h.FollowUps.List(c.Request.Context(), c.Query("dominio"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"followups": out})
}

func (h Handlers) CreateFollowUp(c *gin.Context) {
	var req followups.Task
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	out, err := h.FollowUps.Create(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h Handlers) ChangeFollowUpStatus(c *gin.Context) {
	var req changeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if err := h.FollowUps.ChangeStatus(c.Request.Context(), c.Param("id"), status.FollowUpStatus(req.Status)); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// --- Error events ---

func (h Handlers) ListErrorEvents(c *gin.Context) {
	out, err := h.Events.List(c.Request.Context(), c.Query("dominio"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"eventos": out})
}

func (h Handlers) ChangeErrorEventStatus(c *gin.Context) {
	var req changeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if err := h.Events.ChangeProcessingStatus(c.Request.Context(), c.Param("id"), events.ProcessingStatus(req.Status)); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}
