package gateway

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"cadence-platform/internal/cadence"
	"cadence-platform/internal/chatlog"
	"cadence-platform/internal/companies"
	"cadence-platform/internal/events"
	"cadence-platform/internal/interactions"
	"cadence-platform/internal/status"
	"cadence-platform/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler receives webhooks from the external cadence-execution automation
// and records the reported facts. It never initiates sends or scheduling.
//
// Authentication is a shared secret in the X-Webhook-Secret header; the
// automation is a single trusted caller, not a tenant.

type Handler struct {
	Secret string

	Interactions *interactions.Service
	Companies    *companies.Service
	Events       *events.Service
	Cadence      *cadence.Service
	Chat         chatlog.Repository

	Now func() time.Time
}

func (h Handler) Handle(c *gin.Context) {
	log := logger.FromGin(c)

	if h.Secret == "" {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "gateway secret not configured"})
		return
	}
	got := c.GetHeader("X-Webhook-Secret")
	if subtle.ConstantTimeCompare([]byte(got), []byte(h.Secret)) != 1 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid webhook secret"})
		return
	}

	var env Envelope
	if err := c.ShouldBindJSON(&env); err != nil {
		log.Warn("webhook parse failed", "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid envelope"})
		return
	}

	if err := h.dispatch(c, env); err != nil {
		if errors.Is(err, errBadPayload) {
			log.Warn("webhook payload rejected", "tipo", env.Type, "err", err)
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		log.Error("webhook processing failed", "tipo", env.Type, "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "processing failed"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}

var errBadPayload = errors.New("gateway: bad payload")

func (h Handler) dispatch(c *gin.Context, env Envelope) error {
	ctx := c.Request.Context()

	switch env.Type {
	case EventInteractionCreated:
		var p InteractionCreatedPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return errBadPayload
		}
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		_, err := h.Interactions.Record(ctx, interactions.Interaction{
			ID:            p.ID,
			CompanyDomain: p.CompanyDomain,
			Channel:       interactions.Channel(p.Channel),
			Direction:     interactions.Direction(p.Direction),
			Status:        status.InteractionStatus(p.Status),
			SessionID:     p.SessionID,
			TemplateID:    p.TemplateID,
			AIResponse:    p.AIResponse,
			AISummary:     p.AISummary,
			CostEstimate:  p.CostEstimate,
		})
		if errors.Is(err, interactions.ErrInvalidRequest) {
			return errBadPayload
		}
		return err

	case EventInteractionStatus:
		var p InteractionStatusPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return errBadPayload
		}
		err := h.Interactions.ChangeStatus(ctx, p.ID, status.InteractionStatus(p.Status), p.EndedAt)
		if errors.Is(err, interactions.ErrInvalidRequest) {
			return errBadPayload
		}
		return err

	case EventCompanyStatus:
		var p CompanyStatusPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return errBadPayload
		}
		// Webhook changes carry no user identity; the audit trail records
		// the automation as the actor.
		_, err := h.Companies.ChangeCadenceStatus(ctx, p.Domain, status.CadenceStatus(p.Status), "", "automation")
		if errors.Is(err, companies.ErrInvalidRequest) || errors.Is(err, companies.ErrInvalidTransition) {
			return errBadPayload
		}
		return err

	case EventAttemptRecorded:
		var p AttemptRecordedPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return errBadPayload
		}
		err := h.Companies.RecordAttempt(ctx, p.Domain, p.NextAttemptAt)
		if errors.Is(err, companies.ErrInvalidRequest) {
			return errBadPayload
		}
		if err != nil {
			return err
		}
		// Best-effort daily counter; the gauge tolerates a missed tick.
		if h.Cadence != nil {
			if _, cerr := h.Cadence.RegisterApproach(ctx); cerr != nil {
				logger.FromGin(c).Warn("approach counter increment failed", "err", cerr)
			}
		}
		return nil

	case EventChatMessage:
		var p ChatMessagePayload
		if err := json.Unmarshal(env.Data, &p); err != nil || p.SessionID == "" || len(p.Payload) == 0 {
			return errBadPayload
		}
		now := time.Now
		if h.Now != nil {
			now = h.Now
		}
		return h.Chat.Append(ctx, chatlog.Message{
			SessionID: p.SessionID,
			Payload:   p.Payload,
			CreatedAt: now().UTC(),
		})

	case EventErrorDetected:
		var p ErrorDetectedPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return errBadPayload
		}
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		_, err := h.Events.Record(ctx, events.ErrorEvent{
			ID:            p.ID,
			CompanyDomain: p.CompanyDomain,
			ErrorType:     p.ErrorType,
			ErrorURL:      p.ErrorURL,
			DetectedAt:    p.DetectedAt,
		})
		if errors.Is(err, events.ErrInvalidRequest) {
			return errBadPayload
		}
		return err
	}

	return errBadPayload
}
