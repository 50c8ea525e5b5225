package httpapi

import (
	"net/http"

	"cadence-platform/internal/templates"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// --- Message templates ---

func (h Handlers) ListTemplates(c *gin.Context) {
	out, err := h.Templates.List(c.Request.Context(), templates.Channel(c.Query("canal")))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"templates": out})
}

func (h Handlers) GetTemplate(c *gin.Context) {
	t, err := h.Templates.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	// The editor works on the raw text; for whatsapp that means unwrapping
	// the stored envelope.
	c.JSON(http.StatusOK, gin.H{"template": t, "corpo_editavel": h.Templates.EditableBody(t)})
}

func (h Handlers) CreateTemplate(c *gin.Context) {
	var req templates.Template
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	out, err := h.Templates.Create(c.Request.Context(), uuid.NewString(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h Handlers) UpdateTemplate(c *gin.Context) {
	var req templates.Template
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	req.ID = c.Param("id")
	out, err := h.Templates.Update(c.Request.Context(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h Handlers) DeleteTemplate(c *gin.Context) {
	if err := h.Templates.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// PreviewTemplate substitutes the sample variable values into the body so
// the editor can show what a real send would look like.
func (h Handlers) PreviewTemplate(c *gin.Context) {
	t, err := h.Templates.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"preview": h.Templates.Preview(t)})
}
