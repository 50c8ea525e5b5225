package httpapi

import (
	"net/http"
	"strconv"

	"cadence-platform/internal/companies"
	"cadence-platform/internal/status"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// --- Companies ---

func (h Handlers) ListCompanies(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	out, err := h.Companies.List(c.Request.Context(), companies.ListFilter{
		CadenceStatus: c.Query("cadence_status"),
		Search:        c.Query("q"),
		Limit:         limit,
		Offset:        offset,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"empresas": out})
}

func (h Handlers) GetCompany(c *gin.Context) {
	out, err := h.Companies.Get(c.Request.Context(), c.Param("domain"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type changeStatusRequest struct {
	Status string `json:"status"`
}

func (h Handlers) ChangeCompanyStatus(c *gin.Context) {
	var req changeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	uid, role := actor(c)
	out, err := h.Companies.ChangeCadenceStatus(c.Request.Context(), c.Param("domain"), status.CadenceStatus(req.Status), uid, role)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// CompanyStatusHistory returns the audit trail for one company, newest first.
func (h Handlers) CompanyStatusHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	out, err := h.Audit.History(c.Request.Context(), c.Param("domain"), limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"historico": out})
}

// --- Contacts ---

func (h Handlers) ListContacts(c *gin.Context) {
	out, err := h.Companies.ListContacts(c.Request.Context(), c.Param("domain"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contatos": out})
}

func (h Handlers) AddContact(c *gin.Context) {
	var req companies.NewContact
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	req.CompanyDomain = c.Param("domain")
	out, err := h.Companies.AddContact(c.Request.Context(), uuid.NewString(), req)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (h Handlers) ChangeContactStatus(c *gin.Context) {
	var req changeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if err := h.Companies.ChangeContactStatus(c.Request.Context(), c.Param("id"), status.ContactStatus(req.Status)); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// --- Status vocabulary ---

// StatusVocabulary exposes the enumerated values with display metadata so
// every client renders statuses the same way.
func (h Handlers) StatusVocabulary(c *gin.Context) {
	d := status.Domain(c.Param("domain"))
	values := status.Values(d)
	if len(values) == 0 {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "unknown status domain"})
		return
	}
	type item struct {
		Value string `json:"valor"`
		Label string `json:"rotulo"`
		Color string `json:"cor"`
	}
	out := make([]item, 0, len(values))
	for _, v := range values {
		out = append(out, item{
			Value: v,
			Label: status.LabelFor(d, v),
			Color: status.ColorClassFor(d, v),
		})
	}
	c.JSON(http.StatusOK, gin.H{"dominio": string(d), "valores": out})
}
