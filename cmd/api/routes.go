package main

import (
	"cadence-platform/internal/gateway"
	"cadence-platform/internal/httpapi"
	"cadence-platform/internal/rbac"

	"github.com/gin-gonic/gin"
)

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers should delegate to internal modules.
func registerRoutes(r *gin.Engine, h httpapi.Handlers, gw gateway.Handler, authMW gin.HandlerFunc) {
	// public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Automation webhook (shared-secret protected inside the handler).
	r.POST("/webhooks/cadence", gw.Handle)

	// Tracked-link redirect. Clicks come from prospects, not logged-in users.
	r.GET("/l/:code", h.RedirectTrackedLink)

	// Token issuance.
	// NOTE: Login is a placeholder credential flow; see httpapi.Login.
	r.POST("/auth/login", h.Login)
	r.POST("/auth/refresh", h.Refresh)

	// protected API group
	v1 := r.Group("/v1")
	v1.Use(authMW)
	{
		v1.GET("/me", h.Me)
		v1.GET("/statuses/:domain", h.StatusVocabulary)

		empresas := v1.Group("/empresas")
		{
			empresas.GET("", h.ListCompanies)
			empresas.GET("/:domain", h.GetCompany)
			empresas.GET("/:domain/historico", h.CompanyStatusHistory)
			empresas.GET("/:domain/contatos", h.ListContacts)
			empresas.GET("/:domain/interacoes", h.ListInteractions)

			write := empresas.Group("")
			write.Use(rbac.RequireAnyRole(rbac.RoleConsultor))
			{
				write.PUT("/:domain/status", h.ChangeCompanyStatus)
				write.POST("/:domain/contatos", h.AddContact)
			}
		}

		contatos := v1.Group("/contatos")
		contatos.Use(rbac.RequireAnyRole(rbac.RoleConsultor))
		{
			contatos.PUT("/:id/status", h.ChangeContactStatus)
		}

		interacoes := v1.Group("/interacoes")
		interacoes.Use(rbac.RequireAnyRole(rbac.RoleConsultor))
		{
			interacoes.PUT("/:id/status", h.ChangeInteractionStatus)
		}

		v1.GET("/chat/:session_id", h.ChatSession)

		agendamentos := v1.Group("/agendamentos")
		{
			agendamentos.GET("", h.ListAppointments)
			write := agendamentos.Group("")
			write.Use(rbac.RequireAnyRole(rbac.RoleConsultor))
			{
				write.POST("", h.CreateAppointment)
				write.PUT("/:id/status", h.ChangeAppointmentStatus)
			}
		}

		followups := v1.Group("/followups")
		{
			followups.GET("", h.ListFollowUps)
			write := followups.Group("")
			write.Use(rbac.RequireAnyRole(rbac.RoleConsultor))
			{
				write.POST("", h.CreateFollowUp)
				write.PUT("/:id/status", h.ChangeFollowUpStatus)
			}
		}

		eventos := v1.Group("/eventos-erro")
		{
			eventos.GET("", h.ListErrorEvents)
			eventos.PUT("/:id/status", rbac.RequireAnyRole(rbac.RoleConsultor), h.ChangeErrorEventStatus)
		}

		// Rule configuration: everyone reads, only admin writes.
		cadencia := v1.Group("/cadencia")
		{
			cadencia.GET("/regras", h.GetRules)
			cadencia.GET("/abordagens-hoje", h.ApproachesToday)
			cadencia.PUT("/regras", rbac.RequireAnyRole(), h.PutRules)
		}

		tpl := v1.Group("/templates")
		{
			tpl.GET("", h.ListTemplates)
			tpl.GET("/:id", h.GetTemplate)
			tpl.GET("/:id/preview", h.PreviewTemplate)
			write := tpl.Group("")
			write.Use(rbac.RequireAnyRole(rbac.RoleConsultor))
			{
				write.POST("", h.CreateTemplate)
				write.PUT("/:id", h.UpdateTemplate)
				write.DELETE("/:id", h.DeleteTemplate)
			}
		}

		links := v1.Group("/links")
		{
			links.GET("", h.ListTrackedLinks)
			links.POST("", rbac.RequireAnyRole(rbac.RoleConsultor), h.CreateTrackedLink)
		}

		// Dashboards. Analysts and consultants both read them.
		dash := v1.Group("/analytics")
		{
			dash.GET("/funil", h.Funnel)
			dash.GET("/canais", h.ChannelPerformance)
			dash.GET("/templates", h.TemplatePerformance)
			dash.GET("/agendamentos", h.AppointmentDistribution)
			dash.GET("/followups", h.FollowUpDistribution)
			dash.GET("/eventos-erro", h.ErrorEventDistribution)
			dash.GET("/links", h.LinkEngagement)
			dash.GET("/mensal", h.MonthlyRollup)
		}
	}
}
