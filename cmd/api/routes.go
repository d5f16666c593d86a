package main

import (
	"decision-platform/internal/httpapi"
	"decision-platform/internal/rbac"

	"github.com/gin-gonic/gin"
)

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers should delegate to internal modules.
func registerRoutes(r *gin.Engine, h httpapi.Handlers, authMW gin.HandlerFunc) {
	// public
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Inbound decision webhooks (public).
	// NOTE: This endpoint should be protected by sender signature validation in production.
	r.POST("/webhooks/decision", h.WebhookDecision)

	// protected API group
	v1 := r.Group("/v1")

	// AUTH routes (token issuance).
	// NOTE: This is a placeholder login route; real credential validation is not implemented.
	v1.POST("/auth/login", h.Login)

	authed := v1.Group("")
	authed.Use(authMW)
	{
		// DECISION routes
		d := authed.Group("/decisions")
		{
			d.POST("", rbac.RequireAnyRole(rbac.RoleOperator, rbac.RoleApprover), h.SubmitDecision)
			d.GET("/history", h.GetHistory)
			d.GET("/summary", rbac.RequireAnyRole(rbac.RoleApprover), h.DecisionsSummary)
		}

		// AUDIT routes
		// Admin-only reads; the hidden compliance_auditor role is explicitly
		// allowed on export and nowhere else.
		a := authed.Group("/audit")
		{
			a.GET("/logs", rbac.RequireAnyRole(), h.ListAuditLogs)
			a.GET("/export", rbac.RequireAnyRole(rbac.RoleComplianceAuditor), h.ExportAuditLogs)
		}
	}
}
