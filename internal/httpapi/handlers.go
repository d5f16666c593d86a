package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"decision-platform/internal/audit"
	"decision-platform/internal/auth"
	"decision-platform/internal/decisions"
	"decision-platform/internal/history"
	"decision-platform/internal/intake"
	"decision-platform/internal/reporting"
	"decision-platform/internal/workflow"
	"decision-platform/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON.

type Handlers struct {
	Auth      *auth.Manager
	Engine    *workflow.Engine
	History   *history.Service
	Decisions decisions.Repository
	Reports   *reporting.Service
	Audit     *audit.Service

	// Limiter may be nil to disable submission rate limiting.
	Limiter RateLimiter
}

// --- Auth ---

type loginRequest struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	Role     string `json:"role"`
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
	pair, err := h.Auth.IssuePair(time.Now(), req.UserID, req.UserName, req.Role)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "token issuance failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": pair.AccessToken, "refresh_token": pair.RefreshToken})
}

// --- Decisions ---

type submitDecisionRequest struct {
	Text   string `json:"text"`
	Source string `json:"source,omitempty"`
}

// SubmitDecision runs the full pipeline for one authenticated submission.
// A rejected submission still returns a complete result body, with 422.
func (h Handlers) SubmitDecision(c *gin.Context) {
	if h.Engine == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "engine not configured"})
		return
	}

	userID, err := auth.UserID(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "identity required"})
		return
	}
	userName := auth.UserName(c.Request.Context())

	if h.Limiter != nil {
		ok, err := h.Limiter.Allow(c.Request.Context(), userID)
		if err != nil {
			logger.FromGin(c).Warn("rate limiter unavailable", "err", err)
		} else if !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "submission rate limit exceeded"})
			return
		}
	}

	var req submitDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	source := intake.Source(req.Source)
	if source == "" {
		source = intake.SourceManual
	}
	if !intake.ValidSource(source) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unrecognized source"})
		return
	}

	result := h.runPipeline(c, workflow.Request{
		Text:     req.Text,
		Source:   source,
		UserID:   userID,
		UserName: userName,
	})
	if result.Status == workflow.StatusFailed {
		c.JSON(http.StatusUnprocessableEntity, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

type webhookDecisionRequest struct {
	Text     string `json:"text"`
	UserID   string `json:"user_id,omitempty"`
	UserName string `json:"user_name,omitempty"`
}

// WebhookDecision accepts unauthenticated submissions from external systems.
// The source is forced to webhook regardless of the payload.
func (h Handlers) WebhookDecision(c *gin.Context) {
	if h.Engine == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "engine not configured"})
		return
	}
	var req webhookDecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	result := h.runPipeline(c, workflow.Request{
		Text:     req.Text,
		Source:   intake.SourceWebhook,
		UserID:   req.UserID,
		UserName: req.UserName,
	})
	if result.Status == workflow.StatusFailed {
		c.JSON(http.StatusUnprocessableEntity, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

// runPipeline executes the engine and performs the best-effort side writes:
// decision record for reporting and per-user history.
func (h Handlers) runPipeline(c *gin.Context, req workflow.Request) workflow.Result {
	ctx := c.Request.Context()
	result := h.Engine.Run(ctx, req)

	if h.Decisions != nil {
		rec := decisions.Record{
			DecisionID:       result.DecisionID,
			UserID:           req.UserID,
			Source:           string(req.Source),
			DecisionType:     string(result.Analysis.DecisionType),
			ImpactLevel:      string(result.Analysis.ImpactLevel),
			RiskScore:        result.RiskEvaluation.RiskScore,
			WorkflowDecision: string(result.RiskEvaluation.WorkflowDecision),
			Status:           string(result.Status),
			CreatedAt:        time.Now().UTC(),
		}
		if err := h.Decisions.Save(ctx, rec); err != nil {
			logger.FromGin(c).Warn("decision record save failed", "decision_id", result.DecisionID, "err", err)
		}
	}

	if h.History != nil && result.Status != workflow.StatusFailed {
		if err := h.History.Push(ctx, req.UserID, result.Input.Text); err != nil {
			logger.FromGin(c).Warn("history push failed", "decision_id", result.DecisionID, "err", err)
		}
	}

	return result
}

// GetHistory returns the caller's most recent decision texts, newest first.
func (h Handlers) GetHistory(c *gin.Context) {
	if h.History == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "history not configured"})
		return
	}
	userID, err := auth.UserID(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "identity required"})
		return
	}
	entries, err := h.History.List(c.Request.Context(), userID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "history lookup failed"})
		return
	}
	if entries == nil {
		entries = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"history": entries})
}

// --- Reporting ---

// DecisionsSummary aggregates decision outcomes over a time range.
// from/to are RFC3339 query params; the default window is the last 24 hours.
func (h Handlers) DecisionsSummary(c *gin.Context) {
	if h.Reports == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "reporting not configured"})
		return
	}

	now := time.Now().UTC()
	rng := reporting.TimeRange{From: now.Add(-24 * time.Hour), To: now}
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "from must be RFC3339"})
			return
		}
		rng.From = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "to must be RFC3339"})
			return
		}
		rng.To = t
	}

	sum, err := h.Reports.DecisionsSummary(c.Request.Context(), reporting.SummaryRequest{Range: rng})
	if err != nil {
		if err == reporting.ErrInvalidRequest {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid time range"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "summary failed"})
		return
	}
	c.JSON(http.StatusOK, sum)
}

// --- Audit ---

// ListAuditLogs returns retained audit events, most recent first.
// Optional query params: limit, decision_id.
func (h Handlers) ListAuditLogs(c *gin.Context) {
	if h.Audit == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "audit not configured"})
		return
	}

	if decisionID := c.Query("decision_id"); decisionID != "" {
		events, err := h.Audit.ListByDecision(c.Request.Context(), decisionID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "audit lookup failed"})
			return
		}
		if events == nil {
			events = []audit.Event{}
		}
		c.JSON(http.StatusOK, gin.H{"events": events})
		return
	}

	limit := 0
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}
	events, err := h.Audit.List(c.Request.Context(), limit)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "audit lookup failed"})
		return
	}
	if events == nil {
		events = []audit.Event{}
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// ExportAuditLogs streams the retained audit trail as JSON or CSV.
func (h Handlers) ExportAuditLogs(c *gin.Context) {
	if h.Audit == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "audit not configured"})
		return
	}

	format := c.DefaultQuery("format", "json")
	switch format {
	case "json":
		out, err := h.Audit.ExportJSON(c.Request.Context())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="audit-log.json"`)
		c.Data(http.StatusOK, "application/json", out)
	case "csv":
		out, err := h.Audit.ExportCSV(c.Request.Context())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="audit-log.csv"`)
		c.Data(http.StatusOK, "text/csv", out)
	default:
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "format must be json or csv"})
	}
}
