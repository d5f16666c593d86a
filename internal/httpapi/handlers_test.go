package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"decision-platform/internal/analysis"
	"decision-platform/internal/audit"
	"decision-platform/internal/auth"
	"decision-platform/internal/decisions"
	"decision-platform/internal/extraction"
	"decision-platform/internal/history"
	"decision-platform/internal/intake"
	"decision-platform/internal/rbac"
	"decision-platform/internal/reporting"
	"decision-platform/internal/risk"
	"decision-platform/internal/workflow"

	"github.com/gin-gonic/gin"
)

func newTestHandlers(t *testing.T) Handlers {
	t.Helper()

	engine, err := workflow.NewEngine(workflow.Deps{
		Intake:    intake.New(),
		Analyzer:  analysis.NewAnalyzer(analysis.DefaultRuleset()),
		Extractor: extraction.NewExtractor(extraction.DefaultRuleset()),
		Evaluator: risk.NewEvaluator(),
		Audit:     audit.NewService(audit.NewMemoryRepo(audit.DefaultMaxEvents)),
	})
	if err != nil {
		t.Fatalf("engine: %v", err)
	}

	repo := decisions.NewMemoryRepo()
	return Handlers{
		Engine:    engine,
		History:   history.NewService(history.NewMemoryRepo(history.DefaultMaxEntries)),
		Decisions: repo,
		Reports:   reporting.NewService(repo),
		Audit:     audit.NewService(audit.NewMemoryRepo(audit.DefaultMaxEvents)),
	}
}

func identityMiddleware(userID, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := auth.WithIdentity(c.Request.Context(), userID, "Test User", role)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func newTestRouter(h Handlers) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	r.POST("/webhooks/decision", h.WebhookDecision)

	v1 := r.Group("/v1")
	v1.Use(identityMiddleware("user-1", rbac.RoleOperator))
	{
		v1.POST("/decisions", h.SubmitDecision)
		v1.GET("/decisions/history", h.GetHistory)
		v1.GET("/decisions/summary", h.DecisionsSummary)
		v1.GET("/audit/logs", h.ListAuditLogs)
		v1.GET("/audit/export", h.ExportAuditLogs)
	}
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestSubmitDecision_HappyPath(t *testing.T) {
	h := newTestHandlers(t)
	r := newTestRouter(h)

	w := doJSON(r, http.MethodPost, "/v1/decisions", `{"text":"Deploy the new payment service to production immediately"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var result workflow.Result
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.DecisionID == "" {
		t.Fatalf("expected decision id")
	}
	if result.Status == workflow.StatusFailed {
		t.Fatalf("unexpected failed status: %+v", result)
	}
	if result.Input.Metadata.Source != intake.SourceManual {
		t.Fatalf("expected manual default source, got %q", result.Input.Metadata.Source)
	}

	// side writes happened
	rec, ok, err := h.Decisions.Get(context.Background(), result.DecisionID)
	if err != nil || !ok {
		t.Fatalf("expected stored record, ok=%v err=%v", ok, err)
	}
	if rec.UserID != "user-1" {
		t.Fatalf("expected record attributed to user-1, got %q", rec.UserID)
	}

	hist, err := h.History.List(context.Background(), "user-1")
	if err != nil || len(hist) != 1 {
		t.Fatalf("expected one history entry, got %v err=%v", hist, err)
	}
}

func TestSubmitDecision_EmptyTextIsUnprocessable(t *testing.T) {
	h := newTestHandlers(t)
	r := newTestRouter(h)

	w := doJSON(r, http.MethodPost, "/v1/decisions", `{"text":"   "}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", w.Code, w.Body.String())
	}

	var result workflow.Result
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Status != workflow.StatusFailed {
		t.Fatalf("expected failed status, got %q", result.Status)
	}
	if result.Error == "" {
		t.Fatalf("expected error message")
	}
	if result.RiskEvaluation.WorkflowDecision != risk.DecisionBlockExecution {
		t.Fatalf("expected blocking verdict, got %q", result.RiskEvaluation.WorkflowDecision)
	}

	// failed submissions never reach history
	hist, err := h.History.List(context.Background(), "user-1")
	if err != nil || len(hist) != 0 {
		t.Fatalf("expected empty history, got %v err=%v", hist, err)
	}
}

func TestSubmitDecision_RejectsUnknownSource(t *testing.T) {
	h := newTestHandlers(t)
	r := newTestRouter(h)

	w := doJSON(r, http.MethodPost, "/v1/decisions", `{"text":"restart the service","source":"carrier-pigeon"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

type denyAllLimiter struct{}

func (denyAllLimiter) Allow(context.Context, string) (bool, error) { return false, nil }

func TestSubmitDecision_RateLimited(t *testing.T) {
	h := newTestHandlers(t)
	h.Limiter = denyAllLimiter{}
	r := newTestRouter(h)

	w := doJSON(r, http.MethodPost, "/v1/decisions", `{"text":"restart the service"}`)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
}

func TestWebhookDecision_ForcesWebhookSource(t *testing.T) {
	h := newTestHandlers(t)
	r := newTestRouter(h)

	w := doJSON(r, http.MethodPost, "/webhooks/decision", `{"text":"update the billing config","user_id":"ext-1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var result workflow.Result
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Input.Metadata.Source != intake.SourceWebhook {
		t.Fatalf("expected webhook source, got %q", result.Input.Metadata.Source)
	}
}

func TestDecisionsSummary_CountsSubmissions(t *testing.T) {
	h := newTestHandlers(t)
	r := newTestRouter(h)

	for _, text := range []string{
		"deploy the payment service to production",
		"draft the quarterly plan",
	} {
		w := doJSON(r, http.MethodPost, "/v1/decisions", `{"text":"`+text+`"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("submit failed: %d", w.Code)
		}
	}

	w := doJSON(r, http.MethodGet, "/v1/decisions/summary", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var sum reporting.Summary
	if err := json.Unmarshal(w.Body.Bytes(), &sum); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sum.TotalDecisions != 2 {
		t.Fatalf("expected 2 decisions, got %d", sum.TotalDecisions)
	}
}

func TestDecisionsSummary_RejectsBadTimestamp(t *testing.T) {
	h := newTestHandlers(t)
	r := newTestRouter(h)

	w := doJSON(r, http.MethodGet, "/v1/decisions/summary?from=yesterday", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestListAuditLogs_FilterByDecision(t *testing.T) {
	h := newTestHandlers(t)
	// share one audit trail between engine and read API
	shared := audit.NewService(audit.NewMemoryRepo(audit.DefaultMaxEvents))
	engine, err := workflow.NewEngine(workflow.Deps{
		Intake:    intake.New(),
		Analyzer:  analysis.NewAnalyzer(analysis.DefaultRuleset()),
		Extractor: extraction.NewExtractor(extraction.DefaultRuleset()),
		Evaluator: risk.NewEvaluator(),
		Audit:     shared,
	})
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	h.Engine = engine
	h.Audit = shared
	r := newTestRouter(h)

	w := doJSON(r, http.MethodPost, "/v1/decisions", `{"text":"restart the api service"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("submit failed: %d", w.Code)
	}
	var result workflow.Result
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}

	w = doJSON(r, http.MethodGet, "/v1/audit/logs?decision_id="+result.DecisionID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Events []audit.Event `json:"events"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Events) != 5 {
		t.Fatalf("expected 5 stage events, got %d", len(body.Events))
	}
}

func TestExportAuditLogs_Formats(t *testing.T) {
	h := newTestHandlers(t)
	r := newTestRouter(h)

	w := doJSON(r, http.MethodGet, "/v1/audit/export", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected json content type, got %q", ct)
	}

	w = doJSON(r, http.MethodGet, "/v1/audit/export?format=csv", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.HasPrefix(w.Body.String(), "id,created_at,type,") {
		t.Fatalf("expected csv header, got %q", w.Body.String())
	}

	w = doJSON(r, http.MethodGet, "/v1/audit/export?format=xml", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
