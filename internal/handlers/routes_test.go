package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hiringdekho/hiring-dekho/internal/auth"
	"github.com/hiringdekho/hiring-dekho/internal/config"
	"github.com/hiringdekho/hiring-dekho/internal/database"
	"github.com/hiringdekho/hiring-dekho/internal/dtos"
	"github.com/hiringdekho/hiring-dekho/internal/mailer"
	"github.com/hiringdekho/hiring-dekho/internal/services"
)

const adminEmail = "admin@hiringdekho.in"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type stubCompleter struct {
	response string
	calls    int
}

func (s *stubCompleter) Complete(context.Context, string) (string, error) {
	s.calls++
	return s.response, nil
}

type stubSender struct{ sent []mailer.Message }

func (s *stubSender) Send(_ context.Context, msg mailer.Message) error {
	s.sent = append(s.sent, msg)
	return nil
}

type testServer struct {
	router   *gin.Engine
	deps     Deps
	llm      *stubCompleter
	sender   *stubSender
	sessions *auth.SessionManager
}

type serverOption func(*Deps, *testServer)

func withoutLLM() serverOption {
	return func(d *Deps, _ *testServer) { d.LLM.Client = nil }
}

func withMailConfig(cfg mailer.Config) serverOption {
	return func(d *Deps, ts *testServer) { d.Leads = services.NewLeadService(ts.sender, cfg) }
}

func newTestServer(t *testing.T, opts ...serverOption) *testServer {
	t.Helper()

	db, err := database.Open(config.DatabaseConfig{Driver: "sqlite", SQLitePath: filepath.Join(t.TempDir(), "api.db")})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	ts := &testServer{
		llm:      &stubCompleter{response: `{"content": "<p>Draft</p>"}`},
		sender:   &stubSender{},
		sessions: auth.NewSessionManager("test-secret", time.Hour),
	}
	profiles := services.NewProfileService(db)
	jobs := services.NewJobService(db)
	seo := services.NewSEOService(db)
	d := Deps{
		Sessions:     ts.sessions,
		Roles:        services.NewRoleService(adminEmail, profiles, ts.sessions, seo),
		Jobs:         jobs,
		Applications: services.NewApplicationService(db, jobs, profiles, services.NewMatcherService()),
		Profiles:     profiles,
		Blogs:        services.NewBlogService(db),
		SEO:          seo,
		Analytics:    services.NewAnalyticsService(db),
		LLM:          services.NewLLMService(ts.llm, profiles, jobs),
		Leads:        services.NewLeadService(ts.sender, mailer.Config{}),
	}
	for _, opt := range opts {
		opt(&d, ts)
	}
	ts.deps = d
	ts.router = NewRouter(d)
	return ts
}

func (ts *testServer) token(t *testing.T, uid, email string) string {
	t.Helper()
	tok, err := ts.sessions.Issue(auth.Identity{UID: uid, Email: email})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	return tok
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %s: %v", rec.Body.String(), err)
	}
	return v
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("expected %d, got %d: %s", want, rec.Code, rec.Body.String())
	}
}

func TestHealthAndAnonymousMe(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	expectStatus(t, ts.do(t, http.MethodGet, "/api/v1/health", "", nil), http.StatusOK)

	rec := ts.do(t, http.MethodGet, "/api/v1/me", "", nil)
	expectStatus(t, rec, http.StatusOK)
	if got := decode[map[string]any](t, rec)["role"]; got != "none" {
		t.Fatalf("expected role none, got %v", got)
	}
}

func TestJobPostingAndApplicationFlow(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	empTok := ts.token(t, "emp-1", "hr@acme.in")
	seekerTok := ts.token(t, "u-1", "asha@example.com")

	expectStatus(t, ts.do(t, http.MethodPut, "/api/v1/employers/me", empTok, dtos.EmployerProfileRequest{CompanyName: "Acme"}), http.StatusOK)
	expectStatus(t, ts.do(t, http.MethodPut, "/api/v1/job-seekers/me", seekerTok, dtos.JobSeekerProfileRequest{FullName: "Asha", Skills: []string{"Go"}}), http.StatusOK)

	rec := ts.do(t, http.MethodGet, "/api/v1/me", empTok, nil)
	if got := decode[map[string]any](t, rec)["role"]; got != "employer" {
		t.Fatalf("expected employer role after profile save, got %v", got)
	}

	job := dtos.JobPostRequest{Title: "Go Developer", Location: "Pune", Category: "Engineering", Description: "Build APIs"}
	expectStatus(t, ts.do(t, http.MethodPost, "/api/v1/jobs", "", job), http.StatusUnauthorized)
	expectStatus(t, ts.do(t, http.MethodPost, "/api/v1/jobs", seekerTok, job), http.StatusForbidden)
	expectStatus(t, ts.do(t, http.MethodPost, "/api/v1/jobs", empTok, dtos.JobPostRequest{Title: "No details"}), http.StatusBadRequest)

	rec = ts.do(t, http.MethodPost, "/api/v1/jobs", empTok, job)
	expectStatus(t, rec, http.StatusCreated)
	jobID := decode[map[string]any](t, rec)["id"].(string)

	rec = ts.do(t, http.MethodGet, "/api/v1/jobs?q=go&limit=10", "", nil)
	expectStatus(t, rec, http.StatusOK)
	if rec.Header().Get("X-Total") != "1" || rec.Header().Get("X-Has-More") != "false" {
		t.Fatalf("unexpected paging headers: %v", rec.Header())
	}

	rec = ts.do(t, http.MethodGet, "/api/v1/employers/me/jobs", empTok, nil)
	expectStatus(t, rec, http.StatusOK)
	if mine := decode[[]map[string]any](t, rec); len(mine) != 1 || mine[0]["job_post_id"] != jobID {
		t.Fatalf("expected mirrored job in employer listing, got %v", mine)
	}

	applyPath := "/api/v1/jobs/" + jobID + "/applications"
	rec = ts.do(t, http.MethodPost, applyPath, seekerTok, dtos.ApplicationRequest{CoverLetter: "Hello"})
	expectStatus(t, rec, http.StatusCreated)
	appID := decode[map[string]any](t, rec)["id"].(string)
	expectStatus(t, ts.do(t, http.MethodPost, applyPath, seekerTok, dtos.ApplicationRequest{}), http.StatusConflict)

	statusPath := applyPath + "/" + appID
	expectStatus(t, ts.do(t, http.MethodPatch, statusPath, empTok, dtos.StatusUpdateRequest{Status: "Hired"}), http.StatusBadRequest)
	expectStatus(t, ts.do(t, http.MethodPatch, statusPath, empTok, dtos.StatusUpdateRequest{Status: "Reviewed"}), http.StatusOK)

	rec = ts.do(t, http.MethodGet, "/api/v1/jobs/"+jobID+"/candidates?skills=go,rust", empTok, nil)
	expectStatus(t, rec, http.StatusOK)
	if cands := decode[[]map[string]any](t, rec); len(cands) != 1 {
		t.Fatalf("expected one candidate, got %v", cands)
	}

	rec = ts.do(t, http.MethodGet, "/api/v1/job-seekers/me/applications", seekerTok, nil)
	expectStatus(t, rec, http.StatusOK)
	if apps := decode[[]map[string]any](t, rec); len(apps) != 1 || apps[0]["status"] != "Reviewed" {
		t.Fatalf("unexpected applicant view: %v", apps)
	}

	expectStatus(t, ts.do(t, http.MethodDelete, "/api/v1/jobs/"+jobID, empTok, nil), http.StatusNoContent)
	expectStatus(t, ts.do(t, http.MethodGet, "/api/v1/jobs/"+jobID, "", nil), http.StatusNotFound)
}

func TestSEOManagerBackOffice(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	adminTok := ts.token(t, "admin-uid", "Admin@HiringDekho.in")
	empTok := ts.token(t, "emp-1", "hr@acme.in")

	manager := dtos.SEOManagerRequest{Name: "Ravi", Email: "ravi@hiringdekho.in", Password: "longenough"}
	expectStatus(t, ts.do(t, http.MethodPost, "/api/v1/admin/seo-managers", empTok, manager), http.StatusForbidden)
	expectStatus(t, ts.do(t, http.MethodPost, "/api/v1/admin/seo-managers", adminTok, dtos.SEOManagerRequest{Name: "X", Email: "x@y.in", Password: "short"}), http.StatusBadRequest)
	expectStatus(t, ts.do(t, http.MethodPost, "/api/v1/admin/seo-managers", adminTok, manager), http.StatusCreated)

	expectStatus(t, ts.do(t, http.MethodPost, "/api/v1/seo/login", "", dtos.SEOLoginRequest{Email: manager.Email, Password: "wrong-password"}), http.StatusUnauthorized)
	rec := ts.do(t, http.MethodPost, "/api/v1/seo/login", "", dtos.SEOLoginRequest{Email: manager.Email, Password: manager.Password})
	expectStatus(t, rec, http.StatusOK)
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("password hash leaked: %s", rec.Body.String())
	}
	var seoCookie *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == "hd_seo_session" {
			seoCookie = ck
		}
	}
	if seoCookie == nil {
		t.Fatalf("expected seo session cookie")
	}

	body, _ := json.Marshal(dtos.BlogRequest{Title: "Resume Tips", Content: "<p>Keep it short.</p>"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/blogs", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(seoCookie)
	created := httptest.NewRecorder()
	ts.router.ServeHTTP(created, req)
	expectStatus(t, created, http.StatusCreated)
	if got := decode[map[string]any](t, created)["author"]; got != manager.Email {
		t.Fatalf("expected author from seo session, got %v", got)
	}

	expectStatus(t, ts.do(t, http.MethodGet, "/api/v1/blogs/resume-tips", "", nil), http.StatusOK)
	expectStatus(t, ts.do(t, http.MethodPost, "/api/v1/blogs", empTok, dtos.BlogRequest{Title: "x", Content: "y"}), http.StatusForbidden)

	rec = ts.do(t, http.MethodGet, "/api/v1/admin/analytics", adminTok, nil)
	expectStatus(t, rec, http.StatusOK)
	sum := decode[map[string]any](t, rec)
	if totals := sum["totals"].(map[string]any); totals["blogs"] != float64(1) {
		t.Fatalf("expected one blog in analytics, got %v", totals)
	}

	rec = ts.do(t, http.MethodGet, "/api/v1/admin/seo-managers", adminTok, nil)
	expectStatus(t, rec, http.StatusOK)
	managers := decode[[]map[string]any](t, rec)
	if len(managers) != 1 {
		t.Fatalf("expected one manager, got %v", managers)
	}
	expectStatus(t, ts.do(t, http.MethodDelete, "/api/v1/admin/seo-managers/"+managers[0]["id"].(string), adminTok, nil), http.StatusNoContent)

	// The cookie is still signed and unexpired, but the account is gone.
	req = httptest.NewRequest(http.MethodPost, "/api/v1/blogs", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(seoCookie)
	revoked := httptest.NewRecorder()
	ts.router.ServeHTTP(revoked, req)
	expectStatus(t, revoked, http.StatusUnauthorized)
}

func TestAIEndpoints(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	adminTok := ts.token(t, "admin-uid", adminEmail)

	expectStatus(t, ts.do(t, http.MethodPost, "/api/v1/ai/blog-post", adminTok, dtos.BlogGenerationRequest{Title: "Tips", Keywords: "  "}), http.StatusBadRequest)
	if ts.llm.calls != 0 {
		t.Fatalf("model called despite empty keywords")
	}

	rec := ts.do(t, http.MethodPost, "/api/v1/ai/blog-post", adminTok, dtos.BlogGenerationRequest{Title: "Tips", Keywords: "interview"})
	expectStatus(t, rec, http.StatusOK)
	if got := decode[map[string]any](t, rec)["content"]; got != "<p>Draft</p>" {
		t.Fatalf("unexpected content %v", got)
	}

	off := newTestServer(t, withoutLLM())
	offAdmin := off.token(t, "admin-uid", adminEmail)
	expectStatus(t, off.do(t, http.MethodPost, "/api/v1/ai/job-description", offAdmin, dtos.JobDescriptionRequest{JobTitle: "SRE", Experience: "2 years"}), http.StatusServiceUnavailable)
}

func TestLeadSubmission(t *testing.T) {
	t.Parallel()

	lead := dtos.LeadRequest{Kind: "employer", Name: "Priya", Email: "priya@acme.in", Phone: "98765", CompanyName: "Acme", HiringFor: "Sales"}

	unconfigured := newTestServer(t)
	expectStatus(t, unconfigured.do(t, http.MethodPost, "/api/v1/leads", "", lead), http.StatusServiceUnavailable)
	if len(unconfigured.sender.sent) != 0 {
		t.Fatalf("lead sent without mail configuration")
	}

	configured := newTestServer(t, withMailConfig(mailer.Config{
		Transport: "gmail",
		From:      "noreply@hiringdekho.in",
		To:        []string{"sales@hiringdekho.in"},
	}))
	expectStatus(t, configured.do(t, http.MethodPost, "/api/v1/leads", "", dtos.LeadRequest{Kind: "recruiter", Name: "x", Email: "x@y.in", Phone: "1"}), http.StatusBadRequest)
	expectStatus(t, configured.do(t, http.MethodPost, "/api/v1/leads", "", lead), http.StatusAccepted)
	if len(configured.sender.sent) != 1 {
		t.Fatalf("expected one message, got %d", len(configured.sender.sent))
	}
}

func TestGoogleLoginDisabled(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	expectStatus(t, ts.do(t, http.MethodGet, "/api/v1/auth/google/login", "", nil), http.StatusServiceUnavailable)
}
