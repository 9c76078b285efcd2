package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hiringdekho/hiring-dekho/internal/auth"
	"github.com/hiringdekho/hiring-dekho/internal/models"
	"github.com/hiringdekho/hiring-dekho/internal/services"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type fixedRoles map[string]models.Role

func (f fixedRoles) Resolve(_ context.Context, sess services.Session) models.Role {
	if sess.SEOToken != "" {
		return models.RoleSEOManager
	}
	if sess.Identity == nil {
		return models.RoleNone
	}
	return f[sess.Identity.UID]
}

func newTestRouter(t *testing.T, handlers ...gin.HandlerFunc) (*gin.Engine, *auth.SessionManager) {
	t.Helper()

	sessions := auth.NewSessionManager("test-secret", time.Hour)
	roles := fixedRoles{"emp": models.RoleEmployer, "seeker": models.RoleJobSeeker, "new": models.RoleNone}

	r := gin.New()
	r.Use(Session(sessions, roles))
	chain := append(handlers, func(c *gin.Context) {
		actor := CurrentActor(c)
		c.JSON(http.StatusOK, gin.H{"role": actor.Role, "uid": actor.UID, "email": actor.Email})
	})
	r.GET("/probe", chain...)
	return r, sessions
}

func issue(t *testing.T, m *auth.SessionManager, uid string) string {
	t.Helper()
	tok, err := m.Issue(auth.Identity{UID: uid, Email: uid + "@example.com"})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	return tok
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	r, sessions := newTestRouter(t, RequireRole(models.RoleEmployer, models.RoleAdmin))

	cases := []struct {
		name   string
		setup  func(req *http.Request)
		status int
	}{
		{"anonymous", func(*http.Request) {}, http.StatusUnauthorized},
		{"garbage token", func(req *http.Request) { req.Header.Set("Authorization", "Bearer nope") }, http.StatusUnauthorized},
		{"signed in without profile", func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+issue(t, sessions, "new"))
		}, http.StatusForbidden},
		{"wrong role", func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+issue(t, sessions, "seeker"))
		}, http.StatusForbidden},
		{"employer via header", func(req *http.Request) {
			req.Header.Set("Authorization", "Bearer "+issue(t, sessions, "emp"))
		}, http.StatusOK},
		{"employer via cookie", func(req *http.Request) {
			req.AddCookie(&http.Cookie{Name: SessionCookie, Value: issue(t, sessions, "emp")})
		}, http.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		tc.setup(req)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != tc.status {
			t.Errorf("%s: got %d, want %d (%s)", tc.name, rec.Code, tc.status, rec.Body.String())
		}
	}
}

func TestSEOCookieSetsActorEmail(t *testing.T) {
	t.Parallel()

	r, sessions := newTestRouter(t, RequireRole(models.RoleSEOManager))
	tok, err := sessions.IssueSEO("seo@hiringdekho.in")
	if err != nil {
		t.Fatalf("IssueSEO error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.AddCookie(&http.Cookie{Name: SEOSessionCookie, Value: tok})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if want := `"email":"seo@hiringdekho.in"`; !strings.Contains(rec.Body.String(), want) {
		t.Fatalf("expected %s in %s", want, rec.Body.String())
	}
}

func TestRequireIdentity(t *testing.T) {
	t.Parallel()

	r, sessions := newTestRouter(t, RequireIdentity())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/probe", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+issue(t, sessions, "new"))
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for signed-in user without profile, got %d", rec.Code)
	}
}
