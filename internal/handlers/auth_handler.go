package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hiringdekho/hiring-dekho/internal/auth"
	"github.com/hiringdekho/hiring-dekho/internal/dtos"
	"github.com/hiringdekho/hiring-dekho/internal/middleware"
	"github.com/hiringdekho/hiring-dekho/internal/services"
)

const (
	oauthStateCookie = "hd_oauth_state"
	oauthStateMaxAge = 600
)

type AuthHandler struct {
	Sessions *auth.SessionManager
	Google   *auth.GoogleLogin
	Roles    *services.RoleService
	SEO      *services.SEOService
}

func NewAuthHandler(sessions *auth.SessionManager, google *auth.GoogleLogin, roles *services.RoleService, seo *services.SEOService) *AuthHandler {
	return &AuthHandler{Sessions: sessions, Google: google, Roles: roles, SEO: seo}
}

// GoogleLogin redirects the browser to Google's consent screen.
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	if h.Google == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Google sign-in is not configured"})
		return
	}
	state := uuid.NewString()
	h.setCookie(c, oauthStateCookie, state, oauthStateMaxAge)
	c.Redirect(http.StatusFound, h.Google.AuthURL(state))
}

// GoogleCallback finishes sign-in, sets the session cookie and returns the
// token with the caller's role.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	if h.Google == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Google sign-in is not configured"})
		return
	}
	want, err := c.Cookie(oauthStateCookie)
	if err != nil || want == "" || c.Query("state") != want {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid OAuth state"})
		return
	}
	h.setCookie(c, oauthStateCookie, "", -1)

	id, err := h.Google.Exchange(c.Request.Context(), c.Query("code"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Google sign-in failed: " + err.Error()})
		return
	}
	h.startSession(c, id)
}

func (h *AuthHandler) startSession(c *gin.Context, id auth.Identity) {
	token, err := h.Sessions.Issue(id)
	if err != nil {
		respondError(c, "Failed to start session", err)
		return
	}
	h.setCookie(c, middleware.SessionCookie, token, int(h.Sessions.TTL().Seconds()))
	role := h.Roles.Resolve(c.Request.Context(), services.Session{Identity: &id})
	c.JSON(http.StatusOK, gin.H{"token": token, "identity": id, "role": role})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.setCookie(c, middleware.SessionCookie, "", -1)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Me reports who the caller is. It never fails; anonymous callers get role none.
func (h *AuthHandler) Me(c *gin.Context) {
	resp := gin.H{"role": middleware.CurrentRole(c)}
	if id, ok := middleware.CurrentIdentity(c); ok {
		resp["identity"] = id
	}
	if email := middleware.SEOEmail(c); email != "" {
		resp["seo_manager"] = email
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) SEOLogin(c *gin.Context) {
	var req dtos.SEOLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	m, err := h.SEO.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, "SEO sign-in failed", err)
		return
	}
	token, err := h.Sessions.IssueSEO(m.Email)
	if err != nil {
		respondError(c, "Failed to start session", err)
		return
	}
	h.setCookie(c, middleware.SEOSessionCookie, token, int(h.Sessions.TTL().Seconds()))
	c.JSON(http.StatusOK, gin.H{"manager": m})
}

func (h *AuthHandler) SEOLogout(c *gin.Context) {
	h.setCookie(c, middleware.SEOSessionCookie, "", -1)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *AuthHandler) setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", c.Request.TLS != nil, true)
}
