package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hiringdekho/hiring-dekho/internal/auth"
	"github.com/hiringdekho/hiring-dekho/internal/models"
	"github.com/hiringdekho/hiring-dekho/internal/services"
)

const (
	SessionCookie    = "hd_session"
	SEOSessionCookie = "hd_seo_session"

	identityKey = "identity"
	roleKey     = "role"
	seoEmailKey = "seo_email"
)

// SessionParser verifies both kinds of session token.
type SessionParser interface {
	Parse(token string) (auth.Identity, error)
	ParseSEO(token string) (string, error)
}

type RoleResolver interface {
	Resolve(ctx context.Context, sess services.Session) models.Role
}

// Session reads the bearer token (or session cookie) and the SEO cookie,
// resolves the caller's role and stores both on the context. It never
// rejects a request; use RequireRole for that.
func Session(tokens SessionParser, roles RoleResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sess services.Session

		token := c.GetHeader("Authorization")
		if !strings.HasPrefix(token, "Bearer ") {
			token, _ = c.Cookie(SessionCookie)
		}
		if token != "" {
			if id, err := tokens.Parse(token); err == nil {
				sess.Identity = &id
				c.Set(identityKey, id)
			}
		}

		if seo, err := c.Cookie(SEOSessionCookie); err == nil && seo != "" {
			sess.SEOToken = seo
			if email, err := tokens.ParseSEO(seo); err == nil {
				c.Set(seoEmailKey, email)
			}
		}

		c.Set(roleKey, roles.Resolve(c.Request.Context(), sess))
		c.Next()
	}
}

// RequireRole aborts with 401 when the caller has no role and 403 when the
// role is not one of allowed.
func RequireRole(allowed ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := CurrentRole(c)
		if role == models.RoleNone {
			if _, ok := CurrentIdentity(c); !ok {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Sign in required"})
				return
			}
		}
		for _, r := range allowed {
			if r == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Permission denied"})
	}
}

// RequireIdentity only checks that a user is signed in, whatever their role.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentIdentity(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Sign in required"})
			return
		}
		c.Next()
	}
}

func CurrentIdentity(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return auth.Identity{}, false
	}
	id, ok := v.(auth.Identity)
	return id, ok
}

func CurrentRole(c *gin.Context) models.Role {
	if v, ok := c.Get(roleKey); ok {
		if r, ok := v.(models.Role); ok {
			return r
		}
	}
	return models.RoleNone
}

// SEOEmail is the signed-in SEO manager's email, if any.
func SEOEmail(c *gin.Context) string {
	return c.GetString(seoEmailKey)
}

// CurrentActor builds the services.Actor for the request.
func CurrentActor(c *gin.Context) services.Actor {
	id, _ := CurrentIdentity(c)
	actor := services.Actor{UID: id.UID, Email: id.Email, Name: id.Name, Role: CurrentRole(c)}
	if actor.Role == models.RoleSEOManager && actor.Email == "" {
		actor.Email = SEOEmail(c)
	}
	return actor
}
