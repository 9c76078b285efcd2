package services

import (
	"context"
	"log"
	"strings"

	"github.com/hiringdekho/hiring-dekho/internal/auth"
	"github.com/hiringdekho/hiring-dekho/internal/models"
)

// ProfileLookup answers whether a user has a profile in either collection.
type ProfileLookup interface {
	EmployerExists(ctx context.Context, uid string) (bool, error)
	JobSeekerExists(ctx context.Context, uid string) (bool, error)
}

// SEOTokenParser verifies the SEO manager session cookie.
type SEOTokenParser interface {
	ParseSEO(token string) (string, error)
}

// SEOManagerLookup confirms an SEO manager account still exists.
type SEOManagerLookup interface {
	ManagerExists(ctx context.Context, email string) (bool, error)
}

// Session is what a request presents: an optional signed-in identity and an
// optional SEO manager cookie.
type Session struct {
	Identity *auth.Identity
	SEOToken string
}

type RoleService struct {
	AdminEmail string
	Profiles   ProfileLookup
	SEO        SEOTokenParser
	Managers   SEOManagerLookup
}

func NewRoleService(adminEmail string, profiles ProfileLookup, seo SEOTokenParser, managers SEOManagerLookup) *RoleService {
	return &RoleService{
		AdminEmail: strings.ToLower(strings.TrimSpace(adminEmail)),
		Profiles:   profiles,
		SEO:        seo,
		Managers:   managers,
	}
}

// Resolve picks the first matching role in precedence order: admin email,
// SEO manager cookie (for a manager that still exists), employer profile,
// job seeker profile. Lookup failures count as "no profile" so a flaky store
// never grants a role.
func (s *RoleService) Resolve(ctx context.Context, sess Session) models.Role {
	if sess.Identity != nil && s.AdminEmail != "" &&
		strings.ToLower(strings.TrimSpace(sess.Identity.Email)) == s.AdminEmail {
		return models.RoleAdmin
	}

	if sess.SEOToken != "" && s.SEO != nil {
		if email, err := s.SEO.ParseSEO(sess.SEOToken); err == nil && s.managerExists(ctx, email) {
			return models.RoleSEOManager
		}
	}

	if sess.Identity == nil || sess.Identity.UID == "" || s.Profiles == nil {
		return models.RoleNone
	}
	uid := sess.Identity.UID

	ok, err := s.Profiles.EmployerExists(ctx, uid)
	if err != nil {
		log.Printf("role: employer lookup for %s failed: %v", uid, err)
	} else if ok {
		return models.RoleEmployer
	}

	ok, err = s.Profiles.JobSeekerExists(ctx, uid)
	if err != nil {
		log.Printf("role: job seeker lookup for %s failed: %v", uid, err)
	} else if ok {
		return models.RoleJobSeeker
	}
	return models.RoleNone
}

func (s *RoleService) managerExists(ctx context.Context, email string) bool {
	if s.Managers == nil {
		return true
	}
	ok, err := s.Managers.ManagerExists(ctx, email)
	if err != nil {
		log.Printf("role: seo manager lookup for %s failed: %v", email, err)
		return false
	}
	return ok
}
