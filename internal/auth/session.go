package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
)

const (
	kindUser       = "user"
	kindSEOManager = "seo_manager"
)

// ErrInvalidSession is returned for tokens that are malformed, expired,
// signed with another key or of the wrong kind.
var ErrInvalidSession = errors.New("invalid session")

// Identity is the signed-in user behind a request.
type Identity struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// SessionManager signs and verifies the HS256 session tokens.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionManager(secret string, ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL is how long issued tokens stay valid.
func (m *SessionManager) TTL() time.Duration { return m.ttl }

// Issue returns a user session token for id.
func (m *SessionManager) Issue(id Identity) (string, error) {
	if id.UID == "" {
		return "", errors.New("identity without uid")
	}
	now := m.now()
	claims := jwt.MapClaims{
		"kind":  kindUser,
		"sub":   id.UID,
		"email": id.Email,
		"name":  id.Name,
		"iat":   now.Unix(),
		"exp":   now.Add(m.ttl).Unix(),
	}
	return m.sign(claims)
}

// Parse verifies a user session token and returns its identity.
func (m *SessionManager) Parse(token string) (Identity, error) {
	claims, err := m.parse(token, kindUser)
	if err != nil {
		return Identity{}, err
	}
	uid, _ := claims["sub"].(string)
	if uid == "" {
		return Identity{}, ErrInvalidSession
	}
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	return Identity{UID: uid, Email: email, Name: name}, nil
}

// IssueSEO returns the token stored in the SEO manager session cookie.
func (m *SessionManager) IssueSEO(email string) (string, error) {
	if email == "" {
		return "", errors.New("seo session without email")
	}
	now := m.now()
	claims := jwt.MapClaims{
		"kind":        kindSEOManager,
		"seo_manager": email,
		"iat":         now.Unix(),
		"exp":         now.Add(m.ttl).Unix(),
	}
	return m.sign(claims)
}

// ParseSEO verifies an SEO manager session token and returns the manager's email.
func (m *SessionManager) ParseSEO(token string) (string, error) {
	claims, err := m.parse(token, kindSEOManager)
	if err != nil {
		return "", err
	}
	email, _ := claims["seo_manager"].(string)
	if email == "" {
		return "", ErrInvalidSession
	}
	return email, nil
}

func (m *SessionManager) sign(claims jwt.MapClaims) (string, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return signed, nil
}

func (m *SessionManager) parse(token, kind string) (jwt.MapClaims, error) {
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	if token == "" {
		return nil, ErrInvalidSession
	}
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidSession
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidSession
	}
	if k, _ := claims["kind"].(string); k != kind {
		return nil, ErrInvalidSession
	}
	return claims, nil
}
