package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/hiringdekho/hiring-dekho/internal/models"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLLMNotConfigured   = errors.New("ai generation not configured")
)

// Actor is the caller an operation runs on behalf of.
type Actor struct {
	UID   string
	Email string
	Name  string
	Role  models.Role
}

func (a Actor) IsAdmin() bool { return a.Role == models.RoleAdmin }

// canManage reports whether a may change records owned by employerID.
func (a Actor) canManage(employerID string) bool {
	if a.IsAdmin() {
		return true
	}
	return a.Role == models.RoleEmployer && a.UID != "" && a.UID == employerID
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
