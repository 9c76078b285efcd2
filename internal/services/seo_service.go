package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/hiringdekho/hiring-dekho/internal/dtos"
	"github.com/hiringdekho/hiring-dekho/internal/models"
)

const (
	minPasswordLength = 8
	// bcrypt refuses longer inputs.
	maxPasswordBytes  = 72
)

// SEOService manages SEO manager accounts, created by the admin.
type SEOService struct {
	DB   *gorm.DB
	cost int
	now  func() time.Time
}

func NewSEOService(db *gorm.DB) *SEOService {
	return &SEOService{DB: db, cost: bcrypt.DefaultCost, now: time.Now}
}

func (s *SEOService) CreateManager(ctx context.Context, req *dtos.SEOManagerRequest) (*models.SEOManager, error) {
	if len(req.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	if len(req.Password) > maxPasswordBytes {
		return nil, fmt.Errorf("%w: password must be at most %d bytes", ErrInvalidInput, maxPasswordBytes)
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	taken, err := exists(ctx, s.DB, &models.SEOManager{}, "email = ?", email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: %s is already an seo manager", ErrConflict, email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	m := &models.SEOManager{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.DB.WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s is already an seo manager", ErrConflict, email)
		}
		return nil, err
	}
	return m, nil
}

// Authenticate returns ErrInvalidCredentials for unknown emails and wrong
// passwords alike.
func (s *SEOService) Authenticate(ctx context.Context, email, password string) (*models.SEOManager, error) {
	var m models.SEOManager
	err := s.DB.WithContext(ctx).First(&m, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &m, nil
}

// ManagerExists reports whether email still has an SEO manager account.
func (s *SEOService) ManagerExists(ctx context.Context, email string) (bool, error) {
	return exists(ctx, s.DB, &models.SEOManager{}, "email = ?", strings.ToLower(strings.TrimSpace(email)))
}

func (s *SEOService) ListManagers(ctx context.Context) ([]models.SEOManager, error) {
	var out []models.SEOManager
	err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (s *SEOService) DeleteManager(ctx context.Context, id string) error {
	res := s.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.SEOManager{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
