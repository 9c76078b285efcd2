package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/hiringdekho/hiring-dekho/internal/auth"
	"github.com/hiringdekho/hiring-dekho/internal/dtos"
	"github.com/hiringdekho/hiring-dekho/internal/models"
)

// ProfileService stores employer and job seeker profiles. A user id may own
// at most one of the two.
type ProfileService struct {
	DB  *gorm.DB
	now func() time.Time
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{DB: db, now: time.Now}
}

func (s *ProfileService) EmployerExists(ctx context.Context, uid string) (bool, error) {
	return exists(ctx, s.DB, &models.Employer{}, "user_id = ?", uid)
}

func (s *ProfileService) JobSeekerExists(ctx context.Context, uid string) (bool, error) {
	return exists(ctx, s.DB, &models.JobSeeker{}, "user_id = ?", uid)
}

func (s *ProfileService) GetEmployer(ctx context.Context, uid string) (*models.Employer, error) {
	var e models.Employer
	if err := s.DB.WithContext(ctx).First(&e, "user_id = ?", uid).Error; err != nil {
		return nil, notFound(err)
	}
	return &e, nil
}

func (s *ProfileService) GetJobSeeker(ctx context.Context, uid string) (*models.JobSeeker, error) {
	var js models.JobSeeker
	if err := s.DB.WithContext(ctx).First(&js, "user_id = ?", uid).Error; err != nil {
		return nil, notFound(err)
	}
	return &js, nil
}

// JobSeekersByID loads the profiles for ids, keyed by user id. Missing ids
// are simply absent from the map.
func (s *ProfileService) JobSeekersByID(ctx context.Context, ids []string) (map[string]models.JobSeeker, error) {
	out := make(map[string]models.JobSeeker, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []models.JobSeeker
	if err := s.DB.WithContext(ctx).Where("user_id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.UserID] = r
	}
	return out, nil
}

// SaveEmployer creates or replaces the caller's employer profile.
func (s *ProfileService) SaveEmployer(ctx context.Context, id auth.Identity, req *dtos.EmployerProfileRequest) (*models.Employer, error) {
	if id.UID == "" {
		return nil, fmt.Errorf("%w: missing user id", ErrInvalidInput)
	}
	var out *models.Employer
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := exists(ctx, tx, &models.JobSeeker{}, "user_id = ?", id.UID)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: account already has a job seeker profile", ErrConflict)
		}

		var e models.Employer
		err = tx.First(&e, "user_id = ?", id.UID).Error
		isNew := errors.Is(err, gorm.ErrRecordNotFound)
		if err != nil && !isNew {
			return err
		}
		e.UserID = id.UID
		e.Email = id.Email
		e.CompanyName = strings.TrimSpace(req.CompanyName)
		e.ContactName = req.ContactName
		e.Phone = req.Phone
		e.Website = req.Website
		e.Industry = req.Industry
		e.CompanySize = req.CompanySize
		e.Location = req.Location
		e.CompanyDescription = req.CompanyDescription
		e.LogoURL = req.LogoURL

		if isNew {
			e.CreatedAt = s.now()
			err = tx.Create(&e).Error
		} else {
			err = tx.Save(&e).Error
		}
		if err != nil {
			return err
		}
		out = &e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SaveJobSeeker creates or replaces the caller's job seeker profile.
func (s *ProfileService) SaveJobSeeker(ctx context.Context, id auth.Identity, req *dtos.JobSeekerProfileRequest) (*models.JobSeeker, error) {
	if id.UID == "" {
		return nil, fmt.Errorf("%w: missing user id", ErrInvalidInput)
	}
	var out *models.JobSeeker
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := exists(ctx, tx, &models.Employer{}, "user_id = ?", id.UID)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: account already has an employer profile", ErrConflict)
		}

		var js models.JobSeeker
		err = tx.First(&js, "user_id = ?", id.UID).Error
		isNew := errors.Is(err, gorm.ErrRecordNotFound)
		if err != nil && !isNew {
			return err
		}
		js.UserID = id.UID
		js.Email = id.Email
		js.FullName = strings.TrimSpace(req.FullName)
		js.Phone = req.Phone
		js.Location = req.Location
		js.Headline = req.Headline
		js.Summary = req.Summary
		js.Skills = normalizeSkills(req.Skills)
		js.ExperienceYears = req.ExperienceYears
		js.Experience = req.Experience
		js.Education = req.Education
		js.ResumeURL = req.ResumeURL

		if isNew {
			js.CreatedAt = s.now()
			err = tx.Create(&js).Error
		} else {
			err = tx.Save(&js).Error
		}
		if err != nil {
			return err
		}
		out = &js
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func exists(ctx context.Context, db *gorm.DB, model any, query string, args ...any) (bool, error) {
	var n int64
	if err := db.WithContext(ctx).Model(model).Where(query, args...).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// normalizeSkills trims, drops blanks and de-duplicates case-insensitively,
// keeping the first spelling seen.
func normalizeSkills(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}
