package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hiringdekho/hiring-dekho/internal/dtos"
	"github.com/hiringdekho/hiring-dekho/internal/models"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// JobQuery filters the public job listing.
type JobQuery struct {
	Category         string
	Location         string
	Keyword          string
	EmployerID       string
	PostedWithinDays int
	Page             int
	Limit            int
}

// Page is one slice of a listing plus the total before paging.
type Page[T any] struct {
	Items   []T   `json:"items"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	HasMore bool  `json:"has_more"`
}

// JobService keeps every job post in the global table and mirrored under
// its employer. Writes touch both copies in one transaction.
type JobService struct {
	DB  *gorm.DB
	now func() time.Time
}

func NewJobService(db *gorm.DB) *JobService {
	return &JobService{DB: db, now: time.Now}
}

func (s *JobService) CreateJob(ctx context.Context, actor Actor, req *dtos.JobPostRequest) (*models.JobPost, error) {
	employerID, err := s.resolveEmployerID(actor, req.EmployerID)
	if err != nil {
		return nil, err
	}

	var employer models.Employer
	if err := s.DB.WithContext(ctx).First(&employer, "user_id = ?", employerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: employer profile %s does not exist", ErrInvalidInput, employerID)
		}
		return nil, err
	}

	companyName := strings.TrimSpace(req.CompanyName)
	if companyName == "" {
		companyName = employer.CompanyName
	}

	now := s.now().UTC()
	post := &models.JobPost{
		ID: uuid.NewString(),
		JobPostContent: models.JobPostContent{
			EmployerID:     employerID,
			CompanyName:    companyName,
			Title:          strings.TrimSpace(req.Title),
			Location:       strings.TrimSpace(req.Location),
			Category:       strings.TrimSpace(req.Category),
			EmploymentType: req.EmploymentType,
			Salary:         req.Salary,
			Experience:     req.Experience,
			Description:    req.Description,
			Requirements:   req.Requirements,
			PostDate:       now,
			SEO:            req.SEO.Fields(),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		return tx.Create(mirrorOf(post)).Error
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// UpdateJob replaces the editable content. Owner, post date and (unless
// supplied) SEO fields are kept.
func (s *JobService) UpdateJob(ctx context.Context, actor Actor, id string, req *dtos.JobPostRequest) (*models.JobPost, error) {
	post, err := s.GetJob(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.canManage(post.EmployerID) {
		return nil, ErrForbidden
	}

	if name := strings.TrimSpace(req.CompanyName); name != "" {
		post.CompanyName = name
	}
	post.Title = strings.TrimSpace(req.Title)
	post.Location = strings.TrimSpace(req.Location)
	post.Category = strings.TrimSpace(req.Category)
	post.EmploymentType = req.EmploymentType
	post.Salary = req.Salary
	post.Experience = req.Experience
	post.Description = req.Description
	post.Requirements = req.Requirements
	if req.SEO != nil {
		post.SEO = req.SEO.Fields()
	}
	post.UpdatedAt = s.now().UTC()

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(post).Error; err != nil {
			return err
		}
		return tx.Save(mirrorOf(post)).Error
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// UpdateSEO overwrites only the SEO fields of both copies.
func (s *JobService) UpdateSEO(ctx context.Context, id string, seo models.SEOFields) (*models.JobPost, error) {
	cols := map[string]any{
		"seo_meta_title":       seo.MetaTitle,
		"seo_meta_description": seo.MetaDescription,
		"seo_meta_keywords":    seo.MetaKeywords,
		"updated_at":           s.now().UTC(),
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.JobPost{}).Where("id = ?", id).Updates(cols)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Model(&models.EmployerJobPost{}).Where("job_post_id = ?", id).Updates(cols).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetJob(ctx, id)
}

// DeleteJob removes both copies of the post and every application to it.
func (s *JobService) DeleteJob(ctx context.Context, actor Actor, id string) error {
	post, err := s.GetJob(ctx, id)
	if err != nil {
		return err
	}
	if !actor.canManage(post.EmployerID) {
		return ErrForbidden
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		steps := []struct {
			model any
			where string
		}{
			{&models.EmployerJobApplication{}, "job_post_id = ?"},
			{&models.JobApplication{}, "job_post_id = ?"},
			{&models.EmployerJobPost{}, "job_post_id = ?"},
			{&models.JobPost{}, "id = ?"},
		}
		for _, st := range steps {
			if err := tx.Where(st.where, id).Delete(st.model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *JobService) GetJob(ctx context.Context, id string) (*models.JobPost, error) {
	var post models.JobPost
	if err := s.DB.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &post, nil
}

// ListJobs returns the newest posts first.
func (s *JobService) ListJobs(ctx context.Context, q JobQuery) (Page[models.JobPost], error) {
	page, limit := normalizePage(q.Page, q.Limit)
	out := Page[models.JobPost]{Page: page, Limit: limit}

	db := s.DB.WithContext(ctx).Model(&models.JobPost{})
	if v := strings.TrimSpace(q.Category); v != "" {
		db = db.Where("LOWER(category) = ?", strings.ToLower(v))
	}
	if v := strings.TrimSpace(q.EmployerID); v != "" {
		db = db.Where("employer_id = ?", v)
	}
	if v := strings.TrimSpace(q.Location); v != "" {
		db = db.Where("LOWER(location) LIKE ?", likePattern(v))
	}
	if v := strings.TrimSpace(q.Keyword); v != "" {
		p := likePattern(v)
		db = db.Where("LOWER(title) LIKE ? OR LOWER(company_name) LIKE ? OR LOWER(description) LIKE ?", p, p, p)
	}
	if q.PostedWithinDays > 0 {
		db = db.Where("post_date >= ?", s.now().UTC().AddDate(0, 0, -q.PostedWithinDays))
	}

	db = db.Session(&gorm.Session{})
	if err := db.Count(&out.Total).Error; err != nil {
		return out, err
	}
	if err := db.Order("post_date DESC").Order("id").
		Limit(limit).Offset((page - 1) * limit).
		Find(&out.Items).Error; err != nil {
		return out, err
	}
	out.HasMore = int64(page*limit) < out.Total
	return out, nil
}

// ListForEmployer reads the employer-scoped mirror.
func (s *JobService) ListForEmployer(ctx context.Context, employerID string) ([]models.EmployerJobPost, error) {
	var posts []models.EmployerJobPost
	err := s.DB.WithContext(ctx).
		Where("employer_id = ?", employerID).
		Order("post_date DESC").
		Find(&posts).Error
	return posts, err
}

func (s *JobService) resolveEmployerID(actor Actor, requested string) (string, error) {
	switch actor.Role {
	case models.RoleEmployer:
		if actor.UID == "" {
			return "", ErrForbidden
		}
		return actor.UID, nil
	case models.RoleAdmin:
		if id := strings.TrimSpace(requested); id != "" {
			return id, nil
		}
		return "", fmt.Errorf("%w: employer_id is required when posting as admin", ErrInvalidInput)
	default:
		return "", ErrForbidden
	}
}

func mirrorOf(p *models.JobPost) *models.EmployerJobPost {
	return &models.EmployerJobPost{
		JobPostID:      p.ID,
		JobPostContent: p.JobPostContent,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

func likePattern(v string) string {
	v = strings.NewReplacer(`%`, "", `_`, "").Replace(strings.ToLower(v))
	return "%" + v + "%"
}
