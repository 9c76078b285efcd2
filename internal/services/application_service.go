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

// ApplicationService records applications under the job post and mirrors
// them under the employer. Both writes share one transaction.
type ApplicationService struct {
	DB       *gorm.DB
	Jobs     *JobService
	Profiles *ProfileService
	Matcher  *MatcherService
	now      func() time.Time
}

func NewApplicationService(db *gorm.DB, jobs *JobService, profiles *ProfileService, matcher *MatcherService) *ApplicationService {
	return &ApplicationService{DB: db, Jobs: jobs, Profiles: profiles, Matcher: matcher, now: time.Now}
}

// Apply submits the caller's application. A second application to the same
// job returns ErrConflict.
func (s *ApplicationService) Apply(ctx context.Context, actor Actor, jobID string, req *dtos.ApplicationRequest) (*models.JobApplication, error) {
	if actor.Role != models.RoleJobSeeker || actor.UID == "" {
		return nil, ErrForbidden
	}
	post, err := s.Jobs.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	seeker, err := s.Profiles.GetJobSeeker(ctx, actor.UID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: complete your job seeker profile first", ErrInvalidInput)
		}
		return nil, err
	}

	resume := strings.TrimSpace(req.ResumeURL)
	if resume == "" {
		resume = seeker.ResumeURL
	}
	email := seeker.Email
	if email == "" {
		email = actor.Email
	}

	now := s.now().UTC()
	app := &models.JobApplication{
		ID: uuid.NewString(),
		ApplicationContent: models.ApplicationContent{
			JobPostID:      post.ID,
			EmployerID:     post.EmployerID,
			ApplicantID:    actor.UID,
			ApplicantName:  seeker.FullName,
			ApplicantEmail: email,
			JobTitle:       post.Title,
			CompanyName:    post.CompanyName,
			CoverLetter:    req.CoverLetter,
			ResumeURL:      resume,
			Status:         models.StatusApplied,
			AppliedAt:      now,
		},
		UpdatedAt: now,
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dup, err := exists(ctx, tx, &models.JobApplication{}, "job_post_id = ? AND applicant_id = ?", post.ID, actor.UID)
		if err != nil {
			return err
		}
		if dup {
			return fmt.Errorf("%w: already applied to this job", ErrConflict)
		}
		if err := tx.Create(app).Error; err != nil {
			return err
		}
		return tx.Create(&models.EmployerJobApplication{
			ApplicationID:      app.ID,
			ApplicationContent: app.ApplicationContent,
			UpdatedAt:          app.UpdatedAt,
		}).Error
	})
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("%w: already applied to this job", ErrConflict)
	}
	if err != nil {
		return nil, err
	}
	return app, nil
}

// UpdateStatus overwrites the status on both copies.
func (s *ApplicationService) UpdateStatus(ctx context.Context, actor Actor, jobID, appID, status string) (*models.JobApplication, error) {
	if !models.IsValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	post, err := s.Jobs.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !actor.canManage(post.EmployerID) {
		return nil, ErrForbidden
	}

	var app models.JobApplication
	if err := s.DB.WithContext(ctx).First(&app, "id = ? AND job_post_id = ?", appID, jobID).Error; err != nil {
		return nil, notFound(err)
	}

	now := s.now().UTC()
	cols := map[string]any{"status": status, "updated_at": now}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.JobApplication{}).Where("id = ?", appID).Updates(cols).Error; err != nil {
			return err
		}
		return tx.Model(&models.EmployerJobApplication{}).Where("application_id = ?", appID).Updates(cols).Error
	})
	if err != nil {
		return nil, err
	}
	app.Status = status
	app.UpdatedAt = now
	return &app, nil
}

// ListForJob returns a job's applications, newest first, to its owner.
func (s *ApplicationService) ListForJob(ctx context.Context, actor Actor, jobID string) ([]models.JobApplication, error) {
	post, err := s.Jobs.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if !actor.canManage(post.EmployerID) {
		return nil, ErrForbidden
	}
	var apps []models.JobApplication
	err = s.DB.WithContext(ctx).
		Where("job_post_id = ?", jobID).
		Order("applied_at DESC").
		Find(&apps).Error
	return apps, err
}

// ListForEmployer reads the employer-scoped mirror across all their jobs.
func (s *ApplicationService) ListForEmployer(ctx context.Context, employerID string) ([]models.EmployerJobApplication, error) {
	var apps []models.EmployerJobApplication
	err := s.DB.WithContext(ctx).
		Where("employer_id = ?", employerID).
		Order("applied_at DESC").
		Find(&apps).Error
	return apps, err
}

// ListForApplicant returns the caller's own applications.
func (s *ApplicationService) ListForApplicant(ctx context.Context, applicantID string) ([]models.JobApplication, error) {
	var apps []models.JobApplication
	err := s.DB.WithContext(ctx).
		Where("applicant_id = ?", applicantID).
		Order("applied_at DESC").
		Find(&apps).Error
	return apps, err
}

// Candidates joins a job's applications with applicant profiles and filters
// them for the employer.
func (s *ApplicationService) Candidates(ctx context.Context, actor Actor, jobID string, f CandidateFilter) ([]Candidate, error) {
	apps, err := s.ListForJob(ctx, actor, jobID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(apps))
	for _, a := range apps {
		ids = append(ids, a.ApplicantID)
	}
	profiles, err := s.Profiles.JobSeekersByID(ctx, ids)
	if err != nil {
		return nil, err
	}
	return s.Matcher.FilterCandidates(apps, profiles, f), nil
}
