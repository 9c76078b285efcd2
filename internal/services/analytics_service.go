package services

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/hiringdekho/hiring-dekho/internal/models"
)

const topEmployerCount = 5

type Totals struct {
	JobPosts     int64 `json:"job_posts"`
	Applications int64 `json:"applications"`
	Employers    int64 `json:"employers"`
	JobSeekers   int64 `json:"job_seekers"`
	Blogs        int64 `json:"blogs"`
}

type EmployerCount struct {
	EmployerID  string `json:"employer_id"`
	CompanyName string `json:"company_name"`
	JobPosts    int    `json:"job_posts"`
}

// Summary is the admin dashboard payload.
type Summary struct {
	Totals               Totals          `json:"totals"`
	ApplicationsByStatus map[string]int  `json:"applications_by_status"`
	JobPostsByCategory   map[string]int  `json:"job_posts_by_category"`
	JobPostsByMonth      map[string]int  `json:"job_posts_by_month"`
	TopEmployers         []EmployerCount `json:"top_employers"`
	GeneratedAt          time.Time       `json:"generated_at"`
}

type AnalyticsService struct {
	DB  *gorm.DB
	now func() time.Time
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{DB: db, now: time.Now}
}

// Summary loads every collection concurrently and aggregates in memory.
func (s *AnalyticsService) Summary(ctx context.Context) (*Summary, error) {
	var (
		posts    []models.JobPost
		statuses []string
		totals   Totals
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.DB.WithContext(ctx).
			Select("id", "employer_id", "company_name", "category", "post_date").
			Find(&posts).Error
	})
	g.Go(func() error {
		return s.DB.WithContext(ctx).Model(&models.JobApplication{}).Pluck("status", &statuses).Error
	})
	g.Go(func() error {
		return s.DB.WithContext(ctx).Model(&models.Employer{}).Count(&totals.Employers).Error
	})
	g.Go(func() error {
		return s.DB.WithContext(ctx).Model(&models.JobSeeker{}).Count(&totals.JobSeekers).Error
	})
	g.Go(func() error {
		return s.DB.WithContext(ctx).Model(&models.Blog{}).Count(&totals.Blogs).Error
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &Summary{
		ApplicationsByStatus: make(map[string]int, len(models.ApplicationStatuses)),
		JobPostsByCategory:   make(map[string]int),
		JobPostsByMonth:      make(map[string]int),
		GeneratedAt:          s.now().UTC(),
	}
	totals.JobPosts = int64(len(posts))
	totals.Applications = int64(len(statuses))
	out.Totals = totals

	for _, st := range models.ApplicationStatuses {
		out.ApplicationsByStatus[st] = 0
	}
	for _, st := range statuses {
		if st == "" {
			st = models.StatusApplied
		}
		out.ApplicationsByStatus[st]++
	}

	perEmployer := make(map[string]*EmployerCount)
	for _, p := range posts {
		cat := p.Category
		if cat == "" {
			cat = "Uncategorized"
		}
		out.JobPostsByCategory[cat]++
		if !p.PostDate.IsZero() {
			out.JobPostsByMonth[p.PostDate.UTC().Format("2006-01")]++
		}
		ec, ok := perEmployer[p.EmployerID]
		if !ok {
			ec = &EmployerCount{EmployerID: p.EmployerID, CompanyName: p.CompanyName}
			perEmployer[p.EmployerID] = ec
		}
		ec.JobPosts++
	}

	top := make([]EmployerCount, 0, len(perEmployer))
	for _, ec := range perEmployer {
		top = append(top, *ec)
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].JobPosts != top[j].JobPosts {
			return top[i].JobPosts > top[j].JobPosts
		}
		return top[i].CompanyName < top[j].CompanyName
	})
	if len(top) > topEmployerCount {
		top = top[:topEmployerCount]
	}
	out.TopEmployers = top
	return out, nil
}
