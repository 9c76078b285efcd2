package services

import (
	"context"
	"testing"
	"time"

	"github.com/hiringdekho/hiring-dekho/internal/dtos"
	"github.com/hiringdekho/hiring-dekho/internal/models"
)

func TestAnalyticsSummary(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	acme := seedEmployer(t, db, "emp-1", "Acme")
	globex := seedEmployer(t, db, "emp-2", "Globex")
	jobs := NewJobService(db)
	apps := NewApplicationService(db, jobs, NewProfileService(db), NewMatcherService())
	ctx := context.Background()

	jobs.now = func() time.Time { return time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC) }
	p1, _ := jobs.CreateJob(ctx, acme, jobRequest("Go Developer"))
	jobs.now = func() time.Time { return time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC) }
	if _, err := jobs.CreateJob(ctx, acme, jobRequest("SRE")); err != nil {
		t.Fatalf("CreateJob error: %v", err)
	}
	req := jobRequest("Analyst")
	req.Category = "Analytics"
	if _, err := jobs.CreateJob(ctx, globex, req); err != nil {
		t.Fatalf("CreateJob error: %v", err)
	}

	s1 := seedJobSeeker(t, db, "u-1", nil, 0)
	s2 := seedJobSeeker(t, db, "u-2", nil, 0)
	a1, _ := apps.Apply(ctx, s1, p1.ID, &dtos.ApplicationRequest{})
	if _, err := apps.Apply(ctx, s2, p1.ID, &dtos.ApplicationRequest{}); err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if _, err := apps.UpdateStatus(ctx, acme, p1.ID, a1.ID, models.StatusOffered); err != nil {
		t.Fatalf("UpdateStatus error: %v", err)
	}

	sum, err := NewAnalyticsService(db).Summary(ctx)
	if err != nil {
		t.Fatalf("Summary error: %v", err)
	}
	want := Totals{JobPosts: 3, Applications: 2, Employers: 2, JobSeekers: 2}
	if sum.Totals != want {
		t.Fatalf("totals = %+v, want %+v", sum.Totals, want)
	}
	if sum.ApplicationsByStatus[models.StatusOffered] != 1 || sum.ApplicationsByStatus[models.StatusApplied] != 1 {
		t.Fatalf("unexpected status counts %v", sum.ApplicationsByStatus)
	}
	if _, ok := sum.ApplicationsByStatus[models.StatusRejected]; !ok {
		t.Fatalf("expected every status present, got %v", sum.ApplicationsByStatus)
	}
	if sum.JobPostsByCategory["Engineering"] != 2 || sum.JobPostsByCategory["Analytics"] != 1 {
		t.Fatalf("unexpected category counts %v", sum.JobPostsByCategory)
	}
	if sum.JobPostsByMonth["2026-01"] != 1 || sum.JobPostsByMonth["2026-02"] != 2 {
		t.Fatalf("unexpected month counts %v", sum.JobPostsByMonth)
	}
	if len(sum.TopEmployers) != 2 || sum.TopEmployers[0].CompanyName != "Acme" || sum.TopEmployers[0].JobPosts != 2 {
		t.Fatalf("unexpected top employers %+v", sum.TopEmployers)
	}
}
