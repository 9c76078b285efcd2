package services

import (
	"sort"
	"strings"

	"github.com/hiringdekho/hiring-dekho/internal/models"
)

// CandidateFilter narrows an employer's applicant list. Zero values match
// everything.
type CandidateFilter struct {
	Status        string
	Skills        []string
	MinExperience int
	Location      string
	Query         string
}

type Candidate struct {
	Application   models.JobApplication `json:"application"`
	Profile       *models.JobSeeker     `json:"profile,omitempty"`
	MatchedSkills []string              `json:"matched_skills"`
}

type MatcherService struct{}

func NewMatcherService() *MatcherService {
	return &MatcherService{}
}

// SplitSkills turns "go, sql,,Docker" into trimmed, non-empty entries.
func SplitSkills(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// FilterCandidates keeps the applications that pass every set filter and
// orders them by matched skill count, then most recent first.
//
// Profile-based filters (skills, experience, location) exclude applicants
// without a profile.
func (s *MatcherService) FilterCandidates(apps []models.JobApplication, profiles map[string]models.JobSeeker, f CandidateFilter) []Candidate {
	status := strings.TrimSpace(f.Status)
	location := strings.ToLower(strings.TrimSpace(f.Location))
	query := strings.ToLower(strings.TrimSpace(f.Query))
	wanted := make([]string, 0, len(f.Skills))
	for _, sk := range f.Skills {
		if sk = strings.ToLower(strings.TrimSpace(sk)); sk != "" {
			wanted = append(wanted, sk)
		}
	}

	out := make([]Candidate, 0, len(apps))
	for _, app := range apps {
		if status != "" && !strings.EqualFold(app.Status, status) {
			continue
		}

		var profile *models.JobSeeker
		if p, ok := profiles[app.ApplicantID]; ok {
			profile = &p
		}
		needsProfile := len(wanted) > 0 || f.MinExperience > 0 || location != ""
		if needsProfile && profile == nil {
			continue
		}

		var matched []string
		if profile != nil {
			matched = matchSkills(profile.Skills, wanted)
		}
		if len(wanted) > 0 && len(matched) == 0 {
			continue
		}
		if f.MinExperience > 0 && profile.ExperienceYears < f.MinExperience {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(profile.Location), location) {
			continue
		}
		if query != "" && !strings.Contains(candidateText(app, profile), query) {
			continue
		}

		if matched == nil {
			matched = []string{}
		}
		out = append(out, Candidate{Application: app, Profile: profile, MatchedSkills: matched})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if len(out[i].MatchedSkills) != len(out[j].MatchedSkills) {
			return len(out[i].MatchedSkills) > len(out[j].MatchedSkills)
		}
		return out[i].Application.AppliedAt.After(out[j].Application.AppliedAt)
	})
	return out
}

// matchSkills returns the profile's spelling of every wanted skill it has.
func matchSkills(have []string, wanted []string) []string {
	if len(wanted) == 0 {
		return nil
	}
	var matched []string
	for _, h := range have {
		lh := strings.ToLower(strings.TrimSpace(h))
		for _, w := range wanted {
			if lh == w {
				matched = append(matched, h)
				break
			}
		}
	}
	return matched
}

func candidateText(app models.JobApplication, p *models.JobSeeker) string {
	parts := []string{app.ApplicantName, app.ApplicantEmail, app.CoverLetter}
	if p != nil {
		parts = append(parts, p.FullName, p.Headline, p.Summary, strings.Join(p.Skills, " "))
	}
	return strings.ToLower(strings.Join(parts, " "))
}
