package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/prompts"

	"github.com/hiringdekho/hiring-dekho/internal/dtos"
	"github.com/hiringdekho/hiring-dekho/internal/htmlutil"
	"github.com/hiringdekho/hiring-dekho/internal/models"
)

// Completer sends one prompt to a model and returns its text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// GeminiCompleter runs prompts against Gemini through langchaingo.
type GeminiCompleter struct {
	Client llms.Model
}

func NewGeminiCompleter(ctx context.Context, apiKey, model string) (*GeminiCompleter, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: GEMINI_API_KEY is empty", ErrLLMNotConfigured)
	}
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiCompleter{Client: llm}, nil
}

func (g *GeminiCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, g.Client, prompt)
}

type ResumeSummary struct {
	Summary string `json:"summary"`
}

type JobDescription struct {
	Description  string `json:"description"`
	Requirements string `json:"requirements"`
}

type JobRecommendations struct {
	JobRecommendations string `json:"jobRecommendations"`
}

type BlogDraft struct {
	Content string `json:"content"`
}

const resumeSummaryPrompt = `You are a professional resume writer for the Indian job market.
Write a concise, first-person professional summary (3 to 5 sentences) for a candidate
with the following background. Do not invent employers, degrees or numbers.

Work experience (JSON):
{{.workExperience}}

Education (JSON):
{{.education}}

Respond with valid JSON only, no markdown, in the form {"summary": "..."}.`

const jobDescriptionPrompt = `You are an HR specialist writing a job posting for an Indian job portal.
Draft a job description for the role below.

Job title: {{.jobTitle}}
Experience required: {{.experience}}

"description" is two short paragraphs about the role and its responsibilities.
"requirements" is a newline separated list of must-have skills and qualifications.
Respond with valid JSON only, no markdown, in the form {"description": "...", "requirements": "..."}.`

const jobRecommendationPrompt = `You are a career advisor on an Indian job portal.
Recommend which of the open jobs below, and what kinds of roles in general, this
candidate should apply to next. Explain each recommendation in one sentence.

Candidate profile (JSON):
{{.userProfile}}

Recent searches:
{{.searchHistory}}

Open jobs (JSON):
{{.openJobs}}

Respond with valid JSON only, no markdown, in the form {"jobRecommendations": "..."}.`

const blogPostPrompt = `You are a content writer for Hiring Dekho, an Indian job portal.
Write an engaging, SEO friendly blog post of about 600 words.

Title: {{.title}}
Keywords: {{.keywords}}

Use the keywords naturally. Format the body as HTML using only h2, h3, p, ul, ol, li,
strong and em tags. Do not include html, head or body tags.
Respond with valid JSON only, no markdown, in the form {"content": "..."}.`

var (
	resumeSummaryTemplate     = prompts.NewPromptTemplate(resumeSummaryPrompt, []string{"workExperience", "education"})
	jobDescriptionTemplate    = prompts.NewPromptTemplate(jobDescriptionPrompt, []string{"jobTitle", "experience"})
	jobRecommendationTemplate = prompts.NewPromptTemplate(jobRecommendationPrompt, []string{"userProfile", "searchHistory", "openJobs"})
	blogPostTemplate          = prompts.NewPromptTemplate(blogPostPrompt, []string{"title", "keywords"})
)

const recommendationJobLimit = 20

// LLMService holds the generation flows. A nil Completer disables them.
type LLMService struct {
	Client   Completer
	Profiles *ProfileService
	Jobs     *JobService
}

func NewLLMService(client Completer, profiles *ProfileService, jobs *JobService) *LLMService {
	return &LLMService{Client: client, Profiles: profiles, Jobs: jobs}
}

// SummarizeResume drafts a profile summary. Empty input falls back to the
// caller's saved profile.
func (s *LLMService) SummarizeResume(ctx context.Context, uid string, req *dtos.ResumeSummaryRequest) (*ResumeSummary, error) {
	work, edu := req.WorkExperience, req.Education
	if len(work) == 0 && len(edu) == 0 && s.Profiles != nil {
		p, err := s.Profiles.GetJobSeeker(ctx, uid)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		if p != nil {
			work, edu = p.Experience, p.Education
		}
	}
	if len(work) == 0 && len(edu) == 0 {
		return nil, fmt.Errorf("%w: work experience or education is required", ErrInvalidInput)
	}

	var out ResumeSummary
	err := s.generate(ctx, "resume-summary", resumeSummaryTemplate, map[string]any{
		"workExperience": toJSON(work),
		"education":      toJSON(edu),
	}, &out)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(out.Summary) == "" {
		return nil, fmt.Errorf("resume-summary: model returned an empty summary")
	}
	return &out, nil
}

func (s *LLMService) GenerateJobDescription(ctx context.Context, req *dtos.JobDescriptionRequest) (*JobDescription, error) {
	var out JobDescription
	err := s.generate(ctx, "job-description", jobDescriptionTemplate, map[string]any{
		"jobTitle":   strings.TrimSpace(req.JobTitle),
		"experience": strings.TrimSpace(req.Experience),
	}, &out)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(out.Description) == "" {
		return nil, fmt.Errorf("job-description: model returned an empty description")
	}
	return &out, nil
}

// RecommendJobs uses the caller's profile, their recent searches and the
// newest open jobs.
func (s *LLMService) RecommendJobs(ctx context.Context, uid string, req *dtos.JobRecommendationRequest) (*JobRecommendations, error) {
	if s.Client == nil {
		return nil, ErrLLMNotConfigured
	}
	profile, err := s.Profiles.GetJobSeeker(ctx, uid)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: complete your job seeker profile first", ErrInvalidInput)
		}
		return nil, err
	}
	open, err := s.Jobs.ListJobs(ctx, JobQuery{Limit: recommendationJobLimit})
	if err != nil {
		return nil, err
	}

	history := "none"
	if len(req.SearchHistory) > 0 {
		history = strings.Join(req.SearchHistory, "\n")
	}

	var out JobRecommendations
	err = s.generate(ctx, "job-recommendation", jobRecommendationTemplate, map[string]any{
		"userProfile":   toJSON(profileForPrompt(profile)),
		"searchHistory": history,
		"openJobs":      toJSON(jobsForPrompt(open.Items)),
	}, &out)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(out.JobRecommendations) == "" {
		return nil, fmt.Errorf("job-recommendation: model returned no recommendations")
	}
	return &out, nil
}

// GenerateBlogPost returns sanitized HTML ready for BlogService.
func (s *LLMService) GenerateBlogPost(ctx context.Context, req *dtos.BlogGenerationRequest) (*BlogDraft, error) {
	var out BlogDraft
	err := s.generate(ctx, "blog-post", blogPostTemplate, map[string]any{
		"title":    strings.TrimSpace(req.Title),
		"keywords": strings.TrimSpace(req.Keywords),
	}, &out)
	if err != nil {
		return nil, err
	}
	clean := htmlutil.Sanitize(out.Content)
	if clean == "" {
		return nil, fmt.Errorf("blog-post: model returned empty content")
	}
	out.Content = clean
	return &out, nil
}

func (s *LLMService) generate(ctx context.Context, flow string, tmpl prompts.PromptTemplate, vars map[string]any, out any) error {
	if s.Client == nil {
		return ErrLLMNotConfigured
	}
	prompt, err := tmpl.Format(vars)
	if err != nil {
		return fmt.Errorf("%s: format prompt: %w", flow, err)
	}
	resp, err := s.Client.Complete(ctx, prompt)
	if err != nil {
		log.Printf("llm: %s failed: %v", flow, err)
		return fmt.Errorf("%s: %w", flow, err)
	}
	if err := json.Unmarshal([]byte(extractJSON(resp)), out); err != nil {
		log.Printf("llm: %s returned unparseable output: %v", flow, err)
		return fmt.Errorf("%s: parse model output: %w", flow, err)
	}
	return nil
}

// extractJSON strips markdown code fences and any chatter around the first
// JSON object in s.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return strings.TrimSpace(s)
}

func toJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "[]"
	}
	return string(b)
}

func profileForPrompt(p *models.JobSeeker) map[string]any {
	return map[string]any{
		"headline":         p.Headline,
		"summary":          p.Summary,
		"location":         p.Location,
		"skills":           p.Skills,
		"experience_years": p.ExperienceYears,
		"experience":       p.Experience,
		"education":        p.Education,
	}
}

func jobsForPrompt(posts []models.JobPost) []map[string]string {
	out := make([]map[string]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, map[string]string{
			"id":       p.ID,
			"title":    p.Title,
			"company":  p.CompanyName,
			"location": p.Location,
			"category": p.Category,
		})
	}
	return out
}
