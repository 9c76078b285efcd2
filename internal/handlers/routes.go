package handlers

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/hiringdekho/hiring-dekho/internal/auth"
	"github.com/hiringdekho/hiring-dekho/internal/dtos"
	"github.com/hiringdekho/hiring-dekho/internal/middleware"
	"github.com/hiringdekho/hiring-dekho/internal/models"
	"github.com/hiringdekho/hiring-dekho/internal/services"
)

// Deps is everything the router needs. Google may be nil when sign-in is
// not configured.
type Deps struct {
	Sessions     *auth.SessionManager
	Google       *auth.GoogleLogin
	Roles        *services.RoleService
	Jobs         *services.JobService
	Applications *services.ApplicationService
	Profiles     *services.ProfileService
	Blogs        *services.BlogService
	SEO          *services.SEOService
	Analytics    *services.AnalyticsService
	LLM          *services.LLMService
	Leads        *services.LeadService
	CORSOrigins  []string
}

func NewRouter(d Deps) *gin.Engine {
	if err := dtos.RegisterValidators(); err != nil {
		log.Fatalf("register validators: %v", err)
	}

	authHandler := NewAuthHandler(d.Sessions, d.Google, d.Roles, d.SEO)
	jobHandler := NewJobHandler(d.Jobs)
	appHandler := NewApplicationHandler(d.Applications)
	profileHandler := NewProfileHandler(d.Profiles)
	blogHandler := NewBlogHandler(d.Blogs)
	adminHandler := NewAdminHandler(d.SEO, d.Analytics)
	aiHandler := NewAIHandler(d.LLM)
	leadHandler := NewLeadHandler(d.Leads)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	config := cors.DefaultConfig()
	if len(d.CORSOrigins) == 0 {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = d.CORSOrigins
		config.AllowCredentials = true
	}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.ExposeHeaders = []string{"X-Total", "X-Page", "X-Limit", "X-Has-More"}
	r.Use(cors.New(config))

	var (
		admin    = middleware.RequireRole(models.RoleAdmin)
		employer = middleware.RequireRole(models.RoleEmployer)
		seeker   = middleware.RequireRole(models.RoleJobSeeker)
		owner    = middleware.RequireRole(models.RoleEmployer, models.RoleAdmin)
		content  = middleware.RequireRole(models.RoleAdmin, models.RoleSEOManager)
		signedIn = middleware.RequireIdentity()
	)

	api := r.Group("/api/v1")
	api.Use(middleware.Session(d.Sessions, d.Roles))
	{
		api.GET("/health", HealthCheck)

		// Sign-in
		api.GET("/auth/google/login", authHandler.GoogleLogin)
		api.GET("/auth/google/callback", authHandler.GoogleCallback)
		api.POST("/auth/logout", authHandler.Logout)
		api.GET("/me", authHandler.Me)
		api.POST("/seo/login", authHandler.SEOLogin)
		api.POST("/seo/logout", authHandler.SEOLogout)

		// Job posts
		api.GET("/jobs", jobHandler.ListJobs)
		api.GET("/jobs/:id", jobHandler.GetJob)
		api.POST("/jobs", owner, jobHandler.CreateJob)
		api.PUT("/jobs/:id", owner, jobHandler.UpdateJob)
		api.DELETE("/jobs/:id", owner, jobHandler.DeleteJob)
		api.PATCH("/jobs/:id/seo", content, jobHandler.UpdateSEO)

		// Applications
		api.POST("/jobs/:id/applications", seeker, appHandler.Apply)
		api.GET("/jobs/:id/applications", owner, appHandler.ListForJob)
		api.PATCH("/jobs/:id/applications/:appId", owner, appHandler.UpdateStatus)
		api.GET("/jobs/:id/candidates", owner, appHandler.Candidates)

		// Profiles
		api.PUT("/employers/me", signedIn, profileHandler.SaveEmployer)
		api.GET("/employers/me", employer, profileHandler.MyEmployer)
		api.GET("/employers/me/jobs", employer, jobHandler.MyJobs)
		api.GET("/employers/me/applications", employer, appHandler.EmployerApplications)
		api.GET("/employers/:id", profileHandler.Employer)
		api.PUT("/job-seekers/me", signedIn, profileHandler.SaveJobSeeker)
		api.GET("/job-seekers/me", seeker, profileHandler.MyJobSeeker)
		api.GET("/job-seekers/me/applications", seeker, appHandler.MyApplications)

		// Blogs
		api.GET("/blogs", blogHandler.ListBlogs)
		api.GET("/blogs/:slug", blogHandler.GetBlog)
		api.POST("/blogs", content, blogHandler.CreateBlog)
		api.PUT("/blogs/:id", content, blogHandler.UpdateBlog)
		api.DELETE("/blogs/:id", content, blogHandler.DeleteBlog)

		// Admin back office
		api.GET("/admin/seo-managers", admin, adminHandler.ListSEOManagers)
		api.POST("/admin/seo-managers", admin, adminHandler.CreateSEOManager)
		api.DELETE("/admin/seo-managers/:id", admin, adminHandler.DeleteSEOManager)
		api.GET("/admin/analytics", admin, adminHandler.Analytics)

		// AI generation
		api.POST("/ai/resume-summary", seeker, aiHandler.ResumeSummary)
		api.POST("/ai/job-recommendations", seeker, aiHandler.JobRecommendations)
		api.POST("/ai/job-description", owner, aiHandler.JobDescription)
		api.POST("/ai/blog-post", content, aiHandler.BlogPost)

		// Leads
		api.POST("/leads", leadHandler.SubmitLead)
	}
	return r
}
