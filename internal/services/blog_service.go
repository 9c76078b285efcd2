package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hiringdekho/hiring-dekho/internal/dtos"
	"github.com/hiringdekho/hiring-dekho/internal/htmlutil"
	"github.com/hiringdekho/hiring-dekho/internal/models"
)

const (
	excerptLength   = 160
	maxSlugAttempts = 50
)

type BlogService struct {
	DB  *gorm.DB
	now func() time.Time
}

func NewBlogService(db *gorm.DB) *BlogService {
	return &BlogService{DB: db, now: time.Now}
}

func (s *BlogService) CreateBlog(ctx context.Context, author string, req *dtos.BlogRequest) (*models.Blog, error) {
	content := htmlutil.Sanitize(req.Content)
	base := req.Slug
	if strings.TrimSpace(base) == "" {
		base = req.Title
	}
	slug, err := s.uniqueSlug(ctx, htmlutil.Slugify(base), "")
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	blog := &models.Blog{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(req.Title),
		Slug:        slug,
		Author:      firstNonEmpty(req.Author, author),
		Content:     content,
		Excerpt:     htmlutil.Excerpt(content, excerptLength),
		Keywords:    normalizeSkills(req.Keywords),
		SEO:         req.SEO.Fields(),
		PublishedAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.PublishedAt != nil && !req.PublishedAt.IsZero() {
		blog.PublishedAt = req.PublishedAt.UTC()
	}
	fillBlogSEO(blog)

	if err := s.DB.WithContext(ctx).Create(blog).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: slug %q already taken", ErrConflict, blog.Slug)
		}
		return nil, err
	}
	return blog, nil
}

// UpdateBlog keeps the existing slug unless a new one is given explicitly.
func (s *BlogService) UpdateBlog(ctx context.Context, id string, req *dtos.BlogRequest) (*models.Blog, error) {
	blog, err := s.GetBlog(ctx, id)
	if err != nil {
		return nil, err
	}
	content := htmlutil.Sanitize(req.Content)
	if strings.TrimSpace(req.Slug) != "" {
		want := htmlutil.Slugify(req.Slug)
		if want != blog.Slug {
			if blog.Slug, err = s.uniqueSlug(ctx, want, blog.ID); err != nil {
				return nil, err
			}
		}
	}

	blog.Title = strings.TrimSpace(req.Title)
	blog.Content = content
	blog.Excerpt = htmlutil.Excerpt(content, excerptLength)
	if req.Author != "" {
		blog.Author = req.Author
	}
	if req.Keywords != nil {
		blog.Keywords = normalizeSkills(req.Keywords)
	}
	if req.SEO != nil {
		blog.SEO = req.SEO.Fields()
	}
	if req.PublishedAt != nil && !req.PublishedAt.IsZero() {
		blog.PublishedAt = req.PublishedAt.UTC()
	}
	blog.UpdatedAt = s.now().UTC()
	fillBlogSEO(blog)

	if err := s.DB.WithContext(ctx).Save(blog).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: slug %q already taken", ErrConflict, blog.Slug)
		}
		return nil, err
	}
	return blog, nil
}

func (s *BlogService) DeleteBlog(ctx context.Context, id string) error {
	res := s.DB.WithContext(ctx).Where("id = ?", id).Delete(&models.Blog{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *BlogService) GetBlog(ctx context.Context, id string) (*models.Blog, error) {
	var b models.Blog
	if err := s.DB.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

// GetBySlug serves the public blog page; scheduled posts are not found until
// their publish time.
func (s *BlogService) GetBySlug(ctx context.Context, slug string) (*models.Blog, error) {
	var b models.Blog
	err := s.DB.WithContext(ctx).
		Where("published_at <= ?", s.now().UTC()).
		First(&b, "slug = ?", slug).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

// ListBlogs returns published posts, newest first. Posts scheduled for the
// future are hidden.
func (s *BlogService) ListBlogs(ctx context.Context, page, limit int) (Page[models.Blog], error) {
	page, limit = normalizePage(page, limit)
	out := Page[models.Blog]{Page: page, Limit: limit}

	db := s.DB.WithContext(ctx).Model(&models.Blog{}).
		Where("published_at <= ?", s.now().UTC()).
		Session(&gorm.Session{})
	if err := db.Count(&out.Total).Error; err != nil {
		return out, err
	}
	if err := db.Order("published_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&out.Items).Error; err != nil {
		return out, err
	}
	out.HasMore = int64(page*limit) < out.Total
	return out, nil
}

// uniqueSlug appends -2, -3, ... until no other blog uses the slug.
func (s *BlogService) uniqueSlug(ctx context.Context, base, exceptID string) (string, error) {
	candidate := base
	for i := 2; i <= maxSlugAttempts+1; i++ {
		taken, err := exists(ctx, s.DB, &models.Blog{}, "slug = ? AND id <> ?", candidate, exceptID)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return fmt.Sprintf("%s-%s", base, uuid.NewString()[:8]), nil
}

func fillBlogSEO(b *models.Blog) {
	if b.SEO.MetaTitle == "" {
		b.SEO.MetaTitle = b.Title
	}
	if b.SEO.MetaDescription == "" {
		b.SEO.MetaDescription = b.Excerpt
	}
	if b.SEO.MetaKeywords == "" && len(b.Keywords) > 0 {
		b.SEO.MetaKeywords = strings.Join(b.Keywords, ", ")
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
