package dtos

import "time"

type BlogRequest struct {
	Title   string `json:"title" binding:"required,notblank,max=200"`
	Content string `json:"content" binding:"required,notblank"`

	// Optional Fields
	Author      string      `json:"author"`
	Slug        string      `json:"slug"`
	Keywords    []string    `json:"keywords"`
	SEO         *SEORequest `json:"seo"`
	PublishedAt *time.Time  `json:"published_at"`
}

type SEOManagerRequest struct {
	Name     string `json:"name" binding:"required,notblank"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type SEOLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
