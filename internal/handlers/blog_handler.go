package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hiringdekho/hiring-dekho/internal/dtos"
	"github.com/hiringdekho/hiring-dekho/internal/middleware"
	"github.com/hiringdekho/hiring-dekho/internal/services"
)

type BlogHandler struct {
	Blogs *services.BlogService
}

func NewBlogHandler(b *services.BlogService) *BlogHandler {
	return &BlogHandler{Blogs: b}
}

type pageQuery struct {
	Page  int `form:"page" binding:"min=0"`
	Limit int `form:"limit" binding:"min=0"`
}

func (h *BlogHandler) ListBlogs(c *gin.Context) {
	var q pageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	page, err := h.Blogs.ListBlogs(c.Request.Context(), q.Page, q.Limit)
	if err != nil {
		respondError(c, "Failed to list blogs", err)
		return
	}
	setPageHeaders(c, page.Total, page.Page, page.Limit, page.HasMore)
	c.JSON(http.StatusOK, page)
}

func (h *BlogHandler) GetBlog(c *gin.Context) {
	b, err := h.Blogs.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, "Failed to load blog", err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BlogHandler) CreateBlog(c *gin.Context) {
	var req dtos.BlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	actor := middleware.CurrentActor(c)
	author := actor.Name
	if author == "" {
		author = actor.Email
	}
	b, err := h.Blogs.CreateBlog(c.Request.Context(), author, &req)
	if err != nil {
		respondError(c, "Failed to create blog", err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *BlogHandler) UpdateBlog(c *gin.Context) {
	var req dtos.BlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	b, err := h.Blogs.UpdateBlog(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, "Failed to update blog", err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BlogHandler) DeleteBlog(c *gin.Context) {
	if err := h.Blogs.DeleteBlog(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, "Failed to delete blog", err)
		return
	}
	c.Status(http.StatusNoContent)
}
