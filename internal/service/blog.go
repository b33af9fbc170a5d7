// Package service contains the business logic layer: validation, the
// ownership policy, and orchestration between the auth utilities and the
// repositories. Services know nothing about HTTP; handlers translate their
// domain errors to status codes.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/bloglist/internal/apperror"
	"github.com/sakif/bloglist/internal/model"
	"github.com/sakif/bloglist/internal/repository"
	"github.com/sakif/bloglist/internal/stats"
)

// BlogService handles business logic for blogs.
type BlogService struct {
	blogs  repository.BlogRepository
	logger *slog.Logger
}

// NewBlogService creates a BlogService.
func NewBlogService(blogs repository.BlogRepository, logger *slog.Logger) *BlogService {
	return &BlogService{
		blogs:  blogs,
		logger: logger,
	}
}

// BlogInput is the client-supplied payload for creating a blog.
// Likes is a pointer so "omitted" (defaults to 0) is distinguishable from
// an explicit value.
type BlogInput struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	URL    string `json:"url"`
	Likes  *int   `json:"likes"`
}

// Create validates and saves a new blog owned by user.
//
// Anonymous creation is not permitted: a nil user fails before any store
// access. Title and URL are required; a missing like count defaults to 0.
func (s *BlogService) Create(ctx context.Context, user *model.User, in BlogInput) (*model.Blog, error) {
	if user == nil {
		return nil, apperror.Unauthorized("authentication required to create a blog")
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, apperror.ValidationFailed("title", "blog title is required")
	}

	url := strings.TrimSpace(in.URL)
	if url == "" {
		return nil, apperror.ValidationFailed("url", "blog url is required")
	}

	likes := 0
	if in.Likes != nil {
		if *in.Likes < 0 {
			return nil, apperror.ValidationFailed("likes", "like count must not be negative")
		}
		likes = *in.Likes
	}

	blog := &model.Blog{
		Title:  title,
		Author: strings.TrimSpace(in.Author),
		URL:    url,
		Likes:  likes,
		UserID: user.ID,
	}

	if err := s.blogs.Create(ctx, blog); err != nil {
		s.logger.Error("failed to create blog",
			slog.String("title", title),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating blog: %w", err)
	}

	s.logger.Info("blog created",
		slog.String("id", blog.ID),
		slog.String("title", blog.Title),
		slog.String("userID", user.ID),
	)

	return blog, nil
}

// List retrieves all blogs with their owners' public fields joined in.
// Eager and unpaginated.
func (s *BlogService) List(ctx context.Context) ([]model.BlogWithOwner, error) {
	blogs, err := s.blogs.ListWithOwners(ctx)
	if err != nil {
		s.logger.Error("failed to list blogs", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing blogs: %w", err)
	}
	return blogs, nil
}

// Delete removes a blog after checking the ownership policy against a fresh
// read of the record. A lost race with a concurrent delete surfaces as
// NotFound, which is the correct outcome either way.
func (s *BlogService) Delete(ctx context.Context, user *model.User, id string) error {
	if user == nil {
		return apperror.Unauthorized("authentication required to delete a blog")
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "blog ID is required")
	}

	blog, err := s.blogs.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := authorizeDelete(user, blog); err != nil {
		s.logger.Info("blog delete denied",
			slog.String("id", id),
			slog.String("userID", user.ID),
		)
		return err
	}

	if err := s.blogs.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("blog deleted", slog.String("id", id), slog.String("userID", user.ID))
	return nil
}

// UpdateLikes sets a blog's like count. Deliberately unauthenticated: any
// caller, anonymous included, may update likes. Ownership is enforced for
// create and delete only.
func (s *BlogService) UpdateLikes(ctx context.Context, id string, likes int) (*model.Blog, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "blog ID is required")
	}
	if likes < 0 {
		return nil, apperror.ValidationFailed("likes", "like count must not be negative")
	}

	blog, err := s.blogs.UpdateLikes(ctx, id, likes)
	if err != nil {
		return nil, err
	}

	s.logger.Info("blog likes updated", slog.String("id", id), slog.Int("likes", likes))
	return blog, nil
}

// Summary aggregates all blogs: total like count, the most-liked blog, and
// the most prolific / most-liked authors.
type Summary struct {
	Blogs      int                `json:"blogs"`
	TotalLikes int                `json:"totalLikes"`
	Favorite   *model.Blog        `json:"favorite,omitempty"`
	MostBlogs  *stats.AuthorCount `json:"mostBlogs,omitempty"`
	MostLikes  *stats.AuthorLikes `json:"mostLikes,omitempty"`
}

// Stats computes the aggregate summary over all blogs.
func (s *BlogService) Stats(ctx context.Context) (*Summary, error) {
	enriched, err := s.blogs.ListWithOwners(ctx)
	if err != nil {
		s.logger.Error("failed to load blogs for stats", slog.String("error", err.Error()))
		return nil, fmt.Errorf("loading blogs for stats: %w", err)
	}

	blogs := make([]model.Blog, 0, len(enriched))
	for _, b := range enriched {
		blogs = append(blogs, b.Blog)
	}

	summary := &Summary{
		Blogs:      len(blogs),
		TotalLikes: stats.TotalLikes(blogs),
		Favorite:   stats.FavoriteBlog(blogs),
	}

	if len(blogs) > 0 {
		mostBlogs := stats.MostBlogs(blogs)
		mostLikes := stats.MostLikes(blogs)
		summary.MostBlogs = &mostBlogs
		summary.MostLikes = &mostLikes
	}

	return summary, nil
}
