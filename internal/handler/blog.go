package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/bloglist/internal/auth"
	"github.com/sakif/bloglist/internal/service"
)

// BlogHandler exposes the blog CRUD endpoints.
type BlogHandler struct {
	blogs  *service.BlogService
	logger *slog.Logger
}

// NewBlogHandler creates a BlogHandler.
func NewBlogHandler(blogs *service.BlogService, logger *slog.Logger) *BlogHandler {
	return &BlogHandler{blogs: blogs, logger: logger}
}

// HandleList returns all blogs with owner details.
//
// HTTP: GET /api/blogs
func (h *BlogHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.blogs.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, blogs)
}

// HandleCreate saves a new blog owned by the authenticated user.
//
// HTTP: POST /api/blogs (bearer token required)
func (h *BlogHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in service.BlogInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.logger.Warn("invalid blog JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}

	user, _ := auth.UserFromContext(r.Context())

	blog, err := h.blogs.Create(r.Context(), user, in)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, blog)
}

// HandleDelete removes a blog if the authenticated user owns it.
//
// HTTP: DELETE /api/blogs/{id} (bearer token + ownership required)
func (h *BlogHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.UserFromContext(r.Context())

	if err := h.blogs.Delete(r.Context(), user, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleUpdateLikes sets a blog's like count. No authentication: anyone may
// update likes.
//
// HTTP: PUT /api/blogs/{id}
func (h *BlogHandler) HandleUpdateLikes(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Likes *int `json:"likes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.logger.Warn("invalid likes JSON", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid JSON body",
		})
		return
	}
	if body.Likes == nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "likes is required",
		})
		return
	}

	blog, err := h.blogs.UpdateLikes(r.Context(), r.PathValue("id"), *body.Likes)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, blog)
}

// HandleStats returns aggregate statistics over all blogs.
//
// HTTP: GET /api/blogs/stats
func (h *BlogHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	summary, err := h.blogs.Stats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
