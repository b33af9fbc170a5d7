package service

import (
	"github.com/sakif/bloglist/internal/apperror"
	"github.com/sakif/bloglist/internal/model"
)

// authorizeDelete decides whether user may delete blog. It is the single
// ownership rule in the system: only the user a blog references as its owner
// may remove it. The blog must come from a read performed within the current
// request, never a cached copy.
func authorizeDelete(user *model.User, blog *model.Blog) error {
	if user == nil {
		return apperror.Unauthorized("authentication required to delete a blog")
	}
	if blog == nil {
		return apperror.NotFound("blog", "")
	}
	if blog.UserID == "" || blog.UserID != user.ID {
		return apperror.Forbidden("not authorized to delete this blog")
	}
	return nil
}
