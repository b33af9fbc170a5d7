// Package repository defines the storage interfaces the service layer
// programs against. The sqlite subpackage provides the implementation;
// tests substitute in-memory mocks.
package repository

import (
	"context"

	"github.com/sakif/bloglist/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Delete(ctx context.Context, id string) error
	// ListBlogRefs returns the minimal projection of the blogs owned by the
	// given user, for enriched user listings.
	ListBlogRefs(ctx context.Context, userID string) ([]model.BlogRef, error)
}

type BlogRepository interface {
	Create(ctx context.Context, blog *model.Blog) error
	GetByID(ctx context.Context, id string) (*model.Blog, error)
	// ListWithOwners returns every blog joined with its owner's public fields.
	ListWithOwners(ctx context.Context) ([]model.BlogWithOwner, error)
	UpdateLikes(ctx context.Context, id string, likes int) (*model.Blog, error)
	Delete(ctx context.Context, id string) error
}
