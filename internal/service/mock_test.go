package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/sakif/bloglist/internal/apperror"
	"github.com/sakif/bloglist/internal/auth"
	"github.com/sakif/bloglist/internal/model"
)

// In-memory mock repositories. The services only see the repository
// interfaces, so these stand in for the SQLite implementation.

type mockBlogRepo struct {
	blogs  map[string]*model.Blog
	owners map[string]*model.User // user id → user, for the owner join
	nextID int
}

func newMockBlogRepo() *mockBlogRepo {
	return &mockBlogRepo{
		blogs:  make(map[string]*model.Blog),
		owners: make(map[string]*model.User),
	}
}

func (m *mockBlogRepo) Create(_ context.Context, blog *model.Blog) error {
	m.nextID++
	blog.ID = fmt.Sprintf("blog-%d", m.nextID)
	stored := *blog
	m.blogs[blog.ID] = &stored
	return nil
}

func (m *mockBlogRepo) GetByID(_ context.Context, id string) (*model.Blog, error) {
	blog, ok := m.blogs[id]
	if !ok {
		return nil, apperror.NotFound("blog", id)
	}
	result := *blog
	return &result, nil
}

func (m *mockBlogRepo) ListWithOwners(_ context.Context) ([]model.BlogWithOwner, error) {
	result := make([]model.BlogWithOwner, 0, len(m.blogs))
	for _, b := range m.blogs {
		enriched := model.BlogWithOwner{Blog: *b}
		if owner, ok := m.owners[b.UserID]; ok {
			enriched.Owner = &model.UserRef{
				ID:       owner.ID,
				Username: owner.Username,
				Name:     owner.Name,
			}
		}
		result = append(result, enriched)
	}
	return result, nil
}

func (m *mockBlogRepo) UpdateLikes(_ context.Context, id string, likes int) (*model.Blog, error) {
	blog, ok := m.blogs[id]
	if !ok {
		return nil, apperror.NotFound("blog", id)
	}
	blog.Likes = likes
	result := *blog
	return &result, nil
}

func (m *mockBlogRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.blogs[id]; !ok {
		return apperror.NotFound("blog", id)
	}
	delete(m.blogs, id)
	return nil
}

type mockUserRepo struct {
	users  map[string]*model.User
	blogs  *mockBlogRepo // optional: for ListBlogRefs
	nextID int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, existing := range m.users {
		if existing.Username == user.Username {
			return apperror.Conflict("user", "username")
		}
	}
	m.nextID++
	user.ID = fmt.Sprintf("user-%d", m.nextID)
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	result := *user
	return &result, nil
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			result := *u
			return &result, nil
		}
	}
	return nil, apperror.NotFound("user", username)
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	result := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		result = append(result, *u)
	}
	return result, nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.users[id]; !ok {
		return apperror.NotFound("user", id)
	}
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) ListBlogRefs(_ context.Context, userID string) ([]model.BlogRef, error) {
	refs := []model.BlogRef{}
	if m.blogs == nil {
		return refs, nil
	}
	for _, b := range m.blogs.blogs {
		if b.UserID == userID {
			refs = append(refs, model.BlogRef{
				ID:     b.ID,
				URL:    b.URL,
				Title:  b.Title,
				Author: b.Author,
			})
		}
	}
	return refs, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testPasswords() *auth.PasswordService {
	return auth.NewPasswordService(bcrypt.MinCost)
}

func testTokens(t *testing.T) *auth.TokenService {
	t.Helper()
	tokens, err := auth.NewTokenService("test-secret-at-least-16-chars")
	if err != nil {
		t.Fatalf("NewTokenService() error = %v", err)
	}
	return tokens
}
