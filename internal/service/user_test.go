package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/bloglist/internal/apperror"
	"github.com/sakif/bloglist/internal/model"
)

func newTestUserService(t *testing.T) (*UserService, *mockUserRepo) {
	t.Helper()
	repo := newMockUserRepo()
	svc := NewUserService(repo, testPasswords(), testLogger())
	return svc, repo
}

func TestUserCreate_Success(t *testing.T) {
	svc, _ := newTestUserService(t)

	user, err := svc.Create(context.Background(), UserInput{
		Username: "mluukkai",
		Name:     "Matti Luukkainen",
		Password: "salainen",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if user.ID == "" {
		t.Error("expected user to have an ID")
	}
	if user.PasswordHash == "" {
		t.Error("expected a stored password hash")
	}
	if user.PasswordHash == "salainen" {
		t.Error("password must not be stored in plaintext")
	}
}

func TestUserCreate_MissingCredentials(t *testing.T) {
	svc, repo := newTestUserService(t)

	cases := []struct {
		name string
		in   UserInput
	}{
		{"missing username", UserInput{Password: "salainen"}},
		{"missing password", UserInput{Username: "mluukkai"}},
		{"short username", UserInput{Username: "ml", Password: "salainen"}},
		{"short password", UserInput{Username: "mluukkai", Password: "sa"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.in)
			if err == nil {
				t.Fatal("Create() should fail validation")
			}
			if !errors.Is(err, apperror.ErrValidation) {
				t.Errorf("error = %v, want ErrValidation", err)
			}
		})
	}

	if len(repo.users) != 0 {
		t.Errorf("store has %d users, want 0 after failed creates", len(repo.users))
	}
}

func TestUserCreate_DuplicateUsername(t *testing.T) {
	svc, repo := newTestUserService(t)

	_, err := svc.Create(context.Background(), UserInput{Username: "root", Password: "sekret"})
	if err != nil {
		t.Fatalf("setup: Create() error = %v", err)
	}

	_, err = svc.Create(context.Background(), UserInput{Username: "root", Password: "other"})
	if err == nil {
		t.Fatal("Create() should reject a duplicate username")
	}
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("error = %v, want ErrConflict", err)
	}
	if len(repo.users) != 1 {
		t.Errorf("store has %d users, want 1 (unchanged)", len(repo.users))
	}
}

func TestUserList_EnrichedWithBlogs(t *testing.T) {
	userRepo := newMockUserRepo()
	blogRepo := newMockBlogRepo()
	userRepo.blogs = blogRepo
	svc := NewUserService(userRepo, testPasswords(), testLogger())

	user, err := svc.Create(context.Background(), UserInput{Username: "root", Password: "sekret"})
	if err != nil {
		t.Fatalf("setup: Create() error = %v", err)
	}

	blogSvc := NewBlogService(blogRepo, testLogger())
	if _, err := blogSvc.Create(context.Background(), user, BlogInput{
		Title: "Owned", URL: "https://example.com/owned",
	}); err != nil {
		t.Fatalf("setup: blog Create() error = %v", err)
	}

	users, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("len(users) = %d, want 1", len(users))
	}
	if len(users[0].Blogs) != 1 || users[0].Blogs[0].Title != "Owned" {
		t.Errorf("Blogs = %+v, want the owned blog projected in", users[0].Blogs)
	}
}

func TestUserDelete_Unconditional(t *testing.T) {
	svc, repo := newTestUserService(t)

	user, err := svc.Create(context.Background(), UserInput{Username: "root", Password: "sekret"})
	if err != nil {
		t.Fatalf("setup: Create() error = %v", err)
	}

	// No authentication involved: deletion is open by observed behavior.
	if err := svc.Delete(context.Background(), user.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if len(repo.users) != 0 {
		t.Errorf("store has %d users, want 0", len(repo.users))
	}
}

func TestSyncBlogs_RecomputesProjection(t *testing.T) {
	userRepo := newMockUserRepo()
	blogRepo := newMockBlogRepo()
	userRepo.blogs = blogRepo
	svc := NewUserService(userRepo, testPasswords(), testLogger())

	user, err := svc.Create(context.Background(), UserInput{Username: "root", Password: "sekret"})
	if err != nil {
		t.Fatalf("setup: Create() error = %v", err)
	}

	// A blog written directly to the store, bypassing the user's projection.
	blogRepo.blogs["stray"] = &model.Blog{
		ID: "stray", Title: "Stray", URL: "https://example.com/stray", UserID: user.ID,
	}

	synced, err := svc.SyncBlogs(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("SyncBlogs() error = %v", err)
	}
	if len(synced.Blogs) != 1 || synced.Blogs[0].ID != "stray" {
		t.Errorf("Blogs = %+v, want the stray blog recovered", synced.Blogs)
	}
}

func TestSyncBlogs_UserNotFound(t *testing.T) {
	svc, _ := newTestUserService(t)

	_, err := svc.SyncBlogs(context.Background(), "nonexistent")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
