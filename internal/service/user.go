package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/bloglist/internal/apperror"
	"github.com/sakif/bloglist/internal/auth"
	"github.com/sakif/bloglist/internal/model"
	"github.com/sakif/bloglist/internal/repository"
)

// MinCredentialLength applies to both username and password.
const MinCredentialLength = 3

// UserService handles business logic for user accounts.
type UserService struct {
	users     repository.UserRepository
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewUserService creates a UserService.
func NewUserService(
	users repository.UserRepository,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		users:     users,
		passwords: passwords,
		logger:    logger,
	}
}

// UserInput is the client-supplied payload for creating a user.
type UserInput struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Create validates and registers a new user.
//
// Username and password are both required and at least three characters.
// The password is hashed before it reaches the store; the plaintext is never
// persisted or logged. A taken username fails with ErrConflict.
func (s *UserService) Create(ctx context.Context, in UserInput) (*model.User, error) {
	username := strings.TrimSpace(in.Username)

	if username == "" || in.Password == "" {
		return nil, apperror.ValidationFailed("username", "either username or password is missing")
	}
	if len(username) < MinCredentialLength || len(in.Password) < MinCredentialLength {
		return nil, apperror.ValidationFailed("username",
			fmt.Sprintf("both username and password must be at least %d characters long", MinCredentialLength))
	}

	hash, err := s.passwords.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Name:         strings.TrimSpace(in.Name),
		PasswordHash: hash,
	}

	// The UNIQUE constraint is the authority on duplicates; the repository
	// translates a violation to ErrConflict.
	if err := s.users.Create(ctx, user); err != nil {
		if !errors.Is(err, apperror.ErrConflict) {
			s.logger.Error("failed to create user",
				slog.String("username", username),
				slog.String("error", err.Error()),
			)
		}
		return nil, err
	}

	s.logger.Info("user created",
		slog.String("id", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// List retrieves all users, each enriched with a projection of the blogs
// they own.
func (s *UserService) List(ctx context.Context) ([]model.UserWithBlogs, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		s.logger.Error("failed to list users", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing users: %w", err)
	}

	enriched := make([]model.UserWithBlogs, 0, len(users))
	for _, u := range users {
		refs, err := s.users.ListBlogRefs(ctx, u.ID)
		if err != nil {
			return nil, fmt.Errorf("listing blogs for user %s: %w", u.ID, err)
		}
		enriched = append(enriched, model.UserWithBlogs{User: u, Blogs: refs})
	}

	return enriched, nil
}

// Delete removes a user unconditionally. There is deliberately no
// authentication or ownership check here; see DESIGN.md.
func (s *UserService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "user ID is required")
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("user deleted", slog.String("id", id))
	return nil
}

// SyncBlogs recomputes the user's owned-blog projection from the blogs
// currently referencing them — a denormalization repair, not a general
// update. Fails with ErrNotFound if the user doesn't exist.
func (s *UserService) SyncBlogs(ctx context.Context, id string) (*model.UserWithBlogs, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "user ID is required")
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	refs, err := s.users.ListBlogRefs(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listing blogs for user %s: %w", id, err)
	}

	s.logger.Info("user blogs resynced",
		slog.String("id", id),
		slog.Int("blogs", len(refs)),
	)

	return &model.UserWithBlogs{User: *user, Blogs: refs}, nil
}
