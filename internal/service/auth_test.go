package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/bloglist/internal/apperror"
)

func newTestAuthService(t *testing.T) (*AuthService, *UserService) {
	t.Helper()
	repo := newMockUserRepo()
	passwords := testPasswords()
	users := NewUserService(repo, passwords, testLogger())
	auth := NewAuthService(repo, testTokens(t), passwords, testLogger())
	return auth, users
}

func TestLogin_Success(t *testing.T) {
	authSvc, userSvc := newTestAuthService(t)

	if _, err := userSvc.Create(context.Background(), UserInput{
		Username: "root",
		Name:     "Superuser",
		Password: "sekret",
	}); err != nil {
		t.Fatalf("setup: Create() error = %v", err)
	}

	result, err := authSvc.Login(context.Background(), "root", "sekret")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if result.Token == "" {
		t.Error("expected a token")
	}
	if result.Username != "root" {
		t.Errorf("Username = %q, want %q", result.Username, "root")
	}
	if result.Name != "Superuser" {
		t.Errorf("Name = %q, want %q", result.Name, "Superuser")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	authSvc, userSvc := newTestAuthService(t)

	if _, err := userSvc.Create(context.Background(), UserInput{
		Username: "root", Password: "sekret",
	}); err != nil {
		t.Fatalf("setup: Create() error = %v", err)
	}

	_, err := authSvc.Login(context.Background(), "root", "wrong")
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("error = %v, want ErrUnauthorized", err)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	authSvc, _ := newTestAuthService(t)

	_, err := authSvc.Login(context.Background(), "nobody", "whatever")
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("error = %v, want ErrUnauthorized", err)
	}
}

// Unknown-user and wrong-password failures must be indistinguishable to the
// caller, so login responses don't reveal which usernames exist.
func TestLogin_FailureMessagesMatch(t *testing.T) {
	authSvc, userSvc := newTestAuthService(t)

	if _, err := userSvc.Create(context.Background(), UserInput{
		Username: "root", Password: "sekret",
	}); err != nil {
		t.Fatalf("setup: Create() error = %v", err)
	}

	_, errUnknown := authSvc.Login(context.Background(), "nobody", "whatever")
	_, errWrong := authSvc.Login(context.Background(), "root", "wrong")

	if errUnknown == nil || errWrong == nil {
		t.Fatal("both logins should fail")
	}
	if errUnknown.Error() != errWrong.Error() {
		t.Errorf("messages differ: %q vs %q", errUnknown.Error(), errWrong.Error())
	}
}
