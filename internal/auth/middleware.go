package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/sakif/bloglist/internal/model"
	"github.com/sakif/bloglist/internal/repository"
)

// contextKey is an unexported type for context keys in this package, so no
// other package can read or shadow the values stored under them.
type contextKey string

const userKey contextKey = "user"

// ExtractUser is a middleware that resolves the request's bearer token into
// a user and attaches it to the request context.
//
// A missing or non-Bearer Authorization header is legal: the request
// continues anonymously, and handlers that require an identity reject it
// themselves. A token that is present but invalid — bad signature,
// malformed payload, or a user ID that no longer resolves — stops the
// request with 401.
func ExtractUser(tokens *TokenService, users repository.UserRepository, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			userID, _, err := tokens.Validate(tokenStr)
			if err != nil {
				logger.Debug("rejected bearer token", slog.String("error", err.Error()))
				writeUnauthorized(w, "token invalid")
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				logger.Debug("token subject did not resolve", slog.String("userID", userID))
				writeUnauthorized(w, "user not found for token")
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext retrieves the authenticated user from the request context.
// Returns (nil, false) if the request is anonymous.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userKey).(*model.User)
	return user, ok && user != nil
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The scheme comparison is case-insensitive per RFC 6750.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"unauthorized","message":"` + message + `"}`))
}
