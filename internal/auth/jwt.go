// Package auth provides identity tokens, password hashing, and the request
// middleware that resolves a bearer token into a user.
//
// Login flow:
//  1. POST /api/login with username + password
//  2. Server verifies the credentials and issues a signed JWT carrying
//     {username, user id}
//  3. The client sends it back as "Authorization: Bearer <token>" and the
//     extraction middleware resolves it to a user for the handlers
//
// Tokens are stateless: verification is a signature check plus one user
// lookup, with no session storage. Tokens carry no expiry — invalidating
// them means rotating the SECRET the server signs with.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "bloglist"

// TokenService signs and verifies identity tokens.
//
// It holds the HMAC secret used for both operations. The secret is read-only
// after construction, so the service is safe for concurrent use.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService with the given secret.
// The secret should be at least 32 bytes of random data in production.
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// claims is the JWT payload: the standard "sub" claim holds the user's
// internal ID, and a custom claim carries the username.
type claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Generate creates and signs an identity token for the given user.
//
// Signing algorithm: HS256 (HMAC-SHA256), symmetric with the verify side.
// The token has no ExpiresAt claim — see the package comment.
func (s *TokenService) Generate(userID, username string) (string, error) {
	c := claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  userID,
			IssuedAt: jwt.NewNumericDate(time.Now()),
			Issuer:   issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a token string, returning the user ID and
// username it encodes.
//
// Fails if the signature doesn't match, the algorithm isn't HS256 (prevents
// algorithm-confusion attacks), the issuer is wrong, the payload is
// malformed, or the subject is empty.
func (s *TokenService) Validate(tokenStr string) (userID, username string, err error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
	)
	if err != nil {
		return "", "", fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return "", "", fmt.Errorf("auth: invalid token claims")
	}

	if c.Subject == "" {
		return "", "", fmt.Errorf("auth: token has no subject")
	}

	return c.Subject, c.Username, nil
}
