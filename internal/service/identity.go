package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned when a token cannot be parsed or verified.
	ErrInvalidToken = errors.New("invalid token")
	// ErrMissingSubject is returned when a valid token carries no user id.
	ErrMissingSubject = errors.New("token has no user id")
)

// UserClaims are the JWT claims issued by the auth service.
type UserClaims struct {
	UserID string `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// ID returns the user id, falling back to the standard subject claim.
func (c *UserClaims) ID() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.Subject
}

// TokenValidator verifies HMAC-signed access tokens shared with the auth service.
type TokenValidator interface {
	Validate(tokenString string) (*UserClaims, error)
}

// HMACTokenValidator implements TokenValidator with a shared secret.
type HMACTokenValidator struct {
	secretKey []byte
}

// NewTokenValidator creates a validator for tokens signed with secret.
func NewTokenValidator(secret string) *HMACTokenValidator {
	return &HMACTokenValidator{secretKey: []byte(secret)}
}

// Validate parses tokenString and returns its claims.
func (v *HMACTokenValidator) Validate(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return v.secretKey, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*UserClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.ID() == "" {
		return nil, ErrMissingSubject
	}
	return claims, nil
}

// Issue signs a token for userID. Used by local tooling and tests; production
// tokens come from the auth service.
func (v *HMACTokenValidator) Issue(userID, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &UserClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secretKey)
}

type userIDKey struct{}

// WithUserID returns a context carrying the authenticated user id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserIDFromContext returns the authenticated user id, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey{}).(string)
	return id, ok && id != ""
}

// ContextIdentity reads the current user from the request context.
type ContextIdentity struct{}

// NewContextIdentity creates the request-context identity provider.
func NewContextIdentity() ContextIdentity {
	return ContextIdentity{}
}

// CurrentUserID returns the user id placed on ctx by the auth middleware.
func (ContextIdentity) CurrentUserID(ctx context.Context) (string, bool) {
	return UserIDFromContext(ctx)
}

type sessionIDKey struct{}

// WithSessionID returns a context carrying the cart session id of the request.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey{}, sessionID)
}

// SessionIDFromContext returns the cart session id, if any.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDKey{}).(string)
	return id, ok && id != ""
}

type bearerTokenKey struct{}

// WithBearerToken returns a context carrying the caller's raw access token,
// forwarded to the order backend.
func WithBearerToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, bearerTokenKey{}, token)
}

// BearerTokenFromContext returns the caller's raw access token, if any.
func BearerTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(bearerTokenKey{}).(string)
	return token, ok && token != ""
}
