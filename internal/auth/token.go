// Package auth implements the authentication core: credential
// verification, JWT issuance with role claims, and token-based
// authorization decisions.
package auth

import (
	"errors"
	"strconv"
	"time"

	"gymdesk/internal/config"
	"gymdesk/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Sentinel errors for authorization outcomes. Credential failures are
// deliberately uniform so callers cannot distinguish an unknown email
// from a wrong password.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrForbidden          = errors.New("insufficient role")
)

// Claims is the JWT claim set carried by session tokens.
type Claims struct {
	Email string   `json:"email"`
	Name  string   `json:"name"`
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// AuthContext is the decoded, verified result of a session token. It is
// the only input to authorization decisions after the signature check.
type AuthContext struct {
	UserID uint
	Email  string
	Name   string
	Roles  []string
}

// HasRole reports whether the context carries the named role.
func (a *AuthContext) HasRole(name string) bool {
	for _, r := range a.Roles {
		if r == name {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether the context's role set intersects the given set.
func (a *AuthContext) HasAnyRole(names ...string) bool {
	for _, n := range names {
		if a.HasRole(n) {
			return true
		}
	}
	return false
}

// Authority issues and validates session tokens. The signing key is
// fixed at construction and never mutated at runtime.
type Authority struct {
	secret   []byte
	issuer   string
	audience string
	lifetime time.Duration
}

// NewAuthority builds an Authority from process configuration.
func NewAuthority(cfg *config.Config) *Authority {
	minutes := cfg.JWTExpireMinutes
	if minutes <= 0 {
		minutes = 60
	}
	return &Authority{
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.JWTIssuer,
		audience: cfg.JWTAudience,
		lifetime: time.Duration(minutes) * time.Minute,
	}
}

// Issue signs a session token for the user, embedding the user's role
// set as it exists at issuance time. The jti claim is freshly random per
// call, so two tokens issued in the same instant are still distinct.
func (a *Authority) Issue(user *models.User) (*models.TokenResponse, error) {
	now := time.Now()
	expiration := now.Add(a.lifetime)
	roles := user.RoleNames()

	claims := Claims{
		Email: user.Email,
		Name:  user.Email, // login name is the email address
		Roles: roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			Issuer:    a.issuer,
			Audience:  jwt.ClaimStrings{a.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiration),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return nil, err
	}

	return &models.TokenResponse{
		Token:      signed,
		Expiration: expiration,
		Email:      user.Email,
		Roles:      roles,
	}, nil
}

// Authorize is the single dispatch point for endpoint authorization. It
// verifies signature and expiry, then, when requiredRoles is non-empty,
// requires the token's role set to intersect it. Signature or expiry
// failure yields ErrInvalidToken; a role miss yields ErrForbidden.
func (a *Authority) Authorize(tokenString string, requiredRoles ...string) (*AuthContext, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(a.issuer),
		jwt.WithAudience(a.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 32)
	if err != nil {
		return nil, ErrInvalidToken
	}

	ctx := &AuthContext{
		UserID: uint(userID),
		Email:  claims.Email,
		Name:   claims.Name,
		Roles:  claims.Roles,
	}

	if len(requiredRoles) > 0 && !ctx.HasAnyRole(requiredRoles...) {
		return nil, ErrForbidden
	}

	return ctx, nil
}
