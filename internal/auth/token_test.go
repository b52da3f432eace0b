package auth

import (
	"testing"
	"time"

	"gymdesk/internal/config"
	"gymdesk/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret-key-for-unit-tests-only",
		JWTIssuer:        "gymdesk-api",
		JWTAudience:      "gymdesk-client",
		JWTExpireMinutes: 60,
	}
}

func testUser(roles ...string) *models.User {
	user := &models.User{ID: 42, Email: "jane@example.com"}
	for i, name := range roles {
		user.Roles = append(user.Roles, models.Role{ID: uint(i + 1), Name: name})
	}
	return user
}

func TestIssueAndAuthorizeRoundtrip(t *testing.T) {
	authority := NewAuthority(testConfig())

	resp, err := authority.Issue(testUser(models.RoleUser))
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, "jane@example.com", resp.Email)
	assert.Equal(t, []string{models.RoleUser}, resp.Roles)
	assert.WithinDuration(t, time.Now().Add(60*time.Minute), resp.Expiration, 5*time.Second)

	ctx, err := authority.Authorize(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), ctx.UserID)
	assert.Equal(t, "jane@example.com", ctx.Email)
	assert.Equal(t, "jane@example.com", ctx.Name)
	assert.Equal(t, []string{models.RoleUser}, ctx.Roles)
}

func TestIssueEmbedsRolesAtIssuanceTime(t *testing.T) {
	authority := NewAuthority(testConfig())
	user := testUser(models.RoleUser)

	resp, err := authority.Issue(user)
	require.NoError(t, err)

	// Granting a role after issuance must not widen the existing token.
	user.Roles = append(user.Roles, models.Role{ID: 9, Name: models.RoleAdmin})

	ctx, err := authority.Authorize(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, []string{models.RoleUser}, ctx.Roles)
	assert.False(t, ctx.HasRole(models.RoleAdmin))
}

func TestIssueDistinctTokenIDs(t *testing.T) {
	authority := NewAuthority(testConfig())
	user := testUser(models.RoleUser)

	first, err := authority.Issue(user)
	require.NoError(t, err)
	second, err := authority.Issue(user)
	require.NoError(t, err)

	parse := func(raw string) *Claims {
		claims := &Claims{}
		_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
			return []byte("test-secret-key-for-unit-tests-only"), nil
		})
		require.NoError(t, err)
		return claims
	}

	assert.NotEqual(t, parse(first.Token).ID, parse(second.Token).ID)
}

func TestAuthorizeRoleGating(t *testing.T) {
	authority := NewAuthority(testConfig())

	userToken, err := authority.Issue(testUser(models.RoleUser))
	require.NoError(t, err)
	adminToken, err := authority.Issue(testUser(models.RoleUser, models.RoleAdmin))
	require.NoError(t, err)

	tests := []struct {
		name        string
		token       string
		roles       []string
		expectedErr error
	}{
		{name: "no role requirement passes", token: userToken.Token},
		{name: "user lacks admin", token: userToken.Token, roles: []string{models.RoleAdmin}, expectedErr: ErrForbidden},
		{name: "admin passes admin gate", token: adminToken.Token, roles: []string{models.RoleAdmin}},
		{name: "any-of requirement", token: userToken.Token, roles: []string{models.RoleAdmin, models.RoleUser}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, err := authority.Authorize(tt.token, tt.roles...)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, ctx)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, ctx)
			}
		})
	}
}

func TestAuthorizeRejectsBadTokens(t *testing.T) {
	authority := NewAuthority(testConfig())
	user := testUser(models.RoleUser)

	otherCfg := testConfig()
	otherCfg.JWTSecret = "a-completely-different-signing-key"
	otherAuthority := NewAuthority(otherCfg)
	foreign, err := otherAuthority.Issue(user)
	require.NoError(t, err)

	expiredCfg := testConfig()
	expiredCfg.JWTExpireMinutes = 60
	expiredAuthority := &Authority{
		secret:   []byte(expiredCfg.JWTSecret),
		issuer:   expiredCfg.JWTIssuer,
		audience: expiredCfg.JWTAudience,
		lifetime: -time.Minute,
	}
	expired, err := expiredAuthority.Issue(user)
	require.NoError(t, err)

	wrongIssuerCfg := testConfig()
	wrongIssuerCfg.JWTIssuer = "someone-else"
	wrongIssuer, err := NewAuthority(wrongIssuerCfg).Issue(user)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not.a.jwt"},
		{name: "empty", token: ""},
		{name: "wrong signing key", token: foreign.Token},
		{name: "expired", token: expired.Token},
		{name: "wrong issuer", token: wrongIssuer.Token},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, err := authority.Authorize(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.Nil(t, ctx)
		})
	}
}

func TestAuthorizeRejectsUnsignedToken(t *testing.T) {
	authority := NewAuthority(testConfig())

	claims := Claims{
		Email: "jane@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "42",
			Issuer:    "gymdesk-api",
			Audience:  jwt.ClaimStrings{"gymdesk-client"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	raw, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	ctx, err := authority.Authorize(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, ctx)
}
