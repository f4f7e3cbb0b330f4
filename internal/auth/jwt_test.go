package auth_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/indigo-retail/pos-api/internal/auth"
	"github.com/indigo-retail/pos-api/internal/config"
)

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{
		Key:              "test-signing-key",
		Issuer:           "indigo-pos-api",
		Audience:         "indigo-pos-client",
		ExpiresInMinutes: 60,
	}
}

func TestTokenIssuer_IssueAndVerify(t *testing.T) {
	issuer := auth.NewTokenIssuer(testJWTConfig())

	token, err := issuer.Issue("admin", "Admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "Admin", claims.Role)
	assert.Equal(t, "indigo-pos-api", claims.Issuer)
	assert.Equal(t, "admin", claims.Subject)
	require.NotNil(t, claims.ExpiresAt)
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt.Time))
}

func TestTokenIssuer_Verify_Garbage(t *testing.T) {
	issuer := auth.NewTokenIssuer(testJWTConfig())

	_, err := issuer.Verify("not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenIssuer_Verify_WrongKey(t *testing.T) {
	issuer := auth.NewTokenIssuer(testJWTConfig())
	token, err := issuer.Issue("admin", "Admin")
	require.NoError(t, err)

	otherCfg := testJWTConfig()
	otherCfg.Key = "different-signing-key"
	other := auth.NewTokenIssuer(otherCfg)

	_, err = other.Verify(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenIssuer_Verify_WrongIssuer(t *testing.T) {
	cfg := testJWTConfig()
	cfg.Issuer = "someone-else"
	other := auth.NewTokenIssuer(cfg)
	token, err := other.Issue("admin", "Admin")
	require.NoError(t, err)

	issuer := auth.NewTokenIssuer(testJWTConfig())
	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestTokenIssuer_Verify_Expired(t *testing.T) {
	cfg := testJWTConfig()

	// Craft an already-expired token signed with the same key
	now := time.Now().UTC()
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		Username: "admin",
		Role:     "Admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			Audience:  jwt.ClaimStrings{cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
	})
	token, err := expired.SignedString([]byte(cfg.Key))
	require.NoError(t, err)

	issuer := auth.NewTokenIssuer(cfg)
	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, auth.ErrExpiredToken)
}

func TestTokenIssuer_Verify_MissingUsername(t *testing.T) {
	cfg := testJWTConfig()

	now := time.Now().UTC()
	anonymous := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    cfg.Issuer,
		Audience:  jwt.ClaimStrings{cfg.Audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	})
	token, err := anonymous.SignedString([]byte(cfg.Key))
	require.NoError(t, err)

	issuer := auth.NewTokenIssuer(cfg)
	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
