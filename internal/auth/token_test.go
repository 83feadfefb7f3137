package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *TokenManager {
	return NewTokenManager("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestAccessToken_RoundTrip(t *testing.T) {
	tm := newTestManager()

	token, expiresAt, err := tm.IssueAccessToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 2*time.Second)

	claims, err := tm.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "42", claims.Subject)
}

func TestVerifyAccessToken_Idempotent(t *testing.T) {
	tm := newTestManager()

	token, _, err := tm.IssueAccessToken(7)
	require.NoError(t, err)

	first, err := tm.VerifyAccessToken(token)
	require.NoError(t, err)
	second, err := tm.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, first.UserID, second.UserID)
}

func TestVerifyAccessToken_WrongSecret(t *testing.T) {
	tm := newTestManager()

	// well-formed claims signed with the wrong secret must be rejected
	claims := &AccessClaims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("wrong-secret"))
	require.NoError(t, err)

	_, err = tm.VerifyAccessToken(forged)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyAccessToken_Expired(t *testing.T) {
	tm := newTestManager()

	claims := &AccessClaims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("access-secret"))
	require.NoError(t, err)

	_, err = tm.VerifyAccessToken(expired)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyAccessToken_ExpiryBoundaryIsExclusive(t *testing.T) {
	tm := newTestManager()

	claims := &AccessClaims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			ExpiresAt: jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("access-secret"))
	require.NoError(t, err)

	_, err = tm.VerifyAccessToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerifyAccessToken_Malformed(t *testing.T) {
	tm := newTestManager()

	for _, token := range []string{"garbage", "a.b.c", "eyJhbGciOiJIUzI1NiJ9"} {
		_, err := tm.VerifyAccessToken(token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	}
}

func TestTokenClasses_DistinctSecretDomains(t *testing.T) {
	tm := newTestManager()

	refreshToken, _, err := tm.IssueRefreshToken(42)
	require.NoError(t, err)
	accessToken, _, err := tm.IssueAccessToken(42)
	require.NoError(t, err)

	assert.NotEqual(t, accessToken, refreshToken)

	// a refresh token must not pass access verification, and vice versa
	_, err = tm.VerifyAccessToken(refreshToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)
	_, err = tm.VerifyRefreshToken(accessToken)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestRefreshToken_RoundTrip(t *testing.T) {
	tm := newTestManager()

	token, expiresAt, err := tm.IssueRefreshToken(9)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), expiresAt, 2*time.Second)

	claims, err := tm.VerifyRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(9), claims.UserID)
	assert.NotEmpty(t, claims.ID)
}

func TestIssueRefreshToken_UniqueJTI(t *testing.T) {
	tm := newTestManager()

	first, _, err := tm.IssueRefreshToken(9)
	require.NoError(t, err)
	second, _, err := tm.IssueRefreshToken(9)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
