package service

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expenser/expense-api/internal/core/domain"
)

func TestJWTService_IssueVerifyRoundTrip(t *testing.T) {
	svc := NewJWTService("secret", 0)

	token, expiresAt, err := svc.Issue("64b000000000000000000001")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), expiresAt, time.Minute)

	userID, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "64b000000000000000000001", userID)
}

func TestJWTService_TokensAreUnique(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)

	a, _, err := svc.Issue("user-1")
	require.NoError(t, err)
	b, _, err := svc.Issue("user-1")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestJWTService_RejectsExpired(t *testing.T) {
	issuer := NewJWTService("secret", 7*24*time.Hour)
	issuer.now = func() time.Time { return time.Now().Add(-8 * 24 * time.Hour) }

	token, _, err := issuer.Issue("user-1")
	require.NoError(t, err)

	_, err = NewJWTService("secret", 0).Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	token, _, err := NewJWTService("secret", time.Hour).Issue("user-1")
	require.NoError(t, err)

	_, err = NewJWTService("other-secret", time.Hour).Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestJWTService_RejectsMalformed(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.Verify(token)
		assert.ErrorIs(t, err, domain.ErrInvalidToken, "token %q", token)
	}
}

func TestJWTService_RejectsOtherAlgorithms(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewJWTService("secret", time.Hour).Verify(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestJWTService_RejectsMissingExpiryOrSubject(t *testing.T) {
	svc := NewJWTService("secret", time.Hour)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "user-1"}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = svc.Verify(noExp)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)

	noSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = svc.Verify(noSub)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(4)

	first, err := h.Hash("pass1234")
	require.NoError(t, err)
	second, err := h.Hash("pass1234")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "salt must differ per call")
	assert.True(t, h.Verify("pass1234", first))
	assert.True(t, h.Verify("pass1234", second))
	assert.False(t, h.Verify("pass12345", first))
	assert.False(t, h.Verify("pass1234", "not-a-hash"))
}

func TestBcryptHasher_TooLongIsValidation(t *testing.T) {
	_, err := NewBcryptHasher(4).Hash(strings.Repeat("x", 73))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestNewBcryptHasher_ClampsCost(t *testing.T) {
	assert.Equal(t, 10, NewBcryptHasher(0).cost)
	assert.Equal(t, 10, NewBcryptHasher(99).cost)
	assert.Equal(t, 12, NewBcryptHasher(12).cost)
}
