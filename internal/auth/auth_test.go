package auth

import (
	"regexp"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stallhub/internal/model"
)

func TestPassword(t *testing.T) {
	_, err := HashPassword("short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.True(t, CheckPassword("correct horse", hash))
	assert.False(t, CheckPassword("battery staple", hash))
	assert.False(t, CheckPassword("anything", ""))
}

func TestTokenIssuer(t *testing.T) {
	_, err := NewTokenIssuer("", "stallhub", time.Hour)
	assert.Error(t, err)

	issuer, err := NewTokenIssuer("test-secret", "stallhub", time.Hour)
	require.NoError(t, err)

	u := &model.User{
		ID:    "user-1",
		Email: "chef@example.com",
		Name:  "Chef",
		Roles: []model.RoleAssignment{{Role: model.RoleStaff, BusinessID: "biz-1"}},
	}

	t.Run("round trip", func(t *testing.T) {
		token, exp, err := issuer.Issue(u)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

		claims, err := issuer.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
		assert.Equal(t, "chef@example.com", claims.Email)

		p := claims.Principal()
		assert.True(t, p.WorksAt("biz-1"))
	})

	t.Run("expired", func(t *testing.T) {
		past, err := NewTokenIssuer("test-secret", "stallhub", time.Minute)
		require.NoError(t, err)
		past.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, _, err := past.Issue(u)
		require.NoError(t, err)

		_, err = issuer.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := NewTokenIssuer("other-secret", "stallhub", time.Hour)
		require.NoError(t, err)
		token, _, err := other.Issue(u)
		require.NoError(t, err)

		_, err = issuer.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other, err := NewTokenIssuer("test-secret", "someone-else", time.Hour)
		require.NoError(t, err)
		token, _, err := other.Issue(u)
		require.NoError(t, err)

		_, err = issuer.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("none algorithm rejected", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "user-1"})
		s, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = issuer.Parse(s)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := issuer.Parse("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestNewSecret(t *testing.T) {
	a, err := NewSecret()
	require.NoError(t, err)
	b, err := NewSecret()
	require.NoError(t, err)

	assert.NotEqual(t, a.Token, b.Token)
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), a.Code)
	assert.Equal(t, HashSecret(a.Token), a.TokenHash)
	assert.Equal(t, HashSecret(a.Code), a.CodeHash)
	assert.Len(t, a.TokenHash, 64)
	assert.NotContains(t, a.Token, "+")
}
