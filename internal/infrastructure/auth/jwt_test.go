package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/archerandash/storefront/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-at-least-32-characters"

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:     testSecret,
		Expiration: 24 * time.Hour,
		Issuer:     "storefront-test",
	})
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	issued, err := svc.Issue(userID, "admin@archerandash.com")
	require.NoError(t, err)
	assert.NotEmpty(t, issued.Token)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), issued.ExpiresAt, 5*time.Second)

	claims, err := svc.Validate(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "admin@archerandash.com", claims.Email)
	assert.NotEmpty(t, claims.ID, "every token carries a jti")
	assert.Equal(t, "storefront-test", claims.Issuer)

	parsed, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
	assert.InDelta(t, (24 * time.Hour).Seconds(), claims.RemainingTTL().Seconds(), 5)
}

func TestJWTService_UniqueJTI(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	a, err := svc.Issue(userID, "a@example.com")
	require.NoError(t, err)
	b, err := svc.Issue(userID, "a@example.com")
	require.NoError(t, err)

	ca, err := svc.Validate(a.Token)
	require.NoError(t, err)
	cb, err := svc.Validate(b.Token)
	require.NoError(t, err)
	assert.NotEqual(t, ca.ID, cb.ID)
}

func TestJWTService_Expired(t *testing.T) {
	svc := newTestJWTService()
	issued, err := svc.Issue(uuid.New(), "a@example.com")
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(25 * time.Hour) }

	_, err = svc.Validate(issued.Token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_InvalidTokens(t *testing.T) {
	svc := newTestJWTService()

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.Validate("not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTService(config.JWTConfig{Secret: "another-secret-that-is-long-enough!!", Expiration: time.Hour})
		issued, err := other.Issue(uuid.New(), "a@example.com")
		require.NoError(t, err)

		_, err = svc.Validate(issued.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("tampered payload", func(t *testing.T) {
		issued, err := svc.Issue(uuid.New(), "a@example.com")
		require.NoError(t, err)
		parts := strings.Split(issued.Token, ".")
		parts[1] = parts[1] + "x"

		_, err = svc.Validate(strings.Join(parts, "."))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("non-HMAC algorithm", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: uuid.NewString()})
		signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.Validate(signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing user id", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
			Email:            "a@example.com",
		})
		signed, err := token.SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = svc.Validate(signed)
		assert.ErrorIs(t, err, ErrMissingUserID)
	})
}

func TestClaims_RemainingTTLNeverNegative(t *testing.T) {
	c := &Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour))}}
	assert.Zero(t, c.RemainingTTL())
	assert.Zero(t, (&Claims{}).RemainingTTL())
}
