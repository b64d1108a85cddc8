package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func TestSessionService_IssueAndVerify(t *testing.T) {
	svc := NewSessionService(testSecret, time.Hour)

	token, err := svc.Issue("user-1", "admin@example.com")
	require.NoError(t, err)

	session, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", session.UserID)
	assert.Equal(t, "admin@example.com", session.Email)
	assert.WithinDuration(t, time.Now().Add(time.Hour), session.ExpiresAt, 5*time.Second)
}

func TestSessionService_IssueRequiresUser(t *testing.T) {
	svc := NewSessionService(testSecret, time.Hour)

	_, err := svc.Issue("", "")
	assert.Error(t, err)
}

func TestSessionService_Verify_Invalid(t *testing.T) {
	svc := NewSessionService(testSecret, time.Hour)
	other := NewSessionService([]byte("another-secret-another-secret-xx"), time.Hour)

	foreign, err := other.Issue("user-1", "")
	require.NoError(t, err)

	expired := NewSessionService(testSecret, time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	stale, err := expired.Issue("user-1", "")
	require.NoError(t, err)

	wrongIssuer := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: "user-1",
	})
	wrongIssuerToken, err := wrongIssuer.SignedString(testSecret)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not-a-jwt"},
		{name: "wrong secret", token: foreign},
		{name: "expired", token: stale},
		{name: "wrong issuer", token: wrongIssuerToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := svc.Verify(tt.token)
			assert.Nil(t, session)
			assert.True(t, errors.Is(err, ErrInvalidSession))
		})
	}
}
