package devapi

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	domainauth "github.com/showcase-labs/showcase-console/internal/domain/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	m := &tokenManager{secret: []byte("s"), ttl: time.Hour, now: func() time.Time { return now }}

	raw, err := m.issue(&account{ID: "42", Role: domainauth.RoleDeveloper})
	require.NoError(t, err)

	sub, err := m.parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "42", sub)
}

func TestTokenManager_RejectsForeignTokens(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	m := &tokenManager{secret: []byte("s"), ttl: time.Hour, now: func() time.Time { return now }}

	other := &tokenManager{secret: []byte("other"), ttl: time.Hour, now: m.now}
	raw, err := other.issue(&account{ID: "1"})
	require.NoError(t, err)
	_, err = m.parse(raw)
	require.Error(t, err, "wrong secret")

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.parse(none)
	require.Error(t, err, "alg none")

	_, err = m.parse("not.a.jwt")
	require.Error(t, err)
}

func TestAccounts(t *testing.T) {
	a := newAccounts(0)
	acct, err := a.add("", "N", " n@example.com ", "pw", domainauth.RoleUser)
	require.NoError(t, err)
	assert.NotEmpty(t, acct.ID)
	assert.Equal(t, "n@example.com", acct.Email)

	_, err = a.add("", "N2", "N@EXAMPLE.COM", "pw", domainauth.RoleUser)
	require.ErrorIs(t, err, errEmailTaken)

	_, err = a.authenticate("n@example.com", "bad")
	require.ErrorIs(t, err, errPasswordIncorrect)
	_, err = a.authenticate("x@example.com", "pw")
	require.ErrorIs(t, err, errEmailNotFound)

	got, ok := a.get(acct.ID)
	require.True(t, ok)
	assert.Equal(t, acct, got)
}
