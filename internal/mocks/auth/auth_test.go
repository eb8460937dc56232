package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/showcase-labs/showcase-console/internal/adapters/memory"
	"github.com/showcase-labs/showcase-console/internal/apiclient"
	"github.com/showcase-labs/showcase-console/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubCredentialAPI_Login(t *testing.T) {
	api := NewStubCredentialAPI()
	ctx := context.Background()

	resp, err := api.Login(ctx, ports.LoginRequest{Email: "dev@example.com", Password: "password"})
	require.NoError(t, err)
	assert.Equal(t, "token-dev@example.com", resp.Token)
	assert.Equal(t, "developer", resp.User["role"])

	_, err = api.Login(ctx, ports.LoginRequest{Email: "nobody@example.com", Password: "x"})
	var apiErr *apiclient.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "EMAIL_NOT_FOUND", apiErr.Code)

	_, err = api.Login(ctx, ports.LoginRequest{Email: "dev@example.com", Password: "wrong"})
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "PASSWORD_INCORRECT", apiErr.Code)

	assert.Equal(t, 3, api.Calls("Login"))
}

func TestStubCredentialAPI_Signup(t *testing.T) {
	api := NewStubCredentialAPI()
	ctx := context.Background()

	resp, err := api.Signup(ctx, ports.SignupRequest{FullName: "New Person", Email: "new@example.com", Password: "pw", Role: "user"})
	require.NoError(t, err)
	assert.Equal(t, "New Person", resp.User["fullName"])

	_, err = api.Signup(ctx, ports.SignupRequest{Email: "new@example.com"})
	var apiErr *apiclient.Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 409, apiErr.Status)
}

func TestFaultyKV(t *testing.T) {
	ctx := context.Background()
	kv := &FaultyKV{Inner: memory.NewKVStore(), SetErr: ErrInjected, FailKeys: []string{"token"}}

	require.ErrorIs(t, kv.Set(ctx, "token", "T"), ErrInjected)
	require.NoError(t, kv.Set(ctx, "user", "{}"))

	v, ok, err := kv.Get(ctx, "user")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "{}", v)
}
