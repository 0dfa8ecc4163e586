package services

import (
	"context"
	"testing"
	"time"

	"cblls_server/lib"
	"cblls_server/storage"
	"cblls_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAccountService(t *testing.T) *AccountService {
	t.Helper()

	backend, err := storage.OpenFile(t.TempDir(), 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	cfg := &structs.Config{
		Auth: &structs.AuthConfig{
			AccessTokenSecret:  "test-access-secret",
			AccessTokenExpiry:  15 * time.Minute,
			RefreshTokenSecret: "test-refresh-secret",
			RefreshTokenExpiry: 24 * time.Hour,
			AdminEmails:        []string{"admin@cbllstech.com"},
			MinPasswordLength:  6,
		},
		Email: &structs.EmailConfig{
			Enabled:                 false,
			VerificationTokenExpiry: time.Hour,
			ResetTokenExpiry:        time.Hour,
		},
	}

	return NewAccountService(cfg, gecho.NewDefaultLogger(), backend, nil)
}

func TestSignUpAndSignIn(t *testing.T) {
	as := newTestAccountService(t)
	ctx := context.Background()

	user, err := as.SignUp(ctx, "Ana", "ana@example.com", "secreta1")
	require.NoError(t, err)
	assert.NotEmpty(t, user.Uid)
	assert.Equal(t, structs.RoleClient, user.Role)
	assert.True(t, user.Verified, "without email dispatch the account starts verified")

	signedIn, err := as.SignIn(ctx, "ANA@example.com", "secreta1")
	require.NoError(t, err)
	assert.Equal(t, user.Uid, signedIn.Uid)

	_, err = as.SignIn(ctx, "ana@example.com", "equivocada")
	assert.ErrorIs(t, err, lib.ErrInvalidCredentials)
}

func TestSignUpRejectsWeakPasswordAndDuplicates(t *testing.T) {
	as := newTestAccountService(t)
	ctx := context.Background()

	_, err := as.SignUp(ctx, "Ana", "ana@example.com", "12345")
	assert.ErrorIs(t, err, lib.ErrWeakPassword)

	_, err = as.SignUp(ctx, "Ana", "ana@example.com", "secreta1")
	require.NoError(t, err)

	_, err = as.SignUp(ctx, "Ana Dos", "Ana@Example.com", "otraclave")
	assert.ErrorIs(t, err, lib.ErrDuplicateAccount)
}

func TestSignInShortPasswordNeverReachesStorage(t *testing.T) {
	as := newTestAccountService(t)

	_, err := as.SignIn(context.Background(), "ana@example.com", "123")
	assert.ErrorIs(t, err, lib.ErrWeakPassword)
}

func TestAdminRoleComesFromAllowList(t *testing.T) {
	as := newTestAccountService(t)
	ctx := context.Background()

	admin, err := as.SignUp(ctx, "Admin", "Admin@CBLLSTech.com", "secreta1")
	require.NoError(t, err)
	assert.Equal(t, structs.RoleAdmin, admin.Role)

	client, err := as.SignUp(ctx, "Cliente", "cliente@example.com", "secreta1")
	require.NoError(t, err)
	assert.Equal(t, structs.RoleClient, client.Role)
}

func TestLookup(t *testing.T) {
	as := newTestAccountService(t)
	ctx := context.Background()

	user, err := as.SignUp(ctx, "Ana", "ana@example.com", "secreta1")
	require.NoError(t, err)

	found, err := as.Lookup(ctx, user.Uid)
	require.NoError(t, err)
	assert.Equal(t, user.Email, found.Email)

	_, err = as.Lookup(ctx, "missing-uid")
	assert.ErrorIs(t, err, lib.ErrNotFound)
}

func TestPasswordResetFlow(t *testing.T) {
	as := newTestAccountService(t)
	ctx := context.Background()

	user, err := as.SignUp(ctx, "Ana", "ana@example.com", "secreta1")
	require.NoError(t, err)

	// dispatch is disabled, but the token is still minted and stored
	require.NoError(t, as.SendPasswordReset(ctx, "ana@example.com"))

	tokens, err := as.loadTokens(ctx)
	require.NoError(t, err)
	var token string
	for value, record := range tokens {
		if record.Uid == user.Uid && record.Purpose == structs.TokenResetPassword {
			token = value
		}
	}
	require.NotEmpty(t, token)

	assert.ErrorIs(t, as.ResetPassword(ctx, token, "123"), lib.ErrWeakPassword)
	require.NoError(t, as.ResetPassword(ctx, token, "nuevaclave"))

	_, err = as.SignIn(ctx, "ana@example.com", "secreta1")
	assert.ErrorIs(t, err, lib.ErrInvalidCredentials)
	_, err = as.SignIn(ctx, "ana@example.com", "nuevaclave")
	assert.NoError(t, err)

	// the token is one-shot
	assert.ErrorIs(t, as.ResetPassword(ctx, token, "otraclavemas"), lib.ErrInvalidToken)
}

func TestSendPasswordResetHidesUnknownAccounts(t *testing.T) {
	as := newTestAccountService(t)
	assert.NoError(t, as.SendPasswordReset(context.Background(), "nadie@example.com"))
}

func TestVerifyEmailWithStoredToken(t *testing.T) {
	as := newTestAccountService(t)
	ctx := context.Background()

	user, err := as.SignUp(ctx, "Ana", "ana@example.com", "secreta1")
	require.NoError(t, err)

	token, err := as.storeToken(ctx, user.Uid, structs.TokenVerifyEmail, time.Hour)
	require.NoError(t, err)

	assert.ErrorIs(t, as.VerifyEmail(ctx, user.Uid, "wrong-token"), lib.ErrInvalidToken)
	require.NoError(t, as.VerifyEmail(ctx, user.Uid, token))

	fresh, err := as.Lookup(ctx, user.Uid)
	require.NoError(t, err)
	assert.True(t, fresh.Verified)
}

func TestVerifyEmailExpiredToken(t *testing.T) {
	as := newTestAccountService(t)
	ctx := context.Background()

	user, err := as.SignUp(ctx, "Ana", "ana@example.com", "secreta1")
	require.NoError(t, err)

	token, err := as.storeToken(ctx, user.Uid, structs.TokenVerifyEmail, -time.Minute)
	require.NoError(t, err)

	assert.ErrorIs(t, as.VerifyEmail(ctx, user.Uid, token), lib.ErrExpiredToken)
}

func TestTokenRoundTrip(t *testing.T) {
	as := newTestAccountService(t)
	user := &structs.User{Uid: "u-1", Email: "ana@example.com", Name: "Ana", Role: structs.RoleClient}

	signed, err := as.GenerateAccessToken(user)
	require.NoError(t, err)

	claims, err := lib.ParseToken(signed, as.GetAccessTokenSecret())
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.Sub)
	assert.Equal(t, structs.RoleClient, claims.Role)
}
