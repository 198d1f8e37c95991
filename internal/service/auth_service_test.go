package service

import (
	"context"
	"testing"

	"notetaking-be/internal/config"
	"notetaking-be/internal/dto"
	"notetaking-be/internal/pkg/apperror"
	"notetaking-be/internal/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService() (IAuthService, *fakeRepositoryFactory) {
	factory := newFakeRepositoryFactory()
	provider := token.NewProvider(config.JwtConfig{
		Secret:            "test-secret-key",
		Issuer:            "notetaking-api",
		Audience:          "notetaking-client",
		ExpirationMinutes: 60,
	})
	return NewAuthService(factory, provider, nopLogger{}), factory
}

func registerTestUser(t *testing.T, svc IAuthService, email, password string) *dto.RegisterResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    email,
		Password: password,
		FullName: "Test User",
	})
	require.NoError(t, err)
	return resp
}

func TestRegister_StoresHashedPassword(t *testing.T) {
	svc, factory := newTestAuthService()

	resp := registerTestUser(t, svc, "alice@example.com", "s3cret-password")

	user := factory.store.users[resp.Id]
	require.NotNil(t, user)
	assert.NotEqual(t, "s3cret-password", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret-password")))
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	svc, factory := newTestAuthService()

	registerTestUser(t, svc, "alice@example.com", "s3cret-password")

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "alice@example.com",
		Password: "another-password",
		FullName: "Alice Again",
	})
	require.Error(t, err)

	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.KindConflict, appErr.Kind)
	assert.Len(t, factory.store.users, 1)
}

func TestLogin_IssuesAndStoresTokenPair(t *testing.T) {
	svc, factory := newTestAuthService()
	registered := registerTestUser(t, svc, "alice@example.com", "s3cret-password")

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "s3cret-password",
	})
	require.NoError(t, err)

	assert.Equal(t, "Test User", resp.FullName)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	// Stored pair must equal the pair returned to the client.
	user := factory.store.users[registered.Id]
	require.NotNil(t, user.StoredAccessToken)
	require.NotNil(t, user.StoredRefreshToken)
	assert.Equal(t, resp.AccessToken, *user.StoredAccessToken)
	assert.Equal(t, resp.RefreshToken, *user.StoredRefreshToken)
}

func TestLogin_WrongCredentialsIndistinguishable(t *testing.T) {
	svc, _ := newTestAuthService()
	registerTestUser(t, svc, "alice@example.com", "s3cret-password")

	_, unknownErr := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "s3cret-password",
	})
	_, wrongPassErr := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})

	require.Error(t, unknownErr)
	require.Error(t, wrongPassErr)

	var appErr1, appErr2 *apperror.Error
	require.ErrorAs(t, unknownErr, &appErr1)
	require.ErrorAs(t, wrongPassErr, &appErr2)
	assert.Equal(t, apperror.KindUnauthorized, appErr1.Kind)
	assert.Equal(t, apperror.KindUnauthorized, appErr2.Kind)
	// Identical message for both failure modes; account enumeration stays blind.
	assert.Equal(t, appErr1.Message, appErr2.Message)
}

func TestRefreshToken_RotatesPair(t *testing.T) {
	svc, factory := newTestAuthService()
	registered := registerTestUser(t, svc, "alice@example.com", "s3cret-password")

	loginResp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "s3cret-password",
	})
	require.NoError(t, err)

	refreshResp, err := svc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{
		Email:        "alice@example.com",
		RefreshToken: loginResp.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEqual(t, loginResp.RefreshToken, refreshResp.RefreshToken)

	user := factory.store.users[registered.Id]
	assert.Equal(t, refreshResp.RefreshToken, *user.StoredRefreshToken)

	// The consumed refresh token is dead after rotation.
	_, err = svc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{
		Email:        "alice@example.com",
		RefreshToken: loginResp.RefreshToken,
	})
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.KindUnauthorized, appErr.Kind)
}

func TestRefreshToken_RejectsWithoutPriorLogin(t *testing.T) {
	svc, _ := newTestAuthService()
	registerTestUser(t, svc, "alice@example.com", "s3cret-password")

	_, err := svc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{
		Email:        "alice@example.com",
		RefreshToken: "made-up-token",
	})
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.KindUnauthorized, appErr.Kind)
}

func TestRefreshToken_UnknownEmailRejected(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{
		Email:        "ghost@example.com",
		RefreshToken: "anything",
	})
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperror.KindUnauthorized, appErr.Kind)
}
