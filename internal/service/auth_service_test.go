package service

import (
	"context"
	"testing"

	"github.com/KhadijaXD/NoteNova/internal/dto"
	"github.com/KhadijaXD/NoteNova/internal/pkg/apperrors"
	"github.com/KhadijaXD/NoteNova/internal/repository/unitofwork"
	"github.com/KhadijaXD/NoteNova/pkg/database"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret"

func newTestFactory(t *testing.T) unitofwork.RepositoryFactory {
	t.Helper()

	db, err := database.Open(database.DriverSqlite, ":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return unitofwork.NewRepositoryFactory(db)
}

func TestAuthServiceRegisterAndLogin(t *testing.T) {
	svc := NewAuthService(newTestFactory(t), testJWTSecret)
	ctx := context.Background()

	registered, err := svc.Register(ctx, &dto.RegisterRequest{
		Username: "khadija",
		Email:    "khadija@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, registered.Token)
	assert.Equal(t, "khadija", registered.User.Username)
	assert.Equal(t, "khadija@example.com", registered.User.Email)

	loggedIn, err := svc.Login(ctx, &dto.LoginRequest{
		Email:    "khadija@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.User.Id, loggedIn.User.Id)
	assert.NotEmpty(t, loggedIn.Token)
}

func TestAuthServiceRegisterConflicts(t *testing.T) {
	svc := NewAuthService(newTestFactory(t), testJWTSecret)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{
		Username: "first",
		Email:    "first@example.com",
		Password: "password",
	})
	require.NoError(t, err)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(ctx, &dto.RegisterRequest{
			Username: "second",
			Email:    "first@example.com",
			Password: "password",
		})
		require.ErrorIs(t, err, apperrors.ErrConflict)
		assert.Equal(t, "email already registered", apperrors.Message(err))
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := svc.Register(ctx, &dto.RegisterRequest{
			Username: "first",
			Email:    "second@example.com",
			Password: "password",
		})
		require.ErrorIs(t, err, apperrors.ErrConflict)
		assert.Equal(t, "username already taken", apperrors.Message(err))
	})
}

func TestAuthServiceLoginRejectsBadCredentials(t *testing.T) {
	svc := NewAuthService(newTestFactory(t), testJWTSecret)
	ctx := context.Background()

	_, err := svc.Register(ctx, &dto.RegisterRequest{
		Username: "someone",
		Email:    "someone@example.com",
		Password: "correcthorse",
	})
	require.NoError(t, err)

	tests := []struct {
		name string
		req  dto.LoginRequest
	}{
		{name: "unknown email", req: dto.LoginRequest{Email: "nobody@example.com", Password: "correcthorse"}},
		{name: "wrong password", req: dto.LoginRequest{Email: "someone@example.com", Password: "batterystaple"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(ctx, &tc.req)
			require.ErrorIs(t, err, apperrors.ErrUnauthorized)
			assert.Equal(t, "invalid credentials", apperrors.Message(err))
		})
	}
}

func TestAuthServiceVerify(t *testing.T) {
	svc := NewAuthService(newTestFactory(t), testJWTSecret)
	ctx := context.Background()

	registered, err := svc.Register(ctx, &dto.RegisterRequest{
		Username: "verified",
		Email:    "verified@example.com",
		Password: "password",
	})
	require.NoError(t, err)

	user, err := svc.Verify(ctx, registered.User.Id)
	require.NoError(t, err)
	assert.Equal(t, "verified", user.Username)
	assert.Equal(t, "verified@example.com", user.Email)

	t.Run("deleted user is rejected", func(t *testing.T) {
		_, err := svc.Verify(ctx, uuid.New())
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})
}

func TestAuthServiceTokenClaims(t *testing.T) {
	svc := NewAuthService(newTestFactory(t), testJWTSecret)

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "claims",
		Email:    "claims@example.com",
		Password: "password",
	})
	require.NoError(t, err)

	parsed, err := jwt.Parse(resp.Token, func(token *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, resp.User.Id.String(), claims["user_id"])
	assert.Equal(t, "claims@example.com", claims["email"])
	assert.Equal(t, "claims", claims["username"])
	assert.NotZero(t, claims["exp"])
}
