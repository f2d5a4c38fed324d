package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"unionhub/internal/config"
	"unionhub/internal/microservices/http-api/dto"
	"unionhub/internal/microservices/http-api/models"
	"unionhub/internal/middleware/auth"
	"unionhub/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestAuthService(m *mockRepos, denylist TokenDenylist) *authService {
	cfg := &config.Config{
		JWTSecret:       "test-secret",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
	}
	svc := NewAuthService(m.Tx(), m.Repositories(), denylist, cfg).(*authService)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()
	m := newMockRepos()
	svc := newTestAuthService(m, nil)

	m.users.On("FindByUsername", ctx, "newbie").Return(nil, gorm.ErrRecordNotFound)
	m.users.On("FindByEmail", ctx, "newbie@example.com").Return(nil, gorm.ErrRecordNotFound)
	m.users.On("Create", ctx, mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "newbie@example.com" && u.Role == models.RoleUser &&
			auth.VerifyPassword(u.Password, "password123") == nil
	})).Return(nil)
	m.refreshTokens.On("Create", ctx, mock.AnythingOfType("*models.RefreshToken")).Return(nil)

	resp, err := svc.Register(ctx, dto.RegisterRequest{
		Username:        "newbie",
		Email:           "Newbie@Example.com",
		Password:        "password123",
		PasswordConfirm: "password123",
	})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "Registration successful", resp.Message)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, int64(3600), resp.ExpiresIn)

	claims, err := svc.ValidateToken(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, models.RoleUser, claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestAuthService_RegisterCollectsFieldErrors(t *testing.T) {
	ctx := context.Background()
	m := newMockRepos()
	svc := newTestAuthService(m, nil)

	m.users.On("FindByUsername", ctx, "taken").Return(&models.User{ID: "u1"}, nil)
	m.users.On("FindByEmail", ctx, "dup@example.com").Return(&models.User{ID: "u2"}, nil)

	_, err := svc.Register(ctx, dto.RegisterRequest{
		Username:        "taken",
		Email:           "dup@example.com",
		Password:        "short",
		PasswordConfirm: "different",
	})

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
	for _, field := range []string{"username", "email", "password", "password_confirm"} {
		assert.Contains(t, appErr.Details, field)
	}
	m.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)
	user := &models.User{ID: "u1", Username: "member", Email: "member@example.com", Password: hash, Role: models.RoleUser}

	t.Run("success", func(t *testing.T) {
		m := newMockRepos()
		svc := newTestAuthService(m, nil)
		m.users.On("FindByEmail", ctx, "member@example.com").Return(user, nil)
		m.users.On("TouchLastLogin", ctx, "u1", fixedNow).Return(nil)
		m.refreshTokens.On("Create", ctx, mock.Anything).Return(nil)

		resp, err := svc.Login(ctx, dto.LoginRequest{Email: "member@example.com", Password: "password123"})

		require.NoError(t, err)
		assert.Equal(t, "Login successful", resp.Message)
		assert.Equal(t, "u1", resp.User.ID)
		m.users.AssertExpectations(t)
	})

	t.Run("wrong password", func(t *testing.T) {
		m := newMockRepos()
		svc := newTestAuthService(m, nil)
		m.users.On("FindByEmail", ctx, "member@example.com").Return(user, nil)

		_, err := svc.Login(ctx, dto.LoginRequest{Email: "member@example.com", Password: "nope-nope"})

		assert.ErrorIs(t, err, ErrInvalidCredentials)
		m.refreshTokens.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown email", func(t *testing.T) {
		m := newMockRepos()
		svc := newTestAuthService(m, nil)
		m.users.On("FindByEmail", ctx, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Login(ctx, dto.LoginRequest{Email: "ghost@example.com", Password: "password123"})

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_RefreshRotatesToken(t *testing.T) {
	ctx := context.Background()
	m := newMockRepos()
	svc := newTestAuthService(m, nil)

	current := &models.RefreshToken{ID: "rt1", UserID: "u1", Token: "old-token", ExpiresAt: fixedNow.Add(time.Hour)}
	m.refreshTokens.On("FindByToken", ctx, "old-token").Return(current, nil)
	m.users.On("FindByID", ctx, "u1").Return(&models.User{ID: "u1", Role: models.RoleAdmin}, nil)
	m.refreshTokens.On("Revoke", ctx, "rt1").Return(nil)
	m.refreshTokens.On("Create", ctx, mock.MatchedBy(func(rt *models.RefreshToken) bool {
		return rt.UserID == "u1" && rt.Token != "old-token" && rt.ExpiresAt.Equal(fixedNow.Add(24*time.Hour))
	})).Return(nil)

	resp, err := svc.RefreshAccessToken(ctx, "old-token")

	require.NoError(t, err)
	assert.NotEqual(t, "old-token", resp.RefreshToken)
	claims, err := svc.ValidateToken(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	m.refreshTokens.AssertExpectations(t)
}

func TestAuthService_RefreshRejects(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name  string
		token *models.RefreshToken
		err   error
	}{
		{"unknown", nil, gorm.ErrRecordNotFound},
		{"revoked", &models.RefreshToken{ID: "rt1", UserID: "u1", Revoked: true, ExpiresAt: fixedNow.Add(time.Hour)}, nil},
		{"expired", &models.RefreshToken{ID: "rt1", UserID: "u1", ExpiresAt: fixedNow.Add(-time.Minute)}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMockRepos()
			svc := newTestAuthService(m, nil)
			if tt.token == nil {
				m.refreshTokens.On("FindByToken", ctx, "tok").Return(nil, tt.err)
			} else {
				m.refreshTokens.On("FindByToken", ctx, "tok").Return(tt.token, nil)
			}

			_, err := svc.RefreshAccessToken(ctx, "tok")

			assert.True(t, apperrors.Is(err, apperrors.CodeUnauthenticated))
			m.refreshTokens.AssertNotCalled(t, "Revoke", mock.Anything, mock.Anything)
		})
	}
}

func TestAuthService_ValidateToken(t *testing.T) {
	ctx := context.Background()
	user := &models.User{ID: "u1", Role: models.RoleUser}

	t.Run("expired", func(t *testing.T) {
		svc := newTestAuthService(newMockRepos(), nil)
		token, err := svc.generateAccessToken(user)
		require.NoError(t, err)

		svc.now = func() time.Time { return fixedNow.Add(2 * time.Hour) }
		_, err = svc.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		svc := newTestAuthService(newMockRepos(), nil)
		token, err := svc.generateAccessToken(user)
		require.NoError(t, err)

		svc.jwtSecret = "other-secret"
		_, err = svc.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("revoked jti", func(t *testing.T) {
		denylist := new(MockTokenDenylist)
		svc := newTestAuthService(newMockRepos(), denylist)
		token, err := svc.generateAccessToken(user)
		require.NoError(t, err)
		denylist.On("IsTokenRevoked", ctx, mock.AnythingOfType("string")).Return(true, nil)

		_, err = svc.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrRevokedToken)
	})

	t.Run("denylist outage fails open", func(t *testing.T) {
		denylist := new(MockTokenDenylist)
		svc := newTestAuthService(newMockRepos(), denylist)
		token, err := svc.generateAccessToken(user)
		require.NoError(t, err)
		denylist.On("IsTokenRevoked", ctx, mock.Anything).Return(false, errors.New("connection refused"))

		claims, err := svc.ValidateToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "u1", claims.UserID)
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	m := newMockRepos()
	denylist := new(MockTokenDenylist)
	svc := newTestAuthService(m, denylist)

	token, err := svc.generateAccessToken(&models.User{ID: "u1", Role: models.RoleUser})
	require.NoError(t, err)
	denylist.On("IsTokenRevoked", ctx, mock.Anything).Return(false, nil).Once()
	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)

	denylist.On("RevokeToken", ctx, claims.ID, time.Hour).Return(nil)
	m.refreshTokens.On("RevokeAllForUser", ctx, "u1").Return(nil)

	require.NoError(t, svc.Logout(ctx, claims))
	denylist.AssertExpectations(t)
	m.refreshTokens.AssertExpectations(t)

	assert.True(t, apperrors.Is(svc.Logout(ctx, nil), apperrors.CodeUnauthenticated))
}
