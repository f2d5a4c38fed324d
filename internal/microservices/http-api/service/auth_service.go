package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"unionhub/internal/config"
	"unionhub/internal/microservices/http-api/dto"
	"unionhub/internal/microservices/http-api/models"
	"unionhub/internal/microservices/http-api/repository"
	"unionhub/internal/middleware/auth"
	"unionhub/internal/pkg/apperrors"
	"unionhub/internal/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrRevokedToken       = errors.New("token has been revoked")
)

// Claims is the access token payload.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenDenylist remembers revoked access tokens by jti until they expire.
type TokenDenylist interface {
	RevokeToken(ctx context.Context, jti string, ttl time.Duration) error
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)
}

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (*dto.RefreshResponse, error)
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
	Logout(ctx context.Context, claims *Claims) error
}

type authService struct {
	tx              repository.Transactor
	repos           repository.Repositories
	denylist        TokenDenylist
	jwtSecret       string
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
	now             func() time.Time
}

func NewAuthService(
	tx repository.Transactor,
	repos repository.Repositories,
	denylist TokenDenylist,
	cfg *config.Config,
) AuthService {
	return &authService{
		tx:              tx,
		repos:           repos,
		denylist:        denylist,
		jwtSecret:       cfg.JWTSecret,
		accessTokenTTL:  cfg.AccessTokenTTL,
		refreshTokenTTL: cfg.RefreshTokenTTL,
		now:             time.Now,
	}
}

// Register creates a user account and signs it in.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	verr := apperrors.New(apperrors.CodeValidationFailed, "validation failed")
	if username == "" {
		verr.WithField("username", "This field may not be blank.")
	}
	if len(req.Password) < auth.MinPasswordLength {
		verr.WithField("password", fmt.Sprintf("Ensure this field has at least %d characters.", auth.MinPasswordLength))
	}
	if req.Password != req.PasswordConfirm {
		verr.WithField("password_confirm", "Passwords don't match.")
	}
	if username != "" {
		if _, err := s.repos.Users.FindByUsername(ctx, username); err == nil {
			verr.WithField("username", "A user with that username already exists.")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Internal(internalMessage, err)
		}
	}
	if _, err := s.repos.Users.FindByEmail(ctx, email); err == nil {
		verr.WithField("email", "A user with that email already exists.")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Internal(internalMessage, err)
	}
	if len(verr.Details) > 0 {
		return nil, verr
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.Internal(internalMessage, err)
	}
	user := &models.User{
		ID:        uuid.New().String(),
		Username:  username,
		Email:     email,
		Password:  hashedPassword,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Role:      models.RoleUser,
	}
	if err := s.repos.Users.Create(ctx, user); err != nil {
		if repository.IsDuplicate(err) {
			// lost a race with a concurrent registration
			return nil, apperrors.Validation("username", "A user with that username or email already exists.")
		}
		return nil, apperrors.Internal(internalMessage, err)
	}
	logger.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("user registered")

	resp, err := s.issue(ctx, user)
	if err != nil {
		return nil, err
	}
	resp.Message = "Registration successful"
	return resp, nil
}

// Login authenticates by email. Unknown emails and wrong passwords both return
// ErrInvalidCredentials after a comparable amount of work.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.repos.Users.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Internal(internalMessage, err)
		}
		auth.BurnCompare(req.Password)
		return nil, ErrInvalidCredentials
	}
	if err := auth.VerifyPassword(user.Password, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.repos.Users.TouchLastLogin(ctx, user.ID, s.now()); err != nil {
		logger.Warn().Err(err).Str("user_id", user.ID).Msg("failed to record last login")
	}

	resp, err := s.issue(ctx, user)
	if err != nil {
		return nil, err
	}
	resp.Message = "Login successful"
	return resp, nil
}

// RefreshAccessToken exchanges a refresh token for a new access token. The presented
// refresh token is revoked and replaced.
func (s *authService) RefreshAccessToken(ctx context.Context, refreshTokenString string) (*dto.RefreshResponse, error) {
	var (
		access  string
		rotated *models.RefreshToken
	)
	err := s.tx.WithinTransaction(ctx, func(repos repository.Repositories) error {
		current, err := repos.RefreshTokens.FindByToken(ctx, refreshTokenString)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidToken
			}
			return err
		}
		if current.Revoked || s.now().After(current.ExpiresAt) {
			return ErrInvalidToken
		}
		user, err := repos.Users.FindByID(ctx, current.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidToken
			}
			return err
		}
		if err := repos.RefreshTokens.Revoke(ctx, current.ID); err != nil {
			return err
		}
		if rotated, err = s.newRefreshToken(ctx, repos, user); err != nil {
			return err
		}
		access, err = s.generateAccessToken(user)
		return err
	})
	if errors.Is(err, ErrInvalidToken) {
		return nil, apperrors.Unauthenticated("Invalid or expired refresh token")
	}
	if err != nil {
		return nil, apperrors.Internal(internalMessage, err)
	}
	return &dto.RefreshResponse{
		Success:      true,
		Token:        access,
		RefreshToken: rotated.Token,
		ExpiresIn:    int64(s.accessTokenTTL.Seconds()),
	}, nil
}

func (s *authService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.jwtSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	if s.denylist != nil && claims.ID != "" {
		revoked, err := s.denylist.IsTokenRevoked(ctx, claims.ID)
		if err != nil {
			// the denylist is best effort when redis is unavailable
			logger.Warn().Err(err).Msg("token denylist lookup failed")
		} else if revoked {
			return nil, ErrRevokedToken
		}
	}
	return claims, nil
}

// Logout revokes the presented access token and every refresh token of the user.
func (s *authService) Logout(ctx context.Context, claims *Claims) error {
	if claims == nil {
		return apperrors.Unauthenticated("Authentication credentials were not provided.")
	}
	if s.denylist != nil && claims.ID != "" && claims.ExpiresAt != nil {
		if err := s.denylist.RevokeToken(ctx, claims.ID, claims.ExpiresAt.Sub(s.now())); err != nil {
			return apperrors.Internal(internalMessage, err)
		}
	}
	if err := s.repos.RefreshTokens.RevokeAllForUser(ctx, claims.UserID); err != nil {
		return apperrors.Internal(internalMessage, err)
	}
	logger.Info().Str("user_id", claims.UserID).Msg("user logged out")
	return nil
}

func (s *authService) issue(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	access, err := s.generateAccessToken(user)
	if err != nil {
		return nil, apperrors.Internal(internalMessage, err)
	}
	refresh, err := s.newRefreshToken(ctx, s.repos, user)
	if err != nil {
		return nil, apperrors.Internal(internalMessage, err)
	}
	return &dto.AuthResponse{
		Success:      true,
		User:         dto.FromModelToUserResponse(user),
		Token:        access,
		RefreshToken: refresh.Token,
		ExpiresIn:    int64(s.accessTokenTTL.Seconds()),
	}, nil
}

func (s *authService) generateAccessToken(user *models.User) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) newRefreshToken(ctx context.Context, repos repository.Repositories, user *models.User) (*models.RefreshToken, error) {
	refreshToken := &models.RefreshToken{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Token:     uuid.New().String(),
		ExpiresAt: s.now().Add(s.refreshTokenTTL),
	}
	if err := repos.RefreshTokens.Create(ctx, refreshToken); err != nil {
		return nil, err
	}
	return refreshToken, nil
}
