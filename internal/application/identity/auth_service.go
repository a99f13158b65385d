package identity

import (
	"context"
	"time"

	"github.com/despachante/backend/internal/domain/identity"
	"github.com/despachante/backend/internal/domain/shared"
	"github.com/despachante/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthService handles login and logout
type AuthService struct {
	users     identity.UserRepository
	jwt       *auth.JWTService
	blacklist auth.TokenBlacklist
	logger    *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	users identity.UserRepository,
	jwt *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{users: users, jwt: jwt, blacklist: blacklist, logger: logger}
}

// LoginRequest carries the credentials
type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token and the authenticated user
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}

// Login authenticates a collaborator and issues an access token.
// Unknown logins and wrong passwords are indistinguishable to the
// caller.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.users.FindByLogin(ctx, req.Login)
	if err != nil {
		s.logger.Warn("Login attempt for unknown user", zap.String("login", req.Login))
		return nil, shared.ErrInvalidCredentials
	}
	if !user.Active {
		s.logger.Warn("Login attempt for deactivated user", zap.String("login", req.Login))
		return nil, shared.ErrInvalidCredentials
	}
	if !user.VerifyPassword(req.Password) {
		s.logger.Warn("Invalid password attempt", zap.String("login", req.Login))
		return nil, shared.ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateToken(auth.GenerateTokenInput{
		UserID: user.ID,
		Name:   user.Name,
		Login:  user.Login,
		Role:   user.Role.String(),
	})
	if err != nil {
		s.logger.Error("Failed to issue token", zap.Error(err))
		return nil, shared.NewDomainError("TOKEN_ERROR", "Failed to issue access token")
	}

	s.logger.Info("User logged in", zap.String("login", user.Login))
	return &LoginResponse{
		AccessToken: token.AccessToken,
		ExpiresAt:   token.ExpiresAt,
		User:        *toUserResponse(user),
	}, nil
}

// Logout blacklists the presented token until it would have expired
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	if err := s.blacklist.Add(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("Failed to blacklist token", zap.Error(err))
		return shared.NewDomainError("TOKEN_ERROR", "Failed to invalidate token")
	}
	s.logger.Info("User logged out", zap.String("login", claims.Login))
	return nil
}
