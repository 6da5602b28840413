package identity

import (
	"context"
	"errors"

	"github.com/archerandash/storefront/internal/domain/identity"
	"github.com/archerandash/storefront/internal/domain/shared"
	"github.com/archerandash/storefront/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// Auth errors
var (
	ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid credentials")
	ErrSessionInvalid     = shared.NewDomainError("UNAUTHORIZED", "Not authenticated")
)

// AuthService handles admin authentication
type AuthService struct {
	userRepo   identity.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service. blacklist may be nil,
// in which case logout cannot revoke tokens.
func NewAuthService(
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// Login verifies the credentials and signs a session token
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email := identity.NormalizeEmail(input.Email)

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("Login attempt for unknown user", zap.String("ip", input.IP))
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt",
			zap.String("user_id", user.ID.String()),
			zap.String("ip", input.IP))
		return nil, ErrInvalidCredentials
	}

	token, err := s.jwtService.Issue(user.ID, user.Email)
	if err != nil {
		s.logger.Error("Failed to sign session token", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication token")
	}

	user.RecordLogin()
	if err := s.userRepo.Save(ctx, user); err != nil {
		// Don't fail the login - just log the error
		s.logger.Error("Failed to record login", zap.Error(err))
	}

	s.logger.Info("Admin logged in", zap.String("user_id", user.ID.String()))
	return &LoginResult{
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt,
		User:      UserInfo{UserID: user.ID, Email: user.Email},
	}, nil
}

// Authenticate validates a session token and checks it has not been revoked
func (s *AuthService) Authenticate(ctx context.Context, token string) (*SessionInfo, error) {
	if token == "" {
		return nil, ErrSessionInvalid
	}
	claims, err := s.jwtService.Validate(token)
	if err != nil {
		return nil, ErrSessionInvalid
	}
	userID, err := claims.GetUserUUID()
	if err != nil {
		return nil, ErrSessionInvalid
	}

	if s.blacklist != nil {
		if claims.ID != "" {
			revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
			if err != nil {
				return nil, err
			}
			if revoked {
				return nil, ErrSessionInvalid
			}
		}
		revoked, err := s.blacklist.IsUserSessionRevoked(ctx, claims.UserID, claims.GetIssuedAtTime())
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, ErrSessionInvalid
		}
	}

	return &SessionInfo{
		User:     UserInfo{UserID: userID, Email: claims.Email},
		TokenJTI: claims.ID,
		IssuedAt: claims.GetIssuedAtTime(),
		TTL:      claims.RemainingTTL(),
	}, nil
}

// Logout revokes the token for the rest of its lifetime. Invalid or
// expired tokens need no revocation.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.jwtService.Validate(token)
	if err != nil || claims.ID == "" || s.blacklist == nil {
		return nil
	}
	if err := s.blacklist.AddToBlacklist(ctx, claims.ID, claims.RemainingTTL()); err != nil {
		return err
	}
	s.logger.Info("Admin logged out", zap.String("user_id", claims.UserID))
	return nil
}

// SeedAdmin creates the admin user, or resets the password of an existing
// one and revokes its open sessions.
func (s *AuthService) SeedAdmin(ctx context.Context, email, password string) (*SeedAdminResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, identity.NormalizeEmail(email))
	switch {
	case errors.Is(err, shared.ErrNotFound):
		user, err = identity.NewUser(email, password)
		if err != nil {
			return nil, err
		}
		if err := s.userRepo.Save(ctx, user); err != nil {
			return nil, err
		}
		s.logger.Info("Admin user created", zap.String("user_id", user.ID.String()))
		return &SeedAdminResult{UserID: user.ID, Email: user.Email, Created: true}, nil
	case err != nil:
		return nil, err
	}

	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	if s.blacklist != nil {
		if err := s.blacklist.RevokeUserSessions(ctx, user.ID.String(), s.jwtService.Expiration()); err != nil {
			return nil, err
		}
	}
	s.logger.Info("Admin password reset", zap.String("user_id", user.ID.String()))
	return &SeedAdminResult{UserID: user.ID, Email: user.Email}, nil
}
