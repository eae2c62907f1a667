package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"sokoni/database/repository"
	"sokoni/domain"
	"sokoni/models"
	"sokoni/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// tokenTTL bounds both the JWT expiry and the auth-cache entry.
const tokenTTL = 72 * time.Hour

var signupRoles = []domain.Role{domain.RoleCustomer, domain.RoleProvider, domain.RoleSeller}

// SignUp registers a new account and opens a session for it. Admin accounts
// are provisioned out of band, never through this endpoint.
func (s *DefaultUserService) SignUp(ctx context.Context, input SignUpInput) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: name and email are required", ErrValidation)
	}
	if len(input.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrValidation)
	}
	allowed := false
	for _, r := range signupRoles {
		if input.Role == r {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%w: role %q cannot self-register", ErrValidation, input.Role)
	}
	if input.Role == domain.RoleProvider && input.Provider == nil {
		return nil, fmt.Errorf("%w: provider accounts need a provider profile", ErrValidation)
	}

	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.Is(err, repository.ErrNotFound) {
		s.Logger.Error("signup: duplicate check failed", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := models.User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		Phone:        strings.TrimSpace(input.Phone),
		PasswordHash: string(hash),
		Role:         input.Role,
		Provider:     input.Provider,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to persist user: %w", err)
	}

	s.Logger.Info("user registered",
		zap.String("user", user.ID),
		zap.String("role", string(user.Role)),
	)
	return s.openSession(ctx, &user)
}

// SignIn verifies credentials and opens a session.
func (s *DefaultUserService) SignIn(ctx context.Context, email, password string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.Repo.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrBadCredentials
	}
	if err != nil {
		s.Logger.Error("signin: failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrBadCredentials
	}
	return s.openSession(ctx, user)
}

// SignOut revokes the session by deleting the cached token hash.
func (s *DefaultUserService) SignOut(ctx context.Context, userID, token string) error {
	if utils.HashToken(token) == "" {
		return fmt.Errorf("%w: empty token", ErrValidation)
	}
	if err := s.AuthCache.Del(ctx, utils.AuthCachePrefix+userID).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	s.Logger.Info("user signed out", zap.String("user", userID))
	return nil
}

// openSession issues a JWT and caches its hash. A new session replaces any
// previous one for the account.
func (s *DefaultUserService) openSession(ctx context.Context, user *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(user.ID, string(user.Role), tokenTTL)
	if err != nil {
		s.Logger.Error("failed to sign token", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	cacheKey := utils.AuthCachePrefix + user.ID
	if err := s.AuthCache.Set(ctx, cacheKey, utils.HashToken(token), tokenTTL).Err(); err != nil {
		return nil, fmt.Errorf("failed to cache session: %w", err)
	}
	return &AuthResponse{User: *user, Token: token}, nil
}
