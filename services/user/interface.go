package user

import (
	"context"

	userRepo "sokoni/database/repository/user"
	"sokoni/domain"
	"sokoni/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// SignUpInput carries a new account registration.
type SignUpInput struct {
	Name     string                  `json:"name"`
	Email    string                  `json:"email"`
	Phone    string                  `json:"phone"`
	Password string                  `json:"password"`
	Role     domain.Role             `json:"role"`
	Provider *models.ProviderProfile `json:"provider,omitempty"`
}

// UpdateProfileInput carries the mutable profile fields. Empty fields are
// left unchanged.
type UpdateProfileInput struct {
	Name     string                  `json:"name,omitempty"`
	Phone    string                  `json:"phone,omitempty"`
	Provider *models.ProviderProfile `json:"provider,omitempty"`
}

// AuthResponse is returned on successful signup or signin.
type AuthResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// UserService manages accounts, sessions and saved addresses.
type UserService interface {
	SignUp(ctx context.Context, input SignUpInput) (*AuthResponse, error)
	SignIn(ctx context.Context, email, password string) (*AuthResponse, error)
	SignOut(ctx context.Context, userID, token string) error
	GetProfile(ctx context.Context, actor domain.Actor, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, actor domain.Actor, userID string, input UpdateProfileInput) (*models.User, error)
	AddAddress(ctx context.Context, actor domain.Actor, address models.Address) (*models.User, error)
	UpdateAddress(ctx context.Context, actor domain.Actor, address models.Address) (*models.User, error)
	RemoveAddress(ctx context.Context, actor domain.Actor, addressID string) (*models.User, error)
	ListUsers(ctx context.Context, actor domain.Actor, role string) ([]models.User, error)
}

// DefaultUserService implements UserService. AuthCache holds SHA-256 hashes
// of live tokens; signout deletes the hash, which revokes the token before
// its JWT expiry.
type DefaultUserService struct {
	Repo      userRepo.UserRepository
	AuthCache *redis.Client
	Logger    *zap.Logger
}
