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

	"github.com/google/uuid"
)

// GetProfile returns an account. Users see their own profile, admins any.
func (s *DefaultUserService) GetProfile(ctx context.Context, actor domain.Actor, userID string) (*models.User, error) {
	if !actor.IsAdmin() && actor.ID != userID {
		return nil, fmt.Errorf("%w: cannot read another user's profile", ErrForbidden)
	}
	return s.load(ctx, userID)
}

// UpdateProfile applies the provided fields. Role and email never change
// through this path.
func (s *DefaultUserService) UpdateProfile(ctx context.Context, actor domain.Actor, userID string, input UpdateProfileInput) (*models.User, error) {
	if !actor.IsAdmin() && actor.ID != userID {
		return nil, fmt.Errorf("%w: cannot update another user's profile", ErrForbidden)
	}
	user, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		user.Name = name
	}
	if phone := strings.TrimSpace(input.Phone); phone != "" {
		user.Phone = phone
	}
	if input.Provider != nil {
		if user.Role != domain.RoleProvider {
			return nil, fmt.Errorf("%w: only provider accounts carry a provider profile", ErrValidation)
		}
		user.Provider = input.Provider
	}
	user.UpdatedAt = time.Now()
	if err := s.Repo.Update(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// AddAddress saves a new address on the actor's own account.
func (s *DefaultUserService) AddAddress(ctx context.Context, actor domain.Actor, address models.Address) (*models.User, error) {
	if err := validateAddress(address); err != nil {
		return nil, err
	}
	user, err := s.load(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	address.ID = uuid.New().String()
	addresses := append(user.Addresses, address)
	if address.Default {
		addresses = demoteOthers(addresses, address.ID)
	}
	return s.saveAddresses(ctx, user, addresses)
}

// UpdateAddress replaces a saved address in place, matched by id.
func (s *DefaultUserService) UpdateAddress(ctx context.Context, actor domain.Actor, address models.Address) (*models.User, error) {
	if err := validateAddress(address); err != nil {
		return nil, err
	}
	user, err := s.load(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if user.AddressByID(address.ID) == nil {
		return nil, fmt.Errorf("%w: unknown address %s", ErrValidation, address.ID)
	}
	addresses := make([]models.Address, len(user.Addresses))
	copy(addresses, user.Addresses)
	for i := range addresses {
		if addresses[i].ID == address.ID {
			addresses[i] = address
		}
	}
	if address.Default {
		addresses = demoteOthers(addresses, address.ID)
	}
	return s.saveAddresses(ctx, user, addresses)
}

// RemoveAddress deletes a saved address from the actor's account.
func (s *DefaultUserService) RemoveAddress(ctx context.Context, actor domain.Actor, addressID string) (*models.User, error) {
	user, err := s.load(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if user.AddressByID(addressID) == nil {
		return nil, fmt.Errorf("%w: unknown address %s", ErrValidation, addressID)
	}
	var addresses []models.Address
	for _, a := range user.Addresses {
		if a.ID != addressID {
			addresses = append(addresses, a)
		}
	}
	return s.saveAddresses(ctx, user, addresses)
}

// ListUsers is an admin view, optionally filtered by role.
func (s *DefaultUserService) ListUsers(ctx context.Context, actor domain.Actor, role string) ([]models.User, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: admin only", ErrForbidden)
	}
	if role != "" {
		return s.Repo.ListByRole(ctx, role)
	}
	return s.Repo.ListAll(ctx)
}

func (s *DefaultUserService) load(ctx context.Context, id string) (*models.User, error) {
	user, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

func (s *DefaultUserService) saveAddresses(ctx context.Context, user *models.User, addresses []models.Address) (*models.User, error) {
	if err := s.Repo.SetAddresses(ctx, user.ID, addresses); err != nil {
		return nil, fmt.Errorf("failed to save addresses: %w", err)
	}
	user.Addresses = addresses
	user.UpdatedAt = time.Now()
	return user, nil
}

func validateAddress(a models.Address) error {
	if strings.TrimSpace(a.Line) == "" || strings.TrimSpace(a.City) == "" {
		return fmt.Errorf("%w: address line and city are required", ErrValidation)
	}
	if strings.TrimSpace(a.Phone) == "" {
		return fmt.Errorf("%w: contact phone is required", ErrValidation)
	}
	return nil
}

func demoteOthers(addresses []models.Address, keepID string) []models.Address {
	for i := range addresses {
		if addresses[i].ID != keepID {
			addresses[i].Default = false
		}
	}
	return addresses
}
