package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sokoni/models"

	"github.com/go-redis/redis/v8"
)

const cartTTL = 14 * 24 * time.Hour

// ErrLineNotFound means the product is not in the cart.
var ErrLineNotFound = errors.New("product not in cart")

// CartService is the server-side cart, one per user, stored in Redis. The
// checkout flow reads it for line items and clears it only after the order
// has been persisted.
type CartService interface {
	Get(ctx context.Context, userID string) (*models.Cart, error)
	AddLine(ctx context.Context, userID string, line models.CartLine) (*models.Cart, error)
	UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (*models.Cart, error)
	RemoveLine(ctx context.Context, userID, productID string) (*models.Cart, error)
	Clear(ctx context.Context, userID string) error
}

// RedisCartService implements CartService on a dedicated Redis DB.
type RedisCartService struct {
	Client *redis.Client
}

func cartKey(userID string) string {
	return "cart:" + userID
}

func (s *RedisCartService) Get(ctx context.Context, userID string) (*models.Cart, error) {
	data, err := s.Client.Get(ctx, cartKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return &models.Cart{UserID: userID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var c models.Cart
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		return nil, fmt.Errorf("failed to parse cart: %w", err)
	}
	c.UserID = userID
	return &c, nil
}

func (s *RedisCartService) AddLine(ctx context.Context, userID string, line models.CartLine) (*models.Cart, error) {
	if line.ProductID == "" || line.Quantity <= 0 {
		return nil, fmt.Errorf("invalid cart line")
	}

	c, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range c.Lines {
		if c.Lines[i].ProductID == line.ProductID {
			c.Lines[i].Quantity += line.Quantity
			merged = true
			break
		}
	}
	if !merged {
		c.Lines = append(c.Lines, line)
	}

	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *RedisCartService) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return s.RemoveLine(ctx, userID, productID)
	}

	c, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity = quantity
			if err := s.save(ctx, c); err != nil {
				return nil, err
			}
			return c, nil
		}
	}
	return nil, ErrLineNotFound
}

func (s *RedisCartService) RemoveLine(ctx context.Context, userID, productID string) (*models.Cart, error) {
	c, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	kept := c.Lines[:0]
	for _, l := range c.Lines {
		if l.ProductID != productID {
			kept = append(kept, l)
		}
	}
	c.Lines = kept

	if err := s.save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *RedisCartService) Clear(ctx context.Context, userID string) error {
	if err := s.Client.Del(ctx, cartKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func (s *RedisCartService) save(ctx context.Context, c *models.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}
	if err := s.Client.Set(ctx, cartKey(c.UserID), data, cartTTL).Err(); err != nil {
		return fmt.Errorf("failed to store cart: %w", err)
	}
	return nil
}
