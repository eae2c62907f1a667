package cart

import (
	"context"
	"testing"

	"sokoni/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCartService(t *testing.T) *RedisCartService {
	t.Helper()
	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { client.Close() })

	return &RedisCartService{Client: client}
}

func TestCartAddMergeAndRemove(t *testing.T) {
	svc := newTestCartService(t)
	ctx := context.Background()

	c, err := svc.Get(ctx, "cust-1")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty(), "a user who never added anything has an empty cart")

	c, err = svc.AddLine(ctx, "cust-1", models.CartLine{ProductID: "p1", Name: "Soap", UnitPrice: 3.5, Quantity: 2})
	require.NoError(t, err)
	require.Len(t, c.Lines, 1)

	// Adding the same product again merges quantities.
	c, err = svc.AddLine(ctx, "cust-1", models.CartLine{ProductID: "p1", Quantity: 3})
	require.NoError(t, err)
	require.Len(t, c.Lines, 1)
	assert.Equal(t, 5, c.Lines[0].Quantity)

	c, err = svc.AddLine(ctx, "cust-1", models.CartLine{ProductID: "p2", Quantity: 1})
	require.NoError(t, err)
	require.Len(t, c.Lines, 2)

	c, err = svc.RemoveLine(ctx, "cust-1", "p1")
	require.NoError(t, err)
	require.Len(t, c.Lines, 1)
	assert.Equal(t, "p2", c.Lines[0].ProductID)
}

func TestCartUpdateQuantity(t *testing.T) {
	svc := newTestCartService(t)
	ctx := context.Background()

	_, err := svc.AddLine(ctx, "cust-1", models.CartLine{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)

	c, err := svc.UpdateQuantity(ctx, "cust-1", "p1", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, c.Lines[0].Quantity)

	// Zero or negative removes the line.
	c, err = svc.UpdateQuantity(ctx, "cust-1", "p1", 0)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())

	_, err = svc.UpdateQuantity(ctx, "cust-1", "ghost", 3)
	assert.ErrorIs(t, err, ErrLineNotFound)
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	svc := newTestCartService(t)
	ctx := context.Background()

	_, err := svc.AddLine(ctx, "cust-1", models.CartLine{ProductID: "p1", Quantity: 1})
	require.NoError(t, err)

	c, err := svc.Get(ctx, "cust-2")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestCartClear(t *testing.T) {
	svc := newTestCartService(t)
	ctx := context.Background()

	_, err := svc.AddLine(ctx, "cust-1", models.CartLine{ProductID: "p1", Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, svc.Clear(ctx, "cust-1"))

	c, err := svc.Get(ctx, "cust-1")
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())

	// Clearing an already-empty cart is not an error.
	require.NoError(t, svc.Clear(ctx, "cust-1"))
}
