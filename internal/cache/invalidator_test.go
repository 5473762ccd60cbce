package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInvalidatePublishesPaths(t *testing.T) {
	mr := miniredis.RunT(t)

	inv, err := New("redis://"+mr.Addr(), "views:invalidate", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = inv.Close() })

	sub := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = sub.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ps := sub.Subscribe(ctx, "views:invalidate")
	t.Cleanup(func() { _ = ps.Close() })
	_, err = ps.Receive(ctx) // wait for the subscription confirmation
	require.NoError(t, err)

	inv.Invalidate("/district/rangpur/candidates", "/district/rangpur")

	got := map[string]bool{}
	ch := ps.Channel()
	for i := 0; i < 2; i++ {
		select {
		case msg := <-ch:
			got[msg.Payload] = true
		case <-ctx.Done():
			t.Fatal("timed out waiting for invalidation messages")
		}
	}
	assert.True(t, got["/district/rangpur/candidates"])
	assert.True(t, got["/district/rangpur"])
}

func TestDisabledInvalidatorIsNoop(t *testing.T) {
	inv, err := New("", "views:invalidate", zap.NewNop())
	require.NoError(t, err)

	// Must not panic or block.
	inv.Invalidate("/district/rangpur")
	assert.NoError(t, inv.Close())
}

func TestNilInvalidatorIsSafe(t *testing.T) {
	var inv *Invalidator
	inv.Invalidate("/anything")
	assert.NoError(t, inv.Close())
}

func TestNewRejectsBadURL(t *testing.T) {
	_, err := New("::not-a-url", "views:invalidate", zap.NewNop())
	assert.Error(t, err)
}
