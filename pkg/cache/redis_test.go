package cache

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := New(context.Background(), WithAddress(mr.Addr()), WithPrefix("test:"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c, mr
}

func TestCache(t *testing.T) {
	ctx := context.Background()

	t.Run("set and get round trip under the prefix", func(t *testing.T) {
		c, mr := newTestCache(t)

		require.NoError(t, c.Set(ctx, "programs", []string{"Teknik", "Ekonomi"}, time.Minute))
		assert.True(t, mr.Exists("test:programs"))
		assert.Equal(t, time.Minute, mr.TTL("test:programs"))

		var got []string
		require.NoError(t, c.Get(ctx, "programs", &got))
		assert.Equal(t, []string{"Teknik", "Ekonomi"}, got)
	})

	t.Run("missing key is ErrMiss", func(t *testing.T) {
		c, _ := newTestCache(t)

		var got []string
		assert.ErrorIs(t, c.Get(ctx, "absent", &got), ErrMiss)
	})

	t.Run("delete removes keys", func(t *testing.T) {
		c, mr := newTestCache(t)
		require.NoError(t, c.Set(ctx, "a", 1, 0))
		require.NoError(t, c.Set(ctx, "b", 2, 0))

		require.NoError(t, c.Delete(ctx, "a", "b", "never-set"))
		assert.False(t, mr.Exists("test:a"))
		assert.False(t, mr.Exists("test:b"))
		assert.NoError(t, c.Delete(ctx))
	})

	t.Run("unreachable server fails on connect", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		_, err := New(ctx, WithAddress(addr))
		assert.Error(t, err)
	})
}

func TestNoop(t *testing.T) {
	ctx := context.Background()
	var c Cacher = Noop{}

	require.NoError(t, c.Set(ctx, "k", 1, time.Minute))
	var v int
	assert.ErrorIs(t, c.Get(ctx, "k", &v), ErrMiss)
	assert.NoError(t, c.Delete(ctx, "k"))
	assert.NoError(t, c.Close())
}
