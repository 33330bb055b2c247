package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryAdapter_GetSet(t *testing.T) {
	adapter := NewMemoryAdapter()
	ctx := context.Background()

	err := adapter.Set(ctx, "key", []byte("value"), 0)
	require.NoError(t, err)

	val, err := adapter.Get(ctx, "key")
	assert.NoError(t, err)
	assert.Equal(t, []byte("value"), val)
}

func TestMemoryAdapter_GetNotFound(t *testing.T) {
	adapter := NewMemoryAdapter()

	_, err := adapter.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestMemoryAdapter_Delete(t *testing.T) {
	adapter := NewMemoryAdapter()
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "key", []byte("value"), 0))
	require.NoError(t, adapter.Delete(ctx, "key"))

	_, err := adapter.Get(ctx, "key")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestMemoryAdapter_TTL(t *testing.T) {
	adapter := NewMemoryAdapter()
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "key", []byte("value"), 10*time.Millisecond))

	_, err := adapter.Get(ctx, "key")
	assert.NoError(t, err)

	time.Sleep(20 * time.Millisecond)

	_, err = adapter.Get(ctx, "key")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestMemoryAdapter_ExpireMissingKey(t *testing.T) {
	adapter := NewMemoryAdapter()

	err := adapter.Expire(context.Background(), "missing", time.Minute)
	assert.NoError(t, err)
}

func TestMemoryAdapter_Close(t *testing.T) {
	adapter := NewMemoryAdapter()
	ctx := context.Background()

	require.NoError(t, adapter.Set(ctx, "key", []byte("value"), 0))
	require.NoError(t, adapter.Close())

	_, err := adapter.Get(ctx, "key")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}
