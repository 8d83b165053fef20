package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_RoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, c.Set(ctx, "k", testReport("rep-1"), time.Hour))
	got, err = c.Get(ctx, "k")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, testReport("rep-1"), got)

	require.NoError(t, c.Invalidate(ctx, "k"))
	got, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewMemory()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "short", testReport("a"), time.Minute))
	require.NoError(t, c.Set(ctx, "forever", testReport("b"), 0))

	now = now.Add(2 * time.Minute)
	got, err := c.Get(ctx, "short")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 1, c.Len(), "expired entry evicted on read")

	got, err = c.Get(ctx, "forever")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "b", got.ID)
}

func TestMemoryCache_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	c := NewMemory()
	rep := testReport("rep-1")
	require.NoError(t, c.Set(ctx, "k", rep, 0))

	rep.Flags[0].RawScore = 0
	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 8.0, got.Flags[0].RawScore)

	got.Composite = 0
	again, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 7.12, again.Composite)
}
