package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestMemoryGetSet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	var got sample
	ok, err := m.Get(ctx, "app:1", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set(ctx, "app:1", sample{ID: "1", Name: "Atlas"}, time.Minute))
	ok, err = m.Get(ctx, "app:1", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Atlas", got.Name)
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return now }

	require.NoError(t, m.Set(ctx, "store:1", sample{ID: "1"}, time.Minute))
	now = now.Add(2 * time.Minute)

	var got sample
	ok, err := m.Get(ctx, "store:1", &got)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
}

func TestMemoryDeletePattern(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	for _, key := range []string{"app:a", "app:b", "store:a"} {
		require.NoError(t, m.Set(ctx, key, sample{ID: key}, 0))
	}

	require.NoError(t, m.DeletePattern(ctx, "app:*"))
	assert.Equal(t, 1, m.Len())

	var got sample
	ok, _ := m.Get(ctx, "store:a", &got)
	assert.True(t, ok)
}
