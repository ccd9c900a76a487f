package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/localnerve/jam-build-appstore/internal/cache"
	"github.com/localnerve/jam-build-appstore/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type view struct {
	ID   string   `json:"id"`
	Apps []string `json:"apps"`
}

func TestRedisCache(t *testing.T) {
	url := testutil.StartRedis(t)

	c, err := cache.NewRedis(url)
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.Ping(ctx))

	var got view
	ok, err := c.Get(ctx, "store:s1", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "store:s1", view{ID: "s1", Apps: []string{"a1"}}, time.Minute))
	for i := 0; i < 450; i++ {
		require.NoError(t, c.Set(ctx, "app:"+time.Duration(i).String(), view{ID: "a"}, time.Minute))
	}

	ok, err = c.Get(ctx, "store:s1", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"a1"}, got.Apps)

	// more keys than one SCAN batch
	require.NoError(t, c.DeletePattern(ctx, "app:*"))
	ok, err = c.Get(ctx, "app:0s", &got)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = c.Get(ctx, "store:s1", &got)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNewRedisRejectsBadURL(t *testing.T) {
	_, err := cache.NewRedis("not a url")
	assert.Error(t, err)
}
