package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledClient(t *testing.T) {
	c := New("")
	ctx := context.Background()

	assert.False(t, c.Enabled())
	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))

	val, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, val)

	var out map[string]string
	ok, err = c.GetJSON(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, c.SetJSON(ctx, "k", map[string]string{"a": "b"}, time.Minute))
	assert.NoError(t, c.Ping(ctx))
	assert.NoError(t, c.Close())
}

func TestNilClient(t *testing.T) {
	var c *Client
	assert.False(t, c.Enabled())

	_, ok, err := c.Get(context.Background(), "k")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestInvalidURLDisables(t *testing.T) {
	c := New("not a url")
	assert.False(t, c.Enabled())
}
