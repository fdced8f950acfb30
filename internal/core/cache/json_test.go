package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newMissCache redis 连不上：Get 必失败，每次都走回源，Set 静默丢弃
func newMissCache(t *testing.T) *Cache {
	t.Helper()
	c := &Cache{RDB: redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestGetOrLoadJSON_RoundTrip(t *testing.T) {
	c := newMissCache(t)

	type article struct {
		Title string `json:"title"`
	}
	calls := 0
	got, err := GetOrLoadJSON[article](c, context.Background(), "k1", time.Minute,
		func(ctx context.Context) (*article, error) {
			calls++
			return &article{Title: "hello"}, nil
		})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "hello", got.Title)
	assert.Equal(t, 1, calls)
}

func TestGetOrLoadJSON_NilValue(t *testing.T) {
	c := newMissCache(t)

	got, err := GetOrLoadJSON[struct{}](c, context.Background(), "k2", time.Minute,
		func(ctx context.Context) (*struct{}, error) {
			return nil, nil
		})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestGetOrLoadJSON_LoadError(t *testing.T) {
	c := newMissCache(t)

	boom := errors.New("boom")
	_, err := GetOrLoadJSON[struct{}](c, context.Background(), "k3", time.Minute,
		func(ctx context.Context) (*struct{}, error) {
			return nil, boom
		})
	assert.ErrorIs(t, err, boom)
}
