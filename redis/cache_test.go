package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/shlok"
	"github.com/fwojciec/shlok/redis"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_Unreachable(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := redis.Open(ctx, "127.0.0.1:1")

	require.Error(t, err)
}

func TestVerseCache_SetNil(t *testing.T) {
	t.Parallel()

	client := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1"})
	c := redis.NewVerseCache(client)
	t.Cleanup(func() { c.Close() })

	err := c.Set(context.Background(), 6, nil, time.Hour)

	assert.Equal(t, shlok.EINVALID, shlok.ErrorCode(err))
}
