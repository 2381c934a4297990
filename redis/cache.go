// Package redis provides a Redis-backed verse cache shared between server
// instances.
package redis

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/fwojciec/shlok"
	goredis "github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

// DefaultPrefix namespaces verse keys.
const DefaultPrefix = "shlok:verse:"

var _ shlok.VerseCache = (*VerseCache)(nil)

// VerseCache stores msgpack-encoded verses in Redis. Expiry is delegated to
// Redis key TTLs.
type VerseCache struct {
	client goredis.UniversalClient
	prefix string
}

// NewVerseCache creates a VerseCache on an existing client.
func NewVerseCache(client goredis.UniversalClient) *VerseCache {
	return &VerseCache{client: client, prefix: DefaultPrefix}
}

// Open connects to the Redis server at addr and verifies the connection.
func Open(ctx context.Context, addr string) (*VerseCache, error) {
	client := goredis.NewClient(&goredis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return NewVerseCache(client), nil
}

// Get returns the cached verse for index.
func (c *VerseCache) Get(ctx context.Context, index int) (*shlok.Verse, bool, error) {
	b, err := c.client.Get(ctx, c.key(index)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var v shlok.Verse
	if err := msgpack.Unmarshal(b, &v); err != nil {
		// Drop entries we cannot decode so the next lookup refills them.
		_ = c.client.Del(ctx, c.key(index)).Err()
		return nil, false, nil
	}
	return &v, true, nil
}

// Set stores v under index with the given ttl.
func (c *VerseCache) Set(ctx context.Context, index int, v *shlok.Verse, ttl time.Duration) error {
	if v == nil {
		return shlok.Errorf(shlok.EINVALID, "cannot cache nil verse")
	}
	b, err := msgpack.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(index), b, ttl).Err()
}

// Delete removes the cached verse for index.
func (c *VerseCache) Delete(ctx context.Context, index int) error {
	return c.client.Del(ctx, c.key(index)).Err()
}

// Close closes the underlying client.
func (c *VerseCache) Close() error {
	return c.client.Close()
}

func (c *VerseCache) key(index int) string {
	return c.prefix + strconv.Itoa(index)
}
