package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/shlok"
	"github.com/fwojciec/shlok/cache"
	"github.com/fwojciec/shlok/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMap(t *testing.T) *cache.Map {
	t.Helper()
	m := cache.NewMap()
	t.Cleanup(func() { m.Close() })
	return m
}

func countingStore(calls *atomic.Int32, verses map[int]*shlok.Verse) *mock.VerseStore {
	return &mock.VerseStore{
		FindVerseByIndexFn: func(_ context.Context, index int) (*shlok.Verse, error) {
			calls.Add(1)
			v, ok := verses[index]
			if !ok {
				return nil, shlok.Errorf(shlok.ENOTFOUND, "verse not found")
			}
			return v, nil
		},
	}
}

func TestVerseService_FindVerse(t *testing.T) {
	t.Parallel()

	t.Run("second call within ttl is served from cache", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		store := countingStore(&calls, map[int]*shlok.Verse{
			6: {Index: 6, Chapter: "Chapter 1", Verse: "Verse 6", Shlok: "text"},
		})
		svc := cache.NewVerseService(store, newTestMap(t))
		ctx := context.Background()

		first, err := svc.FindVerse(ctx, 6)
		require.NoError(t, err)
		second, err := svc.FindVerse(ctx, 6)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, "text", second.Shlok)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("not found is returned on every call and never cached", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		store := countingStore(&calls, nil)
		m := newTestMap(t)
		svc := cache.NewVerseService(store, m)
		ctx := context.Background()

		_, err := svc.FindVerse(ctx, 999)
		assert.Equal(t, shlok.ENOTFOUND, shlok.ErrorCode(err))
		_, err = svc.FindVerse(ctx, 999)
		assert.Equal(t, shlok.ENOTFOUND, shlok.ErrorCode(err))

		assert.Equal(t, int32(2), calls.Load())
		assert.Zero(t, m.Len())
	})

	t.Run("store failure is unavailable and not cached", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		cause := errors.New("connection refused")
		store := &mock.VerseStore{
			FindVerseByIndexFn: func(_ context.Context, index int) (*shlok.Verse, error) {
				calls.Add(1)
				return nil, cause
			},
		}
		m := newTestMap(t)
		svc := cache.NewVerseService(store, m)
		ctx := context.Background()

		_, err := svc.FindVerse(ctx, 6)
		require.Error(t, err)
		assert.Equal(t, shlok.EUNAVAILABLE, shlok.ErrorCode(err))
		assert.ErrorIs(t, err, cause)

		_, err = svc.FindVerse(ctx, 6)
		require.Error(t, err)

		assert.Equal(t, int32(2), calls.Load())
		assert.Zero(t, m.Len())
	})

	t.Run("nil record from store is not found", func(t *testing.T) {
		t.Parallel()

		store := &mock.VerseStore{
			FindVerseByIndexFn: func(_ context.Context, index int) (*shlok.Verse, error) {
				return nil, nil
			},
		}
		m := newTestMap(t)
		svc := cache.NewVerseService(store, m)

		_, err := svc.FindVerse(context.Background(), 6)

		assert.Equal(t, shlok.ENOTFOUND, shlok.ErrorCode(err))
		assert.Zero(t, m.Len())
	})

	t.Run("canceled caller gets context error without store access", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		store := countingStore(&calls, map[int]*shlok.Verse{6: {Index: 6}})
		svc := cache.NewVerseService(store, newTestMap(t))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := svc.FindVerse(ctx, 6)

		assert.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, calls.Load())
	})

	t.Run("waiting callers survive cancellation of the first caller", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		started := make(chan struct{})
		release := make(chan struct{})
		store := &mock.VerseStore{
			FindVerseByIndexFn: func(ctx context.Context, index int) (*shlok.Verse, error) {
				calls.Add(1)
				close(started)
				<-release
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				return &shlok.Verse{Index: index, Shlok: "text"}, nil
			},
		}
		svc := cache.NewVerseService(store, newTestMap(t))

		firstCtx, cancelFirst := context.WithCancel(context.Background())
		firstErr := make(chan error, 1)
		go func() {
			_, err := svc.FindVerse(firstCtx, 6)
			firstErr <- err
		}()
		<-started

		type result struct {
			v   *shlok.Verse
			err error
		}
		second := make(chan result, 1)
		go func() {
			v, err := svc.FindVerse(context.Background(), 6)
			second <- result{v, err}
		}()
		time.Sleep(50 * time.Millisecond)

		cancelFirst()
		assert.ErrorIs(t, <-firstErr, context.Canceled)

		close(release)
		res := <-second
		require.NoError(t, res.err)
		assert.Equal(t, "text", res.v.Shlok)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("passes malformed records through", func(t *testing.T) {
		t.Parallel()

		store := &mock.VerseStore{
			FindVerseByIndexFn: func(_ context.Context, index int) (*shlok.Verse, error) {
				return &shlok.Verse{Index: index}, nil
			},
		}
		svc := cache.NewVerseService(store, newTestMap(t))

		v, err := svc.FindVerse(context.Background(), 6)

		require.NoError(t, err)
		assert.Equal(t, &shlok.Verse{Index: 6}, v)
	})

	t.Run("refetches after ttl", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		store := countingStore(&calls, map[int]*shlok.Verse{6: {Index: 6}})
		m := newTestMap(t)
		svc := cache.NewVerseService(store, m, cache.WithTTL(20*time.Millisecond))
		ctx := context.Background()

		_, err := svc.FindVerse(ctx, 6)
		require.NoError(t, err)
		assert.Eventually(t, func() bool { return m.Len() == 0 }, time.Second, 5*time.Millisecond)
		_, err = svc.FindVerse(ctx, 6)
		require.NoError(t, err)

		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("caches with configured ttl", func(t *testing.T) {
		t.Parallel()

		var gotTTL time.Duration
		c := &mock.VerseCache{
			GetFn: func(_ context.Context, _ int) (*shlok.Verse, bool, error) {
				return nil, false, nil
			},
			SetFn: func(_ context.Context, _ int, _ *shlok.Verse, ttl time.Duration) error {
				gotTTL = ttl
				return nil
			},
		}
		store := &mock.VerseStore{
			FindVerseByIndexFn: func(_ context.Context, index int) (*shlok.Verse, error) {
				return &shlok.Verse{Index: index}, nil
			},
		}
		svc := cache.NewVerseService(store, c)

		_, err := svc.FindVerse(context.Background(), 6)

		require.NoError(t, err)
		assert.Equal(t, time.Hour, gotTTL)
	})

	t.Run("cache failures fall back to the store", func(t *testing.T) {
		t.Parallel()

		c := &mock.VerseCache{
			GetFn: func(_ context.Context, _ int) (*shlok.Verse, bool, error) {
				return nil, false, errors.New("redis down")
			},
			SetFn: func(_ context.Context, _ int, _ *shlok.Verse, _ time.Duration) error {
				return errors.New("redis down")
			},
		}
		store := &mock.VerseStore{
			FindVerseByIndexFn: func(_ context.Context, index int) (*shlok.Verse, error) {
				return &shlok.Verse{Index: index, Shlok: "text"}, nil
			},
		}
		svc := cache.NewVerseService(store, c)

		v, err := svc.FindVerse(context.Background(), 6)

		require.NoError(t, err)
		assert.Equal(t, "text", v.Shlok)
	})

	t.Run("index filter rejects without store access", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		store := countingStore(&calls, map[int]*shlok.Verse{6: {Index: 6}})
		filter := &mock.IndexFilter{
			MayContainFn: func(index int) bool { return index <= 700 },
		}
		svc := cache.NewVerseService(store, newTestMap(t), cache.WithIndexFilter(filter))
		ctx := context.Background()

		_, err := svc.FindVerse(ctx, 5000)
		assert.Equal(t, shlok.ENOTFOUND, shlok.ErrorCode(err))
		assert.Zero(t, calls.Load())

		_, err = svc.FindVerse(ctx, 6)
		require.NoError(t, err)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("concurrent misses share one store query", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		release := make(chan struct{})
		store := &mock.VerseStore{
			FindVerseByIndexFn: func(_ context.Context, index int) (*shlok.Verse, error) {
				calls.Add(1)
				<-release
				return &shlok.Verse{Index: index}, nil
			},
		}
		svc := cache.NewVerseService(store, newTestMap(t))
		ctx := context.Background()

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				v, err := svc.FindVerse(ctx, 6)
				assert.NoError(t, err)
				assert.Equal(t, 6, v.Index)
			}()
		}
		time.Sleep(50 * time.Millisecond)
		close(release)
		wg.Wait()

		assert.Equal(t, int32(1), calls.Load())
	})
}

func TestVerseService_Invalidate(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	store := countingStore(&calls, map[int]*shlok.Verse{6: {Index: 6}})
	svc := cache.NewVerseService(store, newTestMap(t))
	ctx := context.Background()

	_, err := svc.FindVerse(ctx, 6)
	require.NoError(t, err)
	require.NoError(t, svc.Invalidate(ctx, 6))
	_, err = svc.FindVerse(ctx, 6)
	require.NoError(t, err)

	assert.Equal(t, int32(2), calls.Load())
}
