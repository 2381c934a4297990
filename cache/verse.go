package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/fwojciec/shlok"
	"golang.org/x/sync/singleflight"
)

// Compile-time interface verification.
var (
	_ shlok.VerseService     = (*VerseService)(nil)
	_ shlok.VerseInvalidator = (*VerseService)(nil)
)

// VerseService implements shlok.VerseService by reading through a cache in
// front of a verse store.
type VerseService struct {
	store  shlok.VerseStore
	cache  shlok.VerseCache
	ttl    time.Duration
	filter shlok.IndexFilter

	group singleflight.Group
}

// Option configures a VerseService.
type Option func(*VerseService)

// WithTTL sets how long a found verse stays cached.
// Defaults to shlok.DefaultCacheTTL if not specified.
func WithTTL(d time.Duration) Option {
	return func(s *VerseService) {
		s.ttl = d
	}
}

// WithIndexFilter rejects indices the filter proves absent without querying
// the store.
func WithIndexFilter(f shlok.IndexFilter) Option {
	return func(s *VerseService) {
		s.filter = f
	}
}

// NewVerseService creates a new VerseService.
func NewVerseService(store shlok.VerseStore, cache shlok.VerseCache, opts ...Option) *VerseService {
	s := &VerseService{
		store: store,
		cache: cache,
		ttl:   shlok.DefaultCacheTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FindVerse returns the verse at index, from the cache when a live entry
// exists and from the store otherwise. Only found verses are cached.
func (s *VerseService) FindVerse(ctx context.Context, index int) (*shlok.Verse, error) {
	// Cache failures fall through to the store.
	if v, ok, err := s.cache.Get(ctx, index); err == nil && ok {
		return v, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if s.filter != nil && !s.filter.MayContain(index) {
		return nil, shlok.Errorf(shlok.ENOTFOUND, "verse %d not found", index)
	}

	// Concurrent misses for one index share a single store query. The query
	// outlives any one caller, so it must not inherit a caller's cancellation.
	ch := s.group.DoChan(strconv.Itoa(index), func() (any, error) {
		qctx := context.WithoutCancel(ctx)
		v, err := s.store.FindVerseByIndex(qctx, index)
		if err != nil {
			return nil, storeError(index, err)
		} else if v == nil {
			return nil, shlok.Errorf(shlok.ENOTFOUND, "verse %d not found", index)
		}
		_ = s.cache.Set(qctx, index, v, s.ttl)
		return v, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		v := *res.Val.(*shlok.Verse)
		return &v, nil
	}
}

// Invalidate drops the cached entry for index.
func (s *VerseService) Invalidate(ctx context.Context, index int) error {
	return s.cache.Delete(ctx, index)
}

// storeError passes application errors through and reports anything else as
// the store being unavailable.
func storeError(index int, err error) error {
	var e *shlok.Error
	if errors.As(err, &e) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return shlok.WrapError(shlok.EUNAVAILABLE, err, "verse store unavailable for index %d", index)
}
