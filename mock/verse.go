package mock

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/shlok"
)

var (
	_ shlok.VerseStore       = (*VerseStore)(nil)
	_ shlok.VerseIndexLister = (*VerseStore)(nil)
	_ shlok.VerseService     = (*VerseService)(nil)
	_ shlok.VerseCache       = (*VerseCache)(nil)
	_ shlok.IndexFilter      = (*IndexFilter)(nil)
	_ shlok.VerseImporter    = (*VerseImporter)(nil)
	_ shlok.VerseDecoder     = (*VerseDecoder)(nil)
	_ shlok.VerseInvalidator = (*VerseInvalidator)(nil)
)

// VerseStore is a mock implementation of shlok.VerseStore.
type VerseStore struct {
	FindVerseByIndexFn func(ctx context.Context, index int) (*shlok.Verse, error)
	ListVerseIndicesFn func(ctx context.Context) ([]int, error)
}

func (s *VerseStore) FindVerseByIndex(ctx context.Context, index int) (*shlok.Verse, error) {
	return s.FindVerseByIndexFn(ctx, index)
}

func (s *VerseStore) ListVerseIndices(ctx context.Context) ([]int, error) {
	return s.ListVerseIndicesFn(ctx)
}

// VerseService is a mock implementation of shlok.VerseService.
type VerseService struct {
	FindVerseFn func(ctx context.Context, index int) (*shlok.Verse, error)
}

func (s *VerseService) FindVerse(ctx context.Context, index int) (*shlok.Verse, error) {
	return s.FindVerseFn(ctx, index)
}

// VerseCache is a mock implementation of shlok.VerseCache.
type VerseCache struct {
	GetFn    func(ctx context.Context, index int) (*shlok.Verse, bool, error)
	SetFn    func(ctx context.Context, index int, v *shlok.Verse, ttl time.Duration) error
	DeleteFn func(ctx context.Context, index int) error
}

func (c *VerseCache) Get(ctx context.Context, index int) (*shlok.Verse, bool, error) {
	return c.GetFn(ctx, index)
}

func (c *VerseCache) Set(ctx context.Context, index int, v *shlok.Verse, ttl time.Duration) error {
	return c.SetFn(ctx, index, v, ttl)
}

func (c *VerseCache) Delete(ctx context.Context, index int) error {
	return c.DeleteFn(ctx, index)
}

// IndexFilter is a mock implementation of shlok.IndexFilter.
type IndexFilter struct {
	MayContainFn func(index int) bool
}

func (f *IndexFilter) MayContain(index int) bool {
	return f.MayContainFn(index)
}

// VerseImporter is a mock implementation of shlok.VerseImporter.
type VerseImporter struct {
	ImportVersesFn func(ctx context.Context, verses []*shlok.Verse) (shlok.ImportResult, error)
}

func (i *VerseImporter) ImportVerses(ctx context.Context, verses []*shlok.Verse) (shlok.ImportResult, error) {
	return i.ImportVersesFn(ctx, verses)
}

// VerseDecoder is a mock implementation of shlok.VerseDecoder.
type VerseDecoder struct {
	DecodeVersesFn func(r io.Reader) ([]*shlok.Verse, error)
}

func (d *VerseDecoder) DecodeVerses(r io.Reader) ([]*shlok.Verse, error) {
	return d.DecodeVersesFn(r)
}

// VerseInvalidator is a mock implementation of shlok.VerseInvalidator.
type VerseInvalidator struct {
	InvalidateFn func(ctx context.Context, index int) error
}

func (i *VerseInvalidator) Invalidate(ctx context.Context, index int) error {
	return i.InvalidateFn(ctx, index)
}
