// Package bloom provides a known-index prefilter backed by a Bloom filter.
package bloom

import (
	"context"
	"encoding/binary"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/shlok"
)

// DefaultFalsePositiveRate is the false positive rate used by Load.
const DefaultFalsePositiveRate = 0.001

var _ shlok.IndexFilter = (*Filter)(nil)

// Filter records which verse indices exist in a store.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected indices
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	if n == 0 {
		n = 1
	}
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Load builds a filter holding every index currently in the store.
func Load(ctx context.Context, store shlok.VerseIndexLister) (*Filter, error) {
	indices, err := store.ListVerseIndices(ctx)
	if err != nil {
		return nil, err
	}
	f := NewFilter(uint(len(indices)), DefaultFalsePositiveRate)
	for _, index := range indices {
		f.Add(index)
	}
	return f, nil
}

// Add records index as present.
func (f *Filter) Add(index int) {
	f.f.Add(key(index))
}

// MayContain returns true if index might be present.
// False positives are possible; false negatives are not.
func (f *Filter) MayContain(index int) bool {
	return f.f.Test(key(index))
}

// EstimatedCount returns the approximate number of indices in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}

func key(index int) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(index))
	return b
}
