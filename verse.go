package shlok

import (
	"context"
	"io"
	"time"
)

// DefaultCacheTTL is how long a verse stays cached after a store lookup.
const DefaultCacheTTL = time.Hour

// Verse is a single verse record as held by the verse store.
type Verse struct {
	Index           int    `json:"index"`
	Chapter         string `json:"chapter"`
	Verse           string `json:"verse"`
	Shlok           string `json:"shlok"`
	Transliteration string `json:"transliteration"`
	Translation     string `json:"translation"`
}

// Validate returns an error if the verse cannot be stored.
// Only the key is checked; the store is the system of record for content.
func (v *Verse) Validate() error {
	if v.Index == 0 {
		return Errorf(EINVALID, "verse index required")
	}
	return nil
}

// VerseStore looks verses up in the system of record.
type VerseStore interface {
	// FindVerseByIndex retrieves the verse with the given global index.
	// Returns ENOTFOUND if no such verse exists.
	FindVerseByIndex(ctx context.Context, index int) (*Verse, error)
}

// VerseIndexLister lists the indices held by a store.
type VerseIndexLister interface {
	ListVerseIndices(ctx context.Context) ([]int, error)
}

// VerseService returns verses by global index.
type VerseService interface {
	// FindVerse retrieves the verse with the given global index.
	// Returns ENOTFOUND if no such verse exists and EUNAVAILABLE if the
	// store cannot be reached.
	FindVerse(ctx context.Context, index int) (*Verse, error)
}

// VerseCache holds verses for a limited time.
// Implementations must be safe for concurrent use.
type VerseCache interface {
	// Get returns the live entry for index. A miss is (nil, false, nil).
	Get(ctx context.Context, index int) (*Verse, bool, error)

	// Set stores v under index until ttl elapses. Last write wins.
	Set(ctx context.Context, index int, v *Verse, ttl time.Duration) error

	// Delete invalidates the entry for index.
	Delete(ctx context.Context, index int) error
}

// IndexFilter reports whether an index may be present in the store.
// False means the index is definitely absent.
type IndexFilter interface {
	MayContain(index int) bool
}

// ImportResult summarizes a bulk import into a verse store.
type ImportResult struct {
	Inserted  int `json:"inserted"`
	Updated   int `json:"updated"`
	Unchanged int `json:"unchanged"`

	// UpdatedIndices lists the indices whose stored content changed.
	UpdatedIndices []int `json:"updatedIndices,omitempty"`
}

// VerseImporter loads verse records into a store, replacing records that
// share an index.
type VerseImporter interface {
	// ImportVerses upserts verses by index. Returns EINVALID if any verse
	// fails validation, in which case nothing is written.
	ImportVerses(ctx context.Context, verses []*Verse) (ImportResult, error)
}

// VerseInvalidator drops cached copies of verses so the next lookup reads
// the store.
type VerseInvalidator interface {
	Invalidate(ctx context.Context, index int) error
}

// VerseDecoder reads verse records from a dataset.
type VerseDecoder interface {
	DecodeVerses(r io.Reader) ([]*Verse, error)
}
