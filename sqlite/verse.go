package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"errors"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/shlok"
)

// Compile-time interface verification.
var (
	_ shlok.VerseStore       = (*VerseStore)(nil)
	_ shlok.VerseIndexLister = (*VerseStore)(nil)
	_ shlok.VerseImporter    = (*VerseStore)(nil)
)

// VerseStore implements the verse store collaborators using SQLite.
type VerseStore struct {
	db *DB
}

// NewVerseStore creates a new VerseStore.
func NewVerseStore(db *DB) *VerseStore {
	return &VerseStore{db: db}
}

// FindVerseByIndex retrieves the verse with the given global index.
func (s *VerseStore) FindVerseByIndex(ctx context.Context, index int) (*shlok.Verse, error) {
	var v shlok.Verse

	err := s.db.QueryRowContext(ctx, `
		SELECT idx, chapter, verse, shlok, transliteration, translation
		FROM verses
		WHERE idx = ?
	`, index).Scan(&v.Index, &v.Chapter, &v.Verse, &v.Shlok, &v.Transliteration, &v.Translation)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, shlok.Errorf(shlok.ENOTFOUND, "verse %d not found", index)
	}
	if err != nil {
		return nil, err
	}

	return &v, nil
}

// ListVerseIndices returns every stored index in ascending order.
func (s *VerseStore) ListVerseIndices(ctx context.Context) ([]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT idx FROM verses ORDER BY idx`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var indices []int
	for rows.Next() {
		var index int
		if err := rows.Scan(&index); err != nil {
			return nil, err
		}
		indices = append(indices, index)
	}
	return indices, rows.Err()
}

// ImportVerses upserts verses in a single transaction. Records whose content
// hash matches the stored one are left untouched.
func (s *VerseStore) ImportVerses(ctx context.Context, verses []*shlok.Verse) (shlok.ImportResult, error) {
	var result shlok.ImportResult

	for _, v := range verses {
		if err := v.Validate(); err != nil {
			return result, err
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return result, err
	}
	defer tx.Rollback()

	for _, v := range verses {
		hash := hashVerse(v)

		var existing string
		err := tx.QueryRowContext(ctx, `SELECT content_hash FROM verses WHERE idx = ?`, v.Index).Scan(&existing)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			result.Inserted++
		case err != nil:
			return shlok.ImportResult{}, err
		case existing == hash:
			result.Unchanged++
			continue
		default:
			result.Updated++
			result.UpdatedIndices = append(result.UpdatedIndices, v.Index)
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO verses (idx, chapter, verse, shlok, transliteration, translation, content_hash)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(idx) DO UPDATE SET
				chapter = excluded.chapter,
				verse = excluded.verse,
				shlok = excluded.shlok,
				transliteration = excluded.transliteration,
				translation = excluded.translation,
				content_hash = excluded.content_hash
		`, v.Index, v.Chapter, v.Verse, v.Shlok, v.Transliteration, v.Translation, hash); err != nil {
			return shlok.ImportResult{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return shlok.ImportResult{}, err
	}
	return result, nil
}

// hashVerse computes an xxHash over the verse text fields as a hex string.
func hashVerse(v *shlok.Verse) string {
	d := xxhash.New()
	for _, s := range []string{v.Chapter, v.Verse, v.Shlok, v.Transliteration, v.Translation} {
		_, _ = d.WriteString(s)
		_, _ = d.Write([]byte{0})
	}
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, d.Sum64())
	return hex.EncodeToString(b)
}
