// Package slog provides log/slog decorators for the verse collaborators.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/shlok"
)

// Ensure LoggingVerseStore implements shlok.VerseStore.
var _ shlok.VerseStore = (*LoggingVerseStore)(nil)

// LoggingVerseStore wraps a VerseStore with logging of every lookup.
type LoggingVerseStore struct {
	next   shlok.VerseStore
	logger *slog.Logger
}

// NewLoggingVerseStore creates a new LoggingVerseStore.
func NewLoggingVerseStore(next shlok.VerseStore, logger *slog.Logger) *LoggingVerseStore {
	return &LoggingVerseStore{next: next, logger: logger}
}

// FindVerseByIndex delegates to the wrapped store and logs the lookup.
// Misses are logged at debug level, failures at error level.
func (s *LoggingVerseStore) FindVerseByIndex(ctx context.Context, index int) (v *shlok.Verse, err error) {
	defer func(begin time.Time) {
		switch shlok.ErrorCode(err) {
		case "":
			s.logger.Debug("verse lookup", "index", index, "found", true, "duration", time.Since(begin))
		case shlok.ENOTFOUND:
			s.logger.Debug("verse lookup", "index", index, "found", false, "duration", time.Since(begin))
		default:
			s.logger.Error("verse lookup", "index", index, "duration", time.Since(begin), "err", err)
		}
	}(time.Now())
	return s.next.FindVerseByIndex(ctx, index)
}

// Ensure LoggingVerseCache implements shlok.VerseCache.
var _ shlok.VerseCache = (*LoggingVerseCache)(nil)

// LoggingVerseCache wraps a VerseCache, logging hits, misses, and backend
// failures that the verse service otherwise swallows.
type LoggingVerseCache struct {
	next   shlok.VerseCache
	logger *slog.Logger
}

// NewLoggingVerseCache creates a new LoggingVerseCache.
func NewLoggingVerseCache(next shlok.VerseCache, logger *slog.Logger) *LoggingVerseCache {
	return &LoggingVerseCache{next: next, logger: logger}
}

// Get delegates to the wrapped cache and logs the outcome.
func (c *LoggingVerseCache) Get(ctx context.Context, index int) (v *shlok.Verse, ok bool, err error) {
	defer func() {
		if err != nil {
			c.logger.Warn("cache get", "index", index, "err", err)
			return
		}
		c.logger.Debug("cache get", "index", index, "hit", ok)
	}()
	return c.next.Get(ctx, index)
}

// Set delegates to the wrapped cache and logs failures.
func (c *LoggingVerseCache) Set(ctx context.Context, index int, v *shlok.Verse, ttl time.Duration) (err error) {
	defer func() {
		if err != nil {
			c.logger.Warn("cache set", "index", index, "ttl", ttl, "err", err)
			return
		}
		c.logger.Debug("cache set", "index", index, "ttl", ttl)
	}()
	return c.next.Set(ctx, index, v, ttl)
}

// Delete delegates to the wrapped cache and logs the invalidation.
func (c *LoggingVerseCache) Delete(ctx context.Context, index int) (err error) {
	defer func() {
		c.logger.Info("cache invalidate", "index", index, "err", err)
	}()
	return c.next.Delete(ctx, index)
}
