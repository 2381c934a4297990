package main_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/fwojciec/shlok"
	"github.com/fwojciec/shlok/mock"
)

// safeBuffer is a bytes.Buffer safe for use by a running server and a test.
type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func verseService(verses map[int]*shlok.Verse) *mock.VerseService {
	return &mock.VerseService{
		FindVerseFn: func(_ context.Context, index int) (*shlok.Verse, error) {
			v, ok := verses[index]
			if !ok {
				return nil, shlok.Errorf(shlok.ENOTFOUND, "verse %d not found", index)
			}
			return v, nil
		},
	}
}
