package main_test

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/shlok"
	main "github.com/fwojciec/shlok/cmd/shlok"
	"github.com/fwojciec/shlok/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("serves verses until context is canceled", func(t *testing.T) {
		t.Parallel()

		store := &mock.VerseStore{
			FindVerseByIndexFn: func(_ context.Context, index int) (*shlok.Verse, error) {
				if index != 48 {
					return nil, shlok.Errorf(shlok.ENOTFOUND, "verse %d not found", index)
				}
				return &shlok.Verse{Index: 48, Chapter: "Chapter 2", Verse: "Verse 1"}, nil
			},
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		stdout := &safeBuffer{}
		deps := &main.Dependencies{
			Ctx:    ctx,
			Stdout: stdout,
			Stderr: &safeBuffer{},
			Logger: discardLogger(),
			Store:  store,
		}

		cmd := &main.ServeCmd{
			Addr:            "127.0.0.1:0",
			CacheTTL:        time.Minute,
			ShutdownTimeout: time.Second,
		}

		done := make(chan error, 1)
		go func() { done <- cmd.Run(deps) }()

		var addr string
		require.Eventually(t, func() bool {
			out := stdout.String()
			if !strings.HasPrefix(out, "Listening on ") {
				return false
			}
			addr = strings.TrimSpace(strings.TrimPrefix(out, "Listening on "))
			return true
		}, 5*time.Second, 10*time.Millisecond)

		resp, err := http.Get("http://" + addr + "/api/shlok?index=48")
		require.NoError(t, err)
		var v shlok.Verse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, 48, v.Index)

		resp, err = http.Get("http://" + addr + "/api/shlok?index=49")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		cancel()

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("server did not shut down")
		}
	})

	t.Run("rejects unknown indices with prefilter", func(t *testing.T) {
		t.Parallel()

		var lookups atomic.Int32
		store := &mock.VerseStore{
			FindVerseByIndexFn: func(_ context.Context, index int) (*shlok.Verse, error) {
				lookups.Add(1)
				return &shlok.Verse{Index: index}, nil
			},
			ListVerseIndicesFn: func(_ context.Context) ([]int, error) {
				return []int{1, 2, 3}, nil
			},
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		stdout := &safeBuffer{}
		deps := &main.Dependencies{
			Ctx:     ctx,
			Stdout:  stdout,
			Stderr:  &safeBuffer{},
			Logger:  discardLogger(),
			Store:   store,
			Indices: store,
		}

		cmd := &main.ServeCmd{
			Addr:            "127.0.0.1:0",
			CacheTTL:        time.Minute,
			Prefilter:       true,
			ShutdownTimeout: time.Second,
		}

		done := make(chan error, 1)
		go func() { done <- cmd.Run(deps) }()

		var addr string
		require.Eventually(t, func() bool {
			out := stdout.String()
			if !strings.HasPrefix(out, "Listening on ") {
				return false
			}
			addr = strings.TrimSpace(strings.TrimPrefix(out, "Listening on "))
			return true
		}, 5*time.Second, 10*time.Millisecond)

		resp, err := http.Get("http://" + addr + "/api/shlok?index=650")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		cancel()
		require.NoError(t, <-done)
		assert.Zero(t, lookups.Load())
	})

	t.Run("fails on unreachable redis", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		stderr := &safeBuffer{}
		deps := &main.Dependencies{
			Ctx:    ctx,
			Stdout: &safeBuffer{},
			Stderr: stderr,
			Logger: discardLogger(),
			Store:  &mock.VerseStore{},
		}

		cmd := &main.ServeCmd{
			Addr:      "127.0.0.1:0",
			RedisAddr: "127.0.0.1:1",
		}

		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "SHLOK_REDIS_ADDR")
	})
}
