package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fwojciec/shlok"
	"github.com/fwojciec/shlok/bloom"
	"github.com/fwojciec/shlok/cache"
	shlokhttp "github.com/fwojciec/shlok/http"
	"github.com/fwojciec/shlok/redis"
	shlokslog "github.com/fwojciec/shlok/slog"
	"golang.org/x/sync/errgroup"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	ctx, stop := signal.NotifyContext(deps.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	verseCache, closer, err := c.openCache(ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "Hint: Check SHLOK_REDIS_ADDR or leave it empty for the in-process cache\n")
		return fmt.Errorf("failed to open cache: %w", err)
	}
	defer closer.Close()

	opts := []cache.Option{cache.WithTTL(c.CacheTTL)}
	if c.Prefilter {
		filter, err := bloom.Load(ctx, deps.Indices)
		if err != nil {
			return fmt.Errorf("failed to build index filter: %w", err)
		}
		deps.Logger.Info("index filter loaded", "indices", filter.EstimatedCount())
		opts = append(opts, cache.WithIndexFilter(filter))
	}

	verses := cache.NewVerseService(deps.Store, shlokslog.NewLoggingVerseCache(verseCache, deps.Logger), opts...)

	var serverOpts []shlokhttp.ServerOption
	if c.RateLimit > 0 {
		serverOpts = append(serverOpts, shlokhttp.WithRateLimit(c.RateLimit, c.RateBurst))
	}

	srv := &http.Server{
		Handler:           shlokhttp.NewServer(verses, deps.Logger, serverOpts...),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", c.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", c.Addr, err)
	}

	fmt.Fprintf(deps.Stdout, "Listening on %s\n", ln.Addr())
	deps.Logger.Info("server started", "addr", ln.Addr().String(), "cache_ttl", c.CacheTTL)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), c.ShutdownTimeout)
		defer cancel()
		deps.Logger.Info("server stopping")
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// openCache returns the configured verse cache and a closer releasing it.
func (c *ServeCmd) openCache(ctx context.Context) (shlok.VerseCache, io.Closer, error) {
	if c.RedisAddr == "" {
		m := cache.NewMap()
		return m, m, nil
	}
	rc, err := redis.Open(ctx, c.RedisAddr)
	if err != nil {
		return nil, nil, err
	}
	return rc, rc, nil
}
