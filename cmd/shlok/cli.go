package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/shlok"
	"github.com/fwojciec/shlok/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	DB        *sqlite.DB
	Store     shlok.VerseStore
	Indices   shlok.VerseIndexLister
	Verses    shlok.VerseService
	Importer  shlok.VerseImporter
	Decoders  map[string]shlok.VerseDecoder
	Converter shlok.Converter

	// Invalidator is set when imports must drop shared cache entries.
	Invalidator shlok.VerseInvalidator
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	LogLevel string `default:"info" env:"SHLOK_LOG_LEVEL" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)"`

	Serve    ServeCmd    `cmd:"" help:"Serve verses over HTTP"`
	Import   ImportCmd   `cmd:"" help:"Load a verse dataset into the database"`
	Show     ShowCmd     `cmd:"" help:"Print a verse with its position"`
	Resolve  ResolveCmd  `cmd:"" help:"Resolve a global index to chapter and verse"`
	Chapters ChaptersCmd `cmd:"" help:"List chapters with their first global index"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr            string        `default:":8080" env:"SHLOK_ADDR" help:"Listen address"`
	CacheTTL        time.Duration `default:"1h" env:"SHLOK_CACHE_TTL" help:"How long a verse stays cached"`
	RedisAddr       string        `env:"SHLOK_REDIS_ADDR" help:"Redis address for a shared cache (in-process cache when empty)"`
	RateLimit       float64       `default:"0" env:"SHLOK_RATE_LIMIT" help:"Requests per second per client (0 disables)"`
	RateBurst       int           `default:"20" env:"SHLOK_RATE_BURST" help:"Burst size per client"`
	Prefilter       bool          `env:"SHLOK_PREFILTER" help:"Reject unknown indices with a bloom filter built at startup"`
	ShutdownTimeout time.Duration `default:"10s" help:"Grace period for in-flight requests on shutdown"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	File      string `arg:"" help:"Dataset file (mongoexport JSON or XML)"`
	Format    string `default:"auto" enum:"auto,json,xml" help:"Dataset format; auto picks by file extension"`
	RedisAddr string `env:"SHLOK_REDIS_ADDR" help:"Redis cache to invalidate for updated verses"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Index    string `arg:"" help:"Global verse index"`
	Markdown bool   `short:"m" help:"Render the verse card as Markdown"`
	Server   string `env:"SHLOK_SERVER" help:"Read from a running server instead of the local database"`
}

// ResolveCmd is the "resolve" subcommand.
type ResolveCmd struct {
	Index string `arg:"" help:"Global verse index"`
}

// ChaptersCmd is the "chapters" subcommand.
type ChaptersCmd struct{}
