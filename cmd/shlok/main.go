package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/shlok"
	"github.com/fwojciec/shlok/cache"
	"github.com/fwojciec/shlok/etree"
	"github.com/fwojciec/shlok/htmltomarkdown"
	shlokhttp "github.com/fwojciec/shlok/http"
	"github.com/fwojciec/shlok/mongoexport"
	"github.com/fwojciec/shlok/redis"
	shlokslog "github.com/fwojciec/shlok/slog"
	"github.com/fwojciec/shlok/sqlite"
	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()

	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by the verse store.
	DB *sqlite.DB

	// Store is exposed for end-to-end testing.
	Store *sqlite.VerseStore
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("shlok"),
		kong.Description("Serve and browse Bhagavad Gita verses by global index."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'shlok --help' to see available commands")
	}

	if first := args[0]; first == "help" || first == "--help" || first == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Global flags may precede the command, so dispatch on what kong parsed.
	// Command() reads like "show <index>".
	fields := strings.Fields(kongCtx.Command())
	if len(fields) == 0 {
		return nil
	}
	cmd := fields[0]

	level, err := parseLevel(cli.LogLevel)
	if err != nil {
		return err
	}
	deps.Logger = slog.New(slog.NewJSONHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Remote reads and pure computations never touch the database.
	needsDB := cmd == "serve" || cmd == "import" || (cmd == "show" && cli.Show.Server == "")
	if cmd == "show" && cli.Show.Server != "" {
		deps.Verses = shlokhttp.NewClient(cli.Show.Server)
	}

	if needsDB {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set SHLOK_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		m.Store = sqlite.NewVerseStore(m.DB)
		deps.DB = m.DB
		deps.Store = shlokslog.NewLoggingVerseStore(m.Store, deps.Logger)
		deps.Indices = m.Store
		deps.Importer = m.Store
		if deps.Verses == nil {
			deps.Verses = cache.NewVerseService(deps.Store, cache.NewMap())
		}
	}

	if cmd == "import" && cli.Import.RedisAddr != "" {
		rc, err := redis.Open(ctx, cli.Import.RedisAddr)
		if err != nil {
			fmt.Fprintf(stderr, "Hint: Check SHLOK_REDIS_ADDR or leave it empty to skip cache invalidation\n")
			return fmt.Errorf("failed to connect to redis at %q: %w", cli.Import.RedisAddr, err)
		}
		defer rc.Close()
		deps.Invalidator = cache.NewVerseService(deps.Store, shlokslog.NewLoggingVerseCache(rc, deps.Logger))
	}

	deps.Decoders = map[string]shlok.VerseDecoder{
		"json": mongoexport.NewDecoder(),
		"xml":  etree.NewDecoder(),
	}
	deps.Converter = htmltomarkdown.NewConverter()

	return kongCtx.Run(deps)
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

func defaultDBPath() string {
	if path := os.Getenv("SHLOK_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "shlok.db"
	}
	dir := filepath.Join(home, ".shlok")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "shlok.db")
}
