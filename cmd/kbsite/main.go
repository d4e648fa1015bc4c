package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/TheOne1006/kbsite"
	"github.com/TheOne1006/kbsite/crawl"
	"github.com/TheOne1006/kbsite/fs"
	"github.com/TheOne1006/kbsite/gemini"
	"github.com/TheOne1006/kbsite/goquery"
	"github.com/TheOne1006/kbsite/htmltomarkdown"
	kbhttp "github.com/TheOne1006/kbsite/http"
	"github.com/TheOne1006/kbsite/readability"
	"github.com/TheOne1006/kbsite/rod"
	kbslog "github.com/TheOne1006/kbsite/slog"
	"github.com/TheOne1006/kbsite/sqlite"
	"github.com/TheOne1006/kbsite/trafilatura"
	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

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
	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Fetcher loads pages for extract and sync. Nil for commands that do
	// not touch the network.
	Fetcher kbsite.Fetcher
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.Fetcher != nil {
		if err := m.Fetcher.Close(); err != nil {
			return err
		}
	}
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("kbsite"),
		kong.Description("Manage knowledge base sites and sync their pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'kbsite --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := newLogger(stderr, cli.LogLevel)

	dbPath := cli.DB
	if dbPath == "" {
		dbPath = defaultDBPath()
	}
	m.DB = sqlite.NewDB(dbPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set KBSITE_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
	}
	defer m.Close()

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
	}

	sites := sqlite.NewSiteService(m.DB)
	endpoints := sqlite.NewEndpointService(m.DB)
	pages := kbslog.NewLoggingPageStore(fs.NewStore(cli.Root), logger)

	deps.Manager = &crawl.Manager{
		Sites:     sites,
		Endpoints: endpoints,
		Pages:     pages,
		Logger:    logger,
	}

	if needsFetcher(kongCtx.Command()) {
		fetcher, err := newFetcher(cli, logger)
		if err != nil {
			return err
		}
		m.Fetcher = kbslog.NewLoggingFetcher(fetcher, logger)

		extractor, err := newContentExtractor(cli.Extractor)
		if err != nil {
			return err
		}

		indexer := &crawl.Indexer{
			Endpoints: endpoints,
			Extractor: extractor,
			Converter: htmltomarkdown.NewConverter(),
		}
		if cli.Tokenizer != "" {
			tc, err := gemini.NewTokenCounter(cli.Tokenizer)
			if err != nil {
				return fmt.Errorf("failed to create token counter: %w", err)
			}
			indexer.TokenCounter = tc
			logger.Debug("counting tokens", "model", tc.Model())
		}

		deps.Extractor = &crawl.Extractor{
			Fetcher:     m.Fetcher,
			Links:       goquery.NewLinkExtractor(),
			Sitemaps:    kbslog.NewLoggingSitemapService(kbhttp.NewSitemapService(nil), logger),
			Concurrency: cli.Concurrency,
			Logger:      logger,
		}
		deps.Syncer = &crawl.Syncer{
			Sites:       sites,
			Pages:       pages,
			Fetcher:     m.Fetcher,
			Sanitizer:   kbslog.NewLoggingSanitizer(goquery.NewSanitizer(), logger),
			Indexer:     indexer,
			RateLimiter: crawl.NewDomainLimiter(cli.RPS),
			RetryDelays: crawl.DefaultBackoff().Limit(cli.Retries),
			Loader:      cli.Loader,
			Logger:      logger,
		}
	}

	deps.Registry = prometheus.NewRegistry()
	deps.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return kongCtx.Run(deps)
}

// needsFetcher reports whether a command loads pages.
func needsFetcher(command string) bool {
	name, _, _ := strings.Cut(command, " ")
	return name != "sites" && name != "endpoints"
}

func newFetcher(cli *CLI, logger *slog.Logger) (kbsite.Fetcher, error) {
	switch cli.Loader {
	case LoaderRod:
		f, err := rod.NewFetcher(rod.WithBrowserOptions(
			rod.WithPageLimit(cli.PageLimit),
			rod.WithBrowserBin(cli.ChromeBin),
			rod.WithNoSandbox(cli.NoSandbox),
			rod.WithLogger(logger),
		))
		if err != nil {
			return nil, fmt.Errorf("failed to start browser (Chrome or Chromium must be installed): %w", err)
		}
		return f, nil
	case LoaderHTTP:
		return kbhttp.NewFetcher(), nil
	default:
		return nil, kbsite.Errorf(kbsite.EINVALID, "unknown loader %q", cli.Loader)
	}
}

func newContentExtractor(name string) (kbsite.ContentExtractor, error) {
	switch name {
	case trafilatura.Name:
		return trafilatura.NewExtractor(), nil
	case readability.Name:
		return readability.NewExtractor(), nil
	default:
		return nil, kbsite.Errorf(kbsite.EINVALID, "unknown extractor %q", name)
	}
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "kbsite.db"
	}
	dir := filepath.Join(home, ".kbsite")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "kbsite.db")
}
