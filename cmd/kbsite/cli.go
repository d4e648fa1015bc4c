package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/TheOne1006/kbsite"
	"github.com/prometheus/client_golang/prometheus"
)

// Page loaders selectable with --loader.
const (
	LoaderRod  = "rod"
	LoaderHTTP = "http"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Registry *prometheus.Registry

	Manager   kbsite.SiteManager
	Extractor kbsite.URLExtractor
	Syncer    kbsite.SiteSyncer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB          string  `name:"db" env:"KBSITE_DB" help:"SQLite database path (default ~/.kbsite/kbsite.db)"`
	Root        string  `name:"root" env:"KBSITE_ROOT" default:"knowledge_base" help:"Directory holding knowledge bases"`
	Loader      string  `env:"KBSITE_LOADER" enum:"rod,http" default:"rod" help:"Page loader (rod, http)"`
	ChromeBin   string  `name:"chrome-bin" env:"KBSITE_CHROME_BIN" help:"Chrome binary used by the rod loader"`
	NoSandbox   bool    `name:"no-sandbox" env:"KBSITE_NO_SANDBOX" help:"Run Chrome without its sandbox (containers running as root)"`
	PageLimit   int     `name:"page-limit" env:"KBSITE_PAGE_LIMIT" default:"75" help:"Pages served before Chrome is restarted (0 never restarts)"`
	Extractor   string  `env:"KBSITE_EXTRACTOR" enum:"trafilatura,readability" default:"trafilatura" help:"Content extractor used for endpoint statistics"`
	Tokenizer   string  `env:"KBSITE_TOKENIZER" help:"Gemini tokenizer model for token counts; empty disables counting"`
	RPS         float64 `name:"rps" env:"KBSITE_RPS" default:"1" help:"Requests per second per domain during sync (0 disables)"`
	Retries     int     `env:"KBSITE_RETRIES" default:"0" help:"Fetch retries per page during sync (max 3)"`
	Concurrency int     `short:"c" env:"KBSITE_CONCURRENCY" default:"4" help:"Concurrent seed fetches during extraction"`
	LogLevel    string  `env:"KBSITE_LOG_LEVEL" enum:"debug,info,warn,error" default:"info" help:"Log level"`

	Serve     ServeCmd     `cmd:"" help:"Serve the site HTTP API"`
	Sites     SitesCmd     `cmd:"" help:"List the sites of a knowledge base"`
	Endpoints EndpointsCmd `cmd:"" help:"List the synced pages of a site"`
	Extract   ExtractCmd   `cmd:"" help:"Preview the links extracted from seed URLs"`
	Sync      SyncCmd      `cmd:"" help:"Extract a site's links and download its pages"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `env:"KBSITE_ADDR" default:":7861" help:"Listen address"`
}

// SitesCmd is the "sites" subcommand.
type SitesCmd struct {
	KB string `arg:"" help:"Knowledge base name"`
}

// EndpointsCmd is the "endpoints" subcommand.
type EndpointsCmd struct {
	KB     string `arg:"" help:"Knowledge base name"`
	SiteID int64  `arg:"" name:"site-id" help:"Site ID"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Hostname  string   `arg:"" help:"Site origin, e.g. https://www.langchain.asia"`
	StartURLs []string `arg:"" optional:"" help:"Seed URLs or paths; sitemaps when omitted"`
	Pattern   string   `short:"p" default:".*" help:"Regex links must match"`
	MaxURLs   int      `short:"n" name:"max-urls" default:"100" help:"Maximum links to return"`
}

// SyncCmd is the "sync" subcommand.
type SyncCmd struct {
	KB     string   `arg:"" help:"Knowledge base name"`
	SiteID int64    `arg:"" help:"Site ID"`
	Mode   string   `short:"m" enum:"all,new" default:"new" help:"Download all links or only those without a local copy"`
	URLs   []string `name:"url" short:"u" help:"Sync these URLs instead of extracting the site's links (repeatable)"`
}
