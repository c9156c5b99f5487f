package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/shelfscope/pkg/config"
	"github.com/umputun/shelfscope/pkg/feed"
	"github.com/umputun/shelfscope/pkg/journal"
	"github.com/umputun/shelfscope/pkg/reporter"
	"github.com/umputun/shelfscope/pkg/session"
	"github.com/umputun/shelfscope/pkg/upstream"
	"github.com/umputun/shelfscope/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"config.yml" description:"configuration file"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`

	// common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	SetupLog(opts.Debug)
	log.Printf("[INFO] starting shelfscope version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()
	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
	log.Print("[INFO] shutdown complete")
}

func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}

	client := upstream.New(upstream.Config{
		BaseURL:   cfg.Upstream.BaseURL,
		Timeout:   cfg.Upstream.Timeout,
		UserAgent: cfg.Upstream.UserAgent,
	})

	// journal is optional, interfaces stay nil when it's disabled
	var sink reporter.Sink
	var srvJournal server.Journal
	if cfg.Journal.Enabled {
		jrnl, err := journal.Open(ctx, journal.Config{
			DSN:             cfg.Journal.DSN,
			MaxOpenConns:    cfg.Journal.MaxOpenConns,
			MaxIdleConns:    cfg.Journal.MaxIdleConns,
			ConnMaxLifetime: time.Duration(cfg.Journal.ConnMaxLifetime) * time.Second,
		})
		if err != nil {
			return fmt.Errorf("failed to open journal: %w", err)
		}
		defer func() {
			if err := jrnl.Close(); err != nil {
				log.Printf("[WARN] failed to close journal: %v", err)
			}
		}()
		sink, srvJournal = jrnl, jrnl
		log.Printf("[INFO] interaction journal enabled")
	}

	sessions := session.NewManager(clientFactory(client), session.Options{
		Specs: feed.DefaultSpecs(feed.Limits{
			Featured:        cfg.Feed.FeaturedLimit,
			BecauseBorrowed: cfg.Feed.BecauseLimit,
			DiscoveryQueue:  cfg.Feed.QueueLimit,
			KnownAuthors:    cfg.Feed.AuthorsLimit,
			Timeout:         cfg.Feed.SourceTimeout,
		}),
		QueueLimit:    cfg.Discovery.QueueLimit,
		SettleDelay:   cfg.Discovery.SettleDelay,
		ReportTimeout: cfg.Reporter.Timeout,
		Sink:          sink,
		TTL:           cfg.Session.TTL,
		MaxSessions:   cfg.Session.MaxSessions,
		BaseContext:   ctx,
	})
	defer sessions.Shutdown()

	log.Printf("[INFO] upstream %s, sessions ttl %v, max %d", cfg.Upstream.BaseURL, cfg.Session.TTL, cfg.Session.MaxSessions)

	srv := server.New(cfg, &server.SessionsAdapter{Manager: sessions}, client, srvJournal, revision, opts.Debug)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// clientFactory makes per-session upstream clients sharing the base client's transport
func clientFactory(base *upstream.Client) session.ClientFactory {
	return func(token string, onAuthExpired func()) session.Upstream {
		c := base.WithToken(token)
		c.OnAuthExpired = onAuthExpired
		return c
	}
}

// SetupLog configures lgr and the standard logger
func SetupLog(dbg bool) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
