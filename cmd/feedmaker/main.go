package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/feedmaker/pkg/config"
	"github.com/umputun/feedmaker/pkg/domain"
	"github.com/umputun/feedmaker/pkg/extract"
	"github.com/umputun/feedmaker/pkg/fetch"
	"github.com/umputun/feedmaker/pkg/runner"
	"github.com/umputun/feedmaker/pkg/scheduler"
	"github.com/umputun/feedmaker/pkg/workspace"
	"github.com/umputun/feedmaker/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"feedmaker.yml" description:"config file"`

	Feed         string `short:"f" long:"feed" description:"run a single feed, <group>/<feed> or feed directory"`
	All          bool   `short:"a" long:"all" description:"run all enabled feeds"`
	CollectOnly  bool   `long:"collect-only" description:"collect and store list snapshots only"`
	Housekeeping bool   `long:"housekeeping" description:"remove expired artifacts, snapshots and broken images"`
	Daemon       bool   `short:"d" long:"daemon" description:"run all feeds and housekeeping periodically"`
	Serve        bool   `short:"s" long:"serve" description:"start admin http server"`
	Listen       string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`
	Workers      int    `short:"w" long:"workers" env:"WORKERS" description:"max feeds processed concurrently, overrides config"`
	Schema       string `long:"schema" choice:"config" choice:"feed" description:"print json schema and exit"`

	// Common options
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
	setupLog(opts.Debug)

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
}

// run executes the mode selected by options. A failed single feed run is an error,
// failures of individual feeds in run-all and daemon modes are only logged.
func run(ctx context.Context, opts Opts) error {
	if opts.Schema != "" {
		return printSchema(os.Stdout, opts.Schema)
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	if opts.Workers > 0 {
		cfg.Run.MaxWorkers = opts.Workers
	}

	log.Printf("[INFO] starting feedmaker version %s, work dir %s", revision, cfg.WorkDir)

	ws := workspace.New(cfg.WorkDir, cfg.PublicDir)
	rn := runner.New(fetch.NewHTTPFetcher(cfg.Fetch.Timeout, cfg.Fetch.UserAgent), extract.NewHTMLExtractor(), runner.Params{
		WebBaseURL:          cfg.WebBaseURL,
		ImageURLPrefix:      cfg.ImageURLPrefix,
		PublicDir:           cfg.PublicDir,
		RetryDelay:          cfg.Fetch.RetryDelay,
		MaxWorkers:          cfg.Run.MaxWorkers,
		FeedTimeout:         cfg.Run.FeedTimeout,
		HTMLArchivingPeriod: cfg.Housekeeping.HTMLArchivingPeriod,
		ListArchivingPeriod: cfg.Housekeeping.ListArchivingPeriod,
	})
	runOpts := runner.Options{CollectOnly: opts.CollectOnly}

	switch {
	case opts.Daemon || opts.Serve:
		return runService(ctx, cfg, opts, ws, rn, runOpts)
	case opts.Feed != "":
		f, err := resolveFeed(ws, opts.Feed)
		if err != nil {
			return err
		}
		if _, err := rn.Run(ctx, f, runOpts); err != nil {
			return fmt.Errorf("feed %s failed: %w", f.ID(), err)
		}
		return nil
	case opts.All || opts.Housekeeping:
		feeds, err := ws.Discover()
		if err != nil {
			return fmt.Errorf("discover feeds: %w", err)
		}
		if opts.All {
			reports := rn.RunAll(ctx, feeds, runOpts)
			logSummary(reports)
		}
		if opts.Housekeeping {
			if _, err := rn.Housekeep(ctx, feeds); err != nil {
				return fmt.Errorf("housekeeping: %w", err)
			}
		}
		return nil
	default:
		return errors.New("nothing to do, use --feed, --all, --housekeeping, --daemon or --serve")
	}
}

// runService runs the scheduler in daemon mode and the admin server if requested, until ctx is done
func runService(ctx context.Context, cfg *config.Config, opts Opts, ws *workspace.Workspace, rn *runner.Runner, runOpts runner.Options) error {
	params := scheduler.Params{Feeds: ws, Runner: rn, Options: runOpts}
	if opts.Daemon {
		params.RunInterval = cfg.Run.Interval
		params.HousekeepingInterval = cfg.Housekeeping.Interval
	}
	sched := scheduler.NewScheduler(params)
	sched.Start(ctx)
	defer sched.Stop()

	if !opts.Serve {
		<-ctx.Done()
		return nil
	}
	srv := server.New(cfg, ws, sched, revision, opts.Debug)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// resolveFeed accepts <group>/<feed> relative to the work dir or a feed directory path
func resolveFeed(ws *workspace.Workspace, name string) (domain.Feed, error) {
	if fi, err := os.Stat(filepath.Join(name, config.FeedFileName)); err == nil && !fi.IsDir() {
		abs, err := filepath.Abs(name)
		if err != nil {
			return domain.Feed{}, fmt.Errorf("resolve feed dir %s: %w", name, err)
		}
		return domain.NewFeed(abs), nil
	}
	group, feedName, ok := strings.Cut(strings.Trim(name, "/"), "/")
	if !ok {
		return domain.Feed{}, fmt.Errorf("invalid feed %q, expected <group>/<feed>", name)
	}
	return ws.Feed(group, feedName)
}

func logSummary(reports []runner.Report) {
	failed := 0
	var total time.Duration
	for _, rep := range reports {
		total += rep.Duration
		if rep.Err != nil {
			failed++
		}
	}
	log.Printf("[INFO] processed %d feeds, failed %d, total run time %v", len(reports), failed, total.Truncate(time.Second))
}

// printSchema writes json schema of the engine config or of the feed conf.json
func printSchema(w io.Writer, kind string) error {
	gen := config.GenerateSchema
	if kind == "feed" {
		gen = config.GenerateFeedSchema
	}
	schema, err := gen()
	if err != nil {
		return fmt.Errorf("generate schema: %w", err)
	}
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	if _, err := fmt.Fprintln(w, string(data)); err != nil {
		return fmt.Errorf("write schema: %w", err)
	}
	return nil
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
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
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
