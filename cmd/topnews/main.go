package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/topnews/pkg/aggregator"
	"github.com/umputun/topnews/pkg/config"
	"github.com/umputun/topnews/pkg/domain"
	"github.com/umputun/topnews/pkg/feed"
	"github.com/umputun/topnews/pkg/output"
	"github.com/umputun/topnews/pkg/render"
	"github.com/umputun/topnews/server"
)

// Opts with all CLI options
type Opts struct {
	Max          int    `long:"max" env:"MAX" default:"20" description:"maximum number of stories, clamped to 1..50"`
	IncludeWorld bool   `long:"include-world" description:"include world feeds"`
	IncludeUS    bool   `long:"include-us" description:"include U.S. feeds"`
	IncludeAI    bool   `long:"include-ai" description:"include AI/tech feeds"`
	NoAIFirst    bool   `long:"no-ai-first" description:"disable AI/tech-first ordering"`
	Format       string `short:"f" long:"format" default:"markdown" choice:"markdown" choice:"html" choice:"json" choice:"csv" choice:"rss" choice:"atom" description:"output format"`
	AllFormats   bool   `long:"all-formats" description:"write markdown, html, json and csv files in one run"`
	OutputFile   string `short:"o" long:"output-file" description:"save output to this path"`
	MarkdownFile string `long:"markdown-file" description:"(deprecated) save markdown output to this path"`
	Quiet        bool   `short:"q" long:"quiet" description:"suppress stdout output"`
	AlsoStdout   bool   `long:"also-stdout" description:"print to stdout even when writing files"`
	Config       string `short:"c" long:"config" env:"CONFIG" description:"optional yaml config with feed table"`
	Listen       string `short:"l" long:"listen" env:"LISTEN" description:"serve news over http on this address instead of printing"`

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

	setupLog(opts.Debug, opts.NoColor)
	log.Printf("[DEBUG] starting topnews version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts, os.Stdout)
	cancel()

	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
}

// run resolves options, aggregates news and writes results. In listen mode it serves
// news over http until ctx is canceled. Only caller errors are returned, detected
// before any fetch; failed feeds and failed file writes are logged.
func run(ctx context.Context, opts Opts, stdout io.Writer) error {
	if opts.MarkdownFile != "" && opts.OutputFile == "" {
		opts.OutputFile = opts.MarkdownFile
		opts.Format = string(render.FormatMarkdown)
	}

	format, err := render.ParseFormat(opts.Format)
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	agg := aggregator.New(aggregator.Params{
		Fetcher:         feed.NewHTTPFetcher(feed.FetcherParams{Timeout: cfg.Fetch.Timeout, UserAgent: cfg.Fetch.UserAgent}),
		Table:           cfg.Table(),
		MaxWorkers:      cfg.Fetch.MaxWorkers,
		PrioritySection: cfg.Ranking.PrioritySection,
	})

	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
		srv := server.New(cfg, agg, revision, opts.Debug)
		if err := srv.Run(ctx); err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	}

	sections := selectedSections(opts)
	mode := aggregator.ModePriority
	if opts.NoAIFirst {
		mode = aggregator.ModeFlat
	}
	entries := agg.Run(ctx, aggregator.Request{Sections: sections, Limit: opts.Max, Mode: mode})
	title := aggregator.Title(sections)
	lgr.Printf("[DEBUG] %d entries for %q", len(entries), title)

	if opts.AllFormats {
		return writeAllFormats(opts, entries, title, stdout)
	}

	res, err := render.Render(format, entries, title)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", format, err)
	}

	if opts.OutputFile != "" {
		if err := output.Write(opts.OutputFile, res); err != nil {
			lgr.Printf("[WARN] failed to write output file: %v", err)
		}
	}

	if output.ShouldPrint(opts.Quiet, opts.OutputFile, opts.AlsoStdout, false) {
		fmt.Fprintln(stdout, res)
	}
	return nil
}

// writeAllFormats writes sibling files for every format of render.AllFormats,
// markdown goes to stdout only on request
func writeAllFormats(opts Opts, entries []domain.Entry, title string, stdout io.Writer) error {
	base := output.BasePath(opts.OutputFile)
	outputs := make([]output.Output, 0, len(render.AllFormats))
	var md string
	for _, f := range render.AllFormats {
		res, err := render.Render(f, entries, title)
		if err != nil {
			return fmt.Errorf("failed to render %s: %w", f, err)
		}
		if f == render.FormatMarkdown {
			md = res
		}
		outputs = append(outputs, output.Output{Path: base + f.Ext(), Content: res})
	}

	// failures already logged per file and don't change the result
	_ = output.WriteAll(outputs)

	if output.ShouldPrint(opts.Quiet, opts.OutputFile, opts.AlsoStdout, true) {
		fmt.Fprintln(stdout, md)
	}
	return nil
}

// selectedSections returns sections enabled by include flags in world, us, ai order,
// aggregator.DefaultSections if none set
func selectedSections(opts Opts) []string {
	var res []string
	if opts.IncludeWorld {
		res = append(res, domain.SectionWorld)
	}
	if opts.IncludeUS {
		res = append(res, domain.SectionUS)
	}
	if opts.IncludeAI {
		res = append(res, domain.SectionAI)
	}
	if len(res) == 0 {
		return aggregator.DefaultSections
	}
	return res
}

func setupLog(dbg, noColor bool) {
	logOpts := []lgr.Option{lgr.Out(os.Stderr), lgr.Err(os.Stderr)}
	if dbg {
		logOpts = append(logOpts, lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.CallerFile, lgr.CallerFunc)
	}

	if !noColor {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
