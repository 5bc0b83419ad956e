package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/siteforge/internal/build"
	"git.home.luguber.info/inful/siteforge/internal/config"
	"git.home.luguber.info/inful/siteforge/internal/metrics"
	"git.home.luguber.info/inful/siteforge/internal/preview"
	"git.home.luguber.info/inful/siteforge/internal/version"
)

var CLI struct {
	Config  string `short:"c" help:"Configuration file path" default:"siteforge.yaml"`
	Verbose bool   `short:"v" help:"Enable verbose logging"`

	Build struct {
		Source string `short:"s" help:"Markdown source directory (overrides config)"`
		Output string `short:"o" help:"Output directory for the generated site (overrides config)"`
	} `cmd:"" help:"Build the site from markdown content"`

	Serve struct {
		Addr  string `short:"a" help:"Listen address (overrides config)"`
		Watch bool   `short:"w" help:"Watch content and templates, rebuild on change" default:"true" negatable:""`
	} `cmd:"" help:"Build the site and serve it locally"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Initialize a new configuration file"`

	Version struct{} `cmd:"" help:"Print version information"`
}

func main() {
	ctx := kong.Parse(&CLI)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	switch ctx.Command() {
	case "build":
		cfg := loadConfig()
		report := runBuild(cfg, metrics.NoopRecorder{})
		printFailures(report)
		if report.Failed() {
			os.Exit(1)
		}
		fmt.Printf("Built %d posts into %s\n", report.Posts, buildOptions(cfg).OutputDir)
	case "serve":
		cfg := loadConfig()
		if err := runServe(cfg); err != nil {
			slog.Error("Serve failed", "error", err)
			os.Exit(1)
		}
	case "init":
		if err := config.Init(CLI.Config, CLI.Init.Force); err != nil {
			slog.Error("Init failed", "error", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", CLI.Config)
	case "version":
		fmt.Printf("siteforge %s (built %s, commit %s)\n", version.Version, version.BuildTime, version.GitCommit)
	}
}

// loadConfig loads the configuration file, falling back to defaults when
// the default config file does not exist. An explicitly requested file
// that cannot be loaded is fatal.
func loadConfig() *config.Config {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && CLI.Config == "siteforge.yaml" {
			slog.Debug("no configuration file, using defaults")
			return config.Default()
		}
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	return cfg
}

func buildOptions(cfg *config.Config) build.Options {
	opts := build.Options{
		ContentDir:   cfg.Content.Dir,
		TemplatesDir: cfg.Content.Templates,
		StaticDir:    cfg.Content.Static,
		OutputDir:    cfg.Output.Dir,
		Site:         cfg.Site,
	}
	if CLI.Build.Source != "" {
		opts.ContentDir = CLI.Build.Source
	}
	if CLI.Build.Output != "" {
		opts.OutputDir = CLI.Build.Output
	}
	return opts
}

func runBuild(cfg *config.Config, recorder metrics.Recorder) *build.Report {
	opts := buildOptions(cfg)
	opts.Recorder = recorder
	return build.Run(opts)
}

func printFailures(report *build.Report) {
	for _, line := range report.FlattenedFailures() {
		fmt.Println(line.Error())
	}
}

func runServe(cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	addr := cfg.Serve.Addr
	if CLI.Serve.Addr != "" {
		addr = CLI.Serve.Addr
	}

	var recorder metrics.Recorder = metrics.NoopRecorder{}

	opts := preview.Options{
		Addr:    addr,
		SiteDir: cfg.Output.Dir,
	}

	if cfg.Serve.Metrics {
		reg := prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(reg)
		opts.MetricsHandler = metrics.HTTPHandler(reg)
	}

	// Initial build; serve keeps running even when it fails so failures can
	// be fixed while watching.
	report := runBuild(cfg, recorder)
	printFailures(report)

	if CLI.Serve.Watch {
		opts.WatchDirs = []string{cfg.Content.Dir, cfg.Content.Templates}
		opts.Rebuild = func() error {
			r := runBuild(cfg, recorder)
			printFailures(r)
			if r.Failed() {
				return fmt.Errorf("build finished with %d failures", len(r.FlattenedFailures()))
			}
			return nil
		}
	}

	return preview.Serve(ctx, opts)
}
