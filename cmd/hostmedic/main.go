// Command hostmedic runs a single health-diagnostic sweep of the local
// host and prints one titled section per check.
//
// The no-argument invocation is the intended use. Exit codes: 0 when every
// check is ok, 1 when at least one check warned, 2 when no check warned
// but at least one could not determine an answer.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hostmedic/hostmedic"
	"github.com/hostmedic/hostmedic/checks"
	"github.com/hostmedic/hostmedic/config"
	"github.com/hostmedic/hostmedic/probe"
	"github.com/hostmedic/hostmedic/report"
	"github.com/hostmedic/hostmedic/result"
	"github.com/hostmedic/hostmedic/telemetry"
)

// version is set at build time via -ldflags.
var version = "0.3.0"

// cliConfig holds all parsed CLI flag values.
type cliConfig struct {
	ConfigPath  string
	Format      string
	Timeout     time.Duration
	Concurrency int
	NoColor     bool
	Quiet       bool
	List        bool
	Debug       bool
	Version     bool
}

func parseFlags(args []string) (*cliConfig, error) {
	cfg := &cliConfig{}
	fs := flag.NewFlagSet("hostmedic", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	fs.StringVar(&cfg.ConfigPath, "config", "/etc/hostmedic.yaml", "Path to the optional configuration file")
	fs.StringVar(&cfg.Format, "format", "text", "Output format: text, json")
	fs.DurationVar(&cfg.Timeout, "timeout", 0, "Per-check timeout (overrides config)")
	fs.IntVar(&cfg.Concurrency, "concurrency", 0, "Checks run in parallel (overrides config)")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&cfg.Quiet, "q", false, "Suppress output, exit code only")
	fs.BoolVar(&cfg.List, "list", false, "List available checks and exit")
	fs.BoolVar(&cfg.Debug, "debug", false, "Enable debug logging (includes per-check spans)")
	fs.BoolVar(&cfg.Version, "version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	cli, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	if cli.Version {
		fmt.Printf("hostmedic %s\n", version)
		os.Exit(0)
	}

	code, err := run(cli)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	os.Exit(code)
}

func run(cli *cliConfig) (int, error) {
	format, err := result.ParseExportFormat(cli.Format)
	if err != nil {
		return 0, err
	}

	cfg, err := config.Load(cli.ConfigPath)
	if err != nil {
		return 0, err
	}

	timeout, err := cfg.ParsedTimeout()
	if err != nil {
		return 0, err
	}
	if cli.Timeout > 0 {
		timeout = cli.Timeout
	}
	concurrency := cfg.Concurrency
	if cli.Concurrency > 0 {
		concurrency = cli.Concurrency
	}

	level := slog.LevelWarn
	if cli.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	runner := probe.System{}
	list := []checks.Check{
		checks.NewFilesystem(cfg.Thresholds.DiskUsedPercent, cfg.Thresholds.DiskInodePercent),
		checks.NewLoad(cfg.Thresholds.LoadFactor),
		checks.NewMemory(cfg.Thresholds.MemoryPercent),
		checks.NewDState(runner),
		checks.NewSELinux(runner),
		checks.NewFirewall(runner),
		checks.NewUpdates(runner),
		checks.NewReboot(runner),
		checks.NewUptime(),
	}

	if cli.List {
		for _, c := range list {
			fmt.Println(c.Name())
		}
		return 0, nil
	}

	tp := telemetry.NewTracerProvider(logger)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = tp.Shutdown(shutdownCtx)
	}()

	sweep := hostmedic.NewSweep(list,
		hostmedic.WithTimeout(timeout),
		hostmedic.WithConcurrency(concurrency),
		hostmedic.WithLogger(logger),
		hostmedic.WithTracer(tp.Tracer("hostmedic")),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rep, err := sweep.Run(ctx)
	if err != nil {
		return 0, err
	}

	if !cli.Quiet {
		switch format {
		case result.FormatJSON:
			if err := result.WriteJSON(os.Stdout, rep); err != nil {
				return 0, err
			}
		default:
			scheme := report.DefaultScheme()
			if cli.NoColor {
				scheme = report.Monochrome()
			}
			if err := report.NewRenderer(scheme).Render(os.Stdout, rep); err != nil {
				return 0, err
			}
		}
	}

	switch {
	case rep.HasWarnings():
		return 1, nil
	case rep.HasUnknowns():
		return 2, nil
	default:
		return 0, nil
	}
}
