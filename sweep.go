package hostmedic

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shirou/gopsutil/v3/host"
	"go.opentelemetry.io/otel/attribute"

	"github.com/hostmedic/hostmedic/checks"
	"github.com/hostmedic/hostmedic/result"
)

// Sweep orchestrates one diagnostic pass over a fixed, ordered set of
// checks. Checks share no mutable state, so the sweep dispatches them to a
// bounded worker pool while preserving their order in the final report.
//
// Failure isolation is absolute: a check that returns an error-shaped
// outcome, panics, or exceeds its timeout contributes an unknown result and
// never aborts the rest of the sweep.
type Sweep struct {
	checks   []checks.Check
	cfg      sweepConfig
	hostInfo func(ctx context.Context) (*host.InfoStat, error)
}

// NewSweep creates a sweep over the given ordered checks.
func NewSweep(list []checks.Check, opts ...Option) *Sweep {
	cfg := defaultSweepConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Sweep{
		checks:   list,
		cfg:      cfg,
		hostInfo: host.InfoWithContext,
	}
}

// CheckNames returns the names of the configured checks in sweep order.
func (s *Sweep) CheckNames() []string {
	names := make([]string, 0, len(s.checks))
	for _, c := range s.checks {
		names = append(names, c.Name())
	}
	return names
}

// Run executes every check and returns the aggregated report. The error is
// non-nil only when the sweep is misconfigured; per-check failures surface
// as unknown results inside the report.
//
// Cancelling ctx stops dispatching new checks, propagates to in-flight
// subprocesses, and returns the partial report with the remaining checks
// marked unknown.
func (s *Sweep) Run(ctx context.Context) (*result.Report, error) {
	if len(s.checks) == 0 {
		return nil, &Error{Op: "Sweep.Run", Kind: KindValidation, Err: ErrNoChecks}
	}

	report := &result.Report{
		RunID:     uuid.New().String(),
		StartedAt: time.Now(),
		Results:   make([]result.CheckResult, len(s.checks)),
	}

	if info, err := s.hostInfo(ctx); err == nil {
		report.Hostname = info.Hostname
		report.Kernel = info.KernelVersion
	}

	logger := s.cfg.logger.With("run_id", report.RunID)
	logger.Info("sweep starting",
		"checks", len(s.checks),
		"concurrency", s.cfg.concurrency,
		"timeout", s.cfg.timeout.String(),
	)

	var wg sync.WaitGroup
	sem := make(chan struct{}, s.cfg.concurrency)

	for i, chk := range s.checks {
		wg.Add(1)
		go func(idx int, c checks.Check) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			report.Results[idx] = s.runCheck(ctx, c, logger)
		}(i, chk)
	}
	wg.Wait()

	report.Duration = time.Since(report.StartedAt)
	report.Partial = ctx.Err() != nil
	report.Summary = result.Summarize(report.Results)

	logger.Info("sweep complete",
		"duration", report.Duration.String(),
		"ok", report.Summary.OK,
		"warnings", report.Summary.Warnings,
		"unknowns", report.Summary.Unknowns,
		"partial", report.Partial,
	)
	return report, nil
}

// runCheck runs a single check with its own timeout, span, and panic
// isolation, and stamps the duration on the outcome.
func (s *Sweep) runCheck(ctx context.Context, c checks.Check, logger *slog.Logger) result.CheckResult {
	if ctx.Err() != nil {
		return result.Unknown(c.Name(), c.Title(), "sweep cancelled before check ran")
	}

	ctx, span := s.cfg.tracer.Start(ctx, "check."+c.Name())
	defer span.End()

	checkCtx, cancel := context.WithTimeout(ctx, s.cfg.timeout)
	defer cancel()

	start := time.Now()
	done := make(chan result.CheckResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result.Unknown(c.Name(), c.Title(),
					"check panicked",
					fmt.Sprintf("recovered: %v", r))
			}
		}()
		done <- c.Run(checkCtx)
	}()

	var res result.CheckResult
	select {
	case res = <-done:
	case <-checkCtx.Done():
		// The probe layer kills the subprocess once the context expires;
		// the abandoned goroutine keeps nothing the sweep still needs.
		if ctx.Err() != nil {
			res = result.Unknown(c.Name(), c.Title(), "sweep cancelled while check was running")
		} else {
			res = result.Unknown(c.Name(), c.Title(),
				fmt.Sprintf("check timed out after %s", s.cfg.timeout))
		}
	}
	res.Duration = time.Since(start)

	span.SetAttributes(
		attribute.String("check.status", res.Status.String()),
		attribute.Int64("check.duration_ms", res.Duration.Milliseconds()),
	)
	logger.Debug("check finished",
		"check", c.Name(),
		"status", res.Status.String(),
		"duration", res.Duration.String(),
	)
	return res
}
