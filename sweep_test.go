package hostmedic

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostmedic/hostmedic/checks"
	"github.com/hostmedic/hostmedic/result"
)

// stubCheck is a scriptable check for sweep tests.
type stubCheck struct {
	name string
	run  func(ctx context.Context) result.CheckResult
}

func (s *stubCheck) Name() string  { return s.name }
func (s *stubCheck) Title() string { return s.name }
func (s *stubCheck) Run(ctx context.Context) result.CheckResult {
	return s.run(ctx)
}

func okCheck(name string) checks.Check {
	return &stubCheck{name: name, run: func(context.Context) result.CheckResult {
		return result.OK(name, name, "fine")
	}}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSweep_Run(t *testing.T) {
	s := NewSweep(
		[]checks.Check{
			okCheck("alpha"),
			&stubCheck{name: "beta", run: func(context.Context) result.CheckResult {
				return result.Warning("beta", "beta", "something is off")
			}},
			okCheck("gamma"),
		},
		WithLogger(quietLogger()),
	)

	report, err := s.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Results, 3)

	assert.NotEmpty(t, report.RunID)
	assert.False(t, report.Partial)
	assert.Equal(t, result.Summary{OK: 2, Warnings: 1}, report.Summary)
	for _, res := range report.Results {
		assert.NotZero(t, res.Duration)
	}
}

func TestSweep_PreservesCheckOrder(t *testing.T) {
	names := []string{"filesystem", "load", "memory", "dstate", "selinux"}
	list := make([]checks.Check, 0, len(names))
	for _, name := range names {
		list = append(list, okCheck(name))
	}

	s := NewSweep(list, WithLogger(quietLogger()), WithConcurrency(3))
	report, err := s.Run(context.Background())
	require.NoError(t, err)

	got := make([]string, 0, len(report.Results))
	for _, res := range report.Results {
		got = append(got, res.Name)
	}
	assert.Equal(t, names, got)
}

func TestSweep_PanicIsIsolated(t *testing.T) {
	s := NewSweep(
		[]checks.Check{
			okCheck("alpha"),
			&stubCheck{name: "boom", run: func(context.Context) result.CheckResult {
				panic("unexpected nil partition")
			}},
			okCheck("gamma"),
		},
		WithLogger(quietLogger()),
	)

	report, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, result.StatusOK, report.Results[0].Status)
	assert.Equal(t, result.StatusUnknown, report.Results[1].Status)
	assert.Contains(t, report.Results[1].Summary, "panicked")
	assert.Equal(t, result.StatusOK, report.Results[2].Status)
}

func TestSweep_CheckTimeout(t *testing.T) {
	s := NewSweep(
		[]checks.Check{
			&stubCheck{name: "stuck", run: func(ctx context.Context) result.CheckResult {
				<-ctx.Done()
				time.Sleep(50 * time.Millisecond)
				return result.OK("stuck", "stuck", "too late")
			}},
			okCheck("beta"),
		},
		WithLogger(quietLogger()),
		WithTimeout(20*time.Millisecond),
	)

	report, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, result.StatusUnknown, report.Results[0].Status)
	assert.Contains(t, report.Results[0].Summary, "timed out")
	assert.Equal(t, result.StatusOK, report.Results[1].Status)
	assert.False(t, report.Partial)
}

func TestSweep_CancellationYieldsPartialReport(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	started := make(chan struct{})
	s := NewSweep(
		[]checks.Check{
			&stubCheck{name: "slow", run: func(ctx context.Context) result.CheckResult {
				close(started)
				<-ctx.Done()
				time.Sleep(50 * time.Millisecond)
				return result.OK("slow", "slow", "never")
			}},
			okCheck("beta"),
		},
		WithLogger(quietLogger()),
		WithConcurrency(1),
	)

	go func() {
		<-started
		cancel()
	}()

	report, err := s.Run(ctx)
	require.NoError(t, err)

	assert.True(t, report.Partial)
	for _, res := range report.Results {
		assert.Equal(t, result.StatusUnknown, res.Status, res.Name)
	}
}

func TestSweep_NoChecks(t *testing.T) {
	s := NewSweep(nil, WithLogger(quietLogger()))

	_, err := s.Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoChecks))

	var herr *Error
	require.True(t, errors.As(err, &herr))
	assert.Equal(t, KindValidation, herr.Kind)
}

func TestSweep_CheckNames(t *testing.T) {
	s := NewSweep([]checks.Check{okCheck("alpha"), okCheck("beta")})
	assert.Equal(t, []string{"alpha", "beta"}, s.CheckNames())
}

func TestSweep_OptionsIgnoreInvalidValues(t *testing.T) {
	cfg := defaultSweepConfig()
	WithTimeout(-1)(&cfg)
	WithConcurrency(0)(&cfg)
	WithLogger(nil)(&cfg)

	assert.Equal(t, DefaultCheckTimeout, cfg.timeout)
	assert.Equal(t, DefaultConcurrency, cfg.concurrency)
	assert.NotNil(t, cfg.logger)
}
