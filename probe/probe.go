package probe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// ErrToolAbsent indicates a candidate tool is not installed on the host.
// Callers treat this as "capability unavailable", not as a failure.
var ErrToolAbsent = errors.New("tool not present on host")

// Config holds the configuration for a single tool invocation.
type Config struct {
	// Command is the name or path of the tool to execute (required)
	Command string

	// Args are the command-line arguments (optional)
	Args []string

	// Env specifies the environment variables in "KEY=value" format (optional)
	// If nil, the command inherits the parent process environment
	Env []string

	// Timeout specifies the maximum execution duration (optional)
	// If zero, only the parent context bounds the invocation
	Timeout time.Duration
}

// Result holds the outcome of a tool invocation.
type Result struct {
	// Stdout contains the captured stdout
	Stdout []byte

	// Stderr contains the captured stderr
	Stderr []byte

	// ExitCode is the process exit code
	// 0 indicates success, non-zero indicates a tool-reported condition
	ExitCode int

	// Duration is the actual execution time
	Duration time.Duration
}

// Text returns stdout trimmed of surrounding whitespace.
func (r *Result) Text() string {
	return string(bytes.TrimSpace(r.Stdout))
}

// Runner abstracts host access for diagnostic checks. The production
// implementation is System; tests substitute fakes.
type Runner interface {
	// Run executes an external tool and captures its output. A non-zero
	// exit code is returned in the Result, not as an error.
	Run(ctx context.Context, cfg Config) (*Result, error)

	// LookPath reports where a binary resolves on the search path.
	// Returns ErrToolAbsent (wrapped) when it does not.
	LookPath(name string) (string, error)

	// ReadFile reads a file or pseudo-file from the host.
	ReadFile(path string) ([]byte, error)

	// FileExists reports whether a path exists on the host.
	FileExists(path string) bool

	// Glob returns the paths matching a shell pattern, sorted.
	Glob(pattern string) ([]string, error)
}

// System is the Runner backed by the real host: os/exec, the process
// environment search path, and the local filesystem.
type System struct{}

// Run executes a command with the given configuration.
// It returns a Result containing stdout, stderr, exit code, and duration.
//
// The function respects context cancellation and the configured timeout.
// If the command times out or the context is cancelled, the process is
// killed and an error is returned alongside any partial output.
func (System) Run(ctx context.Context, cfg Config) (*Result, error) {
	if cfg.Command == "" {
		return nil, errors.New("command is required")
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, cfg.Command, cfg.Args...)

	if cfg.Env != nil {
		cmd.Env = cfg.Env
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)

	result := &Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: 0,
		Duration: duration,
	}

	if err != nil {
		// Context errors take precedence: a killed process reports an
		// unhelpful exit status.
		if ctx.Err() == context.DeadlineExceeded {
			return result, fmt.Errorf("command timed out after %v", cfg.Timeout)
		}

		if ctx.Err() == context.Canceled {
			return result, fmt.Errorf("command cancelled")
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// Tool ran and exited non-zero; that is an answer, not a failure.
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}

		if errors.Is(err, exec.ErrNotFound) {
			return result, fmt.Errorf("%s: %w", cfg.Command, ErrToolAbsent)
		}

		return result, fmt.Errorf("command execution failed: %w", err)
	}

	return result, nil
}

// LookPath returns the full path to a binary in the system PATH.
// It returns a wrapped ErrToolAbsent if the binary is not found.
func (System) LookPath(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, ErrToolAbsent)
	}
	return path, nil
}

// ReadFile reads a file from the host filesystem.
func (System) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// FileExists reports whether the path exists. Permission errors on the
// final component are treated as existing, matching shell -f semantics
// closely enough for marker-file probes.
func (System) FileExists(path string) bool {
	_, err := os.Stat(path)
	if err == nil {
		return true
	}
	return !errors.Is(err, fs.ErrNotExist)
}

// Glob returns the sorted paths matching pattern.
func (System) Glob(pattern string) ([]string, error) {
	return filepath.Glob(pattern)
}

// BinaryExists reports whether a binary resolves on r's search path.
func BinaryExists(r Runner, name string) bool {
	_, err := r.LookPath(name)
	return err == nil
}
