package probe

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestRun_Success(t *testing.T) {
	tests := []struct {
		name           string
		cfg            Config
		expectedStdout string
		expectedCode   int
	}{
		{
			name: "simple echo",
			cfg: Config{
				Command: "echo",
				Args:    []string{"hello", "world"},
			},
			expectedStdout: "hello world\n",
			expectedCode:   0,
		},
		{
			name: "echo without args",
			cfg: Config{
				Command: "echo",
			},
			expectedStdout: "\n",
			expectedCode:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			result, err := System{}.Run(ctx, tt.cfg)

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.ExitCode != tt.expectedCode {
				t.Errorf("expected exit code %d, got %d", tt.expectedCode, result.ExitCode)
			}
			if string(result.Stdout) != tt.expectedStdout {
				t.Errorf("expected stdout %q, got %q", tt.expectedStdout, string(result.Stdout))
			}
			if result.Duration <= 0 {
				t.Error("expected positive duration")
			}
		})
	}
}

func TestRun_NonZeroExit(t *testing.T) {
	cfg := Config{
		Command: "sh",
		Args:    []string{"-c", "exit 3"},
	}

	result, err := System{}.Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("non-zero exit should not be an error, got: %v", err)
	}
	if result.ExitCode != 3 {
		t.Errorf("expected exit code 3, got %d", result.ExitCode)
	}
}

func TestRun_ToolAbsent(t *testing.T) {
	cfg := Config{Command: "this-binary-definitely-does-not-exist-12345"}

	_, err := System{}.Run(context.Background(), cfg)
	if !errors.Is(err, ErrToolAbsent) {
		t.Fatalf("expected ErrToolAbsent, got: %v", err)
	}
}

func TestRun_Timeout(t *testing.T) {
	cfg := Config{
		Command: "sleep",
		Args:    []string{"5"},
		Timeout: 50 * time.Millisecond,
	}

	start := time.Now()
	_, err := System{}.Run(context.Background(), cfg)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Errorf("expected timeout error, got: %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Error("timeout did not bound execution time")
	}
}

func TestRun_EmptyCommand(t *testing.T) {
	_, err := System{}.Run(context.Background(), Config{})
	if err == nil {
		t.Fatal("expected error for empty command")
	}
}

func TestResult_Text(t *testing.T) {
	r := &Result{Stdout: []byte("  running\n")}
	if got := r.Text(); got != "running" {
		t.Errorf("expected %q, got %q", "running", got)
	}
}

func TestLookPath(t *testing.T) {
	if _, err := (System{}).LookPath("sh"); err != nil {
		t.Fatalf("sh should resolve: %v", err)
	}

	_, err := (System{}).LookPath("this-binary-definitely-does-not-exist-12345")
	if !errors.Is(err, ErrToolAbsent) {
		t.Fatalf("expected ErrToolAbsent, got: %v", err)
	}
}

func TestBinaryExists(t *testing.T) {
	if !BinaryExists(System{}, "sh") {
		t.Error("sh should exist")
	}
	if BinaryExists(System{}, "this-binary-definitely-does-not-exist-12345") {
		t.Error("nonexistent binary reported present")
	}
}

func TestFakeRunner(t *testing.T) {
	fake := &FakeRunner{
		Binaries: map[string]string{"ufw": "/usr/sbin/ufw"},
		Commands: map[string]FakeResponse{
			"ufw status": {Stdout: "Status: inactive\n"},
		},
		Files: map[string]string{"/etc/selinux/config": "SELINUX=enforcing\n"},
	}

	if !BinaryExists(fake, "ufw") {
		t.Error("expected ufw present")
	}
	if BinaryExists(fake, "iptables") {
		t.Error("iptables should be absent")
	}

	res, err := fake.Run(context.Background(), Config{Command: "ufw", Args: []string{"status"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Text() != "Status: inactive" {
		t.Errorf("unexpected stdout: %q", res.Text())
	}

	_, err = fake.Run(context.Background(), Config{Command: "missing"})
	if !errors.Is(err, ErrToolAbsent) {
		t.Fatalf("expected ErrToolAbsent, got: %v", err)
	}

	if !fake.FileExists("/etc/selinux/config") {
		t.Error("expected selinux config present")
	}
	if len(fake.Calls) != 2 {
		t.Errorf("expected 2 recorded calls, got %d", len(fake.Calls))
	}
}
