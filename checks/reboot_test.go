package checks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hostmedic/hostmedic/detect"
	"github.com/hostmedic/hostmedic/probe"
	"github.com/hostmedic/hostmedic/result"
)

func TestReboot_MarkerFile(t *testing.T) {
	fake := &probe.FakeRunner{
		Files: map[string]string{
			detect.RebootMarkerPath: "*** System restart required ***\n",
		},
	}

	res := NewReboot(fake).Run(context.Background())
	require.Equal(t, result.StatusWarning, res.Status)
	assert.Equal(t, "system restart required", res.Summary)
	// The marker alone is authoritative; nothing else should be consulted.
	assert.Empty(t, fake.Calls)
}

func TestReboot_MarkerBeatsKernelCompare(t *testing.T) {
	fake := &probe.FakeRunner{
		Binaries: map[string]string{"uname": "/usr/bin/uname"},
		Files: map[string]string{
			detect.RebootMarkerPath:  "",
			"/boot/vmlinuz-6.1.0-18": "",
		},
	}

	res := NewReboot(fake).Run(context.Background())
	assert.Equal(t, result.StatusWarning, res.Status)
	assert.Empty(t, fake.Calls)
}

func TestReboot_MarkerPackageList(t *testing.T) {
	fake := &probe.FakeRunner{
		Files: map[string]string{
			detect.RebootPackagesPath: "linux-image-6.1.0-18-amd64\nlibc6\n\n",
		},
	}

	res := NewReboot(fake).Run(context.Background())
	require.Equal(t, result.StatusWarning, res.Status)
	assert.Contains(t, res.Details, "2 packages require a restart")
}

func TestReboot_AdvisoryTool(t *testing.T) {
	tests := []struct {
		name     string
		exitCode int
		want     result.Status
	}{
		{"no restart needed", 0, result.StatusOK},
		{"restart advised", 1, result.StatusWarning},
		{"tool error", 2, result.StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &probe.FakeRunner{
				Binaries: map[string]string{"needs-restarting": "/usr/bin/needs-restarting"},
				Commands: map[string]probe.FakeResponse{
					"needs-restarting -r": {ExitCode: tt.exitCode},
				},
			}

			res := NewReboot(fake).Run(context.Background())
			assert.Equal(t, tt.want, res.Status)
		})
	}
}

func TestReboot_AdvisoryToolBeatsKernelCompare(t *testing.T) {
	fake := &probe.FakeRunner{
		Binaries: map[string]string{
			"needs-restarting": "/usr/bin/needs-restarting",
			"uname":            "/usr/bin/uname",
		},
		Commands: map[string]probe.FakeResponse{
			"needs-restarting -r": {ExitCode: 0},
		},
		Files: map[string]string{
			"/boot/vmlinuz-6.1.0-18": "",
		},
	}

	res := NewReboot(fake).Run(context.Background())
	// The advisory answer stands even though a kernel comparison would
	// have been possible.
	assert.Equal(t, result.StatusOK, res.Status)
	assert.Equal(t, []string{"needs-restarting -r"}, fake.Calls)
}

func TestReboot_KernelCompare(t *testing.T) {
	tests := []struct {
		name    string
		running string
		images  []string
		want    result.Status
	}{
		{
			name:    "running the newest kernel",
			running: "6.1.0-18-amd64",
			images:  []string{"/boot/vmlinuz-6.1.0-17-amd64", "/boot/vmlinuz-6.1.0-18-amd64"},
			want:    result.StatusOK,
		},
		{
			name:    "newer kernel installed",
			running: "6.1.0-17-amd64",
			images:  []string{"/boot/vmlinuz-6.1.0-17-amd64", "/boot/vmlinuz-6.1.0-18-amd64"},
			want:    result.StatusWarning,
		},
		{
			name:    "numeric ordering beats lexical",
			running: "6.1.0-9-amd64",
			images:  []string{"/boot/vmlinuz-6.1.0-9-amd64", "/boot/vmlinuz-6.1.0-10-amd64"},
			want:    result.StatusWarning,
		},
		{
			name:    "single installed kernel matches",
			running: "5.14.0-362.el9.x86_64",
			images:  []string{"/boot/vmlinuz-5.14.0-362.el9.x86_64"},
			want:    result.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := map[string]string{}
			for _, image := range tt.images {
				files[image] = ""
			}
			fake := &probe.FakeRunner{
				Commands: map[string]probe.FakeResponse{
					"uname -r": {Stdout: tt.running + "\n"},
				},
				Files: files,
			}

			res := NewReboot(fake).Run(context.Background())
			assert.Equal(t, tt.want, res.Status)
		})
	}
}

func TestReboot_KernelCompareUnameFails(t *testing.T) {
	fake := &probe.FakeRunner{
		Commands: map[string]probe.FakeResponse{
			"uname -r": {ExitCode: 1},
		},
		Files: map[string]string{"/boot/vmlinuz-6.1.0-18": ""},
	}

	res := NewReboot(fake).Run(context.Background())
	assert.Equal(t, result.StatusUnknown, res.Status)
}

func TestReboot_NoSignalsIsOK(t *testing.T) {
	fake := &probe.FakeRunner{}

	res := NewReboot(fake).Run(context.Background())
	require.Equal(t, result.StatusOK, res.Status)
	assert.Equal(t, "no reboot signals present", res.Summary)
}

func TestVersionLess(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"6.1.0-17-amd64", "6.1.0-18-amd64", true},
		{"6.1.0-18-amd64", "6.1.0-17-amd64", false},
		{"6.1.0-9-amd64", "6.1.0-10-amd64", true},
		{"5.15.0", "6.1.0", true},
		{"6.1.0", "6.1.0", false},
		{"5.14.0-362.el9", "5.14.0-427.el9", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, versionLess(tt.a, tt.b), "versionLess(%q, %q)", tt.a, tt.b)
	}
}
